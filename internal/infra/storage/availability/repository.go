package availability

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

const tableName = "weekly_availability"

// Repository репозиторий недельных окон доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория окон доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает все правила, упорядоченные по дню недели и времени начала
func (r *Repository) List(ctx context.Context) ([]domain.WeeklyAvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"day_of_week",
		"start_time",
		"end_time",
		"is_available",
	).
		From(tableName).
		OrderBy("day_of_week ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRules(rows)
}

// DeleteAll удаляет все правила
// Вызывать только внутри транзакции вместе с CreateBatch
func (r *Repository) DeleteAll(ctx context.Context) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteAll - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteAll - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// CreateBatch вставляет правила одним запросом и возвращает их с присвоенными ID
func (r *Repository) CreateBatch(ctx context.Context, rules []domain.WeeklyAvailabilityRule) ([]domain.WeeklyAvailabilityRule, error) {
	if len(rules) == 0 {
		return []domain.WeeklyAvailabilityRule{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert(tableName).
		Columns("day_of_week", "start_time", "end_time", "is_available")

	for _, rule := range rules {
		insertBuilder = insertBuilder.Values(rule.DayOfWeek, rule.StartTime, rule.EndTime, rule.IsAvailable)
	}

	query, args, err := insertBuilder.
		Suffix("RETURNING id, day_of_week, start_time, end_time, is_available").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRules(rows)
}

func scanRules(rows *sql.Rows) ([]domain.WeeklyAvailabilityRule, error) {
	rules := make([]domain.WeeklyAvailabilityRule, 0)

	for rows.Next() {
		var rule domain.WeeklyAvailabilityRule
		if err := rows.Scan(
			&rule.ID,
			&rule.DayOfWeek,
			&rule.StartTime,
			&rule.EndTime,
			&rule.IsAvailable,
		); err != nil {
			return nil, fmt.Errorf("%w: scanRules - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRules - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}
