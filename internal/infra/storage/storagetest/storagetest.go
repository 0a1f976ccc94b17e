// Package storagetest поднимает изолированную схему PostgreSQL для интеграционных тестов репозиториев
package storagetest

import (
	"database/sql"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/pkg/migrator"
)

// EnvDSN переменная окружения с адресом тестовой БД (postgres://...)
const EnvDSN = "TEST_DB_DSN"

// Open создает отдельную схему, применяет миграции и возвращает соединение с ней
// Без TEST_DB_DSN тест пропускается. Схема удаляется по завершении теста
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv(EnvDSN)
	if dsn == "" {
		t.Skipf("%s is required for integration tests", EnvDSN)
	}

	admin, err := sql.Open("postgres", dsn)
	require.NoError(t, err)

	schema := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	_, err = admin.Exec("CREATE SCHEMA " + schema)
	require.NoError(t, err)

	schemaDSN, err := withSearchPath(dsn, schema)
	require.NoError(t, err)

	require.NoError(t, migrator.Run(migrationsSource(t), schemaDSN, migrator.ActionUp))

	db, err := sql.Open("postgres", schemaDSN)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
		_, _ = admin.Exec("DROP SCHEMA " + schema + " CASCADE")
		_ = admin.Close()
	})

	return db
}

func withSearchPath(dsn, schema string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", err
	}
	q := u.Query()
	// public остается в пути ради расширения btree_gist
	q.Set("search_path", schema+",public")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func migrationsSource(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)

	root := filepath.Join(filepath.Dir(file), "..", "..", "..", "..")
	return "file://" + filepath.ToSlash(filepath.Join(root, "migrations", "postgres"))
}
