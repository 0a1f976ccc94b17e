package conflicts

import "errors"

var (
	// ErrInternal возвращается, когда занятость интервала не удалось прочитать
	ErrInternal = errors.New("conflicts: internal error")
)
