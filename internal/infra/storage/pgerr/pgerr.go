package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// IsUniqueViolation проверяет нарушение уникального индекса constraint.
// Пустой constraint означает любой уникальный индекс.
func IsUniqueViolation(err error, constraint string) bool {
	return is(err, codeUniqueViolation, constraint)
}

// IsForeignKeyViolation проверяет нарушение внешнего ключа constraint
func IsForeignKeyViolation(err error, constraint string) bool {
	return is(err, codeForeignKeyViolation, constraint)
}

func is(err error, code, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if string(pqErr.Code) != code {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
