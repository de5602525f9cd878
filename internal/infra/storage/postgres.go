package storage

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

// pgUniqueViolation код ошибки PostgreSQL unique_violation
const pgUniqueViolation = "23505"

// IsUniqueViolation сообщает, что ошибка вызвана нарушением уникальности
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}
	return false
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern шаблон ILIKE для поиска подстроки
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
