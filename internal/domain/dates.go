package domain

import (
	"fmt"
	"regexp"
	"time"
)

var (
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

// ParseDate разбирает дату в формате YYYY-MM-DD
// Формат проверяется строго: "2024-6-1" и "2024-02-30" некорректны
func ParseDate(s string) (time.Time, error) {
	if !datePattern.MatchString(s) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// ParseYearMonth разбирает месяц в формате YYYY-MM и возвращает его первый день
func ParseYearMonth(s string) (time.Time, error) {
	if !monthPattern.MatchString(s) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	t, err := time.Parse(MonthFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return t, nil
}

// NormalizeDate отбрасывает время и часовой пояс, оставляя календарную дату в UTC
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthRange возвращает [первый день месяца, первый день следующего месяца)
func MonthRange(month time.Time) (time.Time, time.Time) {
	from := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

// IsMonthRange сообщает, что [from, to) ровно один календарный месяц
func IsMonthRange(from, to time.Time) bool {
	start, end := MonthRange(from)
	return start.Equal(from) && end.Equal(to)
}
