package utils

import (
	"strconv"
	"time"
)

func StrPtr(s string) *string {
	return &s
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ToUint(id string) (uint, error) {
	n, err := strconv.ParseUint(id, 10, 64)
	return uint(n), err
}

// FormatPrice renders a price the way it travels in cart payloads,
// always with two decimal places ("100.00").
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', 2, 64)
}

func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
