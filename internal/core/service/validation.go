package service

import (
	"strings"
	"unicode/utf8"

	"github.com/sweem/sweem-api/internal/core/domain"
)

const (
	maxNameLen    = 200
	maxAddressLen = 500
	maxLoginLen   = 100
)

func requireText(field, value string, max int) error {
	if strings.TrimSpace(value) == "" {
		return domain.Invalid(field, "is required")
	}
	return limitText(field, value, max)
}

func limitText(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return domain.Invalid(field, "is too long")
	}
	return nil
}
