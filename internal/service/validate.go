package service

import (
	"strings"
	"unicode/utf8"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 1000
	maxCommentLen     = 2000
	maxActionLen      = 50
)

func requireText(field, value string, max int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", invalid(field, "is required")
	}
	if utf8.RuneCountInString(value) > max {
		return "", invalid(field, "must be at most %d characters", max)
	}
	return value, nil
}

func optionalText(field, value string, max int) (string, error) {
	value = strings.TrimSpace(value)
	if utf8.RuneCountInString(value) > max {
		return "", invalid(field, "must be at most %d characters", max)
	}
	return value, nil
}

func requireID(field string, id int64) error {
	if id <= 0 {
		return invalid(field, "must be a positive id")
	}
	return nil
}
