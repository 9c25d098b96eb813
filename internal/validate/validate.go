package validate

import (
	"fmt"
	"regexp"
	"time"
)

// E.164: leading +, first digit 1-9, up to 14 more digits.
var phoneRe = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

func IsValidPhone(phone string) bool {
	return phoneRe.MatchString(phone)
}

// Accepted due-date formats. The raw string is stored as given, so this list
// only gates what registration will take.
var dueDateFormats = []string{
	"2006-01-02",
	"02.01.2006",
	time.RFC3339,
}

func ParseDueDate(value string) (time.Time, error) {
	for _, format := range dueDateFormats {
		if t, err := time.Parse(format, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse due date: %q", value)
}

func IsValidDueDate(value string) bool {
	_, err := ParseDueDate(value)
	return err == nil
}
