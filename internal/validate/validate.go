// Package validate enforces the input policy for task titles and descriptions.
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MinTitleLength is the minimum trimmed title length.
	MinTitleLength = 3

	// MinDescriptionLength is the minimum trimmed description length.
	MinDescriptionLength = 5
)

// Title returns the violation for a title, or "" if it is acceptable.
func Title(title string) string {
	return field("Title", title, MinTitleLength)
}

// Description returns the violation for a description, or "" if it is acceptable.
func Description(description string) string {
	return field("Description", description, MinDescriptionLength)
}

// Task checks both fields and returns every violation, title first.
func Task(title, description string) []string {
	var violations []string
	if v := Title(title); v != "" {
		violations = append(violations, v)
	}
	if v := Description(description); v != "" {
		violations = append(violations, v)
	}
	return violations
}

// Present checks only the fields that are set, as a partial update does.
func Present(title, description *string) []string {
	var violations []string
	if title != nil {
		if v := Title(*title); v != "" {
			violations = append(violations, v)
		}
	}
	if description != nil {
		if v := Description(*description); v != "" {
			violations = append(violations, v)
		}
	}
	return violations
}

// Join formats violations the way they are surfaced in a single error.
func Join(violations []string) string {
	return strings.Join(violations, ", ")
}

func field(name, value string, min int) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return name + " is required"
	}
	if utf8.RuneCountInString(value) < min {
		return fmt.Sprintf("%s must be at least %d characters", name, min)
	}
	return ""
}
