package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTask(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		want        []string
	}{
		{"both empty", "", "", []string{"Title is required", "Description is required"}},
		{"whitespace only", "   ", "\t", []string{"Title is required", "Description is required"}},
		{"title too short", "ab", "Valid description", []string{"Title must be at least 3 characters"}},
		{"title at minimum", "abc", "Valid description", nil},
		{"description too short", "Valid title", "abcd", []string{"Description must be at least 5 characters"}},
		{"description at minimum", "Valid title", "abcde", nil},
		{"trimmed before length check", "  ab  ", "  abcde ", []string{"Title must be at least 3 characters"}},
		{"valid", "Valid title", "Valid description", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Task(tt.title, tt.description))
		})
	}
}

func TestJoin(t *testing.T) {
	got := Join([]string{"Title is required", "Description is required"})
	assert.Equal(t, "Title is required, Description is required", got)
}

func TestPresent(t *testing.T) {
	short, ok := "ab", "Valid text"

	assert.Empty(t, Present(nil, nil))
	assert.Empty(t, Present(&ok, &ok))
	assert.Equal(t, []string{"Title must be at least 3 characters"}, Present(&short, nil))
	assert.Equal(t, []string{"Description must be at least 5 characters"}, Present(nil, &short))
	assert.Equal(t, []string{
		"Title must be at least 3 characters",
		"Description must be at least 5 characters",
	}, Present(&short, &short))
}
