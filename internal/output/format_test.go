package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasksync/internal/service"
)

func TestFormatTask(t *testing.T) {
	tests := []struct {
		name string
		num  int
		task service.Task
		want string
	}{
		{"title only", 1, service.Task{Title: "Buy milk"}, "   1  Buy milk\n"},
		{"with description", 12, service.Task{Title: "Buy milk", Description: "Two litres"}, "  12  Buy milk\n      Two litres\n"},
		{"untitled", 3, service.Task{Title: "  "}, "   3  (untitled)\n"},
		{"newlines", 4, service.Task{Title: "a\nb", Description: "c\r\nd"}, "   4  a b\n      c  d\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			FormatTask(&buf, tt.num, tt.task)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestFormatTasks_Structured(t *testing.T) {
	tasks := []service.Task{{ID: "1", Title: "Buy milk", Description: "Two litres"}}

	var js bytes.Buffer
	require.NoError(t, FormatTasks(&js, FormatJSON, tasks))
	assert.JSONEq(t, `[{"id":"1","title":"Buy milk","description":"Two litres","is_completed":false}]`, js.String())

	var ym bytes.Buffer
	require.NoError(t, FormatTasks(&ym, FormatYAML, tasks))
	assert.YAMLEq(t, "- id: \"1\"\n  title: Buy milk\n  description: Two litres\n  is_completed: false\n", ym.String())
}

func TestFormatTasks_EmptyJSONIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatTasks(&buf, FormatJSON, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestFormatTasks_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := FormatTasks(&buf, "xml", nil)
	assert.EqualError(t, err, "invalid format: xml")
	assert.False(t, ValidFormat("xml"))
	assert.True(t, ValidFormat(FormatYAML))
}
