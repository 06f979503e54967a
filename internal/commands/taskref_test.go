package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasksync/internal/manager"
	"tasksync/internal/testutil"
)

func TestParseTaskRef(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want TaskRef
	}{
		{"number", []string{"5"}, TaskRef{Num: 5}},
		{"leading zeros", []string{"007"}, TaskRef{Num: 7}},
		{"zero", []string{"0"}, TaskRef{Num: 0}},
		{"uuid", []string{"3f2b9c1e-8d4a-4c55-9a71-0c6c1f6f4e10"}, TaskRef{ID: "3f2b9c1e-8d4a-4c55-9a71-0c6c1f6f4e10"}},
		{"mixed", []string{"a1"}, TaskRef{ID: "a1"}},
		{"negative is an id", []string{"-1"}, TaskRef{ID: "-1"}},
		{"extra args ignored", []string{"2", "extra"}, TaskRef{Num: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTaskRef(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTaskRef_Required(t *testing.T) {
	for _, args := range [][]string{nil, {}, {"   "}} {
		_, err := ParseTaskRef(args)
		assert.ErrorIs(t, err, ErrTaskRefRequired)
	}
}

func TestParseTaskRef_NonASCIIDigits(t *testing.T) {
	ref, err := ParseTaskRef([]string{"٣"})
	require.NoError(t, err)
	assert.False(t, ref.IsNumber())
}

func TestTaskRef_Resolve(t *testing.T) {
	gw := testutil.NewFakeGateway()
	gw.AddTask("t1", "Buy milk", "Two litres", false)
	gw.AddTask("t2", "File taxes", "Before April", true)
	gw.AddTask("t3", "Call mom", "Sunday evening", false)
	m := manager.New(gw)
	m.FetchTasks(context.Background())

	task, err := TaskRef{Num: 2}.resolve(m)
	require.NoError(t, err)
	assert.Equal(t, "t3", task.ID, "numbers index the open tasks only")

	task, err = TaskRef{ID: "t1"}.resolve(m)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", task.Title)

	_, err = TaskRef{Num: 3}.resolve(m)
	assert.EqualError(t, err, "task number out of range: 3")

	_, err = TaskRef{ID: "t2"}.resolve(m)
	assert.ErrorIs(t, err, errTaskNotFound)
}
