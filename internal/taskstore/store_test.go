package taskstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasksync/internal/service"
	"tasksync/internal/taskerr"
)

func fixedClock(s *Store) {
	s.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
}

func TestStore_CreateListOrder(t *testing.T) {
	s := New()
	fixedClock(s)

	a, err := s.Create(service.TaskCreate{Title: "First", Description: "first task"})
	require.NoError(t, err)
	b, err := s.Create(service.TaskCreate{Title: "Second", Description: "second task"})
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "2025-03-01T12:00:00Z", a.CreatedAt)

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, b.ID, list[1].ID)
}

func TestStore_CreateValidation(t *testing.T) {
	s := New()
	_, err := s.Create(service.TaskCreate{Title: "ab", Description: "valid text"})
	assert.ErrorIs(t, err, taskerr.ErrValidation)
	assert.Empty(t, s.List())
}

func TestStore_Update(t *testing.T) {
	s := New()
	a, err := s.Create(service.TaskCreate{Title: "First", Description: "first task"})
	require.NoError(t, err)

	got, err := s.Update(service.TaskPatch{ID: a.ID, IsCompleted: service.Bool(true)})
	require.NoError(t, err)
	assert.True(t, got.IsCompleted)
	assert.Equal(t, "First", got.Title)

	_, err = s.Update(service.TaskPatch{ID: "missing", IsCompleted: service.Bool(true)})
	assert.ErrorIs(t, err, taskerr.ErrNotFound)

	_, err = s.Update(service.TaskPatch{ID: a.ID, Description: service.String("tiny")})
	assert.ErrorIs(t, err, taskerr.ErrValidation)
}

func TestStore_Delete(t *testing.T) {
	s := New()
	a, _ := s.Create(service.TaskCreate{Title: "First", Description: "first task"})
	b, _ := s.Create(service.TaskCreate{Title: "Second", Description: "second task"})

	require.NoError(t, s.Delete(a.ID))
	assert.ErrorIs(t, s.Delete(a.ID), taskerr.ErrNotFound)

	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)

	_, err := s.Get(a.ID)
	assert.ErrorIs(t, err, taskerr.ErrNotFound)
}
