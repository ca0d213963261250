package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_WriteRead(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	err := s.Write(ctx, TableStudents, [][]string{
		{"Name", "Email", "Marks"},
		{"Asha", "asha@example.com", "80"},
		{"Ben", "ben@example.com", "65"},
	}, "A1")
	require.NoError(t, err)

	rows, err := s.Read(ctx, TableStudents, "A1:C3")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Asha", "asha@example.com", "80"}, rows[1])
}

func TestMemoryStore_OpenEndedRanges(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Write(ctx, TableStudents, [][]string{
		{"h1", "h2", "h3"},
		{"a", "b", "c"},
		{"d", "e", "f"},
	}, "A1"))

	t.Run("column-only range", func(t *testing.T) {
		rows, err := s.Read(ctx, TableStudents, "A:B")
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, []string{"a", "b"}, rows[1])
	})

	t.Run("start row with open end", func(t *testing.T) {
		rows, err := s.Read(ctx, TableStudents, "A2:C")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, []string{"a", "b", "c"}, rows[0])
	})

	t.Run("single cell", func(t *testing.T) {
		rows, err := s.Read(ctx, TableStudents, "B3")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, []string{"e"}, rows[0])
	})
}

func TestMemoryStore_UpdateCell(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Write(ctx, TableStudents, [][]string{{"Asha", "", ""}}, "A2"))

	require.NoError(t, s.UpdateCell(ctx, TableStudents, "D2", "Shortlisted"))

	rows, err := s.Read(ctx, TableStudents, "A2:D2")
	require.NoError(t, err)
	assert.Equal(t, "Shortlisted", rows[0][3])
}

func TestMemoryStore_UpdateCellGrowsGrid(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.UpdateCell(ctx, TableStudents, "C5", "x"))

	rows, err := s.Read(ctx, TableStudents, "A1:C5")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "x", rows[4][2])
}

func TestMemoryStore_ReadEmptyTable(t *testing.T) {
	s := NewMemoryStore()
	rows, err := s.Read(context.Background(), "Nope", "A:Z")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestMemoryStore_InvalidRange(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Read(context.Background(), TableStudents, "5:A")
	assert.Error(t, err)
}
