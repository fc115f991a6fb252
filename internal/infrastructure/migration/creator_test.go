package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/circtek/backend/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add stock index", "add_stock_index"},
		{"Add-Repair-Notes", "add_repair_notes"},
		{"add__device__events", "add_device_events"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"_leading and trailing_", "leading_and_trailing"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration_NumbersSequentially(t *testing.T) {
	dir := t.TempDir()

	first, err := CreateMigration(dir, "add repairs", "Repairs table")
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.Version)
	assert.Equal(t, "000001_add_repairs.up.sql", filepath.Base(first.UpPath))
	assert.Equal(t, "000001_add_repairs.down.sql", filepath.Base(first.DownPath))

	content, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "-- add repairs: Repairs table"))

	down, err := os.ReadFile(first.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "(rollback)")

	second, err := CreateMigration(dir, "add purchases", "")
	require.NoError(t, err)
	assert.Equal(t, uint(2), second.Version)

	_, err = CreateMigration(dir, "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"000002_stock.up.sql":    {},
		"000001_init.up.sql":     {},
		"000001_init.down.sql":   {},
		"README.md":              {},
		"notes/000003_x.up.sql":  {},
		"000010_late.up.sql":     {},
		"20240101_legacy.up.SQL": {},
	}

	list, err := ListMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, Info{Version: 1, Name: "init", HasDown: true}, list[0])
	assert.Equal(t, Info{Version: 2, Name: "stock"}, list[1])
	assert.Equal(t, uint(10), list[2].Version)
}

func TestEmbeddedMigrations(t *testing.T) {
	list, err := ListMigrations(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, list)

	for i, info := range list {
		assert.Equal(t, uint(i+1), info.Version, "versions must be contiguous")
		assert.True(t, info.HasDown, "migration %d has no down file", info.Version)
	}
}
