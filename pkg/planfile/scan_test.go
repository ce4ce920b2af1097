package planfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o644))
}

func TestIsPlanFile(t *testing.T) {
	assert.True(t, IsPlanFile("2024-03-10.plan"))
	assert.True(t, IsPlanFile("notes.plan"))
	assert.True(t, IsPlanFile("2024-3-10.plan"))
	assert.False(t, IsPlanFile("2024-03-10.txt"))
	assert.False(t, IsPlanFile(".sync-conflict-2024-03-10.plan"))
}

func TestScanSortsNewestFirst(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "2024-03-01.plan")
	touch(t, dir, "2024-03-10.plan")
	touch(t, dir, "2024-02-15.plan")

	result, err := Scan(dir, nil)
	require.NoError(t, err)
	require.Len(t, result.Plans, 3)
	assert.Equal(t, "2024-03-10.plan", result.Plans[0].Name)
	assert.Equal(t, "2024-03-01.plan", result.Plans[1].Name)
	assert.Equal(t, "2024-02-15.plan", result.Plans[2].Name)
	assert.Empty(t, result.Unexpected)
}

func TestScanReportsUnexpected(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "2024-03-10.plan")
	touch(t, dir, "notes.txt")
	touch(t, dir, "archive.zip")
	touch(t, dir, ".hidden.txt")

	result, err := Scan(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{".hidden.txt", "archive.zip", "notes.txt"}, result.Unexpected)
}

func TestScanKeepsUndatedPlanFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "2024-03-10.plan")
	touch(t, dir, "notes.plan")

	result, err := Scan(dir, nil)
	require.NoError(t, err)
	require.Len(t, result.Plans, 2)
	assert.Equal(t, "notes.plan", result.Plans[0].Name)
	assert.True(t, result.Plans[0].Date.IsZero())
	assert.Equal(t, "2024-03-10.plan", result.Plans[1].Name)
	assert.False(t, result.Plans[1].Date.IsZero())
	assert.Empty(t, result.Unexpected)
}

func TestScanIgnoresBuiltins(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "2024-03-10.plan")
	touch(t, dir, ".DS_Store")
	touch(t, dir, "Thumbs.db")
	touch(t, dir, "2024-03-10.lock")
	touch(t, dir, "2024-03-10.plan.swp")
	touch(t, dir, "2024-03-09.plan~")
	touch(t, dir, "2024-03-10.plan.tmp-1234")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))

	result, err := Scan(dir, nil)
	require.NoError(t, err)
	require.Len(t, result.Plans, 1)
	assert.Empty(t, result.Unexpected)
}

func TestScanUserIgnorePatterns(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "2024-03-10.plan")
	touch(t, dir, "notes.bak")
	touch(t, dir, "scratch.txt")
	touch(t, dir, "other.txt")

	result, err := Scan(dir, []string{"*.bak", "scratch.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"other.txt"}, result.Unexpected)
}

func TestFindLatest(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "2024-03-01.plan")
	touch(t, dir, "2024-03-10.plan")

	entry, ok, err := FindLatest(dir, nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2024-03-10.plan", entry.Name)
}

func TestFindLatestSkipsUndatedPlanFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "2024-03-01.plan")
	touch(t, dir, "zz-scratch.plan")

	entry, ok, err := FindLatest(dir, nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2024-03-01.plan", entry.Name)
}

func TestFindLatestEmptyDir(t *testing.T) {
	_, ok, err := FindLatest(t.TempDir(), nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWarnUnexpected(t *testing.T) {
	var b strings.Builder
	WarnUnexpected(&b, []string{"notes.txt", "archive.zip"})
	assert.Equal(t, "plan: warning: unexpected files in plan directory: archive.zip, notes.txt (suppress with warn_unexpected = false)\n", b.String())
}

func TestWarnUnexpectedSilentWhenEmpty(t *testing.T) {
	var b strings.Builder
	WarnUnexpected(&b, nil)
	assert.Empty(t, b.String())
}
