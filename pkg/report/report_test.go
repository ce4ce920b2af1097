package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListing(t *testing.T) {
	out := strings.Join([]string{
		"2024-03-03.plan  1.2K   42 lines",
		"",
		"warning: unexpected file notes.txt",
		"2024-03-01.plan  0.8K   17 lines",
		"not a dated line",
		"2024-02-28.plan  0.5K    9 lines",
	}, "\n")

	records, err := ParseListing(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "2024-03-03", records[0].Date)
	assert.Equal(t, "2024-03-03.plan  1.2K   42 lines", records[0].Display)
	assert.Equal(t, "2024-03-01", records[1].Date)
	assert.Equal(t, "2024-02-28", records[2].Date)
}

func TestParseListingTrimsWhitespace(t *testing.T) {
	records, err := ParseListing(strings.NewReader("  2024-03-03.plan  1.2K   42 lines  \n"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2024-03-03.plan  1.2K   42 lines", records[0].Display)
}

func TestParseListingEmpty(t *testing.T) {
	records, err := ParseListing(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseSearch(t *testing.T) {
	out := strings.Join([]string{
		"2024-03-03.plan:4: \\ write report",
		"2024-03-01.plan:12: + ship release (2024-03-01)",
		"garbage line",
		"",
	}, "\n")

	records, err := ParseSearch(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "2024-03-03.plan", records[0].File)
	assert.Equal(t, 4, records[0].Line)
	assert.Equal(t, `\ write report`, records[0].Display)

	assert.Equal(t, "2024-03-01.plan", records[1].File)
	assert.Equal(t, 12, records[1].Line)
}

func TestParseSearchStripsSingleLeadingSpace(t *testing.T) {
	records, err := ParseSearch(strings.NewReader("a.plan:1:  two spaces"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, " two spaces", records[0].Display)
}

func TestParseSearchColonInFilename(t *testing.T) {
	// Non-greedy file match stops at the first digit-colon boundary.
	records, err := ParseSearch(strings.NewReader("a:b.plan:12: hit"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a:b.plan", records[0].File)
	assert.Equal(t, 12, records[0].Line)
}

func TestParseSearchNegativeLineNumber(t *testing.T) {
	records, err := ParseSearch(strings.NewReader("a.plan:-3: odd"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, -3, records[0].Line)
}
