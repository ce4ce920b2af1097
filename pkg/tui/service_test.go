package tui

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allancalix/plan/pkg/grammar"
)

// fakeExecutor returns canned output keyed by the subcommand.
type fakeExecutor struct {
	out map[string]string
}

func (f *fakeExecutor) Run(_ context.Context, _ string, args ...string) ([]byte, error) {
	return []byte(f.out[args[0]]), nil
}

func (f *fakeExecutor) RunStream(_ context.Context, _, _ io.Writer, _ string, _ ...string) error {
	return nil
}

func TestServiceListing(t *testing.T) {
	svc := &Service{Bin: "plan", Exec: &fakeExecutor{out: map[string]string{
		"ls": "2024-03-10.plan  1.2K   42 lines\n2024-03-01.plan  0.8K   17 lines\n",
	}}}

	records, err := svc.Listing(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2024-03-10", records[0].Date)
	assert.Equal(t, "2024-03-01", records[1].Date)
}

func TestServiceSearch(t *testing.T) {
	svc := &Service{Bin: "plan", Exec: &fakeExecutor{out: map[string]string{
		"search": "2024-03-10.plan:4: \\ write report\n",
	}}}

	records, err := svc.Search(context.Background(), "report")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2024-03-10.plan", records[0].File)
	assert.Equal(t, 4, records[0].Line)
	assert.Equal(t, `\ write report`, records[0].Display)
}

func TestStyleSpansCoversGaps(t *testing.T) {
	// Ensure unstyled segments between spans survive rendering.
	line := "+ done task (2024-03-10)"
	got := styleSpans(line, nil)
	assert.Equal(t, line, got)
}

func TestStyleSpansKeepsGapText(t *testing.T) {
	raw := "+ done task (2024-03-10)"
	line := grammar.Classify(raw)
	require.Len(t, line.Spans, 2)

	// The task body between the sigil span and the timestamp span has
	// no style and must pass through verbatim.
	rendered := styleSpans(raw, line.Spans)
	assert.Contains(t, rendered, "done task")
}
