package tui

import (
	"bytes"
	"context"
	"fmt"

	"github.com/allancalix/plan/pkg/executil"
	"github.com/allancalix/plan/pkg/report"
)

// Service runs the plan CLI as a subprocess and parses its reports.
// The TUI reuses the command line surface instead of duplicating its
// directory scanning and formatting logic.
type Service struct {
	// Bin is the plan executable to invoke, normally os.Executable.
	Bin  string
	Exec executil.Executor
}

// Listing returns the plan files known to `plan ls`, newest first.
func (s *Service) Listing(ctx context.Context) ([]report.ListingRecord, error) {
	out, err := s.Exec.Run(ctx, s.Bin, "ls")
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	return report.ParseListing(bytes.NewReader(out))
}

// Search returns the hits of `plan search query`.
func (s *Service) Search(ctx context.Context, query string) ([]report.SearchRecord, error) {
	out, err := s.Exec.Run(ctx, s.Bin, "search", query)
	if err != nil {
		return nil, fmt.Errorf("searching plans: %w", err)
	}
	return report.ParseSearch(bytes.NewReader(out))
}
