package main

import (
	"strings"

	"github.com/allancalix/plan/pkg/planfile"
	"github.com/allancalix/plan/pkg/report"
)

// searchPlans finds case-insensitive substring matches across plan
// files. Entries are expected newest first; hits keep that order, with
// 1-based line numbers within each file.
func searchPlans(entries []planfile.Entry, query string) ([]report.SearchRecord, error) {
	q := strings.ToLower(query)

	var hits []report.SearchRecord
	for _, entry := range entries {
		lines, err := planfile.ReadLines(entry.Path)
		if err != nil {
			return nil, err
		}
		for i, line := range lines {
			if strings.Contains(strings.ToLower(line), q) {
				hits = append(hits, report.SearchRecord{
					File:    entry.Name,
					Line:    i + 1,
					Display: line,
				})
			}
		}
	}
	return hits, nil
}
