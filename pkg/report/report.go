// Package report parses the machine-readable output of the plan
// command's listing and search reports back into structured records.
// The TUI shells out to the CLI for both reports and uses these
// parsers to drive its pickers.
package report

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// ListingRecord is one line of the ls report. Display holds the whole
// trimmed line as rendered by the CLI, Date just its leading date.
type ListingRecord struct {
	Date    string `json:"date" yaml:"date"`
	Display string `json:"display" yaml:"display"`
}

// SearchRecord is one grep-style hit from the search report.
type SearchRecord struct {
	File    string `json:"file" yaml:"file"`
	Line    int    `json:"line" yaml:"line"`
	Display string `json:"display" yaml:"display"`
}

var (
	listingRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	searchRe  = regexp.MustCompile(`^(.+?):(-?\d+):(.*)$`)
)

// ParseListing extracts dated records from listing output. Lines that
// do not begin with a date, warnings and blanks included, are skipped.
// Record order follows line order.
func ParseListing(r io.Reader) ([]ListingRecord, error) {
	var records []ListingRecord
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !listingRe.MatchString(line) {
			continue
		}
		records = append(records, ListingRecord{
			Date:    line[:len("2006-01-02")],
			Display: line,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// ParseSearch extracts file:line:text hits from search output. A
// single leading space is stripped from the matched text, matching the
// padding the search report emits. Non-matching lines are skipped.
func ParseSearch(r io.Reader) ([]SearchRecord, error) {
	var records []SearchRecord
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		m := searchRe.FindStringSubmatch(sc.Text())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		records = append(records, SearchRecord{
			File:    m[1],
			Line:    n,
			Display: strings.TrimPrefix(m[3], " "),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
