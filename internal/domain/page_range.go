package domain

import (
	"sort"
	"strconv"
	"strings"
)

// pageInterval is the half-open run of zero-based pages [from, to).
type pageInterval struct {
	from, to int
}

// ParsePageRange converts a one-based range spec such as "1-3,5" into an
// ascending, deduplicated list of zero-based page indices.
//
// The result is not bounded by any document: "0" yields -1 and "9" yields 8
// whatever the page count. Use ResolvePageRange when the page count is known.
// A range whose start exceeds its end contributes nothing.
func ParsePageRange(text string) ([]int, error) {
	intervals, err := parsePageIntervals(text)
	if err != nil {
		return nil, err
	}

	set := make(map[int]struct{})
	for _, iv := range intervals {
		for p := iv.from; p < iv.to; p++ {
			set[p] = struct{}{}
		}
	}

	pages := make([]int, 0, len(set))
	for p := range set {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages, nil
}

// ResolvePageRange parses text and keeps the pages inside [0, total), in
// ascending order. It equals ClampPages(ParsePageRange(text), total) but
// never expands pages the document does not have.
func ResolvePageRange(text string, total int) ([]int, error) {
	intervals, err := parsePageIntervals(text)
	if err != nil {
		return nil, err
	}
	if total <= 0 {
		return []int{}, nil
	}

	selected := make([]bool, total)
	for _, iv := range intervals {
		from, to := max(iv.from, 0), min(iv.to, total)
		for p := from; p < to; p++ {
			selected[p] = true
		}
	}

	pages := []int{}
	for p, ok := range selected {
		if ok {
			pages = append(pages, p)
		}
	}
	return pages, nil
}

func parsePageIntervals(text string) ([]pageInterval, error) {
	parts := strings.Split(text, ",")
	intervals := make([]pageInterval, 0, len(parts))

	for _, part := range parts {
		if strings.Contains(part, "-") {
			bounds := strings.Split(part, "-")
			if len(bounds) != 2 {
				return nil, &ParseError{Text: text, Token: part}
			}
			from, err := parsePageNumber(bounds[0])
			if err != nil {
				return nil, &ParseError{Text: text, Token: part, Err: err}
			}
			to, err := parsePageNumber(bounds[1])
			if err != nil {
				return nil, &ParseError{Text: text, Token: part, Err: err}
			}
			if from <= to {
				intervals = append(intervals, pageInterval{from: from - 1, to: to})
			}
			continue
		}

		page, err := parsePageNumber(part)
		if err != nil {
			return nil, &ParseError{Text: text, Token: part, Err: err}
		}
		intervals = append(intervals, pageInterval{from: page - 1, to: page})
	}
	return intervals, nil
}

// surrounding blanks are tolerated, anything else must be a plain integer
func parsePageNumber(token string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(token))
}

// ClampPages keeps the indices that fall inside [0, total), in order.
func ClampPages(pages []int, total int) []int {
	kept := make([]int, 0, len(pages))
	for _, p := range pages {
		if p >= 0 && p < total {
			kept = append(kept, p)
		}
	}
	return kept
}

// AllPages returns 0..total-1.
func AllPages(total int) []int {
	if total <= 0 {
		return []int{}
	}
	pages := make([]int, total)
	for i := range pages {
		pages[i] = i
	}
	return pages
}
