package domain

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// SplitMode selects how a document is partitioned.
type SplitMode string

const (
	SplitEachPage    SplitMode = "each-page"
	SplitEveryNPages SplitMode = "every-n-pages"
)

// SplitRequest describes one split attempt. N is the raw user input and is
// only read in SplitEveryNPages mode.
type SplitRequest struct {
	SourcePath   string    `json:"source"`
	Mode         SplitMode `json:"mode"`
	N            string    `json:"n,omitempty"`
	OutputFolder string    `json:"folder"`
}

// GroupSize validates the request and returns the number of pages per output.
func (r SplitRequest) GroupSize() (int, error) {
	var missing []string
	if strings.TrimSpace(r.SourcePath) == "" {
		missing = append(missing, "source")
	}
	if strings.TrimSpace(r.OutputFolder) == "" {
		missing = append(missing, "folder")
	}
	if len(missing) > 0 {
		return 0, &MissingInputError{Fields: missing}
	}

	switch r.Mode {
	case SplitEachPage:
		return 1, nil
	case SplitEveryNPages:
		n, err := strconv.Atoi(strings.TrimSpace(r.N))
		if err != nil {
			return 0, &InvalidParameterError{Param: "n", Value: r.N, Message: "not a number"}
		}
		if n <= 0 {
			return 0, &InvalidParameterError{Param: "n", Value: r.N, Message: "must be positive"}
		}
		return n, nil
	default:
		return 0, &InvalidParameterError{Param: "mode", Value: string(r.Mode)}
	}
}

// SplitGroup is a contiguous run of zero-based pages [Start, End).
type SplitGroup struct {
	Index int
	Start int
	End   int
}

// Pages lists the page indices of the group.
func (g SplitGroup) Pages() []int {
	pages := make([]int, 0, g.End-g.Start)
	for p := g.Start; p < g.End; p++ {
		pages = append(pages, p)
	}
	return pages
}

// PartitionPages cuts 0..total-1 into groups of size pages; the last group may
// be shorter. Group indexes are one-based.
func PartitionPages(total, size int) []SplitGroup {
	if total <= 0 || size <= 0 {
		return nil
	}
	groups := make([]SplitGroup, 0, (total+size-1)/size)
	for start := 0; start < total; start += size {
		end := start + size
		if end > total {
			end = total
		}
		groups = append(groups, SplitGroup{Index: start/size + 1, Start: start, End: end})
	}
	return groups
}

// OutputName returns the file name of group g for a source named base.
func (m SplitMode) OutputName(base string, g SplitGroup) string {
	if m == SplitEachPage {
		return fmt.Sprintf("%s_page_%d.pdf", base, g.Start+1)
	}
	return fmt.Sprintf("%s_part_%d.pdf", base, g.Index)
}

// SplitResult lists the files written by a split, in page order.
type SplitResult struct {
	SourcePath string   `json:"source"`
	PageCount  int      `json:"page_count"`
	Files      []string `json:"files"`
}

// Count returns the number of files written.
func (r *SplitResult) Count() int {
	return len(r.Files)
}

// SplitService splits one document into several.
type SplitService interface {
	Split(ctx context.Context, req SplitRequest) (*SplitResult, error)
}
