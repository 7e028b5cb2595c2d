package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestPartitionPages(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		size      int
		wantSizes []int
	}{
		{name: "each page", total: 5, size: 1, wantSizes: []int{1, 1, 1, 1, 1}},
		{name: "pairs with remainder", total: 5, size: 2, wantSizes: []int{2, 2, 1}},
		{name: "exact multiple", total: 6, size: 3, wantSizes: []int{3, 3}},
		{name: "group larger than document", total: 2, size: 10, wantSizes: []int{2}},
		{name: "empty document", total: 0, size: 2, wantSizes: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups := PartitionPages(tt.total, tt.size)
			var sizes []int
			next := 0
			for i, g := range groups {
				sizes = append(sizes, g.End-g.Start)
				if g.Start != next {
					t.Errorf("group %d starts at %d, want %d", i, g.Start, next)
				}
				if g.Index != i+1 {
					t.Errorf("group %d has index %d", i, g.Index)
				}
				next = g.End
			}
			if !reflect.DeepEqual(sizes, tt.wantSizes) {
				t.Fatalf("sizes %v, want %v", sizes, tt.wantSizes)
			}
			if tt.total > 0 && next != tt.total {
				t.Fatalf("groups cover %d pages, want %d", next, tt.total)
			}
		})
	}
}

func TestSplitGroup_Pages(t *testing.T) {
	g := SplitGroup{Index: 2, Start: 2, End: 4}
	if got := g.Pages(); !reflect.DeepEqual(got, []int{2, 3}) {
		t.Fatalf("Pages() = %v", got)
	}
}

func TestSplitMode_OutputName(t *testing.T) {
	g := SplitGroup{Index: 3, Start: 4, End: 6}
	if got := SplitEachPage.OutputName("report", SplitGroup{Index: 5, Start: 4, End: 5}); got != "report_page_5.pdf" {
		t.Errorf("each-page name = %q", got)
	}
	if got := SplitEveryNPages.OutputName("report", g); got != "report_part_3.pdf" {
		t.Errorf("every-n name = %q", got)
	}
}

func TestSplitRequest_GroupSize(t *testing.T) {
	tests := []struct {
		name      string
		req       SplitRequest
		want      int
		wantParam string
		missing   bool
	}{
		{name: "each page", req: SplitRequest{SourcePath: "a.pdf", Mode: SplitEachPage, OutputFolder: "out"}, want: 1},
		{name: "each page ignores n", req: SplitRequest{SourcePath: "a.pdf", Mode: SplitEachPage, N: "x", OutputFolder: "out"}, want: 1},
		{name: "every n", req: SplitRequest{SourcePath: "a.pdf", Mode: SplitEveryNPages, N: " 3 ", OutputFolder: "out"}, want: 3},
		{name: "n not a number", req: SplitRequest{SourcePath: "a.pdf", Mode: SplitEveryNPages, N: "two", OutputFolder: "out"}, wantParam: "n"},
		{name: "n empty", req: SplitRequest{SourcePath: "a.pdf", Mode: SplitEveryNPages, OutputFolder: "out"}, wantParam: "n"},
		{name: "n zero", req: SplitRequest{SourcePath: "a.pdf", Mode: SplitEveryNPages, N: "0", OutputFolder: "out"}, wantParam: "n"},
		{name: "n negative", req: SplitRequest{SourcePath: "a.pdf", Mode: SplitEveryNPages, N: "-2", OutputFolder: "out"}, wantParam: "n"},
		{name: "unknown mode", req: SplitRequest{SourcePath: "a.pdf", Mode: "halves", OutputFolder: "out"}, wantParam: "mode"},
		{name: "missing source", req: SplitRequest{Mode: SplitEachPage, OutputFolder: "out"}, missing: true},
		{name: "missing folder", req: SplitRequest{SourcePath: "a.pdf", Mode: SplitEachPage, OutputFolder: "  "}, missing: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.req.GroupSize()
			switch {
			case tt.missing:
				var missingErr *MissingInputError
				if !errors.As(err, &missingErr) {
					t.Fatalf("expected MissingInputError, got %v", err)
				}
			case tt.wantParam != "":
				var paramErr *InvalidParameterError
				if !errors.As(err, &paramErr) {
					t.Fatalf("expected InvalidParameterError, got %v", err)
				}
				if paramErr.Param != tt.wantParam {
					t.Fatalf("expected param %q, got %q", tt.wantParam, paramErr.Param)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got != tt.want {
					t.Fatalf("GroupSize() = %d, want %d", got, tt.want)
				}
			}
		})
	}
}
