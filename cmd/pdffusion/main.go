package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"pdf-fusion/internal/config"
	"pdf-fusion/internal/domain"
	apperrors "pdf-fusion/pkg/errors"
	"pdf-fusion/pkg/logger"

	"github.com/joho/godotenv"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// rangeSeparator splits a positional merge argument into path and page range
const rangeSeparator = "::"

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return exitUsage
	}

	cfg := config.NewConfig()
	container := config.NewContainerWithConfig(cfg, logger.NewLoggerWithWriter(cfg.GetLogLevel(), stderr))

	switch args[0] {
	case "merge":
		return runMerge(ctx, container, args[1:], stdout, stderr)
	case "split":
		return runSplit(ctx, container, args[1:], stdout, stderr)
	case "-h", "-help", "--help", "help":
		usage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		usage(stderr)
		return exitUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage:")
	fmt.Fprintln(w, "  pdffusion merge -name NAME -folder DIR [-dir SCAN] FILE[::RANGE] ...")
	fmt.Fprintln(w, "  pdffusion split -mode each-page|every-n-pages [-n N] -folder DIR SOURCE")
}

func runMerge(ctx context.Context, c *config.Container, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("merge", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		name   = fs.String("name", "", "output file name; .pdf is appended when missing")
		folder = fs.String("folder", "", "output folder, created when missing")
		scan   = fs.String("dir", "", "also add every PDF directly inside this folder")
	)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	selection := domain.NewSelection()
	for _, arg := range fs.Args() {
		path, spec, hasRange := parseSourceArg(arg)
		if path == "" {
			continue
		}
		selection.Add(path)
		if hasRange {
			_ = selection.SetRange(path, spec)
		}
	}
	if dir := strings.TrimSpace(*scan); dir != "" {
		if _, err := selection.AddFolder(dir); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return exitError
		}
	}

	result, err := c.MergeService.Merge(ctx, domain.MergeRequest{
		Files:        selection.Files(),
		OutputName:   *name,
		OutputFolder: *folder,
	})
	if err != nil {
		return report(stderr, err)
	}

	fmt.Fprintf(stdout, "Merged %d pages into %s\n", result.PageCount, result.OutputPath)
	for _, f := range result.Files {
		fmt.Fprintf(stdout, " - %s (%d of %d pages)\n", f.Path, f.Pages, f.PageCount)
	}
	if result.RemoteURL != "" {
		fmt.Fprintf(stdout, "Uploaded to %s\n", result.RemoteURL)
	}
	return exitOK
}

func runSplit(ctx context.Context, c *config.Container, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("split", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		mode   = fs.String("mode", string(domain.SplitEachPage), "each-page or every-n-pages")
		n      = fs.String("n", "", "pages per output file in every-n-pages mode")
		folder = fs.String("folder", "", "output folder, created when missing")
	)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(stderr, "split takes a single source document")
		return exitUsage
	}

	result, err := c.SplitService.Split(ctx, domain.SplitRequest{
		SourcePath:   fs.Arg(0),
		Mode:         domain.SplitMode(*mode),
		N:            *n,
		OutputFolder: *folder,
	})
	if result != nil {
		for _, path := range result.Files {
			fmt.Fprintln(stdout, path)
		}
	}
	if err != nil {
		return report(stderr, err)
	}

	fmt.Fprintf(stdout, "Split %d pages into %d files\n", result.PageCount, result.Count())
	return exitOK
}

// report prints err the way the HTTP API classifies it. Warnings exit 0.
func report(stderr io.Writer, err error) int {
	appErr := apperrors.Classify(err)
	if appErr.IsWarning() {
		fmt.Fprintf(stderr, "warning: %s\n", appErr.Message)
		return exitOK
	}
	if appErr.Details != "" {
		fmt.Fprintf(stderr, "error: %s (%s)\n", appErr.Message, appErr.Details)
	} else {
		fmt.Fprintf(stderr, "error: %s\n", appErr.Message)
	}
	return exitError
}

// parseSourceArg splits "a.pdf::1-3,5" into its path and range spec
func parseSourceArg(arg string) (path, spec string, hasRange bool) {
	path, spec, hasRange = strings.Cut(arg, rangeSeparator)
	return strings.TrimSpace(path), spec, hasRange
}
