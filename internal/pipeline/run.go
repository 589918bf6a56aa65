// Package pipeline converts a directory of text files into a single file of
// whitespace-joined tokens, one output line per input line.
package pipeline

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/example/go-linetok/internal/tokenizer"
)

// Options configures a Run.
type Options struct {
	InputDir   string
	OutputPath string
	// Suffix selects input files by name; empty means ".txt".
	Suffix    string
	SortFiles bool
	// Workers > 1 tokenizes that many files concurrently. Output order is
	// unchanged: files in enumeration order, lines in file order.
	Workers int
	// SkipFailedFiles logs and skips files whose read or tokenization fails
	// instead of aborting the run. Output write failures always abort.
	SkipFailedFiles bool
	Stream          StreamOptions
	// Progress receives human-readable status lines. Nil discards them.
	Progress io.Writer
}

// Result summarizes a Run.
type Result struct {
	// Files lists the input files whose lines reached the output.
	Files []string
	// Skipped lists input files dropped under SkipFailedFiles.
	Skipped []string
	// Lines is the number of output lines written.
	Lines      int
	OutputPath string
	// NoInput is set when no input file was found; no output is written then.
	NoInput bool
}

type fileResult struct {
	buf   *bytes.Buffer
	lines int
	err   error
}

// Run enumerates the input files, tokenizes every line of every file with
// tok and writes the results to a single output file created fresh for the
// run. A missing input directory or one without matching files is not an
// error: Run reports it on Progress and returns a Result with NoInput set.
func Run(ctx context.Context, tok tokenizer.Tokenizer, opts Options) (res Result, err error) {
	if opts.Suffix == "" {
		opts.Suffix = ".txt"
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Progress == nil {
		opts.Progress = io.Discard
	}

	files, listErr := ListInputs(opts.InputDir, opts.Suffix, opts.SortFiles)
	if listErr != nil {
		slog.Warn("input directory not readable", "dir", opts.InputDir, "error", listErr)
	}
	if len(files) == 0 {
		fmt.Fprintf(opts.Progress, "no input files found in %s\n", opts.InputDir)
		return Result{NoInput: true, OutputPath: opts.OutputPath}, nil
	}

	out, err := os.Create(opts.OutputPath)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrOutputWrite, err)
	}

	bw := bufio.NewWriter(out)
	defer func() {
		flushErr := bw.Flush()
		closeErr := out.Close()
		if err != nil {
			return
		}
		if flushErr != nil {
			err = fmt.Errorf("%w: flush %s: %w", ErrOutputWrite, opts.OutputPath, flushErr)
		} else if closeErr != nil {
			err = fmt.Errorf("%w: close %s: %w", ErrOutputWrite, opts.OutputPath, closeErr)
		}
	}()

	res.OutputPath = opts.OutputPath

	if opts.Workers > 1 && len(files) > 1 {
		err = runConcurrent(ctx, tok, files, opts, bw, &res)
	} else {
		err = runSequential(ctx, tok, files, opts, bw, &res)
	}
	if err != nil {
		return res, err
	}

	slog.Info("tokenization complete",
		"files", len(res.Files),
		"skipped", len(res.Skipped),
		"lines", res.Lines,
		"output", opts.OutputPath,
	)
	fmt.Fprintf(opts.Progress, "processing complete, tokens written to: %s\n", opts.OutputPath)

	return res, nil
}

func runSequential(ctx context.Context, tok tokenizer.Tokenizer, files []string, opts Options, w io.Writer, res *Result) error {
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintf(opts.Progress, "processing file: %s\n", filepath.Base(path))

		if !opts.SkipFailedFiles {
			n, err := tokenizeFile(ctx, tok, path, w, opts.Stream)
			if err != nil {
				return err
			}
			record(res, path, n)
			continue
		}

		var buf bytes.Buffer
		n, err := tokenizeFile(ctx, tok, path, &buf, opts.Stream)
		if err := emit(res, path, fileResult{buf: &buf, lines: n, err: err}, w, true); err != nil {
			return err
		}
	}
	return nil
}

// runConcurrent tokenizes up to opts.Workers files at once into per-file
// buffers while a single writer drains the buffers in enumeration order.
func runConcurrent(ctx context.Context, tok tokenizer.Tokenizer, files []string, opts Options, w io.Writer, res *Result) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]chan fileResult, len(files))
	for i := range results {
		results[i] = make(chan fileResult, 1)
	}

	var writeErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i, path := range files {
			var r fileResult
			select {
			case r = <-results[i]:
			case <-ctx.Done():
				writeErr = ctx.Err()
				return
			}

			fmt.Fprintf(opts.Progress, "processing file: %s\n", filepath.Base(path))
			if err := emit(res, path, r, w, opts.SkipFailedFiles); err != nil {
				writeErr = err
				cancel()
				return
			}
		}
	}()

	var g errgroup.Group
	g.SetLimit(opts.Workers)
	for i, path := range files {
		if ctx.Err() != nil {
			break
		}
		i, path := i, path
		g.Go(func() error {
			var buf bytes.Buffer
			n, err := tokenizeFile(ctx, tok, path, &buf, opts.Stream)
			results[i] <- fileResult{buf: &buf, lines: n, err: err}
			return nil
		})
	}
	_ = g.Wait()
	<-done

	return writeErr
}

// emit copies a buffered file result to w, or records the file as skipped
// when skip is set and its failure is confined to that file.
func emit(res *Result, path string, r fileResult, w io.Writer, skip bool) error {
	if r.err != nil {
		if errors.Is(r.err, context.Canceled) || errors.Is(r.err, context.DeadlineExceeded) {
			return r.err
		}
		if !skip || !isolatable(r.err) {
			return r.err
		}
		slog.Warn("skipping input file", "file", path, "error", r.err)
		res.Skipped = append(res.Skipped, path)
		return nil
	}

	if _, err := r.buf.WriteTo(w); err != nil {
		return fmt.Errorf("%w: %w", ErrOutputWrite, err)
	}
	record(res, path, r.lines)
	return nil
}

func record(res *Result, path string, lines int) {
	res.Files = append(res.Files, path)
	res.Lines += lines
	slog.Debug("file tokenized", "file", path, "lines", lines)
}
