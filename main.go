package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fd0/pdfsearch/search"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

const (
	exitOK       = 0
	exitError    = 1
	exitNotFound = 2
)

type options struct {
	List    bool
	ID      string
	Alias   string
	Path    string
	Queries []string
	Pages   string
	MaxHits int
	Context int

	Config     string
	LibraryDir string
	Encoding   string
	Verbose    bool
}

func newFlagSet(opts *options) *pflag.FlagSet {
	fs := pflag.NewFlagSet("pdfsearch", pflag.ContinueOnError)
	fs.BoolVar(&opts.List, "list", false, "list library keys and paths")
	fs.StringVar(&opts.ID, "id", "", "library `key` (use --list)")
	fs.StringVar(&opts.Alias, "alias", "", "alias such as crb, quickstart, bounty")
	fs.StringVar(&opts.Path, "path", "", "explicit PDF `file`")
	fs.StringArrayVar(&opts.Queries, "query", nil, "search `string` (can be repeated)")
	fs.StringVar(&opts.Pages, "pages", "", "page `range` like 1-5,10,12-14 (1-based)")
	fs.IntVar(&opts.MaxHits, "max-hits", search.DefaultMaxHits, "stop after `n` hits")
	fs.IntVar(&opts.Context, "context", search.DefaultContext, "`n` characters of context on each side")

	fs.StringVar(&opts.Config, "config", os.Getenv("PDFSEARCH_CONFIG"), "load library from YAML `file`")
	fs.StringVar(&opts.LibraryDir, "library-dir", defaultLibraryDir(), "`directory` of the built-in library")
	fs.StringVar(&opts.Encoding, "encoding", "utf-8", "output character set")
	fs.BoolVar(&opts.Verbose, "verbose", false, "print verbose messages")

	return fs
}

func (opts options) check() error {
	if opts.MaxHits < 1 {
		return fmt.Errorf("--max-hits must be at least 1, got %d", opts.MaxHits)
	}

	if opts.Context < 0 {
		return fmt.Errorf("--context must not be negative, got %d", opts.Context)
	}

	return nil
}

func newLogger(wr io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(wr)
	logger.SetLevel(logrus.WarnLevel)

	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	return logger
}

// setupRootContext creates a root context that is cancelled when SIGINT is
// received, tied to a new errgroup.Group. The returned cancel() function
// cancels the outermost context.
func setupRootContext() (wg *errgroup.Group, ctx context.Context, cancel func()) {
	// create new root context, cancel on SIGINT
	ctx, cancel = context.WithCancel(context.Background())

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)

	go func() {
		select {
		case <-ch:
			cancel()
		case <-ctx.Done():
		}
	}()

	// couple this context with an errgroup
	wg, ctx = errgroup.WithContext(ctx)

	return wg, ctx, cancel
}

func main() {
	// settings may also come from a .env file, which is optional
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: load .env: %v\n", err)
	}

	wg, ctx, cancel := setupRootContext()

	code := exitOK

	wg.Go(func() error {
		var err error
		code, err = run(ctx, os.Args[1:], os.Stdout, os.Stderr)

		return err
	})

	err = wg.Wait()

	cancel()

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitError)
	}

	os.Exit(code)
}

// run executes the command line args and returns the exit code. Errors are
// returned with exitError and printed by the caller.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) (int, error) {
	var opts options

	fs := newFlagSet(&opts)
	fs.SetOutput(stderr)

	err := fs.Parse(args)
	if errors.Is(err, pflag.ErrHelp) {
		return exitOK, nil
	}

	if err != nil {
		return exitError, err
	}

	if fs.NArg() > 0 {
		return exitError, fmt.Errorf("unexpected arguments %q, use --query to search", fs.Args())
	}

	err = opts.check()
	if err != nil {
		return exitError, err
	}

	log := newLogger(stderr, opts.Verbose)

	lib, err := loadLibrary(opts.Config, opts.LibraryDir)
	if err != nil {
		return exitError, err
	}

	lib.SetLogger(log)

	if opts.List {
		err = lib.List(stdout)
		if err != nil {
			return exitError, err
		}

		return exitOK, nil
	}

	enc, err := search.NewEncoder(opts.Encoding)
	if err != nil {
		return exitError, err
	}

	filename, ok := lib.Resolve(opts.Path, opts.ID, opts.Alias)
	if !ok {
		fmt.Fprintln(stdout, "Provide --path, --id, or --alias. Use --list to see library keys.")

		return exitNotFound, nil
	}

	err = searchFile(ctx, log, stdout, enc, filename, opts)
	if errors.Is(err, errFileNotFound) {
		fmt.Fprintln(stdout, enc.Encode("File not found: "+filename))

		return exitNotFound, nil
	}

	if err != nil {
		return exitError, err
	}

	return exitOK, nil
}
