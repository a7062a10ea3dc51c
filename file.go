package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fd0/pdfsearch/extract"
	"github.com/fd0/pdfsearch/search"
	"github.com/sirupsen/logrus"
)

var errFileNotFound = errors.New("file not found")

// CheckFile ensures that filename exists and is not a directory.
func CheckFile(filename string) error {
	fi, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("accessing %v: %w: %v", filename, errFileNotFound, err)
	}

	if fi.IsDir() {
		return fmt.Errorf("%v is a directory", filename)
	}

	return nil
}

// searchFile opens filename, prints its page count and runs the queries in
// opts against it.
func searchFile(ctx context.Context, log logrus.FieldLogger, out io.Writer, enc *search.Encoder, filename string, opts options) (err error) {
	err = CheckFile(filename)
	if err != nil {
		return err
	}

	doc, err := extract.Open(filename, log)
	if err != nil {
		return err
	}

	defer func() {
		cerr := doc.Close()
		if err == nil {
			err = cerr
		}
	}()

	_, err = fmt.Fprintf(out, "%s\nPages: %d\n", enc.Encode("File: "+filename), doc.NumPages())
	if err != nil {
		return fmt.Errorf("write output failed: %w", err)
	}

	if len(opts.Queries) == 0 {
		return nil
	}

	pages, err := search.ParsePages(opts.Pages, doc.NumPages())
	if err != nil {
		return err
	}

	log.WithField("filename", filename).Debugf("scan %d pages for %q", len(pages), opts.Queries)

	scanner := &search.Scanner{
		Context: opts.Context,
		MaxHits: opts.MaxHits,
		Out:     out,
		Encoder: enc,
	}
	scanner.SetLogger(log)

	_, err = scanner.Scan(ctx, doc, pages, search.FoldQueries(opts.Queries))
	if err != nil {
		return fmt.Errorf("scan %v failed: %w", filename, err)
	}

	return nil
}
