package main

import (
	"os"

	"github.com/fd0/pdfsearch/library"
)

func defaultLibraryDir() string {
	if dir := os.Getenv("PDFSEARCH_LIBRARY_DIR"); dir != "" {
		return dir
	}

	return library.DefaultDir()
}

// loadLibrary returns the library from the config file filename, or the
// built-in library in dir if filename is empty.
func loadLibrary(filename, dir string) (*library.Library, error) {
	if filename == "" {
		return library.Default(dir), nil
	}

	return library.Load(filename)
}
