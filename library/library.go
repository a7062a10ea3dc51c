package library

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	ErrUnknownKey   = errors.New("unknown library key")
	ErrUnknownAlias = errors.New("unknown alias")
)

// Entry is a single document in the library.
type Entry struct {
	Key  string `yaml:"key"`
	Path string `yaml:"path"`
}

// Library maps keys and aliases to PDF files. It is not modified after it has
// been constructed.
type Library struct {
	entries []Entry
	index   map[string]int
	aliases map[string]string

	log logrus.FieldLogger
}

// New returns a library for entries and aliases. Relative entry paths are
// joined onto dir. Alias names are matched case-insensitively.
func New(dir string, entries []Entry, aliases map[string]string) (*Library, error) {
	lib := &Library{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
		aliases: make(map[string]string, len(aliases)),
		log:     logrus.StandardLogger(),
	}

	for _, e := range entries {
		if e.Key == "" {
			return nil, fmt.Errorf("document with path %q has no key", e.Path)
		}

		if e.Path == "" {
			return nil, fmt.Errorf("document %q has no path", e.Key)
		}

		if _, ok := lib.index[e.Key]; ok {
			return nil, fmt.Errorf("duplicate document key %q", e.Key)
		}

		if dir != "" && !filepath.IsAbs(e.Path) {
			e.Path = filepath.Join(dir, e.Path)
		}

		lib.index[e.Key] = len(lib.entries)
		lib.entries = append(lib.entries, e)
	}

	for alias, key := range aliases {
		if _, ok := lib.index[key]; !ok {
			return nil, fmt.Errorf("alias %q: %w %q", alias, ErrUnknownKey, key)
		}

		lib.aliases[strings.ToLower(alias)] = key
	}

	return lib, nil
}

// SetLogger updates the logger to use.
func (lib *Library) SetLogger(logger logrus.FieldLogger) {
	lib.log = logger.WithField("component", "library")
}

// Entries returns the documents in configuration order.
func (lib *Library) Entries() []Entry {
	res := make([]Entry, len(lib.entries))
	copy(res, lib.entries)

	return res
}

// Lookup returns the path for key.
func (lib *Library) Lookup(key string) (string, error) {
	i, ok := lib.index[key]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownKey, key)
	}

	return lib.entries[i].Path, nil
}

// ResolveAlias returns the key an alias refers to.
func (lib *Library) ResolveAlias(alias string) (string, error) {
	key, ok := lib.aliases[strings.ToLower(alias)]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownAlias, alias)
	}

	return key, nil
}

// Resolve finds the file for an identifier. An explicit path takes precedence
// over a key, which takes precedence over an alias. Empty values are ignored.
// If the identifier that was given is unknown, ok is false.
func (lib *Library) Resolve(path, key, alias string) (filename string, ok bool) {
	switch {
	case path != "":
		return path, true

	case key != "":
		filename, err := lib.Lookup(key)
		if err != nil {
			lib.log.Debug(err)

			return "", false
		}

		return filename, true

	case alias != "":
		key, err := lib.ResolveAlias(alias)
		if err != nil {
			lib.log.Debug(err)

			return "", false
		}

		lib.log.WithField("alias", alias).Debugf("resolved to key %v", key)

		filename, err := lib.Lookup(key)
		if err != nil {
			return "", false
		}

		return filename, true
	}

	return "", false
}

// List writes one "key: path" line per document.
func (lib *Library) List(wr io.Writer) error {
	for _, e := range lib.entries {
		_, err := fmt.Fprintf(wr, "%v: %v\n", e.Key, e.Path)
		if err != nil {
			return fmt.Errorf("write library list failed: %w", err)
		}
	}

	return nil
}
