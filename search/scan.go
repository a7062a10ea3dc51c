package search

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// NoHitsMessage is printed when a scan did not find anything.
const NoHitsMessage = "No hits found. Try a shorter query, a different term, or limit pages."

const (
	DefaultMaxHits = 8
	DefaultContext = 90
)

// Document is the source of text for a scan.
type Document interface {
	// NumPages returns the number of pages.
	NumPages() int

	// PageText returns the text on the zero-based page i, or the empty string
	// if there is none or it cannot be extracted.
	PageText(i int) string
}

// Hit is a match of a query on a page. Page is zero-based.
type Hit struct {
	Page    int
	Query   string
	Snippet string
}

func (h Hit) String() string {
	return fmt.Sprintf("Page %d | %s | %s", h.Page+1, h.Query, h.Snippet)
}

// Scanner searches documents and prints hits to Out.
type Scanner struct {
	// Context is the number of characters printed on each side of a match.
	Context int

	// MaxHits is the number of hits after which the scan stops.
	MaxHits int

	Out     io.Writer
	Encoder *Encoder

	// OnHit is called for each hit after it has been printed.
	OnHit func(Hit)

	log logrus.FieldLogger
}

// SetLogger updates the logger to use.
func (s *Scanner) SetLogger(logger logrus.FieldLogger) {
	s.log = logger.WithField("component", "scanner")
}

func (s *Scanner) println(line string) error {
	_, err := fmt.Fprintln(s.Out, s.Encoder.Encode(line))
	if err != nil {
		return fmt.Errorf("write output failed: %w", err)
	}

	return nil
}

// Scan searches the pages of doc for each query in turn. Only the first match
// of a query on a page is reported. The scan stops when MaxHits hits have been
// printed or ctx is cancelled. If nothing is found, NoHitsMessage is printed.
// The number of hits is returned.
func (s *Scanner) Scan(ctx context.Context, doc Document, pages []int, queries []string) (int, error) {
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}

	folded := make([][]rune, 0, len(queries))
	for _, q := range queries {
		folded = append(folded, []rune(Fold(q)))
	}

	hits := 0

	for _, i := range pages {
		select {
		case <-ctx.Done():
			return hits, ctx.Err()
		default:
		}

		text := doc.PageText(i)
		if text == "" {
			s.log.Debugf("page %d has no text", i+1)

			continue
		}

		runes := []rune(text)
		lower := foldRunes(runes)

		for _, q := range folded {
			pos := index(lower, q)
			if pos < 0 {
				continue
			}

			hit := Hit{
				Page:    i,
				Query:   string(q),
				Snippet: Snippet(runes, pos, len(q), s.Context),
			}

			err := s.println(hit.String())
			if err != nil {
				return hits, err
			}

			if s.OnHit != nil {
				s.OnHit(hit)
			}

			hits++
			if hits >= s.MaxHits {
				s.log.Debugf("stop after %d hits", hits)

				return hits, nil
			}
		}
	}

	if hits == 0 {
		err := s.println(NoHitsMessage)
		if err != nil {
			return 0, err
		}
	}

	return hits, nil
}
