package search

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// Replacement is written for characters the output encoding cannot represent.
const Replacement = '?'

// Encoder converts output lines to a character set.
type Encoder struct {
	enc  encoding.Encoding
	name string
}

// NewEncoder returns an Encoder for the character set name, e.g. "utf-8" or
// "windows-1252".
func NewEncoder(name string) (*Encoder, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("output encoding %q: %w", name, err)
	}

	canonical, err := htmlindex.Name(enc)
	if err != nil {
		canonical = name
	}

	return &Encoder{enc: enc, name: canonical}, nil
}

func (e *Encoder) String() string {
	if e == nil {
		return "utf-8"
	}

	return e.name
}

// Encode converts s to the character set. Invalid UTF-8 in s is replaced with
// U+FFFD first, characters without a representation are replaced with
// Replacement. A nil Encoder produces UTF-8.
func (e *Encoder) Encode(s string) string {
	s = strings.ToValidUTF8(s, "\uFFFD")

	if e == nil || e.enc == unicode.UTF8 {
		return s
	}

	enc := e.enc.NewEncoder()

	var sb strings.Builder

	for _, r := range s {
		b, err := enc.String(string(r))
		if err != nil {
			sb.WriteRune(Replacement)

			continue
		}

		sb.WriteString(b)
	}

	return sb.String()
}
