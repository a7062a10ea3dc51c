package search

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParsePages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expr  string
		total int
		pages []int
		err   bool
	}{
		{expr: "1-3,5", total: 10, pages: []int{0, 1, 2, 4}},
		{expr: "20", total: 5, pages: []int{}},
		{expr: "", total: 4, pages: []int{0, 1, 2, 3}},
		{expr: "", total: 0, pages: []int{}},
		{expr: "  ", total: 2, pages: []int{0, 1}},
		{expr: "5,1-3,2", total: 10, pages: []int{0, 1, 2, 4}},
		{expr: " 2 - 4 , 9 ", total: 10, pages: []int{1, 2, 3, 8}},
		{expr: "3-1", total: 10, pages: []int{}},
		{expr: "0,1", total: 10, pages: []int{0}},
		{expr: "4-1000000000", total: 6, pages: []int{3, 4, 5}},
		{expr: ",,", total: 3, pages: []int{}},
		{expr: "a", total: 3, err: true},
		{expr: "1-x", total: 3, err: true},
		{expr: "-3", total: 3, err: true},
		{expr: "1,2.5", total: 3, err: true},
	}

	for _, test := range tests {
		// create local copy of test
		test := test

		t.Run(test.expr, func(t *testing.T) {
			t.Parallel()

			pages, err := ParsePages(test.expr, test.total)
			if test.err {
				if err == nil {
					t.Fatal("expected error not found")
				}

				return
			}

			if err != nil {
				t.Fatal(err)
			}

			if !reflect.DeepEqual(pages, test.pages) {
				t.Errorf("wrong pages, want %v, got %v", test.pages, pages)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, out string
	}{
		{"foo", "foo"},
		{"  foo  bar ", "foo bar"},
		{"foo\n\nbar\t\tbaz\r\n", "foo bar baz"},
		{"\n \t", ""},
		{"a  b", "a b"},
	}

	for _, test := range tests {
		out := Normalize(test.in)
		if out != test.out {
			t.Errorf("Normalize(%q): want %q, got %q", test.in, test.out, out)
		}

		// normalizing twice must not change anything
		if again := Normalize(out); again != out {
			t.Errorf("Normalize is not idempotent for %q: %q != %q", test.in, again, out)
		}
	}
}

func TestSnippet(t *testing.T) {
	t.Parallel()

	text := []rune("0123456789 combat\n\nrules abcdefghij")
	pos := index(foldRunes(text), []rune("combat"))

	if pos != 11 {
		t.Fatalf("wrong position, want 11, got %d", pos)
	}

	tests := []struct {
		context int
		want    string
	}{
		{0, "combat"},
		{3, "89 combat r"},
		{1000, "0123456789 combat rules abcdefghij"},
	}

	for _, test := range tests {
		got := Snippet(text, pos, len("combat"), test.context)
		if got != test.want {
			t.Errorf("context %d: want %q, got %q", test.context, test.want, got)
		}
	}
}

func TestIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		s, sub string
		pos    int
	}{
		{"foobar", "bar", 3},
		{"foobar", "baz", -1},
		{"foo", "", 0},
		{"", "a", -1},
		{"ab", "abc", -1},
		{"äöü combat", "combat", 4},
	}

	for _, test := range tests {
		pos := index([]rune(test.s), []rune(test.sub))
		if pos != test.pos {
			t.Errorf("index(%q, %q): want %d, got %d", test.s, test.sub, test.pos, pos)
		}
	}
}

func TestEncoder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		charset string
		in, out string
	}{
		{"utf-8", "Straße €", "Straße €"},
		{"utf-8", "bad \xff byte", "bad \uFFFD byte"},
		{"iso-8859-1", "naïve", "na\xefve"},
		{"windows-1252", "5 € — ok", "5 \x80 \x97 ok"},
		{"iso-8859-2", "5 € für", "5 ? f\xfcr"},
	}

	for _, test := range tests {
		enc, err := NewEncoder(test.charset)
		if err != nil {
			t.Fatal(err)
		}

		out := enc.Encode(test.in)
		if out != test.out {
			t.Errorf("%v: want %q, got %q", test.charset, test.out, out)
		}
	}

	var enc *Encoder
	if out := enc.Encode("ok \xff"); out != "ok \uFFFD" {
		t.Errorf("nil encoder: want %q, got %q", "ok \uFFFD", out)
	}

	_, err := NewEncoder("no-such-charset")
	if err == nil {
		t.Error("expected error for unknown charset not found")
	}
}

// pages is a Document with fixed text per page.
type pages []string

func (p pages) NumPages() int {
	return len(p)
}

func (p pages) PageText(i int) string {
	if i < 0 || i >= len(p) {
		return ""
	}

	return p[i]
}

// countingDoc records which pages were requested.
type countingDoc struct {
	pages
	requested []int
}

func (d *countingDoc) PageText(i int) string {
	d.requested = append(d.requested, i)

	return d.pages.PageText(i)
}

func scan(t testing.TB, s *Scanner, doc Document, queries ...string) (string, []Hit) {
	buf := bytes.NewBuffer(nil)
	s.Out = buf

	var found []Hit

	s.OnHit = func(hit Hit) {
		found = append(found, hit)
	}

	all, err := ParsePages("", doc.NumPages())
	if err != nil {
		t.Fatal(err)
	}

	n, err := s.Scan(context.Background(), doc, all, FoldQueries(queries))
	if err != nil {
		t.Fatal(err)
	}

	if n != len(found) {
		t.Errorf("Scan returned %d hits, OnHit was called %d times", n, len(found))
	}

	return buf.String(), found
}

func TestScanMaxHits(t *testing.T) {
	t.Parallel()

	doc := &countingDoc{pages: pages{
		"combat one", "combat two", "combat three", "combat four", "combat five",
	}}

	s := &Scanner{Context: 90, MaxHits: 2}

	out, hits := scan(t, s, doc, "combat")

	want := "Page 1 | combat | combat one\nPage 2 | combat | combat two\n"
	if out != want {
		t.Errorf("wrong output, want %q, got %q", want, out)
	}

	if len(hits) != 2 {
		t.Errorf("want 2 hits, got %d", len(hits))
	}

	if !reflect.DeepEqual(doc.requested, []int{0, 1}) {
		t.Errorf("scan did not stop after the budget was reached, pages requested: %v", doc.requested)
	}
}

func TestScanMaxHitsWithinPage(t *testing.T) {
	t.Parallel()

	doc := pages{"alpha beta gamma", "alpha"}
	s := &Scanner{Context: 0, MaxHits: 2}

	out, _ := scan(t, s, doc, "gamma", "alpha", "beta")

	want := "Page 1 | gamma | gamma\nPage 1 | alpha | alpha\n"
	if out != want {
		t.Errorf("wrong output, want %q, got %q", want, out)
	}
}

func TestScanCaseInsensitive(t *testing.T) {
	t.Parallel()

	doc := pages{"Rules for combat.", "COMBAT TABLE", "nothing here", "Combat"}
	s := &Scanner{Context: 6, MaxHits: DefaultMaxHits}

	out, hits := scan(t, s, doc, "Combat")

	if len(hits) != 3 {
		t.Fatalf("want 3 hits, got %d: %q", len(hits), out)
	}

	for i, page := range []int{0, 1, 3} {
		if hits[i].Page != page {
			t.Errorf("hit %d: want page %d, got %d", i, page, hits[i].Page)
		}

		if hits[i].Query != "combat" {
			t.Errorf("hit %d: want folded query, got %q", i, hits[i].Query)
		}
	}

	if hits[1].Snippet != "COMBAT TABLE" {
		t.Errorf("snippet must keep the original case, got %q", hits[1].Snippet)
	}

	if !strings.HasPrefix(out, "Page 1 | combat | s for combat.\n") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestScanFirstOccurrenceOnly(t *testing.T) {
	t.Parallel()

	doc := pages{"magic one, magic two, magic three"}
	s := &Scanner{Context: 2, MaxHits: DefaultMaxHits}

	out, hits := scan(t, s, doc, "magic")

	if len(hits) != 1 {
		t.Fatalf("want one hit, got %d", len(hits))
	}

	if out != "Page 1 | magic | magic o\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestScanNoHits(t *testing.T) {
	t.Parallel()

	doc := pages{"", "some text", "", "more text"}
	s := &Scanner{Context: DefaultContext, MaxHits: DefaultMaxHits}

	out, hits := scan(t, s, doc, "absent-query")

	if len(hits) != 0 {
		t.Errorf("want no hits, got %v", hits)
	}

	if out != NoHitsMessage+"\n" {
		t.Errorf("want a single advisory line, got %q", out)
	}
}

func TestScanSkipsEmptyPages(t *testing.T) {
	t.Parallel()

	doc := pages{"", "", "found here"}
	s := &Scanner{Context: DefaultContext, MaxHits: DefaultMaxHits}

	out, _ := scan(t, s, doc, "found")

	if out != "Page 3 | found | found here\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestScanEncoding(t *testing.T) {
	t.Parallel()

	enc, err := NewEncoder("iso-8859-2")
	if err != nil {
		t.Fatal(err)
	}

	doc := pages{"Preis: 5 € für Straße"}
	s := &Scanner{Context: 20, MaxHits: DefaultMaxHits, Encoder: enc}

	out, _ := scan(t, s, doc, "für")

	want := "Page 1 | f\xfcr | Preis: 5 ? f\xfcr Stra\xdfe\n"
	if out != want {
		t.Errorf("want %q, got %q", want, out)
	}
}

func TestScanCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &Scanner{Context: DefaultContext, MaxHits: DefaultMaxHits, Out: bytes.NewBuffer(nil)}

	_, err := s.Scan(ctx, pages{"combat"}, []int{0}, []string{"combat"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("want context.Canceled, got %v", err)
	}
}
