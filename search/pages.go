package search

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

func parseRange(s string) (start, end int, err error) {
	i := strings.IndexByte(s, '-')
	if i < 0 {
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, err
		}

		return n, n, nil
	}

	start, err = strconv.Atoi(strings.TrimSpace(s[:i]))
	if err != nil {
		return 0, 0, err
	}

	end, err = strconv.Atoi(strings.TrimSpace(s[i+1:]))
	if err != nil {
		return 0, 0, err
	}

	return start, end, nil
}

// ParsePages returns the zero-based page indexes selected by expr, a comma
// separated list of 1-based page numbers and inclusive ranges like "1-5,10".
// The result is sorted and contains only pages in [0, total). An empty
// expression selects all pages.
func ParsePages(expr string, total int) ([]int, error) {
	if strings.TrimSpace(expr) == "" {
		pages := make([]int, 0, total)
		for i := 0; i < total; i++ {
			pages = append(pages, i)
		}

		return pages, nil
	}

	selected := make(map[int]struct{})

	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		start, end, err := parseRange(part)
		if err != nil {
			return nil, fmt.Errorf("invalid page range %q: %w", part, err)
		}

		if start < 1 {
			start = 1
		}

		if end > total {
			end = total
		}

		for p := start; p <= end; p++ {
			selected[p-1] = struct{}{}
		}
	}

	pages := make([]int, 0, len(selected))
	for p := range selected {
		pages = append(pages, p)
	}

	sort.Ints(pages)

	return pages, nil
}
