// Package slides computes the ordered list of slide indices to process
// from a comma-separated selection string of single numbers and
// inclusive start-end ranges.
package slides

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// All returns the full 1..n sequence for a deck of n slides.
func All(n int) []int {
	list := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		list = append(list, i)
	}
	return list
}

// Parse expands a selection string such as "2,4-6,9" into a sorted
// list of slide indices. Duplicates are kept; artifacts are keyed by
// index, so repeating one only repeats work. Indices must be positive;
// bounds against the actual slide count are not checked here, an
// out-of-range index surfaces when the slide is fetched.
func Parse(selection string) ([]int, error) {
	var list []int

	for _, token := range strings.Split(selection, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			return nil, fmt.Errorf("empty slide token in selection %q", selection)
		}

		if strings.Contains(token, "-") {
			parts := strings.SplitN(token, "-", 2)
			start, err := parseIndex(parts[0])
			if err != nil {
				return nil, fmt.Errorf("range %q: %w", token, err)
			}
			end, err := parseIndex(parts[1])
			if err != nil {
				return nil, fmt.Errorf("range %q: %w", token, err)
			}
			if start > end {
				return nil, fmt.Errorf("inverted range %q: start is greater than end", token)
			}
			for i := start; i <= end; i++ {
				list = append(list, i)
			}
			continue
		}

		idx, err := parseIndex(token)
		if err != nil {
			return nil, err
		}
		list = append(list, idx)
	}

	sort.Ints(list)
	return list, nil
}

func parseIndex(s string) (int, error) {
	s = strings.TrimSpace(s)
	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid slide number %q", s)
	}
	if idx < 1 {
		return 0, fmt.Errorf("slide number %d out of range: slides are numbered from 1", idx)
	}
	return idx, nil
}
