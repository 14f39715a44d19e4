package contentdna

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSelection turns user input such as "all", "1,3" or "2-4" into 0-based
// indexes into a list of n items. Repeated indexes are dropped, first
// occurrence wins.
func ParseSelection(input string, n int) ([]int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("no videos selected")
	}
	if n <= 0 {
		return nil, fmt.Errorf("nothing to select from")
	}

	if strings.EqualFold(input, "all") {
		indexes := make([]int, n)
		for i := range indexes {
			indexes[i] = i
		}
		return indexes, nil
	}

	seen := make(map[int]bool)
	var indexes []int
	add := func(num int) error {
		if num < 1 || num > n {
			return fmt.Errorf("selection %d is out of range (1-%d)", num, n)
		}
		if !seen[num-1] {
			seen[num-1] = true
			indexes = append(indexes, num-1)
		}
		return nil
	}

	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if lo, hi, ok := strings.Cut(part, "-"); ok {
			start, err := strconv.Atoi(strings.TrimSpace(lo))
			if err != nil {
				return nil, fmt.Errorf("invalid range %q", part)
			}
			end, err := strconv.Atoi(strings.TrimSpace(hi))
			if err != nil {
				return nil, fmt.Errorf("invalid range %q", part)
			}
			if start > end {
				return nil, fmt.Errorf("invalid range %q: start is after end", part)
			}
			for num := start; num <= end; num++ {
				if err := add(num); err != nil {
					return nil, err
				}
			}
			continue
		}

		num, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid selection %q: use numbers separated by commas, or 'all'", part)
		}
		if err := add(num); err != nil {
			return nil, err
		}
	}

	if len(indexes) == 0 {
		return nil, fmt.Errorf("no videos selected")
	}

	return indexes, nil
}
