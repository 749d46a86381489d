package commands

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePRNumbers parses one or more PR numbers, accepting an optional leading '#'
func ParsePRNumbers(args []string) ([]int, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("at least one PR number is required")
	}

	seen := make(map[int]bool)
	var numbers []int
	for _, arg := range args {
		prNumber, err := strconv.Atoi(strings.TrimPrefix(arg, "#"))
		if err != nil {
			return nil, fmt.Errorf("invalid PR number %q: %w", arg, err)
		}
		if prNumber <= 0 {
			return nil, fmt.Errorf("invalid PR number %q: must be positive", arg)
		}
		if seen[prNumber] {
			continue
		}
		seen[prNumber] = true
		numbers = append(numbers, prNumber)
	}
	return numbers, nil
}
