package command

import (
	"strconv"
	"strings"
)

var numberWords = map[string]int{
	"one":   1,
	"two":   2,
	"three": 3,
	"four":  4,
	"five":  5,
	"six":   6,
	"seven": 7,
	"eight": 8,
	"nine":  9,
	"ten":   10,
}

// parseNumberToken accepts a decimal numeral or a number word. Anything else,
// including numerals that overflow int, yields 1. The result is never below 1.
func parseNumberToken(token string) int {
	token = strings.ToLower(strings.TrimSpace(token))
	if n, ok := numberWords[token]; ok {
		return n
	}
	n, err := strconv.Atoi(token)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
