// Package numbers pulls spoken and written numbers out of transcript text.
package numbers

import (
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// digitWords maps the ten digit words to their values. Anything else is ignored.
var digitWords = map[string]int{
	"zero":  0,
	"one":   1,
	"two":   2,
	"three": 3,
	"four":  4,
	"five":  5,
	"six":   6,
	"seven": 7,
	"eight": 8,
	"nine":  9,
}

var digitRun = regexp.MustCompile(`[0-9]+`)

// Tokens returns the decimal rendering of every number token found in text.
//
// Word tokens always come first, in the order they appear, followed by the
// digit runs in the order they appear. A digit run is rendered as the integer
// it parses to, so "007" becomes "7".
func Tokens(text string) []string {
	words := lo.FilterMap(strings.Fields(strings.ToLower(text)), func(word string, _ int) (string, bool) {
		value, ok := digitWords[word]
		return strconv.Itoa(value), ok
	})

	runs := lo.Map(digitRun.FindAllString(text, -1), func(run string, _ int) string {
		return trimLeadingZeros(run)
	})

	return append(words, runs...)
}

// Extract concatenates every token returned by Tokens and parses the result
// as a single integer. The second return value is false when text holds no
// number at all, which is different from a result of zero.
func Extract(text string) (Number, bool) {
	tokens := Tokens(text)
	if len(tokens) == 0 {
		return Number{}, false
	}

	value, ok := new(big.Int).SetString(strings.Join(tokens, ""), 10)
	if !ok {
		// tokens are decimal digits only
		return Number{}, false
	}
	return Number{value: value}, true
}

func trimLeadingZeros(run string) string {
	trimmed := strings.TrimLeft(run, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}
