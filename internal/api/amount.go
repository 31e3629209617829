package api

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const defaultAmount = 1

// leadingNumber matches the numeric prefix of an amount such as "250.5inr".
var leadingNumber = regexp.MustCompile(`^\s*[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// ParseAmount reads the ?amount= value. Anything that is not a positive,
// finite number becomes 1.
func ParseAmount(raw string) float64 {
	match := leadingNumber.FindString(raw)
	if match == "" {
		return defaultAmount
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(match), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return defaultAmount
	}
	return amount
}
