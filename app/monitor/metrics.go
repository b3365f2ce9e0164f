package monitor

import (
	"regexp"
	"strconv"
	"strings"
)

var kmPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([KMkm])$`)

// ParseKNumber parses an engagement count that may be a plain integer or
// K/M shorthand ("64.5K" -> 64500, "1.2M" -> 1200000). Returns ok=false
// for empty, "N/A", or unparseable input.
func ParseKNumber(value string) (int64, bool) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "N/A") {
		return 0, false
	}

	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n, true
	}

	match := kmPattern.FindStringSubmatch(value)
	if match == nil {
		return 0, false
	}

	number, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, false
	}

	switch strings.ToUpper(match[2]) {
	case "K":
		return int64(number * 1_000), true
	case "M":
		return int64(number * 1_000_000), true
	}
	return 0, false
}

// EngagementTotal sums likes, comments, and shares. ok is false when
// none of the inputs parsed.
func EngagementTotal(likes, comments, shares string) (int64, bool) {
	var total int64
	any := false

	for _, v := range []string{likes, comments, shares} {
		if n, ok := ParseKNumber(v); ok {
			total += n
			any = true
		}
	}

	return total, any
}
