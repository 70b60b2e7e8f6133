package formatting

import (
	"strconv"
	"strings"
)

// unit suffixes models attach to numeric answers
var numberSuffixes = []string{
	"分钟", "课时", "学时", "小时",
	"minutes", "minute", "mins", "min",
	"hours", "hour", "hrs", "h",
	"%",
}

// Number interprets v as a float. It accepts JSON numbers and numeric strings
// carrying one of the common unit suffixes ("45分钟", "4 hours", "60%").
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		return ParseNumber(n)
	}
	return 0, false
}

// ParseNumber parses s after trimming whitespace and a known unit suffix.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	for _, suffix := range numberSuffixes {
		if strings.HasSuffix(lower, suffix) {
			s = strings.TrimSpace(s[:len(s)-len(suffix)])
			break
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
