package entity

import (
	"strconv"
	"strings"
)

// TruncateCount zeroes everything below the first 3 significant digits,
// matching upstream display precision. Values under 3 digits pass through.
func TruncateCount(n int64) int64 {
	if n < 1000 {
		return n
	}
	pow := int64(1)
	for m := n; m >= 1000; m /= 10 {
		pow *= 10
	}
	return n / pow * pow
}

// ParseAbbreviatedCount parses counts like "1.4K", "12M" or "164583" into
// an absolute value.
func ParseAbbreviatedCount(value string) (int64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	last := value[len(value)-1]
	if last >= '0' && last <= '9' {
		n, err := strconv.ParseInt(strings.ReplaceAll(value, ",", ""), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}

	var mul float64
	switch last {
	case 'K', 'k':
		mul = 1e3
	case 'M', 'm':
		mul = 1e6
	case 'B', 'b':
		mul = 1e9
	default:
		return 0, false
	}

	base, err := strconv.ParseFloat(value[:len(value)-1], 64)
	if err != nil {
		return 0, false
	}
	return int64(base * mul), true
}

// ParseClockDuration parses "HH:MM:SS" (or "M:SS") into seconds.
func ParseClockDuration(value string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) == 0 || len(parts) > 3 {
		return 0, false
	}
	total := 0
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, false
		}
		total = total*60 + n
	}
	return total, true
}
