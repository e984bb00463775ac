package engine

import (
	"strconv"
	"strings"
	"time"
)

// monthNames and monthAbbrevs are indexed by time.Month-1.
var (
	monthNames = [12]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}
	monthAbbrevs = [12]string{
		"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
	}
)

// dateTokens is ordered longest first so YYYY wins over YY and MMMM over MMM
// and MM.
var dateTokens = []string{"YYYY", "MMMM", "MMM", "YY", "MM", "DD", "HH", "mm", "ss"}

// FormatDate renders t using a token pattern.
//
// Recognized tokens (case-sensitive):
//
//	YYYY  four-digit year       YY  last two digits of the year
//	MMMM  full month name       MMM abbreviated month name
//	MM    month 01-12           DD  day of month 01-31
//	HH    hour 00-23            mm  minute 00-59
//	ss    second 00-59
//
// Everything else in the pattern is copied through unchanged.
func FormatDate(t time.Time, pattern string) string {
	var b strings.Builder
	b.Grow(len(pattern) + 8)

	for i := 0; i < len(pattern); {
		token, ok := matchToken(pattern[i:])
		if !ok {
			b.WriteByte(pattern[i])
			i++
			continue
		}
		b.WriteString(tokenValue(t, token))
		i += len(token)
	}
	return b.String()
}

// matchToken returns the longest date token that prefixes s.
func matchToken(s string) (string, bool) {
	for _, tok := range dateTokens {
		if strings.HasPrefix(s, tok) {
			return tok, true
		}
	}
	return "", false
}

func tokenValue(t time.Time, token string) string {
	switch token {
	case "YYYY":
		return pad(t.Year(), 4)
	case "YY":
		return pad(t.Year()%100, 2)
	case "MMMM":
		return monthNames[t.Month()-1]
	case "MMM":
		return monthAbbrevs[t.Month()-1]
	case "MM":
		return pad(int(t.Month()), 2)
	case "DD":
		return pad(t.Day(), 2)
	case "HH":
		return pad(t.Hour(), 2)
	case "mm":
		return pad(t.Minute(), 2)
	case "ss":
		return pad(t.Second(), 2)
	default:
		return token
	}
}

// pad zero-pads n to width digits.
func pad(n, width int) string {
	if n < 0 {
		n = -n
	}
	s := strconv.Itoa(n)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
