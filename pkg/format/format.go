// Package format turns raw report field values into display strings.
//
// Every function is total: missing or malformed input resolves to NotAvailable
// or to the raw value unchanged, never to an error.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// NotAvailable is rendered for missing or unparsable numeric values
const NotAvailable = "N/A"

// dateLayouts are tried in order; the first successful parse wins
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"20060102",
}

// Currency formats an amount such as "1234.5" or "$1,234" as "$1,234.50".
// Non-numeric characters are stripped before parsing.
func Currency(raw string) string {
	v, ok := ParseAmount(raw)
	if !ok {
		return NotAvailable
	}
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	whole := math.Floor(v)
	cents := math.Round((v - whole) * 100)
	if cents >= 100 {
		whole++
		cents = 0
	}
	out := sign + "$" + groupThousands(int64(whole))
	if cents > 0 {
		out += fmt.Sprintf(".%02d", int64(cents))
	}
	return out
}

// ParseAmount strips everything except digits, the decimal point and a
// leading minus sign, then parses the remainder.
func ParseAmount(raw string) (float64, bool) {
	var b strings.Builder
	for i, r := range strings.TrimSpace(raw) {
		switch {
		case unicode.IsDigit(r), r == '.':
			b.WriteRune(r)
		case r == '-' && i == 0:
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" || cleaned == "-" || cleaned == "." {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// Date renders ISO-like dates as MM/DD/YYYY. Year-month values render as
// MM/YYYY. Unparsable input is returned verbatim.
func Date(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return NotAvailable
	}
	if t, ok := ParseDate(raw); ok {
		return t.Format("01/02/2006")
	}
	if t, err := time.Parse("2006-01", raw); err == nil {
		return t.Format("01/2006")
	}
	return raw
}

// ParseDate parses a date in any of the accepted layouts
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// statusText maps Metro 2 account status codes to display text
var statusText = map[string]string{
	"05": "Transferred",
	"11": "Current",
	"13": "Paid or Closed",
	"61": "Paid in Full, Voluntary Surrender",
	"62": "Paid in Full, Collection",
	"63": "Paid in Full, Repossession",
	"64": "Paid in Full, Charge-off",
	"65": "Paid in Full, Foreclosure",
	"71": "30 Days Past Due",
	"78": "60 Days Past Due",
	"80": "90 Days Past Due",
	"82": "120 Days Past Due",
	"83": "150 Days Past Due",
	"84": "180 Days Past Due",
	"88": "Claim Filed with Government",
	"89": "Deed in Lieu",
	"93": "Collection",
	"94": "Foreclosure",
	"95": "Voluntary Surrender",
	"96": "Repossession",
	"97": "Charge-off",
	"DA": "Delete Account",
	"DF": "Delete Account (Fraud)",
}

// Status converts a status code to text. Unknown codes render as "Status <code>".
func Status(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return NotAvailable
	}
	if text, ok := statusText[strings.ToUpper(code)]; ok {
		return text
	}
	return "Status " + code
}

// MaskAccount hides all but the last four characters of an account number.
// Numbers that are already masked or too short are returned unchanged.
func MaskAccount(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return NotAvailable
	}
	if strings.ContainsAny(raw, "*Xx") || utf8.RuneCountInString(raw) <= 4 {
		return raw
	}
	runes := []rune(raw)
	return strings.Repeat("*", len(runes)-4) + string(runes[len(runes)-4:])
}

// Initials returns up to two upper-case initials of a name
func Initials(name string) string {
	var out []rune
	for _, word := range strings.Fields(name) {
		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				out = append(out, unicode.ToUpper(r))
				break
			}
		}
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return NotAvailable
	}
	return string(out)
}

// Utilization renders balance / limit as a whole percentage
func Utilization(balance, limit string) string {
	b, ok := ParseAmount(balance)
	if !ok {
		return NotAvailable
	}
	l, ok := ParseAmount(limit)
	if !ok || l <= 0 {
		return NotAvailable
	}
	return fmt.Sprintf("%d%%", int(math.Round(b/l*100)))
}

// PaymentPattern summarises a payment history string such as "CCC1C2" as
// "30d:1 60d:1". Patterns with no late markers render as "No lates".
func PaymentPattern(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return NotAvailable
	}
	counts := map[rune]int{}
	for _, r := range raw {
		if r >= '1' && r <= '9' {
			counts[r]++
		}
	}
	if len(counts) == 0 {
		return "No lates"
	}
	labels := []struct {
		r     rune
		label string
	}{
		{'1', "30d"}, {'2', "60d"}, {'3', "90d"}, {'4', "120d"},
		{'5', "150d"}, {'6', "180d"}, {'7', "CO"}, {'8', "FC"}, {'9', "COL"},
	}
	var parts []string
	for _, l := range labels {
		if n := counts[l.r]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", l.label, n))
		}
	}
	return strings.Join(parts, " ")
}

// Truncate shortens s to maxLen runes, ending in "..." when cut
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
