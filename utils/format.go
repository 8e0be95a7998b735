package utils

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// FormatDuration renders minutes as "Hh Mm". Zero or missing yields "-".
func FormatDuration(minutes *int) string {
	if minutes == nil || *minutes == 0 {
		return "-"
	}
	return fmt.Sprintf("%dh %dm", *minutes/60, *minutes%60)
}

// FormatCompactDuration renders minutes as "Xm", "Xh" or "Xh Ym", the way the
// interventions list shows them. Zero or missing yields "-".
func FormatCompactDuration(minutes *int) string {
	if minutes == nil || *minutes == 0 {
		return "-"
	}
	h, m := *minutes/60, *minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// FormatCurrency renders an amount in euro with two decimals
func FormatCurrency(amount float64) string {
	return fmt.Sprintf("€%.2f", amount)
}

// ParseOrariServizio decodes the JSON service-hours field of a client.
// Missing, invalid or non-object values yield nil.
func ParseOrariServizio(raw *string) map[string]interface{} {
	if raw == nil || !gjson.Valid(*raw) {
		return nil
	}
	parsed := gjson.Parse(*raw)
	if !parsed.IsObject() {
		return nil
	}
	out, ok := parsed.Value().(map[string]interface{})
	if !ok {
		return nil
	}
	return out
}
