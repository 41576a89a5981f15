package util //nolint:revive // package name util hosts shared display helpers used by the CLI and exports

import (
	"fmt"
	"strings"

	"github.com/bookstore/bookstore-admin/internal/domain/model"
)

const (
	// Placeholder is shown for values that are absent.
	Placeholder = "—"

	// DateTimeLayout is the display layout for timestamps.
	DateTimeLayout = "2006-01-02 15:04"
	// DateLayout is the display layout for calendar dates.
	DateLayout = "2006-01-02"
)

// FormatMoney formats an amount with two decimals.
func FormatMoney(m model.Money) string {
	return m.String()
}

// FormatDateTime formats a timestamp in DateTimeLayout, or Placeholder when it is zero.
func FormatDateTime(ts model.Timestamp) string {
	if ts.IsZero() {
		return Placeholder
	}
	return ts.Format(DateTimeLayout)
}

// FormatDate formats a timestamp in DateLayout, or Placeholder when it is zero.
func FormatDate(ts model.Timestamp) string {
	if ts.IsZero() {
		return Placeholder
	}
	return ts.Format(DateLayout)
}

// OrPlaceholder returns s, or Placeholder when s is blank.
func OrPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}

// FormatPercent formats a change rate with one decimal and an explicit sign.
func FormatPercent(rate float64) string {
	return fmt.Sprintf("%+.1f%%", rate)
}
