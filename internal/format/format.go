// Package format renders numbers for display using locale-aware grouping.
package format

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale is the locale the dashboard reports are written for.
const DefaultLocale = "es-VE"

// Placeholder is shown instead of a KPI value that is not available.
const Placeholder = "—"

// Formatter formats numbers for one locale. It is safe for concurrent use.
type Formatter struct {
	tag language.Tag
}

// New creates a Formatter for a BCP 47 locale such as "es-VE".
func New(locale string) (*Formatter, error) {
	const op = "format.New"

	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid locale %q: %w", op, locale, err)
	}
	return &Formatter{tag: tag}, nil
}

// Tag returns the formatter's language.
func (f *Formatter) Tag() language.Tag {
	return f.tag
}

// Number formats n with exactly decimals fraction digits and grouped thousands.
func (f *Formatter) Number(n float64, decimals int) string {
	// message.Printer is not safe for concurrent use
	p := message.NewPrinter(f.tag)
	return p.Sprint(number.Decimal(n,
		number.MinFractionDigits(decimals),
		number.MaxFractionDigits(decimals),
	))
}

// Money formats n as a dollar amount with two decimals.
func (f *Formatter) Money(n float64) string {
	return "$" + f.Number(n, 2)
}

// Percent appends a percent sign to an already formatted percentage.
func (f *Formatter) Percent(pct string) string {
	return pct + "%"
}
