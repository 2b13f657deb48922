// Package chips implements the structured filter conditions ("chips") that
// make up a search query filter: date ranges, date intervals, label matches
// and term matches. Each chip serializes to the uniform record
// {active, field, type, operator, value} consumed by the explore API.
package chips

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Chip type discriminators as they appear on the wire.
const (
	TypeDateRange    = "datetime_range"
	TypeDateInterval = "datetime_interval"
	TypeLabel        = "label"
	TypeTerm         = "term"
)

// Chip operators.
const (
	OperatorMust    = "must"
	OperatorMustNot = "must_not"
)

// canonicalLayout is the normalized timestamp form used internally and on
// the wire: second precision, 'T' separator, no fraction, no zone.
const canonicalLayout = "2006-01-02T15:04:05"

const dateLayout = "2006-01-02"

// ErrInvalidDateExpression is returned for timestamps or interval
// expressions that fail validation. State is never partially mutated when
// a setter or decoder returns this error.
var ErrInvalidDateExpression = errors.New("invalid date expression")

// Record is the uniform chip mapping embedded in a query filter.
type Record struct {
	Active   bool   `json:"active"`
	Field    string `json:"field"`
	Type     string `json:"type"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// Chip is implemented by every filter chip variant.
type Chip interface {
	// Type returns the wire discriminator for the chip.
	Type() string
	// Value returns the single wire string encoding the chip's fields.
	Value() string
	// Record returns the chip as the uniform filter record.
	Record() Record
	// Decode reconstructs the chip's semantic fields from a record,
	// validating before any field is assigned.
	Decode(rec Record) error
}

// FromRecord reconstructs a chip from its serialized record, dispatching on
// the type discriminator.
func FromRecord(rec Record) (Chip, error) {
	var c Chip
	switch rec.Type {
	case TypeDateRange:
		c = NewDateRangeChip()
	case TypeDateInterval:
		c = NewDateIntervalChip()
	case TypeLabel:
		c = NewLabelChip()
	case TypeTerm:
		c = NewTermChip()
	default:
		return nil, fmt.Errorf("unknown chip type %q", rec.Type)
	}
	if err := c.Decode(rec); err != nil {
		return nil, err
	}
	return c, nil
}

// ParseTimestamp normalizes an accepted date or date-time string to the
// canonical YYYY-MM-DDTHH:MM:SS form.
//
// Accepted shapes: YYYY-MM-DD, YYYY-MM-DDTHH:MM:SS, the same with a space
// instead of 'T', each optionally suffixed with the literal fraction .000
// and/or a trailing 'Z'. Any other fractional value is rejected.
func ParseTimestamp(s string) (string, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return "", fmt.Errorf("%w: empty timestamp", ErrInvalidDateExpression)
	}

	v := strings.TrimSuffix(raw, "Z")
	if dot := strings.IndexByte(v, '.'); dot >= 0 {
		if frac := v[dot+1:]; frac != "000" {
			return "", fmt.Errorf(
				"%w: fractional seconds must be .000, got %q", ErrInvalidDateExpression, raw)
		}
		v = v[:dot]
	}
	v = strings.Replace(v, " ", "T", 1)

	for _, layout := range []string{canonicalLayout, dateLayout} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(canonicalLayout), nil
		}
	}
	return "", fmt.Errorf("%w: unparseable timestamp %q", ErrInvalidDateExpression, raw)
}

// ParseRange decomposes a range wire value "<start>,<end>" into its two
// canonical timestamps.
func ParseRange(value string) (start, end string, err error) {
	parts := strings.SplitN(value, ",", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf(
			"%w: range value %q must be <start>,<end>", ErrInvalidDateExpression, value)
	}
	if start, err = ParseTimestamp(parts[0]); err != nil {
		return "", "", err
	}
	if end, err = ParseTimestamp(parts[1]); err != nil {
		return "", "", err
	}
	return start, end, nil
}

// Interval is the decomposed form of an interval wire value
// "<date> -<before><unit> +<after><unit>".
type Interval struct {
	Date   string
	Before int
	After  int
	Unit   string
}

// unitDurations maps interval unit codes to their span.
var unitDurations = map[string]time.Duration{
	"s": time.Second,
	"m": time.Minute,
	"h": time.Hour,
	"d": 24 * time.Hour,
	"w": 7 * 24 * time.Hour,
}

// ValidUnit reports whether u is a known interval unit code.
func ValidUnit(u string) bool {
	_, ok := unitDurations[u]
	return ok
}

// ParseInterval decomposes an interval wire value. The date part may itself
// contain a space separator, so the offsets are taken from the end. When the
// before and after tokens carry different units the unit of the +after token
// wins.
func ParseInterval(value string) (Interval, error) {
	fields := strings.Fields(strings.TrimSpace(value))
	if len(fields) < 3 {
		return Interval{}, fmt.Errorf(
			"%w: interval value %q must be <date> -<N><unit> +<M><unit>",
			ErrInvalidDateExpression, value)
	}

	beforeTok := fields[len(fields)-2]
	afterTok := fields[len(fields)-1]
	if !strings.HasPrefix(beforeTok, "-") || !strings.HasPrefix(afterTok, "+") {
		return Interval{}, fmt.Errorf(
			"%w: interval offsets %q %q must be -<N><unit> +<M><unit>",
			ErrInvalidDateExpression, beforeTok, afterTok)
	}

	date, err := ParseTimestamp(strings.Join(fields[:len(fields)-2], " "))
	if err != nil {
		return Interval{}, err
	}
	before, _, err := parseOffset(beforeTok[1:])
	if err != nil {
		return Interval{}, err
	}
	after, unit, err := parseOffset(afterTok[1:])
	if err != nil {
		return Interval{}, err
	}

	return Interval{Date: date, Before: before, After: after, Unit: unit}, nil
}

// Bounds computes the canonical [start, end] timestamps covered by the
// interval.
func (iv Interval) Bounds() (start, end string, err error) {
	t, err := time.Parse(canonicalLayout, iv.Date)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidDateExpression, err)
	}
	span, ok := unitDurations[iv.Unit]
	if !ok {
		return "", "", fmt.Errorf("%w: unknown unit %q", ErrInvalidDateExpression, iv.Unit)
	}
	start = t.Add(-time.Duration(iv.Before) * span).Format(canonicalLayout)
	end = t.Add(time.Duration(iv.After) * span).Format(canonicalLayout)
	return start, end, nil
}

// String formats the interval in its wire form.
func (iv Interval) String() string {
	return fmt.Sprintf("%s -%d%s +%d%s", iv.Date, iv.Before, iv.Unit, iv.After, iv.Unit)
}

func parseOffset(tok string) (int, string, error) {
	if len(tok) < 2 {
		return 0, "", fmt.Errorf("%w: offset %q too short", ErrInvalidDateExpression, tok)
	}
	unit := tok[len(tok)-1:]
	if !ValidUnit(unit) {
		return 0, "", fmt.Errorf("%w: unknown unit %q", ErrInvalidDateExpression, unit)
	}
	n, err := strconv.Atoi(tok[:len(tok)-1])
	if err != nil || n < 0 {
		return 0, "", fmt.Errorf(
			"%w: offset count %q must be a non-negative integer", ErrInvalidDateExpression, tok)
	}
	return n, unit, nil
}
