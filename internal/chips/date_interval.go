package chips

import "fmt"

// Interval chip defaults: ±5 minutes around the anchor date.
const (
	defaultIntervalCount = 5
	defaultIntervalUnit  = "m"
)

// DateIntervalChip filters events to a window around an anchor timestamp,
// expressed as counts of a time unit before and after it.
type DateIntervalChip struct {
	active   bool
	field    string
	operator string
	date     string
	before   int
	after    int
	unit     string
}

// NewDateIntervalChip returns an active must-interval chip with the
// default ±5m window.
func NewDateIntervalChip() *DateIntervalChip {
	return &DateIntervalChip{
		active:   true,
		operator: OperatorMust,
		before:   defaultIntervalCount,
		after:    defaultIntervalCount,
		unit:     defaultIntervalUnit,
	}
}

func (c *DateIntervalChip) Type() string { return TypeDateInterval }

// Value returns the wire form "<date> -<before><unit> +<after><unit>".
func (c *DateIntervalChip) Value() string {
	return Interval{Date: c.date, Before: c.before, After: c.after, Unit: c.unit}.String()
}

func (c *DateIntervalChip) Date() string { return c.date }
func (c *DateIntervalChip) Before() int { return c.before }
func (c *DateIntervalChip) After() int { return c.after }
func (c *DateIntervalChip) Unit() string { return c.unit }
func (c *DateIntervalChip) Active() bool { return c.active }

// SetDate validates and normalizes the anchor timestamp. A bare date gets a
// T00:00:00 time component.
func (c *DateIntervalChip) SetDate(s string) error {
	ts, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	c.date = ts
	return nil
}

func (c *DateIntervalChip) SetBefore(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: before count must be non-negative", ErrInvalidDateExpression)
	}
	c.before = n
	return nil
}

func (c *DateIntervalChip) SetAfter(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: after count must be non-negative", ErrInvalidDateExpression)
	}
	c.after = n
	return nil
}

func (c *DateIntervalChip) SetUnit(u string) error {
	if !ValidUnit(u) {
		return fmt.Errorf("%w: unknown unit %q", ErrInvalidDateExpression, u)
	}
	c.unit = u
	return nil
}

func (c *DateIntervalChip) SetActive(active bool) { c.active = active }

func (c *DateIntervalChip) Record() Record {
	return Record{
		Active:   c.active,
		Field:    c.field,
		Type:     c.Type(),
		Operator: c.operator,
		Value:    c.Value(),
	}
}

// Decode reconstructs the anchor and window from the record's value string.
// The whole expression is validated before any field is assigned.
func (c *DateIntervalChip) Decode(rec Record) error {
	iv, err := ParseInterval(rec.Value)
	if err != nil {
		return err
	}
	c.date = iv.Date
	c.before = iv.Before
	c.after = iv.After
	c.unit = iv.Unit
	return nil
}
