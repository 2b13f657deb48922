package chips

// DateRangeChip filters events to [start, end], both canonical timestamps.
type DateRangeChip struct {
	active    bool
	field     string
	operator  string
	startTime string
	endTime   string
}

// NewDateRangeChip returns an active must-range chip with no bounds set.
func NewDateRangeChip() *DateRangeChip {
	return &DateRangeChip{active: true, operator: OperatorMust}
}

func (c *DateRangeChip) Type() string { return TypeDateRange }

// Value returns the wire form "<start>,<end>".
func (c *DateRangeChip) Value() string { return c.startTime + "," + c.endTime }

// DateRange is an alias for Value kept for symmetry with the UI field name.
func (c *DateRangeChip) DateRange() string { return c.Value() }

func (c *DateRangeChip) StartTime() string { return c.startTime }
func (c *DateRangeChip) EndTime() string { return c.endTime }
func (c *DateRangeChip) Active() bool { return c.active }

// SetStartTime validates and normalizes the start bound.
func (c *DateRangeChip) SetStartTime(s string) error {
	ts, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	c.startTime = ts
	return nil
}

// SetEndTime validates and normalizes the end bound.
func (c *DateRangeChip) SetEndTime(s string) error {
	ts, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	c.endTime = ts
	return nil
}

func (c *DateRangeChip) SetActive(active bool) { c.active = active }

func (c *DateRangeChip) Record() Record {
	return Record{
		Active:   c.active,
		Field:    c.field,
		Type:     c.Type(),
		Operator: c.operator,
		Value:    c.Value(),
	}
}

// Decode reconstructs both bounds from the record's value string. Both
// timestamps are validated before either field is assigned.
func (c *DateRangeChip) Decode(rec Record) error {
	start, end, err := ParseRange(rec.Value)
	if err != nil {
		return err
	}
	c.startTime = start
	c.endTime = end
	return nil
}
