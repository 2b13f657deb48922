package chips

// LabelChip filters events carrying a label, e.g. "__ts_star".
type LabelChip struct {
	active   bool
	operator string
	label    string
}

func NewLabelChip() *LabelChip {
	return &LabelChip{active: true, operator: OperatorMust}
}

func (c *LabelChip) Type() string { return TypeLabel }
func (c *LabelChip) Value() string { return c.label }
func (c *LabelChip) Label() string { return c.label }
func (c *LabelChip) SetLabel(l string) { c.label = l }
func (c *LabelChip) Active() bool { return c.active }
func (c *LabelChip) SetActive(active bool) { c.active = active }

func (c *LabelChip) Record() Record {
	return Record{
		Active:   c.active,
		Type:     c.Type(),
		Operator: c.operator,
		Value:    c.label,
	}
}

func (c *LabelChip) Decode(rec Record) error {
	c.label = rec.Value
	return nil
}

// TermChip filters events where a field matches a query value exactly.
type TermChip struct {
	active   bool
	operator string
	field    string
	query    string
}

func NewTermChip() *TermChip {
	return &TermChip{active: true, operator: OperatorMust}
}

func (c *TermChip) Type() string { return TypeTerm }
func (c *TermChip) Value() string { return c.query }
func (c *TermChip) Field() string { return c.field }
func (c *TermChip) Query() string { return c.query }
func (c *TermChip) SetField(f string) { c.field = f }
func (c *TermChip) SetQuery(q string) { c.query = q }
func (c *TermChip) Active() bool { return c.active }
func (c *TermChip) SetActive(active bool) { c.active = active }

func (c *TermChip) Record() Record {
	return Record{
		Active:   c.active,
		Field:    c.field,
		Type:     c.Type(),
		Operator: c.operator,
		Value:    c.query,
	}
}

func (c *TermChip) Decode(rec Record) error {
	c.field = rec.Field
	c.query = rec.Value
	return nil
}
