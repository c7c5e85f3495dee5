// Package criteria describes which rows a query selects, in what order and
// how many, independently of any storage engine.
//
// A Criteria is an immutable value. Repositories translate it into SQL with
// dbx.ApplyCriteria and dbx.BindCriteria.
package criteria

// Criteria bundles an optional filter, an order and optional paging.
//
// Offset only has an effect together with Limit; an offset without a limit
// is kept but ignored by the SQL translator.
type Criteria struct {
	filter Filter
	order  Order
	limit  *int64
	offset *int64
}

// Option sets optional paging on a Criteria.
type Option func(*Criteria)

// WithLimit caps the number of returned rows.
func WithLimit(limit int64) Option {
	return func(c *Criteria) { c.limit = &limit }
}

// WithOffset skips the first offset rows. Requires WithLimit to take effect.
func WithOffset(offset int64) Option {
	return func(c *Criteria) { c.offset = &offset }
}

// New builds a Criteria. filter may be nil.
func New(filter Filter, order Order, opts ...Option) Criteria {
	c := Criteria{filter: filter, order: order}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// HasFilter reports whether a filter is present.
func (c Criteria) HasFilter() bool { return c.filter != nil }

func (c Criteria) Filter() Filter { return c.filter }

func (c Criteria) Order() Order { return c.order }

// Limit returns the row limit and whether one was set.
func (c Criteria) Limit() (int64, bool) {
	if c.limit == nil {
		return 0, false
	}
	return *c.limit, true
}

// Offset returns the row offset and whether one was set.
func (c Criteria) Offset() (int64, bool) {
	if c.offset == nil {
		return 0, false
	}
	return *c.offset, true
}
