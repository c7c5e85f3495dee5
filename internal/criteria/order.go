package criteria

// Direction is the sort direction of an Order.
type Direction string

const (
	Ascending   Direction = "asc"
	Descending  Direction = "desc"
	NoDirection Direction = "none"
)

// Order describes result ordering. Use Asc, Desc or None to build one; a
// direction never comes without a column and None never carries one.
type Order struct {
	column    string
	direction Direction
}

func Asc(column string) Order  { return Order{column: column, direction: Ascending} }
func Desc(column string) Order { return Order{column: column, direction: Descending} }
func None() Order              { return Order{direction: NoDirection} }

func (o Order) Column() string { return o.column }

// Direction reports the sort direction. The zero Order reports NoDirection.
func (o Order) Direction() Direction {
	if o.direction == "" {
		return NoDirection
	}
	return o.direction
}

func (o Order) IsNone() bool { return o.Direction() == NoDirection }
