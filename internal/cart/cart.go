package cart

import "fmt"

// Line is one cart entry. Two lines are distinct when any of product id,
// color or size differ, so the same product can sit in the cart once per
// variant.
type Line struct {
	ProductID int    `json:"id"`
	Title     string `json:"title"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"image"`
	Color     string `json:"color,omitempty"`
	Size      string `json:"size,omitempty"`
}

// Variant selects one line of a product by its color and size.
type Variant struct {
	Color string
	Size  string
}

func (l Line) matches(productID int, v Variant) bool {
	return l.ProductID == productID && l.Color == v.Color && l.Size == v.Size
}

type ChangeKind int

const (
	ChangeNone ChangeKind = iota
	ChangeAdded
	ChangeQuantityIncremented
	ChangeQuantityUpdated
	ChangeRemoved
	ChangeCleared
)

// Change describes what a mutation actually did, so callers decide whether
// and how to surface it to the user. A ChangeNone carries no message.
type Change struct {
	Kind     ChangeKind
	Title    string
	Quantity int
}

// Message renders the user-facing notification text for the change, or ""
// when nothing should be surfaced.
func (c Change) Message() string {
	switch c.Kind {
	case ChangeAdded:
		return fmt.Sprintf("%s added to cart", c.Title)
	case ChangeQuantityIncremented:
		return fmt.Sprintf("%s quantity updated", c.Title)
	case ChangeQuantityUpdated:
		return fmt.Sprintf("%s quantity updated to %d", c.Title, c.Quantity)
	case ChangeRemoved:
		return fmt.Sprintf("%s removed from cart", c.Title)
	case ChangeCleared:
		return "Order completed"
	default:
		return ""
	}
}
