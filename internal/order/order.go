package order

import "github.com/mehkova/storefront-backend/internal/cart"

// Order is the durable record of one successful checkout. Reference is the
// opaque identifier issued by the payment gateway; Lines snapshots the cart
// at purchase time so later catalog edits cannot rewrite history.
type Order struct {
	OrderID    int         `json:"orderID"`
	UserID     int         `json:"userID"`
	Reference  string      `json:"reference"`
	Lines      []cart.Line `json:"lines"`
	ProductIDs []int       `json:"productIds,omitempty"`
	Quantity   int         `json:"quantity"`
	Total      int64       `json:"totalPrice"`
	Status     string      `json:"status"`
	CreatedAt  string      `json:"createdAt"`
}
