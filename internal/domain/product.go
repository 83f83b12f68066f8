package domain

// Product is a catalog item. Stock is the authoritative on-hand count:
// the cart may never request more than it, and checkout decrements it.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Barcode     string  `json:"barcode"`
}

// CartItem is a product snapshot plus the requested quantity. It lives
// only inside the active cart and inside completed transactions.
type CartItem struct {
	Product
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}
