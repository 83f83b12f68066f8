package domain

// Customer accrues loyalty points and lifetime spend through checkouts.
// Both counters only grow outside manual edits.
type Customer struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	LoyaltyPoints int     `json:"loyaltyPoints"`
	TotalSpent    float64 `json:"totalSpent"`
}
