package domain

// Categories shown in the catalog filter. "All" is a virtual category
// handled by the filter itself, not stored on products.
var Categories = []string{
	"Beverages",
	"Snacks",
	"Bakery",
	"Dairy",
	"Household",
}

// SeedProducts is the starter catalog written on first run when the
// stored product collection is empty.
var SeedProducts = []Product{
	{Name: "Drip Coffee 12oz", Description: "House blend, medium roast", Category: "Beverages", Price: 2.50, Stock: 120, Barcode: "40112358"},
	{Name: "Orange Juice 330ml", Description: "Cold-pressed, no added sugar", Category: "Beverages", Price: 3.25, Stock: 48, Barcode: "40112365"},
	{Name: "Sparkling Water 500ml", Description: "Lightly carbonated", Category: "Beverages", Price: 1.75, Stock: 96, Barcode: "40112372"},
	{Name: "Sea Salt Chips", Description: "Kettle cooked, 150g bag", Category: "Snacks", Price: 2.99, Stock: 64, Barcode: "40220411"},
	{Name: "Trail Mix", Description: "Nuts, raisins, dark chocolate", Category: "Snacks", Price: 4.50, Stock: 40, Barcode: "40220428"},
	{Name: "Butter Croissant", Description: "Baked daily", Category: "Bakery", Price: 2.75, Stock: 24, Barcode: "40330519"},
	{Name: "Sourdough Loaf", Description: "800g, sliced", Category: "Bakery", Price: 5.40, Stock: 16, Barcode: "40330526"},
	{Name: "Whole Milk 1L", Description: "Pasteurized", Category: "Dairy", Price: 1.90, Stock: 56, Barcode: "40440617"},
	{Name: "Greek Yogurt 500g", Description: "Plain, 5% fat", Category: "Dairy", Price: 3.80, Stock: 32, Barcode: "40440624"},
	{Name: "Paper Towels 2pk", Description: "2-ply rolls", Category: "Household", Price: 4.20, Stock: 28, Barcode: "40550713"},
}

// SeedCustomers is the starter customer book written on first run.
var SeedCustomers = []Customer{
	{Name: "Alice Freeman", Email: "alice.freeman@example.com", Phone: "(555) 201-3344", LoyaltyPoints: 0, TotalSpent: 0},
	{Name: "Marcus Webb", Email: "marcus.webb@example.com", Phone: "555-774-2190", LoyaltyPoints: 0, TotalSpent: 0},
}
