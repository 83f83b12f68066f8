package domain

// Settings is the terminal-wide configuration record. It is loaded
// lazily with defaults on first run and overwritten wholesale on save.
type Settings struct {
	BusinessName         string  `json:"businessName"`
	BusinessAddress      string  `json:"businessAddress"`
	BusinessPhone        string  `json:"businessPhone"`
	TaxRate              float64 `json:"taxRate"`
	Currency             string  `json:"currency"`
	ReceiptFooter        string  `json:"receiptFooter"`
	LowStockThreshold    int     `json:"lowStockThreshold"`
	EnableLoyaltyProgram bool    `json:"enableLoyaltyProgram"`
	LoyaltyPointsRate    float64 `json:"loyaltyPointsRate"`
	AutoBackup           bool    `json:"autoBackup"`
}

// DefaultSettings returns the record used when no settings have ever
// been saved.
func DefaultSettings() Settings {
	return Settings{
		BusinessName:         "Your Business Name",
		BusinessAddress:      "123 Main Street, City, State 12345",
		BusinessPhone:        "(555) 123-4567",
		TaxRate:              0.08,
		Currency:             "USD",
		ReceiptFooter:        "Thank you for your business!",
		LowStockThreshold:    10,
		EnableLoyaltyProgram: true,
		LoyaltyPointsRate:    1,
		AutoBackup:           true,
	}
}
