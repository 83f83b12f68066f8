package app

import (
	"go.uber.org/zap"

	"github.com/tillworks/tillpos/internal/domain"
)

// checkSettings persists the default settings record on first run so
// later loads and exports see a concrete value. A previously saved
// record is left alone.
func (a *Application) checkSettings() {
	saved, err := a.store.HasSettings()
	if err != nil {
		zap.L().Error("failed to check settings", zap.Error(err))
		return
	}
	if saved {
		return
	}
	settings := a.service.Settings()
	if err := a.store.SaveSettings(settings); err != nil {
		zap.L().Error("failed to initialize settings", zap.Error(err))
		return
	}
	zap.L().Info("settings initialized",
		zap.String("business", settings.BusinessName),
		zap.Float64("taxRate", settings.TaxRate))
}

// checkProducts seeds the starter catalog when no products were ever
// saved. Transactions are never seeded.
func (a *Application) checkProducts() {
	if len(a.service.Products()) > 0 {
		return
	}
	for _, p := range domain.SeedProducts {
		if _, err := a.service.AddProduct(p); err != nil {
			zap.L().Error("failed to seed product", zap.String("name", p.Name), zap.Error(err))
		}
	}
	zap.S().Infof("seeded %d catalog products", len(a.service.Products()))
}

// checkCustomers seeds the starter customer book when empty.
func (a *Application) checkCustomers() {
	if len(a.service.Customers()) > 0 {
		return
	}
	for _, c := range domain.SeedCustomers {
		if _, err := a.service.AddCustomer(c.Name, c.Email, c.Phone); err != nil {
			zap.L().Error("failed to seed customer", zap.String("name", c.Name), zap.Error(err))
		}
	}
	zap.S().Infof("seeded %d customers", len(a.service.Customers()))
}
