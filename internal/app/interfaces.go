package app

import (
	"github.com/robfig/cron/v3"

	"github.com/tillworks/tillpos/config"
	"github.com/tillworks/tillpos/internal/pos"
	"github.com/tillworks/tillpos/internal/store"
)

// ServiceProvider provides the POS state controller.
type ServiceProvider interface {
	Service() *pos.Service
}

// StoreProvider provides the persistence store.
type StoreProvider interface {
	Store() *store.Store
}

// ConfigProvider provides application configuration.
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SchedulerProvider provides the cron scheduler.
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// Backupper is the surface the front-end uses for on-demand backups.
type Backupper interface {
	BackupNow() (string, error)
}
