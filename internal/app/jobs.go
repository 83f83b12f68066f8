package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/tillworks/tillpos/internal/domain"
	"github.com/tillworks/tillpos/internal/pos"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@daily", func() {
		if !a.service.Settings().AutoBackup {
			return
		}
		if path, err := a.BackupNow(); err != nil {
			zap.L().Error("auto backup failed", zap.Error(err))
		} else {
			zap.L().Info("auto backup written", zap.String("path", path))
		}
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@hourly", func() {
		low := a.service.LowStockProducts()
		for _, p := range low {
			zap.L().Warn("low stock",
				zap.String("product", p.Name),
				zap.Int("stock", p.Stock),
				zap.Int("threshold", a.service.Settings().LowStockThreshold))
		}
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// initSubscriptions wires the bus observers that react to sales.
func (a *Application) initSubscriptions() {
	err := a.bus.Subscribe(pos.TopicCheckoutCompleted, func(tx *domain.Transaction) {
		zap.S().Infow("sale recorded",
			"receipt", tx.ID,
			"total", tx.Total,
			"customer", tx.CustomerName,
		)
		for _, it := range tx.Items {
			if p, err := a.service.FindProduct(it.ID); err == nil &&
				p.Stock <= a.service.Settings().LowStockThreshold {
				zap.S().Warnf("product %q is low on stock (%d left)", p.Name, p.Stock)
			}
		}
	})
	if err != nil {
		zap.L().Error("bus subscribe failed", zap.Error(err))
	}
}

// BackupNow writes a full export under <workdir>/backup and returns
// the file path.
func (a *Application) BackupNow() (string, error) {
	data, err := a.service.ExportAll()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(a.appConfig.System.Workdir, "backup")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("pos-backup-%s.json", time.Now().Format("2006-01-02")))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
