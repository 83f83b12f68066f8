package app

import (
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/tillworks/tillpos/config"
	"github.com/tillworks/tillpos/internal/pos"
	"github.com/tillworks/tillpos/internal/store"
)

const storeFilename = "tillpos.db"

// Application owns the process-lifetime resources: configuration, the
// persistence store, the POS service, the event bus and the job
// scheduler. It is constructed once in main and passed by handle.
type Application struct {
	appConfig *config.AppConfig
	store     *store.Store
	service   *pos.Service
	bus       EventBus.Bus
	sched     *cron.Cron
}

// Ensure Application satisfies the provider interfaces.
var (
	_ ServiceProvider   = (*Application)(nil)
	_ StoreProvider     = (*Application)(nil)
	_ ConfigProvider    = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig { return a.appConfig }
func (a *Application) Store() *store.Store       { return a.store }
func (a *Application) Service() *pos.Service     { return a.service }
func (a *Application) Bus() EventBus.Bus         { return a.bus }
func (a *Application) Scheduler() *cron.Cron     { return a.sched }

func (a *Application) Init() error {
	cfg := a.appConfig

	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	a.initLogger()

	st, err := store.Open(filepath.Join(cfg.System.Workdir, storeFilename))
	if err != nil {
		return err
	}
	a.store = st
	zap.S().Infof("store opened at %s", st.Path())

	a.bus = EventBus.New()

	a.service, err = pos.NewService(st, a.bus, cfg.System.Cashier)
	if err != nil {
		return err
	}

	a.checkSettings()
	a.checkProducts()
	a.checkCustomers()

	a.initSubscriptions()
	a.initJob()
	return nil
}

func (a *Application) initLogger() {
	cfg := a.appConfig

	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller())
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller())
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)
}

// InitDb wipes every stored collection and reseeds first-run data.
func (a *Application) InitDb() error {
	if err := a.service.ClearAllData(); err != nil {
		return err
	}
	a.checkSettings()
	a.checkProducts()
	a.checkCustomers()
	return nil
}

// Release stops background jobs and closes the store.
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			zap.L().Error("failed to close store", zap.Error(err))
		}
	}
	_ = zap.L().Sync()
}
