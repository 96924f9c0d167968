package services

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/salesgo/backend/internal/infrastructure/journal"
)

// PrunerConfig controls how often and how far back the journal is trimmed.
type PrunerConfig struct {
	Interval  time.Duration
	Retention time.Duration
}

// JournalPruner periodically removes journal entries past the retention
// window so the local event log stays bounded.
type JournalPruner struct {
	store  *journal.Store
	logger *zap.Logger
	cron   *cron.Cron
	cfg    PrunerConfig
}

func NewJournalPruner(store *journal.Store, logger *zap.Logger, cfg PrunerConfig) *JournalPruner {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 7 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	jp := &JournalPruner{
		store:  store,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = jp.cron.AddFunc(schedule, func() {
		if err := jp.Prune(); err != nil {
			jp.logger.Error("journal prune failed", zap.Error(err))
		}
	})

	return jp
}

// Start launches the cron scheduler.
func (jp *JournalPruner) Start() {
	if jp == nil || jp.cron == nil {
		return
	}
	jp.cron.Start()
	jp.logger.Info("journal pruner started")
}

// Stop gracefully stops the scheduler.
func (jp *JournalPruner) Stop() {
	if jp == nil || jp.cron == nil {
		return
	}
	<-jp.cron.Stop().Done()
	jp.logger.Info("journal pruner stopped")
}

// Prune trims entries older than the retention window.
func (jp *JournalPruner) Prune() error {
	if jp == nil || jp.store == nil {
		return nil
	}
	cutoff := time.Now().Add(-jp.cfg.Retention)
	if err := jp.store.Prune(cutoff); err != nil {
		return err
	}
	if size, err := jp.store.Size(); err == nil {
		jp.logger.Debug("journal pruned", zap.Time("cutoff", cutoff), zap.Int("remaining", size))
	}
	return nil
}
