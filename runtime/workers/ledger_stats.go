package workers

import (
	"context"
	"ledger-lab/domain"
	"ledger-lab/observability"
	"ledger-lab/repositories"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

// LedgerStatsWorker periodically logs process health and ledger totals.
type LedgerStatsWorker struct {
	log        *slog.Logger
	accounts   repositories.IAccountRepository
	monitoring *observability.MonitoringManager
	interval   time.Duration
}

func NewLedgerStatsWorker(log *slog.Logger, accounts repositories.IAccountRepository,
	monitoring *observability.MonitoringManager, interval time.Duration) *LedgerStatsWorker {
	return &LedgerStatsWorker{log: log, accounts: accounts, monitoring: monitoring, interval: interval}
}

func (w *LedgerStatsWorker) Run(ctx context.Context) error {
	w.log.Info("Starting ledger stats worker", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.Report(p)
		}
	}
}

// Report logs one line of stats. The account total is read account by account,
// so under load it is a sum of snapshots and not a point-in-time figure.
func (w *LedgerStatsWorker) Report(p *process.Process) {
	accounts := w.accounts.ListAccounts()
	stats := w.monitoring.Snapshot()

	attrs := []any{
		"accounts", len(accounts),
		"total_balance", domain.Sum(accounts).String(),
		"committed", stats.TransfersCommitted,
		"rejected", stats.TransfersRejected,
		"compensated", stats.TransfersCompensated,
		"notifications_delivered", stats.NotificationsDelivered,
		"notifications_dropped", stats.NotificationsDropped,
		"queue", stats.CurrentQueueSize,
	}

	if p != nil {
		rss, cpu, err := getSelfStats(p)
		if err != nil {
			w.log.Error("Failed to collect self stats", "err", err)
		} else {
			attrs = append(attrs, "rss_mb", rss/1024/1024, "cpu_percent", cpu)
		}
	}
	w.log.Info("Ledger stats", attrs...)
}

func getSelfStats(p *process.Process) (uint64, float64, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, err
	}
	return memInfo.RSS, cpuPercent, nil
}
