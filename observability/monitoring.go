package observability

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

const maxRecentTransfers = 20

// RecentTransferInfo is one line of the recent transfers list.
type RecentTransferInfo struct {
	ID          string `json:"id"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Amount      string `json:"amount"`
	Timestamp   string `json:"timestamp"`
}

// MonitoringStats aggregates the ledger counters at a point in time.
type MonitoringStats struct {
	TransfersCommitted     uint64 `json:"transfers_committed"`
	TransfersRejected      uint64 `json:"transfers_rejected"`
	TransfersCompensated   uint64 `json:"transfers_compensated"`
	NotificationsDelivered uint64 `json:"notifications_delivered"`
	NotificationsFailed    uint64 `json:"notifications_failed"`
	NotificationsDropped   uint64 `json:"notifications_dropped"`

	CurrentQueueSize int `json:"current_queue_size"`
	MaxQueueCapacity int `json:"max_queue_capacity"`

	AllocMemMb      uint64               `json:"alloc_mem_mb"`
	NumGC           uint32               `json:"num_gc"`
	RecentTransfers []RecentTransferInfo `json:"recent_transfers"`
}

// MonitoringManager collects ledger counters. Every method is safe for concurrent use
// and none of them is ever called while a balance is being updated.
type MonitoringManager struct {
	mu sync.RWMutex

	committed   atomic.Uint64
	rejected    atomic.Uint64
	compensated atomic.Uint64
	delivered   atomic.Uint64
	failed      atomic.Uint64
	dropped     atomic.Uint64

	queueSize       int
	queueCapacity   int
	recentTransfers []RecentTransferInfo
}

func NewMonitoringManager() *MonitoringManager {
	return &MonitoringManager{recentTransfers: make([]RecentTransferInfo, 0)}
}

func (mm *MonitoringManager) IncrCommitted()   { mm.committed.Add(1) }
func (mm *MonitoringManager) IncrRejected()    { mm.rejected.Add(1) }
func (mm *MonitoringManager) IncrCompensated() { mm.compensated.Add(1) }
func (mm *MonitoringManager) IncrDelivered()   { mm.delivered.Add(1) }
func (mm *MonitoringManager) IncrFailed()      { mm.failed.Add(1) }
func (mm *MonitoringManager) IncrDropped()     { mm.dropped.Add(1) }

// AddRecentTransfer pushes a committed transfer on top of the recent list.
func (mm *MonitoringManager) AddRecentTransfer(id, source, destination, amount string) {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	info := RecentTransferInfo{
		ID:          id,
		Source:      source,
		Destination: destination,
		Amount:      amount,
		Timestamp:   time.Now().Format("15:04:05"),
	}
	mm.recentTransfers = append([]RecentTransferInfo{info}, mm.recentTransfers...)
	if len(mm.recentTransfers) > maxRecentTransfers {
		mm.recentTransfers = mm.recentTransfers[:maxRecentTransfers]
	}
}

func (mm *MonitoringManager) UpdateQueue(size, capacity int) {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	mm.queueSize = size
	mm.queueCapacity = capacity
}

// Snapshot reads every counter along with the Go memory stats.
func (mm *MonitoringManager) Snapshot() MonitoringStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	mm.mu.RLock()
	defer mm.mu.RUnlock()

	recent := make([]RecentTransferInfo, len(mm.recentTransfers))
	copy(recent, mm.recentTransfers)

	return MonitoringStats{
		TransfersCommitted:     mm.committed.Load(),
		TransfersRejected:      mm.rejected.Load(),
		TransfersCompensated:   mm.compensated.Load(),
		NotificationsDelivered: mm.delivered.Load(),
		NotificationsFailed:    mm.failed.Load(),
		NotificationsDropped:   mm.dropped.Load(),
		CurrentQueueSize:       mm.queueSize,
		MaxQueueCapacity:       mm.queueCapacity,
		AllocMemMb:             m.Alloc / 1024 / 1024,
		NumGC:                  m.NumGC,
		RecentTransfers:        recent,
	}
}
