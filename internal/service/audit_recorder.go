package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jobtrack/jobtrack-api/internal/domain"
	"github.com/jobtrack/jobtrack-api/internal/repository"
)

// AuditRecorder accepts audit entries without blocking the request
// path. Entries are persisted by a background writer; when the buffer
// is full the entry is dropped and counted, never the request.
type AuditRecorder struct {
	repo    repository.AuditLogRepository
	logger  *zap.Logger
	entries chan *domain.AuditLog

	closeOnce sync.Once
	done      chan struct{}

	mu      sync.Mutex
	dropped int64
}

// NewAuditRecorder starts the background writer with the given buffer size
func NewAuditRecorder(repo repository.AuditLogRepository, logger *zap.Logger, bufferSize int) *AuditRecorder {
	if bufferSize <= 0 {
		bufferSize = 256
	}
	r := &AuditRecorder{
		repo:    repo,
		logger:  logger,
		entries: make(chan *domain.AuditLog, bufferSize),
		done:    make(chan struct{}),
	}
	go r.run()
	return r
}

// Record enqueues an audit entry. It never blocks; a full buffer drops
// the entry.
func (r *AuditRecorder) Record(entry *domain.AuditLog) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	select {
	case r.entries <- entry:
	default:
		r.mu.Lock()
		r.dropped++
		dropped := r.dropped
		r.mu.Unlock()
		r.logger.Warn("audit buffer full, entry dropped",
			zap.String("endpoint", entry.Endpoint),
			zap.Int64("total_dropped", dropped))
	}
}

// Dropped returns how many entries have been discarded since start
func (r *AuditRecorder) Dropped() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// Close stops accepting entries and waits for the writer to drain
func (r *AuditRecorder) Close() {
	r.closeOnce.Do(func() {
		close(r.entries)
		<-r.done
	})
}

func (r *AuditRecorder) run() {
	defer close(r.done)
	for entry := range r.entries {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := r.repo.Create(ctx, entry); err != nil {
			r.logger.Error("failed to persist audit entry",
				zap.String("action", string(entry.Action)),
				zap.String("endpoint", entry.Endpoint),
				zap.Error(err))
		}
		cancel()
	}
}
