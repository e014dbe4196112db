package liveness

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shivamgupta1319/EasyShare/internal/common"
	"github.com/shivamgupta1319/EasyShare/internal/models"
)

// DefaultPollInterval is how often a guest re-fetches a folder record to
// recompute its connection status.
const DefaultPollInterval = 10 * time.Second

// FetchFunc re-fetches a folder record by id.
type FetchFunc func(ctx context.Context, folderID string) (*models.FileRecord, error)

// PollConfig configures a guest polling loop.
type PollConfig struct {
	FolderID string
	Fetch    FetchFunc
	Checker  *Checker
	// ViewerIsOwner guards against misuse: polling exists only for guests
	// viewing a folder they do not own, and StartPolling refuses to start
	// for an owner.
	ViewerIsOwner bool
	// Interval defaults to DefaultPollInterval.
	Interval time.Duration
	// OnStatus, when set, receives every recomputed status with the
	// freshly fetched record.
	OnStatus func(status Status, rec *models.FileRecord)
	// Logger defaults to slog.Default. Fetch failures are logged and
	// otherwise swallowed, leaving the last known status in place.
	Logger *slog.Logger
}

// Poller is a running polling loop. It owns a single goroutine and must be
// stopped with Stop when its viewer goes away; otherwise it keeps issuing
// fetches forever.
type Poller struct {
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once

	status   atomic.Int64
	inFlight atomic.Bool
}

// StartPolling launches the loop: one immediate check, then one per
// interval. A tick is skipped, not queued, while a previous fetch is still
// outstanding, so at most one fetch is ever in flight. It returns
// ErrInvalidRequest when the config is incomplete or the viewer owns the
// folder.
func StartPolling(ctx context.Context, cfg PollConfig) (*Poller, error) {
	if cfg.FolderID == "" || cfg.Fetch == nil || cfg.Checker == nil {
		return nil, common.ErrInvalidRequest
	}
	if cfg.ViewerIsOwner {
		return nil, common.ErrInvalidRequest
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultPollInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(ctx)
	p := &Poller{
		cancel: cancel,
		done:   make(chan struct{}),
	}
	p.status.Store(int64(StatusUnknown))

	go p.run(ctx, cfg)
	return p, nil
}

// Status returns the last computed status.
func (p *Poller) Status() Status {
	return Status(p.status.Load())
}

// Stop tears the loop down. It is idempotent and returns once the loop
// has exited; no fetch is started after Stop returns.
func (p *Poller) Stop() {
	p.stopOnce.Do(p.cancel)
	<-p.done
}

func (p *Poller) run(ctx context.Context, cfg PollConfig) {
	defer close(p.done)

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	p.tick(ctx, cfg)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx, cfg)
		}
	}
}

func (p *Poller) tick(ctx context.Context, cfg PollConfig) {
	if !p.inFlight.CompareAndSwap(false, true) {
		return
	}
	defer p.inFlight.Store(false)

	rec, err := cfg.Fetch(ctx, cfg.FolderID)
	if err != nil {
		if ctx.Err() == nil {
			cfg.Logger.Debug("poll fetch failed, keeping last status",
				"folderId", cfg.FolderID, "err", err)
		}
		return
	}

	status := cfg.Checker.Check(ctx, rec, false)
	p.status.Store(int64(status))
	if cfg.OnStatus != nil {
		cfg.OnStatus(status, rec)
	}
}
