package liveness

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivamgupta1319/EasyShare/internal/common"
	"github.com/shivamgupta1319/EasyShare/internal/models"
)

func TestStartPollingValidatesConfig(t *testing.T) {
	checker := NewChecker(nil)
	fetch := func(ctx context.Context, id string) (*models.FileRecord, error) {
		return nil, nil
	}

	cases := []struct {
		name string
		cfg  PollConfig
	}{
		{"missing folder id", PollConfig{Fetch: fetch, Checker: checker}},
		{"missing fetch", PollConfig{FolderID: "f", Checker: checker}},
		{"missing checker", PollConfig{FolderID: "f", Fetch: fetch}},
		{"owner viewer", PollConfig{FolderID: "f", Fetch: fetch, Checker: checker, ViewerIsOwner: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := StartPolling(context.Background(), tc.cfg)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, common.ErrInvalidRequest)
		})
	}
}

func TestPollerReportsStatusChanges(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var live atomic.Bool
	live.Store(true)

	fetch := func(ctx context.Context, id string) (*models.FileRecord, error) {
		rec := folderRecord(t0, true, ownerID)
		if !live.Load() {
			rec.Folder.LastConnected = t0.Add(-time.Hour)
		}
		return rec, nil
	}

	statuses := make(chan Status, 16)
	checker := NewChecker(nil).WithClock(fixedClock(t0))

	p, err := StartPolling(context.Background(), PollConfig{
		FolderID: "folder_test",
		Fetch:    fetch,
		Checker:  checker,
		Interval: 5 * time.Millisecond,
		OnStatus: func(s Status, rec *models.FileRecord) {
			statuses <- s
		},
	})
	require.NoError(t, err)
	defer p.Stop()

	require.Equal(t, StatusConnected, waitFor(t, statuses, StatusConnected))
	assert.Equal(t, StatusConnected, p.Status())

	live.Store(false)
	require.Equal(t, StatusDisconnected, waitFor(t, statuses, StatusDisconnected))
	assert.Equal(t, StatusDisconnected, p.Status())
}

func TestPollerStopHaltsFetching(t *testing.T) {
	var fetches atomic.Int64
	fetch := func(ctx context.Context, id string) (*models.FileRecord, error) {
		fetches.Add(1)
		return folderRecord(time.Now(), true, ownerID), nil
	}

	p, err := StartPolling(context.Background(), PollConfig{
		FolderID: "folder_test",
		Fetch:    fetch,
		Checker:  NewChecker(nil),
		Interval: time.Millisecond,
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return fetches.Load() >= 3 },
		time.Second, time.Millisecond)

	p.Stop()
	after := fetches.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, fetches.Load(), "no fetch may start after Stop returns")

	// Idempotent.
	p.Stop()
}

func TestPollerKeepsLastStatusOnFetchError(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var failing atomic.Bool
	var fetches atomic.Int64

	fetch := func(ctx context.Context, id string) (*models.FileRecord, error) {
		fetches.Add(1)
		if failing.Load() {
			return nil, errors.New("network down")
		}
		return folderRecord(t0, true, ownerID), nil
	}

	p, err := StartPolling(context.Background(), PollConfig{
		FolderID: "folder_test",
		Fetch:    fetch,
		Checker:  NewChecker(nil).WithClock(fixedClock(t0)),
		Interval: time.Millisecond,
	})
	require.NoError(t, err)
	defer p.Stop()

	require.Eventually(t, func() bool { return p.Status() == StatusConnected },
		time.Second, time.Millisecond)

	failing.Store(true)
	before := fetches.Load()
	require.Eventually(t, func() bool { return fetches.Load() > before+2 },
		time.Second, time.Millisecond)

	assert.Equal(t, StatusConnected, p.Status(), "fetch errors keep the last known status")
}

func TestPollerSkipsTickWhileFetchOutstanding(t *testing.T) {
	release := make(chan struct{})
	var started atomic.Int64

	fetch := func(ctx context.Context, id string) (*models.FileRecord, error) {
		started.Add(1)
		select {
		case <-release:
		case <-ctx.Done():
		}
		return folderRecord(time.Now(), true, ownerID), nil
	}

	p, err := StartPolling(context.Background(), PollConfig{
		FolderID: "folder_test",
		Fetch:    fetch,
		Checker:  NewChecker(nil),
		Interval: time.Millisecond,
	})
	require.NoError(t, err)

	// Many intervals pass while the first fetch blocks; ticks are skipped,
	// not queued, so exactly one fetch is outstanding.
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int64(1), started.Load())

	close(release)
	p.Stop()
}

// waitFor drains statuses until want shows up or the test times out.
func waitFor(t *testing.T, statuses <-chan Status, want Status) Status {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case s := <-statuses:
			if s == want {
				return s
			}
		case <-deadline:
			t.Fatalf("timed out waiting for status %v", want)
		}
	}
}
