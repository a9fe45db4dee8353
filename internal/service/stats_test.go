package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/persistorai/graphkernel/internal/models"
)

func TestStatsService_Caches(t *testing.T) {
	store := &mockStatsStore{stats: models.GraphStats{Nodes: 3, Edges: 2}}
	svc := NewStatsService(store, time.Minute, testLogger())

	for range 3 {
		st, err := svc.Stats(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if st.Nodes != 3 || st.Edges != 2 {
			t.Errorf("stats = %+v", st)
		}
	}

	if store.callCount() != 1 {
		t.Errorf("store called %d times, want 1", store.callCount())
	}

	svc.invalidate()

	if _, err := svc.Stats(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.callCount() != 2 {
		t.Errorf("store called %d times after invalidate, want 2", store.callCount())
	}
}

func TestStatsService_ConcurrentCallers(t *testing.T) {
	store := &mockStatsStore{gate: make(chan struct{}), stats: models.GraphStats{Nodes: 1}}
	svc := NewStatsService(store, 0, testLogger())

	var wg sync.WaitGroup

	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if _, err := svc.Stats(context.Background()); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}

	// Wait for the first caller to reach the store before releasing it.
	deadline := time.Now().Add(5 * time.Second)
	for store.callCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	time.Sleep(20 * time.Millisecond)
	close(store.gate)
	wg.Wait()

	if n := store.callCount(); n < 1 || n > 8 {
		t.Errorf("store called %d times", n)
	}
}

func TestStatsService_Error(t *testing.T) {
	svc := NewStatsService(&mockStatsStore{err: errDB}, time.Minute, testLogger())

	if _, err := svc.Stats(context.Background()); !errors.Is(err, errDB) {
		t.Errorf("error = %v, want %v", err, errDB)
	}

	var nilStats *StatsService
	nilStats.invalidate()
}
