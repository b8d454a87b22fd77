package evaluation

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"okr/internal/domain/scoring"
)

func draftScores(score float64) []scoring.DetailedScore {
	return []scoring.DetailedScore{
		{CategoryID: "c1", Items: []scoring.DetailedScoreItem{{ItemID: "i1", Score: score}}},
	}
}

func TestAutosaverDebounces(t *testing.T) {
	var saves int32
	saved := make(chan struct{}, 8)
	saver := NewAutosaver(20*time.Millisecond, func(ctx context.Context, scores []scoring.DetailedScore) error {
		atomic.AddInt32(&saves, 1)
		saved <- struct{}{}
		return nil
	})
	defer saver.Stop()

	// Rapid updates inside the debounce window collapse into one save.
	for i := 0; i < 5; i++ {
		saver.Update(draftScores(float64(50 + i)))
		time.Sleep(2 * time.Millisecond)
	}

	select {
	case <-saved:
	case <-time.After(time.Second):
		t.Fatal("expected a save after the debounce delay")
	}
	time.Sleep(50 * time.Millisecond)
	if n := atomic.LoadInt32(&saves); n != 1 {
		t.Fatalf("expected exactly 1 save, got %d", n)
	}
}

func TestAutosaverSuppressesUnchangedContent(t *testing.T) {
	var saves int32
	saver := NewAutosaver(5*time.Millisecond, func(ctx context.Context, scores []scoring.DetailedScore) error {
		atomic.AddInt32(&saves, 1)
		return nil
	})
	defer saver.Stop()

	saver.Update(draftScores(80))
	if err := saver.Flush(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Same content again: the hash check must suppress the save.
	saver.Update(draftScores(80))
	if err := saver.Flush(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := atomic.LoadInt32(&saves); n != 1 {
		t.Fatalf("expected redundant save suppressed, got %d saves", n)
	}

	saver.Update(draftScores(81))
	if err := saver.Flush(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := atomic.LoadInt32(&saves); n != 2 {
		t.Fatalf("expected changed content to save, got %d saves", n)
	}
}

func TestAutosaverNeverOverlapsSaves(t *testing.T) {
	var active, maxActive int32
	var mu sync.Mutex
	saver := NewAutosaver(5*time.Millisecond, func(ctx context.Context, scores []scoring.DetailedScore) error {
		current := atomic.AddInt32(&active, 1)
		mu.Lock()
		if current > maxActive {
			maxActive = current
		}
		mu.Unlock()
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&active, -1)
		return nil
	})
	defer saver.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			saver.Update(draftScores(float64(n)))
			_ = saver.Flush(context.Background())
		}(i)
	}
	wg.Wait()
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if maxActive > 1 {
		t.Fatalf("expected at most one save in flight, saw %d", maxActive)
	}
}

func TestAutosaverFlushWaitsForInFlightSave(t *testing.T) {
	entered := make(chan struct{}, 2)
	release := make(chan struct{})
	var mu sync.Mutex
	var saved []float64
	saver := NewAutosaver(time.Hour, func(ctx context.Context, scores []scoring.DetailedScore) error {
		entered <- struct{}{}
		<-release
		mu.Lock()
		saved = append(saved, scores[0].Items[0].Score)
		mu.Unlock()
		return nil
	})
	defer saver.Stop()

	saver.Update(draftScores(80))
	go func() { _ = saver.Flush(context.Background()) }()
	<-entered

	// A newer edit lands while the first save is still in flight. Flush must
	// not return until that edit is persisted, or a submit right after would
	// freeze the pre-edit draft.
	saver.Update(draftScores(95))
	done := make(chan error, 1)
	go func() { done <- saver.Flush(context.Background()) }()

	select {
	case <-done:
		t.Fatal("flush returned while its snapshot was unsaved")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(saved) != 2 || saved[len(saved)-1] != 95 {
		t.Fatalf("expected the latest edit persisted before flush returned, got %v", saved)
	}
}

func TestAutosaverRetriesAfterFailure(t *testing.T) {
	var attempts int32
	saver := NewAutosaver(5*time.Millisecond, func(ctx context.Context, scores []scoring.DetailedScore) error {
		if atomic.AddInt32(&attempts, 1) == 1 {
			return errors.New("backend unavailable")
		}
		return nil
	})
	defer saver.Stop()

	saver.Update(draftScores(80))
	if err := saver.Flush(context.Background()); err == nil {
		t.Fatal("expected first save to fail")
	}

	// The failed save must not record the hash; the retry goes through.
	saver.Update(draftScores(80))
	if err := saver.Flush(context.Background()); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if n := atomic.LoadInt32(&attempts); n != 2 {
		t.Fatalf("expected 2 attempts, got %d", n)
	}
}

func TestContentHashStable(t *testing.T) {
	a := ContentHash(draftScores(80))
	b := ContentHash(draftScores(80))
	if a == "" || a != b {
		t.Fatalf("expected stable hash, got %q and %q", a, b)
	}
	if c := ContentHash(draftScores(81)); c == a {
		t.Fatal("expected different content to hash differently")
	}
}
