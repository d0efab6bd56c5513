package ratelimiter

import (
	"sync"
	"testing"
	"time"
)

func TestAllow_Burst(t *testing.T) {
	rl := New(0.0001, 3, time.Hour) // effectively no refill during the test

	for i := 0; i < 3; i++ {
		if !rl.Allow("u1") {
			t.Fatalf("request %d should be allowed within capacity", i+1)
		}
	}
	if rl.Allow("u1") {
		t.Error("request over capacity should be denied")
	}
}

func TestAllow_IdentitiesIsolated(t *testing.T) {
	rl := New(0.0001, 1, time.Hour)

	if !rl.Allow("u1") {
		t.Fatal("first request for u1 should pass")
	}
	if rl.Allow("u1") {
		t.Error("second request for u1 should be denied")
	}
	if !rl.Allow("u2") {
		t.Error("u2 has its own bucket and should pass")
	}
}

func TestAllow_Refill(t *testing.T) {
	rl := New(100, 1, time.Hour) // 100 tokens/sec

	if !rl.Allow("u1") {
		t.Fatal("first request should pass")
	}
	time.Sleep(30 * time.Millisecond) // ~3 tokens refilled, capped at 1
	if !rl.Allow("u1") {
		t.Error("request after refill should pass")
	}
}

func TestAllow_Concurrent(t *testing.T) {
	rl := New(0.0001, 50, time.Hour)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if rl.Allow("u1") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != 50 {
		t.Errorf("expected exactly 50 allowed, got %d", allowed)
	}
}
