package rate_limiter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMiddleware_BlocksAfterBurst(t *testing.T) {
	l := New(0.001, 2)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := []int{}
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/productos", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("expected burst of 2 to pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("expected third request to be limited, got %d", codes[2])
	}

	// A different client has its own bucket.
	req := httptest.NewRequest(http.MethodGet, "/api/productos", nil)
	req.RemoteAddr = "10.0.0.2:5555"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected other client to pass, got %d", w.Code)
	}
}

func TestCleanup_RemovesIdleVisitors(t *testing.T) {
	l := New(1, 3)
	l.GetVisitor("10.0.0.1")
	l.GetVisitor("10.0.0.2")

	l.Cleanup(time.Hour)
	if n := l.Visitors(); n != 2 {
		t.Fatalf("expected recent visitors to stay, got %d", n)
	}

	l.Cleanup(-time.Second)
	if n := l.Visitors(); n != 0 {
		t.Errorf("expected idle visitors to be removed, got %d", n)
	}
}

func TestRunCleanupLoop_StopsOnCancel(t *testing.T) {
	l := New(1, 3)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- l.RunCleanupLoop(ctx, time.Millisecond, time.Minute) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected nil error, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("cleanup loop did not stop")
	}
}
