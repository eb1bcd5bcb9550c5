package realtime

import (
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestSessionDelayIsLinearAndCapped(t *testing.T) {
	p := DefaultPolicy()

	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 3 * time.Second},
		{2, 6 * time.Second},
		{3, 9 * time.Second},
		{4, 12 * time.Second},
		{5, 15 * time.Second},
		{6, 15 * time.Second},
	}
	for _, c := range cases {
		if got := p.Delay(KindNotifications, c.attempt); got != c.want {
			t.Errorf("Delay(notifications, %d) = %v, want %v", c.attempt, got, c.want)
		}
	}
}

func TestResourceDelayIsExponentialAndCapped(t *testing.T) {
	p := DefaultPolicy()

	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 1 * time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{4, 8 * time.Second},
		{5, 16 * time.Second},
		{6, 30 * time.Second},
		{50, 30 * time.Second},
	}
	for _, kind := range []Kind{KindPost, KindImage} {
		for _, c := range cases {
			if got := p.Delay(kind, c.attempt); got != c.want {
				t.Errorf("Delay(%s, %d) = %v, want %v", kind, c.attempt, got, c.want)
			}
		}
	}
}

func TestDelayIsMonotonic(t *testing.T) {
	p := DefaultPolicy()

	for _, kind := range []Kind{KindNotifications, KindPost} {
		prev := time.Duration(0)
		for attempt := 1; attempt <= 10; attempt++ {
			d := p.Delay(kind, attempt)
			if d < prev {
				t.Errorf("Delay(%s, %d) = %v, less than previous %v", kind, attempt, d, prev)
			}
			prev = d
		}
	}
}

func TestIntentionalCloseCodes(t *testing.T) {
	if !Intentional(websocket.CloseNormalClosure) {
		t.Error("1000 should be intentional")
	}
	if !Intentional(websocket.ClosePolicyViolation) {
		t.Error("1008 should be intentional")
	}
	if Intentional(websocket.CloseAbnormalClosure) {
		t.Error("1006 should not be intentional")
	}
	if Intentional(websocket.CloseGoingAway) {
		t.Error("1001 should not be intentional")
	}
}

func TestShouldReconnect(t *testing.T) {
	p := DefaultPolicy()

	if p.ShouldReconnect(websocket.CloseNormalClosure, 0) {
		t.Error("Intentional close should never reconnect")
	}
	if !p.ShouldReconnect(websocket.CloseAbnormalClosure, 0) {
		t.Error("Abnormal close with budget left should reconnect")
	}
	if !p.ShouldReconnect(websocket.CloseAbnormalClosure, p.MaxAttempts-1) {
		t.Error("Last attempt in the budget should still reconnect")
	}
	if p.ShouldReconnect(websocket.CloseAbnormalClosure, p.MaxAttempts) {
		t.Error("Exhausted budget should not reconnect")
	}
}
