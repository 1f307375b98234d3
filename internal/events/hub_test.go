package events

import (
	"fmt"
	"strings"
	"testing"
)

func TestHubPublishSubscribe(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()
	defer h.Unsubscribe(ch)

	h.Publish(Make("req-1", TypeRecordsChanged, nil))

	select {
	case msg := <-ch:
		if !strings.Contains(msg, TypeRecordsChanged) {
			t.Errorf("message = %s, want a %s event", msg, TypeRecordsChanged)
		}
	default:
		t.Fatal("no event delivered")
	}
}

func TestHubDropsOldestWhenSlow(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()
	defer h.Unsubscribe(ch)

	total := subscriberBuffer + 3
	for i := 0; i < total; i++ {
		h.Publish(fmt.Sprintf("evt-%d", i))
	}

	first := <-ch
	if first != "evt-3" {
		t.Errorf("first queued event = %s, want evt-3 (three oldest dropped)", first)
	}

	last := first
drain:
	for {
		select {
		case msg := <-ch:
			last = msg
		default:
			break drain
		}
	}
	if want := fmt.Sprintf("evt-%d", total-1); last != want {
		t.Errorf("last queued event = %s, want %s", last, want)
	}
}
