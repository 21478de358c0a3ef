package notify

import (
	"testing"

	"github.com/LachyC123/bloodline-arena-sub000/internal/combat"
)

func TestBroadcaster_PublishReachesSubscribers(t *testing.T) {
	b := NewBroadcaster()
	id1, ch1 := b.Subscribe("ABC")
	_, ch2 := b.Subscribe("ABC")
	defer b.CloseFight("ABC")

	b.Publish("ABC", Event{FightCode: "ABC", Phase: combat.PhasePlayerTurn, InputEnabled: true})

	for _, ch := range []<-chan Event{ch1, ch2} {
		select {
		case ev := <-ch:
			if ev.Phase != combat.PhasePlayerTurn || !ev.InputEnabled {
				t.Fatalf("unexpected event: %+v", ev)
			}
		default:
			t.Fatalf("subscriber did not receive the event")
		}
	}

	b.Unsubscribe("ABC", id1)
	if got := b.SubscriberCount("ABC"); got != 1 {
		t.Fatalf("expected 1 subscriber left, got %d", got)
	}
	if _, open := <-ch1; open {
		t.Fatalf("expected unsubscribed channel to be closed")
	}
}

func TestBroadcaster_PublishToOtherFightIsIsolated(t *testing.T) {
	b := NewBroadcaster()
	_, ch := b.Subscribe("ABC")
	defer b.CloseFight("ABC")

	b.Publish("XYZ", Event{FightCode: "XYZ"})
	select {
	case ev := <-ch:
		t.Fatalf("unexpected cross-fight event: %+v", ev)
	default:
	}
}

func TestBroadcaster_CloseFightClosesChannels(t *testing.T) {
	b := NewBroadcaster()
	_, ch := b.Subscribe("ABC")
	b.CloseFight("ABC")
	if _, open := <-ch; open {
		t.Fatalf("expected channel closed after fight close")
	}
	if got := b.SubscriberCount("ABC"); got != 0 {
		t.Fatalf("expected no subscribers, got %d", got)
	}
}
