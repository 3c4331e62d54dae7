package eventbus

import "testing"

func TestPublishSubscribe(t *testing.T) {
	b := New()
	defer b.Close()
	sub := b.Subscribe()

	b.Publish("hello")
	select {
	case e := <-sub:
		if e != "hello" {
			t.Fatalf("got %v, want hello", e)
		}
	default:
		t.Fatalf("subscriber missed the event")
	}
}

func TestFanOut(t *testing.T) {
	b := New()
	defer b.Close()
	a := b.Subscribe()
	c := b.Subscribe()

	b.Publish(42)
	for _, sub := range []<-chan Event{a, c} {
		select {
		case e := <-sub:
			if e != 42 {
				t.Fatalf("got %v, want 42", e)
			}
		default:
			t.Fatalf("one subscriber missed the event")
		}
	}
}

func TestSlowSubscriberDoesNotBlock(t *testing.T) {
	b := New()
	defer b.Close()
	sub := b.Subscribe()

	// Overfill the buffer; publishes must return regardless.
	for i := 0; i < 200; i++ {
		b.Publish(i)
	}
	got := 0
	for {
		select {
		case <-sub:
			got++
			continue
		default:
		}
		break
	}
	if got != 64 {
		t.Fatalf("buffered %d events, want the 64-slot buffer", got)
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	b := New()
	defer b.Close()
	sub := b.Subscribe()
	b.Unsubscribe(sub)

	if _, ok := <-sub; ok {
		t.Fatalf("channel must be closed after unsubscribe")
	}
	// Publishing after unsubscribe must not panic.
	b.Publish("late")
}

func TestCloseIsTerminal(t *testing.T) {
	b := New()
	sub := b.Subscribe()
	b.Close()

	if _, ok := <-sub; ok {
		t.Fatalf("channel must be closed after bus close")
	}
	b.Publish("ignored")
	b.Close() // idempotent

	late := b.Subscribe()
	if _, ok := <-late; ok {
		t.Fatalf("subscribing to a closed bus must yield a closed channel")
	}
}
