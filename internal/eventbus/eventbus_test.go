package eventbus

import "testing"

func TestBusDeliversToAllSubscribers(t *testing.T) {
	bus := New()
	a := bus.Subscribe()
	b := bus.Subscribe()

	bus.Publish("hello")

	if got := <-a; got != "hello" {
		t.Fatalf("subscriber a got %v", got)
	}
	if got := <-b; got != "hello" {
		t.Fatalf("subscriber b got %v", got)
	}
}

func TestBusUnsubscribeClosesChannel(t *testing.T) {
	bus := New()
	ch := bus.Subscribe()
	bus.Unsubscribe(ch)

	if _, ok := <-ch; ok {
		t.Fatal("expected channel to be closed after unsubscribe")
	}
}

func TestBusPublishAfterCloseIsNoop(t *testing.T) {
	bus := New()
	ch := bus.Subscribe()
	bus.Close()
	bus.Publish("late")

	if _, ok := <-ch; ok {
		t.Fatal("expected channel to be closed")
	}
}

func TestBusFullSubscriberDoesNotBlock(t *testing.T) {
	bus := New()
	ch := bus.Subscribe()
	for i := 0; i < subscriberBuffer+5; i++ {
		bus.Publish(i)
	}
	// The first events fit the buffer, the overflow is dropped.
	if got := <-ch; got != 0 {
		t.Fatalf("expected first event, got %v", got)
	}
}
