package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerStops(t *testing.T) {
	s := startSpinner(context.Background(), "net.pdf")
	time.Sleep(100 * time.Millisecond)
	s.stop()

	if s.interrupted() {
		t.Error("a normal stop is not an interruption")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := startSpinner(context.Background(), "net.pdf")
	s.stop()
	s.stop()
	s.stop()
}

func TestSpinnerFollowsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := startSpinner(ctx, "net.png")

	cancel()
	<-s.finished

	if !s.interrupted() {
		t.Error("spinner should report interruption after context cancellation")
	}
}

func TestSpinnerFollowsTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := startSpinner(ctx, "net.svg")
	<-s.finished

	if !s.interrupted() {
		t.Error("spinner should report interruption after context timeout")
	}
}

func TestSpinnerFail(t *testing.T) {
	s := startSpinner(context.Background(), "net.pdf")
	time.Sleep(50 * time.Millisecond)
	s.fail()
}
