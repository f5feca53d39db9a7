package db

import (
	"context"
	"errors"
	"testing"
)

type fakePinger struct {
	err         error
	hasDeadline bool
}

func (f *fakePinger) Ping(ctx context.Context) error {
	_, f.hasDeadline = ctx.Deadline()
	return f.err
}

func TestPingAppliesTimeout(t *testing.T) {
	p := &fakePinger{}
	if err := Ping(context.Background(), p); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if !p.hasDeadline {
		t.Fatalf("expected ping context with deadline")
	}
}

func TestPingPropagatesError(t *testing.T) {
	want := errors.New("down")
	if err := Ping(context.Background(), &fakePinger{err: want}); !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func TestNewPoolRejectsBadURL(t *testing.T) {
	if _, err := NewPool(context.Background(), "postgres://%zz/audit"); err == nil {
		t.Fatalf("expected parse error")
	}
}
