package cqrs

import (
	"context"
	"errors"
	"testing"
)

type testRequest struct {
	name string
}

func (r testRequest) RequestName() string { return r.name }

func TestExecuteRoutesToRegisteredHandler(t *testing.T) {
	bus := NewBus()
	err := bus.Register("do_thing", HandlerFunc(func(ctx context.Context, req Request) (interface{}, error) {
		return "done", nil
	}))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	res, err := bus.Execute(context.Background(), testRequest{name: "do_thing"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.(string) != "done" {
		t.Fatalf("unexpected result %v", res)
	}
}

func TestExecuteUnknownRequest(t *testing.T) {
	bus := NewBus()
	_, err := bus.Execute(context.Background(), testRequest{name: "nope"})
	if !errors.Is(err, ErrHandlerNotFound) {
		t.Fatalf("expected ErrHandlerNotFound, got %v", err)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	bus := NewBus()
	h := HandlerFunc(func(ctx context.Context, req Request) (interface{}, error) { return nil, nil })
	if err := bus.Register("do_thing", h); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if err := bus.Register("do_thing", h); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
}

func TestRegisterRejectsNilHandlerAndEmptyName(t *testing.T) {
	bus := NewBus()
	if err := bus.Register("do_thing", nil); err == nil {
		t.Fatal("expected nil handler to fail")
	}
	h := HandlerFunc(func(ctx context.Context, req Request) (interface{}, error) { return nil, nil })
	if err := bus.Register("", h); err == nil {
		t.Fatal("expected empty name to fail")
	}
}

func TestExecutePropagatesHandlerErrorUnwrapped(t *testing.T) {
	sentinel := errors.New("boom")
	bus := NewBus()
	_ = bus.Register("do_thing", HandlerFunc(func(ctx context.Context, req Request) (interface{}, error) {
		return nil, sentinel
	}))

	_, err := bus.Execute(context.Background(), testRequest{name: "do_thing"})
	if err != sentinel {
		t.Fatalf("expected the handler error identity, got %v", err)
	}
}
