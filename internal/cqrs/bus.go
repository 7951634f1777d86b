// Package cqrs provides the in-process command/query bus and the domain
// event bus. Dispatch is synchronous: Execute runs the single registered
// handler for the request's name in the calling goroutine.
package cqrs

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrHandlerNotFound is returned by Execute when no handler is registered for
// the request's name.
var ErrHandlerNotFound = errors.New("no handler registered for request")

// Request is a plain data record dispatched through the bus. RequestName must
// be stable: it is the registration key.
type Request interface {
	RequestName() string
}

// Handler owns exactly one request name.
type Handler interface {
	Handle(ctx context.Context, req Request) (interface{}, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, req Request) (interface{}, error)

func (f HandlerFunc) Handle(ctx context.Context, req Request) (interface{}, error) {
	return f(ctx, req)
}

// Bus routes a request to its single registered handler. At most one handler
// per request name; a duplicate registration is a startup configuration error.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[string]Handler)}
}

func (b *Bus) Register(name string, h Handler) error {
	if h == nil {
		return fmt.Errorf("nil handler")
	}
	if name == "" {
		return fmt.Errorf("empty request name")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.handlers[name]; exists {
		return fmt.Errorf("handler already registered for request=%s", name)
	}
	b.handlers[name] = h
	return nil
}

// Execute dispatches req synchronously and returns the handler's result.
// Handler errors propagate unwrapped.
func (b *Bus) Execute(ctx context.Context, req Request) (interface{}, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}
	b.mu.RLock()
	h, ok := b.handlers[req.RequestName()]
	b.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrHandlerNotFound, req.RequestName())
	}
	return h.Handle(ctx, req)
}
