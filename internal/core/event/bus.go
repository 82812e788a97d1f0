package event

import (
	"reflect"
	"sync"
)

// Bus is a double-buffered event bus. Events emitted in tick N are
// delivered in tick N+1, in the order they were emitted. Emit may be called
// from any goroutine; SwapBuffers and DispatchAll belong to the main loop.
type Bus struct {
	mu       sync.Mutex
	front    []any
	back     []any
	handlers map[reflect.Type][]func(any)
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[reflect.Type][]func(any))}
}

// Emit queues an event into the back buffer.
func Emit[T any](b *Bus, event T) {
	b.mu.Lock()
	b.back = append(b.back, event)
	b.mu.Unlock()
}

// Subscribe registers a handler for events of type T. Handlers of one type
// run in subscription order.
func Subscribe[T any](b *Bus, fn func(T)) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.mu.Lock()
	b.handlers[t] = append(b.handlers[t], func(ev any) { fn(ev.(T)) })
	b.mu.Unlock()
}

// SwapBuffers moves everything emitted so far to the front buffer.
// Called once at tick start.
func (b *Bus) SwapBuffers() {
	b.mu.Lock()
	b.front, b.back = b.back, b.front[:0]
	b.mu.Unlock()
}

// Pending counts events waiting in the back buffer.
func (b *Bus) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.back)
}

// DispatchAll delivers the front buffer. Events nobody subscribed to are
// dropped. Handlers may Emit; those events wait for the next swap.
func (b *Bus) DispatchAll() {
	b.mu.Lock()
	handlers := make(map[reflect.Type][]func(any), len(b.handlers))
	for t, hs := range b.handlers {
		handlers[t] = hs
	}
	b.mu.Unlock()

	for _, ev := range b.front {
		for _, h := range handlers[reflect.TypeOf(ev)] {
			h(ev)
		}
	}
	clear(b.front)
	b.front = b.front[:0]
}
