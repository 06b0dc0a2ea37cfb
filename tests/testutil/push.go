package testutil

import (
	"sync"

	"github.com/agno/worksphere/internal/model"
)

// FakePush implements notify.PushSource for tests.
type FakePush struct {
	mu           sync.Mutex
	handlers     map[int]func(model.Notification)
	nextID       int
	Unsubscribes int
}

func NewFakePush() *FakePush {
	return &FakePush{handlers: make(map[int]func(model.Notification))}
}

func (p *FakePush) Subscribe(handler func(model.Notification)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextID
	p.nextID++
	p.handlers[id] = handler

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.handlers, id)
		p.Unsubscribes++
	}
}

// Emit delivers a pushed notification to every subscriber.
func (p *FakePush) Emit(n model.Notification) {
	p.mu.Lock()
	handlers := make([]func(model.Notification), 0, len(p.handlers))
	for _, h := range p.handlers {
		handlers = append(handlers, h)
	}
	p.mu.Unlock()

	for _, h := range handlers {
		h(n)
	}
}
