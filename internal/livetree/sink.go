package livetree

import (
	"context"
	"sync"

	"github.com/vk/jsonuigo/internal/datacontext"
	"github.com/vk/jsonuigo/internal/handlers"
	"github.com/vk/jsonuigo/internal/render"
	"github.com/vk/jsonuigo/internal/renderop"
)

// Sink builds live trees from walk results against the current data.
type Sink struct {
	Data     *datacontext.Context
	Handlers *handlers.Handlers

	mu   sync.Mutex
	last *Tree
}

var _ render.Sink = (*Sink)(nil)

// NewSink returns a sink over data. h may be nil.
func NewSink(data *datacontext.Context, h *handlers.Handlers) *Sink {
	if data == nil {
		data = datacontext.New(nil)
	}
	return &Sink{Data: data, Handlers: h}
}

// Consume implements render.Sink.
func (s *Sink) Consume(ctx context.Context, name string, res *renderop.Result) error {
	tree := Build(ctx, name, res, s.Data.Snapshot(), s.Handlers)
	s.mu.Lock()
	s.last = tree
	s.mu.Unlock()
	return nil
}

// Tree returns the most recently built tree, or nil.
func (s *Sink) Tree() *Tree {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}
