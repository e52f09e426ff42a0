package render

import (
	"context"

	"github.com/vk/jsonuigo/internal/node"
	"github.com/vk/jsonuigo/internal/renderop"
)

// Sink consumes the result of a walk. One sink is chosen per run.
type Sink interface {
	Consume(ctx context.Context, name string, res *renderop.Result) error
}

// Translate walks root and feeds the result to sink.
func (w *Walker) Translate(ctx context.Context, name string, root *node.Node, sink Sink) (*renderop.Result, error) {
	res := w.Walk(ctx, root)
	if err := sink.Consume(ctx, name, res); err != nil {
		return res, err
	}
	return res, nil
}
