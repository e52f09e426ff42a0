package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/jsonuigo/internal/ctxlog"
	"github.com/vk/jsonuigo/internal/renderop"
)

// ValidateRegistry checks that every kind in the closed set has a handler
// and that every type alias points at a known kind.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, kind := range renderop.Kinds() {
		if _, ok := r.handlers[kind]; !ok {
			errs = append(errs, fmt.Sprintf("kind '%s' has no registered handler", kind))
		}
	}
	for _, alias := range sortedAliases() {
		if aliases[alias] == renderop.KindUnknown {
			errs = append(errs, fmt.Sprintf("type alias '%s' maps to the unknown kind", alias))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validated.", "handlers", len(r.handlers), "aliases", len(aliases))
	return nil
}
