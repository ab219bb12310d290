package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/marlgrid/internal/component"
	"github.com/vk/marlgrid/internal/ctxlog"
)

// Validate checks that every component's required components are
// registered. All problems are reported in a single error.
func (r *Registry) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, c := range r.Components() {
		req, ok := c.(component.Requirer)
		if !ok {
			continue
		}
		for _, name := range req.RequiredComponents() {
			if _, found := r.Get(name); !found {
				errs = append(errs, fmt.Sprintf("component '%s' requires '%s', which is not registered", c.Name(), name))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: registry validation failed:\n- %s", ErrMissingRequirement, strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validation passed.", "components", r.Len())
	return nil
}
