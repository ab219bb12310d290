package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/marlgrid/internal/config"
	"github.com/vk/marlgrid/internal/ctxlog"
)

// selectSystem picks the configured system to run. An explicit name must
// exist; otherwise the configuration must define exactly one system.
func selectSystem(ctx context.Context, model *config.Model, name string) (*config.System, error) {
	logger := ctxlog.FromContext(ctx)
	names := model.SystemNames()

	if name != "" {
		sys, ok := model.Systems[name]
		if !ok {
			return nil, fmt.Errorf("system '%s' is not defined (defined: %s)", name, strings.Join(names, ", "))
		}
		return sys, nil
	}

	switch len(names) {
	case 0:
		return nil, fmt.Errorf("configuration defines no system")
	case 1:
		logger.Debug("Selected the only configured system.", "system", names[0])
		return model.Systems[names[0]], nil
	default:
		return nil, fmt.Errorf("configuration defines %d systems (%s); choose one with -system", len(names), strings.Join(names, ", "))
	}
}
