package hcl

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/marlgrid/internal/config"
	"github.com/vk/marlgrid/internal/ctxlog"
	"github.com/vk/marlgrid/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	environ func() []string
}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{environ: os.Environ}
}

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string { return []string{".hcl"} }

// Load orchestrates the entire HCL configuration loading process.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(paths, l.Extensions()...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	evalCtx := l.evalContext()
	model := config.NewModel()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, sb := range root.Systems {
			if err := l.translateSystem(model, sb, evalCtx); err != nil {
				return nil, fmt.Errorf("in %s: %w", file, err)
			}
		}
	}

	logger.Debug("HCL loading complete.", "systems", len(model.Systems))
	return model, nil
}

// translateSystem converts a decoded system block into the agnostic model.
func (l *Loader) translateSystem(model *config.Model, sb *systemBlock, evalCtx *hcl.EvalContext) error {
	sys := model.System(sb.Name)

	if sb.Parameters != nil {
		attrs, err := evaluateBody(sb.Parameters.Body, evalCtx)
		if err != nil {
			return fmt.Errorf("system '%s' parameters: %w", sb.Name, err)
		}
		for name, v := range attrs {
			if err := sys.AddParameter(name, v); err != nil {
				return err
			}
		}
	}

	for _, cb := range sb.Components {
		attrs, err := evaluateBody(cb.Body, evalCtx)
		if err != nil {
			return fmt.Errorf("system '%s', component '%s': %w", sb.Name, cb.Name, err)
		}
		if err := sys.AddComponent(cb.Name, attrs); err != nil {
			return err
		}
	}
	return nil
}

// evaluateBody evaluates every attribute of a free-form body.
func evaluateBody(body hcl.Body, evalCtx *hcl.EvalContext) (map[string]cty.Value, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	out := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return nil, diags
		}
		out[name] = val
	}
	return out, nil
}

// evalContext exposes environment variables as `env.<NAME>`.
func (l *Loader) evalContext() *hcl.EvalContext {
	env := make(map[string]cty.Value)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		env[name] = cty.StringVal(value)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(env),
		},
	}
}
