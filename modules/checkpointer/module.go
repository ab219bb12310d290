// Package checkpointer saves parameter server snapshots to disk and restores
// them when the parameter server starts.
package checkpointer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/vk/marlgrid/internal/ctxlog"
	"github.com/vk/marlgrid/internal/registry"
	"github.com/vk/marlgrid/internal/store"
	"github.com/vk/marlgrid/modules/parameterserver"
	"github.com/vmihailenco/msgpack/v5"
)

// Name is the component name.
const Name = "checkpointer"

// FileName is the snapshot file inside the checkpoint directory.
const FileName = "parameters.msgpack"

const snapshotVersion = 1

// lastSaveKey holds the time of the last successful save.
var lastSaveKey = store.NewKey[time.Time]("checkpointer.last_save")

// Module implements the registry.Module interface for this package.
type Module struct{}

// Config is the configuration of the checkpointer component.
type Config struct {
	// CheckpointDir disables checkpointing when empty.
	CheckpointDir string `config:"checkpoint_dir"`

	// MinuteInterval is the minimum time between saves.
	MinuteInterval float64 `config:"checkpoint_minute_interval"`
}

// Snapshot is the on-disk checkpoint format.
type Snapshot struct {
	Version    int                  `msgpack:"version"`
	RunID      string               `msgpack:"run_id"`
	SavedAt    time.Time            `msgpack:"saved_at"`
	Parameters map[string][]float64 `msgpack:"parameters"`
}

// Component checkpoints the parameter server.
type Component struct {
	cfg *Config
	now func() time.Time
}

// New creates the component with defaults.
func New() *Component {
	return &Component{cfg: &Config{MinuteInterval: 5}, now: time.Now}
}

func (c *Component) Name() string { return Name }

func (c *Component) Config() any { return c.cfg }

func (c *Component) RequiredComponents() []string {
	return []string{parameterserver.Name}
}

func (c *Component) path() string {
	return filepath.Join(c.cfg.CheckpointDir, FileName)
}

// OnParameterServerInitCheckpointer restores a previous snapshot. Restored
// values overwrite the freshly created parameters.
func (c *Component) OnParameterServerInitCheckpointer(ctx context.Context, s *store.ParameterServer) error {
	if c.cfg.CheckpointDir == "" {
		return nil
	}
	logger := ctxlog.FromContext(ctx)

	snap, err := Load(c.path())
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("No checkpoint found.", "path", c.path())
		store.Set(s, lastSaveKey, c.now())
		return nil
	}
	if err != nil {
		return err
	}
	for name, v := range snap.Parameters {
		s.Parameters[name] = v
	}
	store.Set(s, lastSaveKey, c.now())
	logger.Info("Restored checkpoint.", "path", c.path(), "run_id", snap.RunID, "saved_at", snap.SavedAt)
	return nil
}

// OnParameterServerRunLoopCheckpoint saves a snapshot once the interval
// has passed.
func (c *Component) OnParameterServerRunLoopCheckpoint(ctx context.Context, s *store.ParameterServer) error {
	if c.cfg.CheckpointDir == "" {
		return nil
	}
	interval := time.Duration(c.cfg.MinuteInterval * float64(time.Minute))
	if last, ok := store.Get(s, lastSaveKey); ok && c.now().Sub(last) < interval {
		return nil
	}
	return c.save(ctx, s)
}

// OnParameterServerRunLoopEnd saves a final snapshot when the server is
// about to terminate.
func (c *Component) OnParameterServerRunLoopEnd(ctx context.Context, s *store.ParameterServer) error {
	if c.cfg.CheckpointDir == "" || !s.Terminate {
		return nil
	}
	return c.save(ctx, s)
}

func (c *Component) save(ctx context.Context, s *store.ParameterServer) error {
	snap := &Snapshot{
		Version:    snapshotVersion,
		RunID:      s.RunID.String(),
		SavedAt:    c.now().UTC(),
		Parameters: s.Parameters.Clone(),
	}
	if err := Save(c.path(), snap); err != nil {
		return err
	}
	store.Set(s, lastSaveKey, c.now())
	ctxlog.FromContext(ctx).Debug("Saved checkpoint.", "path", c.path())
	return nil
}

// Save writes snap to path, replacing any existing file atomically.
func Save(path string, snap *Snapshot) error {
	data, err := msgpack.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode checkpoint: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create checkpoint directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to move checkpoint into place: %w", err)
	}
	return nil
}

// Load reads a snapshot from path.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode checkpoint '%s': %w", path, err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported checkpoint version %d in '%s'", snap.Version, path)
	}
	return &snap, nil
}

// Register adds the component to r.
func (m *Module) Register(r *registry.Registry) error {
	return r.Add(New())
}
