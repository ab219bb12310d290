package monitor

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/vk/marlgrid/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Emitter sends monitor events somewhere.
type Emitter interface {
	Emit(event string, payload map[string]any) error
	Close() error
}

// socketEmitter emits events over a socket.io connection.
type socketEmitter struct {
	mu sync.Mutex
	io *socket.Socket
}

// Dial connects to a socket.io server and waits for the connection to be
// established or for timeout to pass.
func Dial(ctx context.Context, cfg *Config) (Emitter, error) {
	logger := ctxlog.FromContext(ctx).With("component", Name, "url", cfg.URL)

	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		logger.Warn("Failed to parse timeout, using default 10s", "timeout", cfg.Timeout, "error", err)
		timeout = 10 * time.Second
	}

	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)

	opts := socket.DefaultOptions()
	if parsedURL.Path != "" {
		opts.SetPath(parsedURL.Path)
	}
	if cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(cfg.Namespace, opts)

	done := make(chan error, 1)
	io.On(types.EventName("connect"), func(...any) {
		logger.Info("Monitor connected", "namespace", cfg.Namespace, "sid", io.Id())
		select {
		case done <- nil:
		default:
		}
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		err := fmt.Errorf("monitor connection failed")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = fmt.Errorf("monitor connection failed: %w", e)
			}
		}
		select {
		case done <- err:
		default:
		}
	})

	io.Connect()

	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	select {
	case <-opCtx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("timed out while waiting for monitor connection to %s", cfg.URL)
	case err := <-done:
		if err != nil {
			io.Disconnect()
			return nil, err
		}
	}
	return &socketEmitter{io: io}, nil
}

func (e *socketEmitter) Emit(event string, payload map[string]any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.io.Connected() {
		return fmt.Errorf("monitor socket is not connected")
	}
	e.io.Emit(event, payload)
	return nil
}

func (e *socketEmitter) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.io.Disconnect()
	return nil
}
