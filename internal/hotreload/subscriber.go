package hotreload

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/jsonuigo/internal/ctxlog"
)

// ConnectTimeout bounds how long Subscribe waits for the first connection.
const ConnectTimeout = 15 * time.Second

// ErrConnectRefused is returned when the server rejects the connection.
var ErrConnectRefused = errors.New("connection refused by hot reload server")

// Subscribe connects to a hot reload server at rawURL and calls fn for every
// change it broadcasts, until ctx is done.
func Subscribe(ctx context.Context, rawURL string, fn func(Change)) error {
	logger := ctxlog.FromContext(ctx).With("url", rawURL)

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}

	opts := socket.DefaultOptions()
	if parsedURL.Path != "" && parsedURL.Path != "/" {
		opts.SetPath(parsedURL.Path)
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket("/", opts)
	defer io.Disconnect()

	for _, typ := range []ChangeType{FileAdded, FileChanged, FileRemoved} {
		io.On(types.EventName(typ), func(args ...any) {
			if len(args) == 0 {
				return
			}
			c, err := decodeChange(args[0])
			if err != nil {
				logger.Warn("Ignoring malformed change message.", "error", err)
				return
			}
			fn(c)
		})
	}

	connectChan := make(chan error, 1)
	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("🔌 Connected to hot reload server", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(args ...any) {
		connectChan <- connectError(args...)
	})

	logger.Debug("Initiating connection...")
	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			return fmt.Errorf("socket.io connection failed: %w", err)
		}
	case <-ctx.Done():
		return nil
	case <-time.After(ConnectTimeout):
		return fmt.Errorf("timed out after %s waiting for socket.io connection", ConnectTimeout)
	}

	<-ctx.Done()
	logger.Debug("Hot reload subscription ended.")
	return nil
}

// connectError turns the arguments of a connect_error event into an error.
// The event may arrive without a payload.
func connectError(args ...any) error {
	if len(args) == 0 || args[0] == nil {
		return ErrConnectRefused
	}
	if err, ok := args[0].(error); ok {
		return err
	}
	return fmt.Errorf("%w: %v", ErrConnectRefused, args[0])
}

// decodeChange accepts the payload in whatever shape the socket parser
// produced it and converts it to a Change.
func decodeChange(payload any) (Change, error) {
	var c Change
	var data []byte
	switch p := payload.(type) {
	case []byte:
		data = p
	case string:
		data = []byte(p)
	default:
		var err error
		if data, err = json.Marshal(p); err != nil {
			return c, err
		}
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, err
	}
	if c.Type == "" {
		return c, fmt.Errorf("change message without a type")
	}
	return c, nil
}
