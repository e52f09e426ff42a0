// Package testutil holds the harness the integration tests use to build a
// project tree on disk and start the application against it.
package testutil

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/jsonuigo/internal/app"
	"github.com/vk/jsonuigo/internal/hcl"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// DefaultProjectFile is the jsonui.hcl written when a test provides none.
const DefaultProjectFile = `
project "demo" {
  package_name = "com.example.demo"
}
`

// WriteProject writes files below a fresh temporary root and returns it.
// Paths are slash separated and relative to the root. A jsonui.hcl is added
// unless files has one.
func WriteProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	if files == nil {
		files = map[string]string{}
	}
	if _, ok := files["jsonui.hcl"]; !ok {
		files["jsonui.hcl"] = DefaultProjectFile
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

// HarnessResult holds the outcome of starting the application.
type HarnessResult struct {
	Root string
	// Output receives both the logs and anything the app prints.
	Output *SafeBuffer
	// Err is set when the application panicked during startup.
	Err error
	App *app.App
}

// StartApp writes the project and starts the application in it. cfg.WorkDir
// is set to the project root and the log level to debug.
func StartApp(t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()
	root := WriteProject(t, files)

	cfg.WorkDir = root
	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out := &SafeBuffer{}
	res := &HarnessResult{Root: root, Output: out}
	func() {
		defer func() {
			if r := recover(); r != nil {
				res.Err = fmt.Errorf("application startup panicked | %v", r)
			}
		}()
		res.App = app.NewApp(out, appConfig, hcl.NewLoader())
	}()

	t.Cleanup(func() {
		if os.Getenv("JSONUI_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), out.String())
		}
	})
	return res
}
