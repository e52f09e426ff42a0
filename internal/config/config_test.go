package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind_WalksUpward(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte(`project "x" {}`), 0o644))

	path, err := Find(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, FileName), path)
}

func TestFind_NotFound(t *testing.T) {
	_, err := Find(t.TempDir())
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name     string
		mutate   func(m *Model)
		expected []string
	}{
		{name: "defaults are valid", mutate: func(*Model) {}},
		{
			name:     "bad columns",
			mutate:   func(m *Model) { m.Project.DefaultColumns = 0 },
			expected: []string{"default_columns must be positive, got 0"},
		},
		{
			name: "aggregated",
			mutate: func(m *Model) {
				m.Project.PackageName = "com..ui"
				m.Hotloader.Port = 70000
			},
			expected: []string{"package_name 'com..ui'", "hotloader.port 70000 is out of range"},
		},
		{
			name:     "package segment starts with digit",
			mutate:   func(m *Model) { m.Project.PackageName = "com.1ui" },
			expected: []string{"package_name 'com.1ui'"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := Default("/project")
			tc.mutate(m)
			err := m.Validate()
			if len(tc.expected) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, s := range tc.expected {
				assert.Contains(t, err.Error(), s)
			}
		})
	}
}
