package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/jsonuigo/internal/ctxlog"
	"github.com/vk/jsonuigo/internal/node"
	"github.com/vk/jsonuigo/internal/renderop"
)

func noop(Env, *node.Node, *renderop.Op) error { return nil }

func TestKindOf(t *testing.T) {
	testCases := []struct {
		typ      string
		expected Kind
	}{
		{"View", renderop.KindContainer},
		{"VStack", renderop.KindContainer},
		{"constraintLayout", renderop.KindContainer},
		{"Label", renderop.KindText},
		{"TEXT", renderop.KindText},
		{"Toggle", renderop.KindSwitch},
		{"CheckBox", renderop.KindCheck},
		{"Spinner", renderop.KindSelectBox},
		{" ScrollView ", renderop.KindScroll},
		{"Frobnicator", renderop.KindUnknown},
		{"", renderop.KindUnknown},
	}
	for _, tc := range testCases {
		t.Run(tc.typ, func(t *testing.T) {
			assert.Equal(t, tc.expected, KindOf(tc.typ))
		})
	}
}

func TestRegister_DuplicatePanics(t *testing.T) {
	r := New()
	r.RegisterFunc(renderop.KindText, noop)
	assert.PanicsWithValue(t, "component handler for kind 'Text' already registered", func() {
		r.RegisterFunc(renderop.KindText, noop)
	})
	assert.Panics(t, func() { r.RegisterFunc(renderop.KindUnknown, noop) })
}

func TestValidateRegistry(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())

	r := New()
	r.RegisterFunc(renderop.KindText, noop)
	err := r.ValidateRegistry(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry validation failed:\n- ")
	assert.Contains(t, err.Error(), "kind 'Button' has no registered handler")
	assert.NotContains(t, err.Error(), "kind 'Text'")

	full := New()
	for _, k := range renderop.Kinds() {
		full.RegisterFunc(k, noop)
	}
	assert.NoError(t, full.ValidateRegistry(ctx))
}

func TestAliases(t *testing.T) {
	assert.Equal(t, []string{"check", "checkbox"}, Aliases(renderop.KindCheck))
}
