package binding

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/jsonuigo/internal/value"
)

func testContext() MapLookup {
	return MapLookup{Root: value.FromAny(map[string]any{
		"title": "Hello",
		"count": 3.0,
		"user": map[string]any{
			"name":    "Ada",
			"enabled": true,
		},
		"items": []any{
			map[string]any{"label": "first"},
			map[string]any{"label": "second"},
		},
	})}
}

func TestResolve_LiteralIsIdentity(t *testing.T) {
	ctx := testContext()
	for _, raw := range []string{"", "plain text", "email@example.com", "@{unclosed", "@{}", "{not a binding}"} {
		t.Run(raw, func(t *testing.T) {
			res := ResolveString(raw, ctx)
			assert.Equal(t, Literal, res.Status)
			got, ok := res.Value.AsString()
			require.True(t, ok)
			assert.Equal(t, raw, got)
		})
	}
}

func TestResolve(t *testing.T) {
	ctx := testContext()

	testCases := []struct {
		name     string
		raw      string
		status   Status
		expected value.Value
	}{
		{name: "whole binding keeps the string", raw: "@{title}", status: Bound, expected: value.StringVal("Hello")},
		{name: "whole binding keeps the number type", raw: "@{count}", status: Bound, expected: value.NumberVal(3)},
		{name: "nested path", raw: "@{user.name}", status: Bound, expected: value.StringVal("Ada")},
		{name: "indexed path", raw: "@{items[1].label}", status: Bound, expected: value.StringVal("second")},
		{name: "embedded binding splices text", raw: "Hi @{user.name}!", status: Bound, expected: value.StringVal("Hi Ada!")},
		{name: "present path ignores default", raw: "@{title ?? 'x'}", status: Bound, expected: value.StringVal("Hello")},
		{name: "quoted default", raw: "@{missing ?? 'fallback'}", status: Defaulted, expected: value.StringVal("fallback")},
		{name: "bool default", raw: "@{missing ?? true}", status: Defaulted, expected: value.BoolVal(true)},
		{name: "number default", raw: "@{missing ?? 12}", status: Defaulted, expected: value.NumberVal(12)},
		{name: "null default is empty string", raw: "@{missing ?? null}", status: Defaulted, expected: value.StringVal("")},
		{name: "only first binding is recognized", raw: "@{title} @{user.name}", status: Bound, expected: value.StringVal("Hello @{user.name}")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := ResolveString(tc.raw, ctx)
			require.NoError(t, res.Err)
			assert.Equal(t, tc.status, res.Status)
			assert.True(t, tc.expected.Equal(res.Value), "got %#v", res.Value)
		})
	}
}

func TestResolve_Unresolved(t *testing.T) {
	ctx := testContext()

	t.Run("missing path without default", func(t *testing.T) {
		res := ResolveString("@{user.email}", ctx)
		assert.Equal(t, Unresolved, res.Status)
		assert.False(t, res.OK())
		assert.True(t, res.Value.IsNull(), "unresolved bindings are never coerced to an empty string")
		assert.True(t, errors.Is(res.Err, ErrUnresolved))
		assert.ErrorContains(t, res.Err, "@{user.email}")
	})

	t.Run("index out of range", func(t *testing.T) {
		res := ResolveString("@{items[5].label}", ctx)
		assert.Equal(t, Unresolved, res.Status)
	})

	t.Run("malformed path", func(t *testing.T) {
		res := ResolveString("@{first name}", ctx)
		assert.Equal(t, Unresolved, res.Status)
		assert.ErrorContains(t, res.Err, "invalid binding path segment")
	})

	t.Run("nil context", func(t *testing.T) {
		res := ResolveString("@{title ?? 'x'}", nil)
		assert.Equal(t, Defaulted, res.Status)
	})
}

func TestResolve_NonStringIsNotBindable(t *testing.T) {
	for _, v := range []value.Value{value.NumberVal(8), value.BoolVal(true), value.ArrayVal(value.StringVal("@{title}"))} {
		res := Resolve(v, testContext())
		assert.Equal(t, NotBindable, res.Status)
		assert.True(t, v.Equal(res.Value))
	}
}

func TestParse_SplitsDefault(t *testing.T) {
	b, ok := Parse("@{ user.name ?? \"Guest\" }")
	require.True(t, ok)
	require.NoError(t, b.PathErr)
	assert.Equal(t, "user.name", b.Path.String())
	assert.True(t, b.HasDefault)
	assert.Equal(t, `"Guest"`, b.DefaultLiteral)
	assert.True(t, value.StringVal("Guest").Equal(b.Default))
	assert.True(t, b.Whole())
}
