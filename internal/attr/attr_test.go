package attr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/jsonuigo/internal/node"
	"github.com/vk/jsonuigo/internal/value"
)

func viewOf(t *testing.T, doc string) View {
	t.Helper()
	n, err := node.Parse([]byte(doc))
	require.NoError(t, err)
	return Of(n)
}

func TestParseDimension(t *testing.T) {
	testCases := []struct {
		name     string
		raw      value.Value
		expected Dimension
	}{
		{name: "number", raw: value.NumberVal(48), expected: Dimension{Kind: Fixed, Value: 48}},
		{name: "numeric string", raw: value.StringVal("12"), expected: Dimension{Kind: Fixed, Value: 12}},
		{name: "negative number fills", raw: value.NumberVal(-1), expected: Dimension{Kind: Fill}},
		{name: "matchParent", raw: value.StringVal("matchParent"), expected: Dimension{Kind: Fill}},
		{name: "match_parent", raw: value.StringVal("match_parent"), expected: Dimension{Kind: Fill}},
		{name: "wrapContent", raw: value.StringVal("wrapContent"), expected: Dimension{Kind: Wrap}},
		{name: "matchConstraint", raw: value.StringVal("matchConstraint"), expected: Dimension{Kind: MatchConstraint}},
		{name: "binding", raw: value.StringVal("@{w}"), expected: Dimension{Kind: Bound, Expr: "@{w}"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := ParseDimension(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, d)
		})
	}

	_, err := ParseDimension(value.StringVal("huge"))
	assert.ErrorContains(t, err, "unknown size keyword")
}

func TestView_SizeShorthand(t *testing.T) {
	v := viewOf(t, `{"type": "Image", "size": [24, 32]}`)
	w, err := v.Width()
	require.NoError(t, err)
	h, err := v.Height()
	require.NoError(t, err)
	assert.Equal(t, Dimension{Kind: Fixed, Value: 24}, w)
	assert.Equal(t, Dimension{Kind: Fixed, Value: 32}, h)
}

func TestParseColor(t *testing.T) {
	testCases := []struct {
		in       string
		expected string
	}{
		{"#fff", "#FFFFFFFF"},
		{"#336699", "#FF336699"},
		{"#80336699", "#80336699"},
		{"red", "#FFFF0000"},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseColor(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}

	for _, bad := range []string{"336699", "#12345", "#GG0000"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestView_Margins(t *testing.T) {
	t.Run("array order is top right bottom left", func(t *testing.T) {
		in, ok := viewOf(t, `{"type": "View", "margins": [1, 2, 3, 4]}`).Margins()
		require.True(t, ok)
		assert.Equal(t, Insets{Top: 1, End: 2, Bottom: 3, Start: 4}, in)
	})

	t.Run("individual keys override the array", func(t *testing.T) {
		in, ok := viewOf(t, `{"type": "View", "margins": [1, 2, 3, 4], "marginTop": 10, "leftMargin": 20}`).Margins()
		require.True(t, ok)
		assert.Equal(t, Insets{Top: 10, End: 2, Bottom: 3, Start: 20}, in)
	})

	t.Run("absent", func(t *testing.T) {
		_, ok := viewOf(t, `{"type": "View"}`).Margins()
		assert.False(t, ok)
	})
}

func TestView_Paddings(t *testing.T) {
	t.Run("two element array is vertical then horizontal", func(t *testing.T) {
		in, ok := viewOf(t, `{"type": "View", "paddings": [4, 8]}`).Paddings()
		require.True(t, ok)
		assert.Equal(t, Insets{Top: 4, Bottom: 4, Start: 8, End: 8}, in)
	})

	t.Run("precedence", func(t *testing.T) {
		in, ok := viewOf(t, `{"type": "View", "padding": 2, "paddingHorizontal": 6, "paddingLeft": 9}`).Paddings()
		require.True(t, ok)
		assert.Equal(t, Insets{Top: 2, Bottom: 2, Start: 9, End: 6}, in)
	})
}

func TestView_Validate(t *testing.T) {
	v := viewOf(t, `{
		"type": "View",
		"width": "huge",
		"fontSize": "big",
		"background": "#12",
		"orientation": "diagonal",
		"borderColor": "@{theme.border}",
		"cornerRadius": 8
	}`)

	diags := v.Validate()
	attrs := make([]string, 0, len(diags))
	for _, d := range diags {
		attrs = append(attrs, d.Attribute)
	}
	assert.ElementsMatch(t, []string{"width", "fontSize", "background", "orientation"}, attrs)
}
