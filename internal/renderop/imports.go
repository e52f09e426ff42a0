package renderop

import "sort"

// Import names a capability the generated source needs. The code sink maps
// each one to its import lines; other sinks ignore them.
type Import string

const (
	ImportBackground       Import = "background"
	ImportBorder           Import = "border"
	ImportShape            Import = "shape"
	ImportShadow           Import = "shadow"
	ImportAlpha            Import = "alpha"
	ImportArrangement      Import = "arrangement"
	ImportBiasAlignment    Import = "bias_alignment"
	ImportConstraintLayout Import = "constraint_layout"
	ImportLazyColumn       Import = "lazy_column"
	ImportLazyRow          Import = "lazy_row"
	ImportLazyGrid         Import = "lazy_grid"
	ImportGridItemSpan     Import = "grid_item_span"
	ImportPaddingValues    Import = "padding_values"
	ImportGradient         Import = "gradient"
	ImportBlur             Import = "blur"
	ImportAsyncImage       Import = "async_image"
	ImportImage            Import = "image"
	ImportPainterResource  Import = "painter_resource"
	ImportContentScale     Import = "content_scale"
	ImportCircleShape      Import = "circle_shape"
	ImportTextAlign        Import = "text_align"
	ImportTextDecoration   Import = "text_decoration"
	ImportKeyboardType     Import = "keyboard_type"
	ImportPasswordMask     Import = "visual_transformation"
	ImportOutlinedField    Import = "outlined_text_field"
	ImportClickable        Import = "clickable"
	ImportSwitchColors     Import = "switch_colors"
	ImportCheckboxColors   Import = "checkbox_colors"
	ImportRadioColors      Import = "radio_colors"
	ImportSliderColors     Import = "slider_colors"
	ImportProgress         Import = "circular_progress_indicator"
	ImportSelectBox        Import = "selectbox_component"
	ImportSegment          Import = "segment"
	ImportTabRow           Import = "tab_row"
	ImportWebView          Import = "webview"
	ImportVisibility       Import = "visibility_wrapper"
	ImportVerticalScroll   Import = "vertical_scroll"
	ImportHorizontalScroll Import = "horizontal_scroll"
	ImportRememberState    Import = "remember_state"
	ImportBox              Import = "box"
)

// Imports is an immutable sorted set of imports. The zero value is empty.
type Imports struct {
	set []Import
}

// NewImports returns a set holding imports.
func NewImports(imports ...Import) Imports {
	return Imports{}.With(imports...)
}

// With returns a new set that also holds imports.
func (s Imports) With(imports ...Import) Imports {
	if len(imports) == 0 {
		return s
	}
	return s.Merge(Imports{set: normalize(imports)})
}

// Merge returns the union of s and o.
func (s Imports) Merge(o Imports) Imports {
	switch {
	case len(o.set) == 0:
		return s
	case len(s.set) == 0:
		return o
	}
	out := make([]Import, 0, len(s.set)+len(o.set))
	i, j := 0, 0
	for i < len(s.set) && j < len(o.set) {
		switch {
		case s.set[i] < o.set[j]:
			out = append(out, s.set[i])
			i++
		case s.set[i] > o.set[j]:
			out = append(out, o.set[j])
			j++
		default:
			out = append(out, s.set[i])
			i++
			j++
		}
	}
	out = append(out, s.set[i:]...)
	out = append(out, o.set[j:]...)
	return Imports{set: out}
}

// Has reports whether imp is in the set.
func (s Imports) Has(imp Import) bool {
	i := sort.Search(len(s.set), func(i int) bool { return s.set[i] >= imp })
	return i < len(s.set) && s.set[i] == imp
}

// List returns the sorted imports.
func (s Imports) List() []Import {
	return append([]Import(nil), s.set...)
}

// Len returns the number of imports.
func (s Imports) Len() int { return len(s.set) }

func normalize(imports []Import) []Import {
	out := append([]Import(nil), imports...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	n := 0
	for i, imp := range out {
		if i > 0 && imp == out[n-1] {
			continue
		}
		out[n] = imp
		n++
	}
	return out[:n]
}
