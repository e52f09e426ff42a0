package codegen

import (
	"sort"

	"github.com/vk/jsonuigo/internal/renderop"
)

var baseImports = []string{
	"androidx.compose.foundation.layout.*",
	"androidx.compose.material3.*",
	"androidx.compose.runtime.Composable",
	"androidx.compose.ui.Alignment",
	"androidx.compose.ui.Modifier",
	"androidx.compose.ui.graphics.Color",
	"androidx.compose.ui.text.font.FontWeight",
	"androidx.compose.ui.unit.dp",
	"androidx.compose.ui.unit.sp",
}

var importLines = map[renderop.Import][]string{
	renderop.ImportBackground:       {"androidx.compose.foundation.background"},
	renderop.ImportBorder:           {"androidx.compose.foundation.border"},
	renderop.ImportShape:            {"androidx.compose.foundation.shape.RoundedCornerShape", "androidx.compose.ui.draw.clip"},
	renderop.ImportShadow:           {"androidx.compose.ui.draw.shadow"},
	renderop.ImportAlpha:            {"androidx.compose.ui.draw.alpha"},
	renderop.ImportArrangement:      {"androidx.compose.foundation.layout.Arrangement"},
	renderop.ImportBiasAlignment:    {"androidx.compose.ui.BiasAlignment"},
	renderop.ImportConstraintLayout: {"androidx.constraintlayout.compose.ConstraintLayout", "androidx.constraintlayout.compose.Dimension"},
	renderop.ImportLazyColumn:       {"androidx.compose.foundation.lazy.LazyColumn", "androidx.compose.foundation.lazy.itemsIndexed"},
	renderop.ImportLazyRow:          {"androidx.compose.foundation.lazy.LazyRow", "androidx.compose.foundation.lazy.itemsIndexed"},
	renderop.ImportLazyGrid: {
		"androidx.compose.foundation.lazy.grid.GridCells",
		"androidx.compose.foundation.lazy.grid.LazyHorizontalGrid",
		"androidx.compose.foundation.lazy.grid.LazyVerticalGrid",
		"androidx.compose.foundation.lazy.grid.itemsIndexed",
	},
	renderop.ImportGridItemSpan:    {"androidx.compose.foundation.lazy.grid.GridItemSpan"},
	renderop.ImportPaddingValues:   {"androidx.compose.foundation.layout.PaddingValues"},
	renderop.ImportGradient:        {"androidx.compose.ui.graphics.Brush"},
	renderop.ImportBlur:            {"androidx.compose.ui.draw.blur", "androidx.compose.foundation.background"},
	renderop.ImportAsyncImage:      {"coil.compose.AsyncImage"},
	renderop.ImportImage:           {"androidx.compose.foundation.Image"},
	renderop.ImportPainterResource: {"androidx.compose.ui.res.painterResource"},
	renderop.ImportContentScale:    {"androidx.compose.ui.layout.ContentScale"},
	renderop.ImportCircleShape:     {"androidx.compose.foundation.shape.CircleShape", "androidx.compose.ui.draw.clip"},
	renderop.ImportTextAlign:       {"androidx.compose.ui.text.style.TextAlign"},
	renderop.ImportTextDecoration:  {"androidx.compose.ui.text.style.TextDecoration"},
	renderop.ImportKeyboardType: {
		"androidx.compose.foundation.text.KeyboardOptions",
		"androidx.compose.ui.text.input.ImeAction",
		"androidx.compose.ui.text.input.KeyboardType",
	},
	renderop.ImportPasswordMask:     {"androidx.compose.ui.text.input.PasswordVisualTransformation"},
	renderop.ImportOutlinedField:    {"androidx.compose.material3.OutlinedTextField"},
	renderop.ImportClickable:        {"androidx.compose.foundation.clickable"},
	renderop.ImportSwitchColors:     {"androidx.compose.material3.SwitchDefaults"},
	renderop.ImportCheckboxColors:   {"androidx.compose.material3.CheckboxDefaults"},
	renderop.ImportRadioColors:      {"androidx.compose.material3.RadioButtonDefaults"},
	renderop.ImportSliderColors:     {"androidx.compose.material3.SliderDefaults"},
	renderop.ImportProgress:         {"androidx.compose.material3.CircularProgressIndicator", "androidx.compose.material3.LinearProgressIndicator"},
	renderop.ImportSelectBox:        {"com.kotlinjsonui.components.SelectBox"},
	renderop.ImportSegment:          {"com.kotlinjsonui.components.Segment"},
	renderop.ImportTabRow:           {"androidx.compose.material3.Tab", "androidx.compose.material3.TabRow"},
	renderop.ImportWebView:          {"android.webkit.WebView", "androidx.compose.ui.viewinterop.AndroidView"},
	renderop.ImportVisibility:       {"com.kotlinjsonui.components.VisibilityWrapper"},
	renderop.ImportVerticalScroll:   {"androidx.compose.foundation.rememberScrollState", "androidx.compose.foundation.verticalScroll"},
	renderop.ImportHorizontalScroll: {"androidx.compose.foundation.horizontalScroll", "androidx.compose.foundation.rememberScrollState"},
	renderop.ImportRememberState:    {"androidx.compose.runtime.getValue", "androidx.compose.runtime.mutableStateOf", "androidx.compose.runtime.remember", "androidx.compose.runtime.setValue"},
	renderop.ImportBox:              {"androidx.compose.foundation.layout.Box"},
}

// importBlock returns the sorted, de-duplicated import lines for imports
// plus the lines every file needs.
func importBlock(imports renderop.Imports, extra ...string) []string {
	seen := map[string]struct{}{}
	add := func(lines ...string) {
		for _, l := range lines {
			seen[l] = struct{}{}
		}
	}
	add(baseImports...)
	add(extra...)
	for _, imp := range imports.List() {
		add(importLines[imp]...)
	}

	out := make([]string, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
