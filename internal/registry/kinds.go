package registry

import (
	"sort"
	"strings"

	"github.com/vk/jsonuigo/internal/renderop"
)

// aliases maps lower-cased type strings to kinds. Both the historical names
// of the generator and those of the runtime are accepted.
var aliases = map[string]Kind{
	"view":             renderop.KindContainer,
	"column":           renderop.KindContainer,
	"vstack":           renderop.KindContainer,
	"row":              renderop.KindContainer,
	"hstack":           renderop.KindContainer,
	"box":              renderop.KindContainer,
	"zstack":           renderop.KindContainer,
	"constraintlayout": renderop.KindContainer,
	"scroll":           renderop.KindScroll,
	"scrollview":       renderop.KindScroll,
	"safeareaview":     renderop.KindSafeArea,
	"text":             renderop.KindText,
	"label":            renderop.KindText,
	"button":           renderop.KindButton,
	"image":            renderop.KindImage,
	"networkimage":     renderop.KindNetworkImage,
	"circleimage":      renderop.KindCircleImage,
	"textfield":        renderop.KindTextField,
	"textview":         renderop.KindTextView,
	"switch":           renderop.KindSwitch,
	"toggle":           renderop.KindSwitch,
	"check":            renderop.KindCheck,
	"checkbox":         renderop.KindCheck,
	"radio":            renderop.KindRadio,
	"slider":           renderop.KindSlider,
	"progress":         renderop.KindProgress,
	"indicator":        renderop.KindIndicator,
	"selectbox":        renderop.KindSelectBox,
	"spinner":          renderop.KindSelectBox,
	"segment":          renderop.KindSegment,
	"collection":       renderop.KindCollection,
	"table":            renderop.KindTable,
	"web":              renderop.KindWeb,
	"webview":          renderop.KindWeb,
	"gradientview":     renderop.KindGradient,
	"blurview":         renderop.KindBlur,
	"tabview":          renderop.KindTabView,
	"spacer":           renderop.KindSpacer,
	"include":          renderop.KindInclude,
}

// KindOf returns the kind for a declared type string. Matching ignores case.
// Unrecognized types map to KindUnknown.
func KindOf(componentType string) Kind {
	if k, ok := aliases[strings.ToLower(strings.TrimSpace(componentType))]; ok {
		return k
	}
	return renderop.KindUnknown
}

// Aliases returns the accepted type strings for kind, sorted.
func Aliases(kind Kind) []string {
	var out []string
	for _, a := range sortedAliases() {
		if aliases[a] == kind {
			out = append(out, a)
		}
	}
	return out
}

func sortedAliases() []string {
	out := make([]string, 0, len(aliases))
	for a := range aliases {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}
