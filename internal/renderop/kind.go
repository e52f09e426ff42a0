package renderop

// Kind is the closed set of component kinds. KindUnknown is the documented
// fallback and renders as a placeholder container.
type Kind int

const (
	KindUnknown Kind = iota
	KindContainer
	KindScroll
	KindSafeArea
	KindText
	KindButton
	KindImage
	KindNetworkImage
	KindCircleImage
	KindTextField
	KindTextView
	KindSwitch
	KindCheck
	KindRadio
	KindSlider
	KindProgress
	KindIndicator
	KindSelectBox
	KindSegment
	KindCollection
	KindTable
	KindWeb
	KindGradient
	KindBlur
	KindTabView
	KindSpacer
	KindInclude

	kindCount
)

var kindNames = [kindCount]string{
	KindUnknown:      "Unknown",
	KindContainer:    "Container",
	KindScroll:       "Scroll",
	KindSafeArea:     "SafeArea",
	KindText:         "Text",
	KindButton:       "Button",
	KindImage:        "Image",
	KindNetworkImage: "NetworkImage",
	KindCircleImage:  "CircleImage",
	KindTextField:    "TextField",
	KindTextView:     "TextView",
	KindSwitch:       "Switch",
	KindCheck:        "Check",
	KindRadio:        "Radio",
	KindSlider:       "Slider",
	KindProgress:     "Progress",
	KindIndicator:    "Indicator",
	KindSelectBox:    "SelectBox",
	KindSegment:      "Segment",
	KindCollection:   "Collection",
	KindTable:        "Table",
	KindWeb:          "Web",
	KindGradient:     "GradientView",
	KindBlur:         "BlurView",
	KindTabView:      "TabView",
	KindSpacer:       "Spacer",
	KindInclude:      "Include",
}

func (k Kind) String() string {
	if k >= 0 && k < kindCount {
		return kindNames[k]
	}
	return "Unknown"
}

// Kinds returns every kind except KindUnknown.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindUnknown + 1; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// TwoWay reports whether the kind writes user input back to its bound value.
func (k Kind) TwoWay() bool {
	switch k {
	case KindTextField, KindTextView, KindSwitch, KindCheck, KindRadio, KindSlider, KindSelectBox, KindSegment:
		return true
	}
	return false
}
