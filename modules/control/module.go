// Package control renders interactive controls. Controls that accept user
// input carry their bound value as an ArgState argument so a sink can write
// changes back to the data context.
package control

import (
	"github.com/vk/jsonuigo/internal/registry"
	"github.com/vk/jsonuigo/internal/renderop"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers every control handler.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFunc(renderop.KindTextField, handleTextField)
	r.RegisterFunc(renderop.KindTextView, handleTextView)
	r.RegisterFunc(renderop.KindSwitch, handleSwitch)
	r.RegisterFunc(renderop.KindCheck, handleCheck)
	r.RegisterFunc(renderop.KindRadio, handleRadio)
	r.RegisterFunc(renderop.KindSlider, handleSlider)
	r.RegisterFunc(renderop.KindProgress, handleProgress)
	r.RegisterFunc(renderop.KindIndicator, handleIndicator)
	r.RegisterFunc(renderop.KindSelectBox, handleSelectBox)
	r.RegisterFunc(renderop.KindSegment, handleSegment)
}

// StateArg returns the two-way bound argument of op, if any.
func StateArg(op *renderop.Op) (renderop.Arg, bool) {
	for _, a := range op.Args {
		if a.Type == renderop.ArgState {
			return a, true
		}
	}
	return renderop.Arg{}, false
}
