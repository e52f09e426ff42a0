package app

import (
	"github.com/vk/jsonuigo/internal/registry"
	"github.com/vk/jsonuigo/modules/collection"
	"github.com/vk/jsonuigo/modules/container"
	"github.com/vk/jsonuigo/modules/control"
	"github.com/vk/jsonuigo/modules/media"
	"github.com/vk/jsonuigo/modules/structure"
	"github.com/vk/jsonuigo/modules/text"
)

// coreModules is the definitive list of all component modules that are
// compiled into the jsonui binary.
var coreModules = []registry.Module{
	&container.Module{},
	&text.Module{},
	&control.Module{},
	&media.Module{},
	&collection.Module{},
	&structure.Module{},
}
