package app

import (
	"github.com/vk/marlgrid/internal/registry"
	"github.com/vk/marlgrid/modules/checkpointer"
	"github.com/vk/marlgrid/modules/executorinit"
	"github.com/vk/marlgrid/modules/logger"
	"github.com/vk/marlgrid/modules/monitor"
	"github.com/vk/marlgrid/modules/parameterclient"
	"github.com/vk/marlgrid/modules/parameterserver"
	"github.com/vk/marlgrid/modules/selectaction"
	"github.com/vk/marlgrid/modules/trainersteps"
)

// coreModules is the definitive list of all modules that are compiled into
// the marlgrid binary, in hook dispatch order.
var coreModules = []registry.Module{
	&executorinit.Module{},
	&selectaction.Module{},
	&parameterserver.Module{},
	&parameterclient.Module{},
	&trainersteps.Module{},
	&checkpointer.Module{},
	&logger.Module{},
	&monitor.Module{},
}
