package app

import (
	"github.com/specialistvlad/workgrid/internal/registry"
	"github.com/specialistvlad/workgrid/modules/csv_writer"
	"github.com/specialistvlad/workgrid/modules/env_vars"
	"github.com/specialistvlad/workgrid/modules/noop"
	"github.com/specialistvlad/workgrid/modules/print"
)

// coreModules is the definitive list of all modules that are compiled into
// the workgrid binary.
var coreModules = []registry.Module{
	&noop.Module{},
	&env_vars.Module{},
	&print.Module{},
	&csv_writer.Module{},
}
