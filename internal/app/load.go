package app

import (
	"github.com/specialistvlad/workgrid/internal/config"
	"github.com/specialistvlad/workgrid/internal/hcl_adapter"
	"github.com/specialistvlad/workgrid/internal/yaml_adapter"
)

// newLoader returns the loader dispatching pipeline files by extension.
func newLoader() config.Loader {
	yamlLoader := yaml_adapter.NewLoader()
	return config.ByExtension{
		".hcl":  hcl_adapter.NewLoader(),
		".yaml": yamlLoader,
		".yml":  yamlLoader,
	}
}
