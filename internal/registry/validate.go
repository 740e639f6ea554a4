package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/workgrid/internal/config"
	"github.com/specialistvlad/workgrid/internal/ctxlog"
)

// ValidateModel checks that every tool declared in the model has a
// registered kind. All unknown kinds are reported together.
func (r *Registry) ValidateModel(ctx context.Context, m *config.Model) error {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	for _, s := range m.Stations {
		for _, t := range s.Tools {
			if _, ok := r.factories[t.KindOf()]; !ok {
				errs = append(errs, fmt.Sprintf("station '%s', tool '%s': unknown kind '%s'", s.Name, t.Name, t.KindOf()))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed (registered kinds: %s):\n- %s",
			strings.Join(r.Kinds(), ", "), strings.Join(errs, "\n- "))
	}
	logger.Debug("Registry validation passed.", "kinds", len(r.factories))
	return nil
}
