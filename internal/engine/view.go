package engine

import "github.com/mesh-intelligence/gridview/pkg/types"

// viewController holds mode and density. Both are independent of sort,
// filter and selection.
type viewController struct {
	state types.ViewState
}

func newViewController(cfg types.Config) *viewController {
	return &viewController{state: types.ViewState{Mode: cfg.ViewMode, Density: cfg.Density}}
}

// setMode switches the view mode. Unknown modes are rejected.
func (v *viewController) setMode(mode types.ViewMode) bool {
	if _, err := types.ParseViewMode(string(mode)); err != nil {
		return false
	}
	v.state.Mode = mode
	return true
}

// setDensity stores the density. Unknown densities are rejected. In compact
// mode the stored value is kept but not effective.
func (v *viewController) setDensity(d types.Density) bool {
	if _, err := types.ParseDensity(string(d)); err != nil {
		return false
	}
	v.state.Density = d
	return true
}
