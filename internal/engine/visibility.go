package engine

import "slices"

// visibility tracks which registered data columns are rendered. The
// selection and action pseudo-columns are not part of it.
type visibility struct {
	order   []string
	visible map[string]bool
}

// newVisibility starts with initial visible, or every column when initial
// is nil.
func newVisibility(order []string, initial []string) *visibility {
	v := &visibility{order: order, visible: make(map[string]bool, len(order))}
	if initial == nil {
		v.showAll()
		return v
	}
	for _, id := range initial {
		v.visible[id] = true
	}
	return v
}

func (v *visibility) known(id string) bool {
	return slices.Contains(v.order, id)
}

// toggle flips id. Unknown IDs are ignored; the result reports whether the
// column is visible afterwards.
func (v *visibility) toggle(id string) bool {
	if !v.known(id) {
		return false
	}
	if v.visible[id] {
		delete(v.visible, id)
		return false
	}
	v.visible[id] = true
	return true
}

// show and hide set id explicitly. Unknown IDs are ignored.
func (v *visibility) show(id string) {
	if v.known(id) {
		v.visible[id] = true
	}
}

func (v *visibility) hide(id string) {
	delete(v.visible, id)
}

func (v *visibility) showAll() {
	for _, id := range v.order {
		v.visible[id] = true
	}
}

func (v *visibility) isVisible(id string) bool {
	return v.visible[id]
}

// ids returns the visible column IDs in registration order. The set may be
// empty.
func (v *visibility) ids() []string {
	out := make([]string, 0, len(v.visible))
	for _, id := range v.order {
		if v.visible[id] {
			out = append(out, id)
		}
	}
	return out
}
