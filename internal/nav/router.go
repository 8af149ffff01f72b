package nav

import "sync"

// Router tracks section and modal visibility. Every transition hides everything on
// its axis before showing the target, so no stale element survives a transition.
type Router struct {
	mu       sync.Mutex
	sections [sectionCount]bool
	modals   [modalCount]bool
}

func NewRouter() *Router {
	return &Router{}
}

// ShowSection activates s and hides any open modal.
func (r *Router) ShowSection(s Section) {
	if s <= SectionNone || s >= sectionCount {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.sections {
		r.sections[i] = false
	}
	for i := range r.modals {
		r.modals[i] = false
	}
	r.sections[s] = true
}

// ShowModal shows m above the current section.
func (r *Router) ShowModal(m Modal) {
	if m <= ModalNone || m >= modalCount {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.modals {
		r.modals[i] = false
	}
	r.modals[m] = true
}

// CloseModal hides m if it is the active modal and reports whether it did.
func (r *Router) CloseModal(m Modal) bool {
	if m <= ModalNone || m >= modalCount {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.modals[m] {
		return false
	}
	r.modals[m] = false
	return true
}

func (r *Router) ActiveSection() Section {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, visible := range r.sections {
		if visible {
			return Section(i)
		}
	}
	return SectionNone
}

func (r *Router) ActiveModal() Modal {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, visible := range r.modals {
		if visible {
			return Modal(i)
		}
	}
	return ModalNone
}

func (r *Router) visibleCounts() (sections, modals int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.sections {
		if v {
			sections++
		}
	}
	for _, v := range r.modals {
		if v {
			modals++
		}
	}
	return sections, modals
}
