package sprite

import "sync"

// ViewState is what the sprite area shows.
type ViewState struct {
	Reference string `json:"reference"`
	Source    string `json:"source,omitempty"`
	// ShowImage and ShowPlaceholder are mutually exclusive.
	ShowImage       bool   `json:"show_image"`
	ShowPlaceholder bool   `json:"show_placeholder"`
	Pending         bool   `json:"pending"`
	Generation      uint64 `json:"generation"`
}

// View holds the sprite display state written by resolver callbacks.
type View struct {
	mu    sync.RWMutex
	state ViewState
	// token identifies the newest Show call; outcomes of older calls are
	// ignored even if they slip in before the resolver moves on.
	token uint64
}

// NewView creates a view showing the placeholder.
func NewView() *View {
	return &View{state: ViewState{ShowPlaceholder: true}}
}

// Show starts a resolution of reference and routes its outcome into the
// view. The placeholder shows until a candidate loads.
func (v *View) Show(r *Resolver, reference string) uint64 {
	v.mu.Lock()
	v.token++
	token := v.token
	v.state = ViewState{Reference: reference, ShowPlaceholder: true, Pending: true}
	v.mu.Unlock()

	gen := r.Resolve(reference,
		func(location string) { v.settle(token, location) },
		func() { v.settle(token, "") },
	)

	v.mu.Lock()
	if v.token == token {
		v.state.Generation = gen
	}
	v.mu.Unlock()
	return gen
}

func (v *View) settle(token uint64, location string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if token != v.token {
		return
	}
	v.state.Source = location
	v.state.ShowImage = location != ""
	v.state.ShowPlaceholder = location == ""
	v.state.Pending = false
}

// State returns a copy of the current state.
func (v *View) State() ViewState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}
