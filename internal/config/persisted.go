// Package config persists user preferences between runs and loads the
// runtime settings of a single invocation.
package config

// HistoryCapacity bounds SelectorHistory.
const HistoryCapacity = 20

// Persisted is the on-disk document. Nil pointers are written as null so
// that "cleared" and "never set" survive a round trip.
type Persisted struct {
	DefaultSelector *string  `json:"default_selector"`
	LastAction      *string  `json:"last_action"`
	SelectorHistory []string `json:"selector_history,omitempty"`
}

// Default returns an empty document.
func Default() *Persisted {
	return &Persisted{}
}

// SetDefault stores sel as the default selector.
func (p *Persisted) SetDefault(sel string) {
	p.DefaultSelector = &sel
}

// ClearDefault sets the default selector to null.
func (p *Persisted) ClearDefault() {
	p.DefaultSelector = nil
}

// Selector returns the default selector, or "" when none is set.
func (p *Persisted) Selector() string {
	if p.DefaultSelector == nil {
		return ""
	}
	return *p.DefaultSelector
}

// SetLastAction records the last applied action word.
func (p *Persisted) SetLastAction(action string) {
	p.LastAction = &action
}

// PushHistory moves sel to the front of the history. An existing entry is
// moved rather than duplicated, and the oldest entries fall off past
// HistoryCapacity.
func (p *Persisted) PushHistory(sel string) {
	if sel == "" {
		return
	}
	out := make([]string, 0, len(p.SelectorHistory)+1)
	out = append(out, sel)
	for _, h := range p.SelectorHistory {
		if h != sel {
			out = append(out, h)
		}
	}
	if len(out) > HistoryCapacity {
		out = out[:HistoryCapacity]
	}
	p.SelectorHistory = out
}

func (p *Persisted) clone() *Persisted {
	c := &Persisted{}
	if p.DefaultSelector != nil {
		c.SetDefault(*p.DefaultSelector)
	}
	if p.LastAction != nil {
		c.SetLastAction(*p.LastAction)
	}
	if len(p.SelectorHistory) > 0 {
		c.SelectorHistory = append([]string(nil), p.SelectorHistory...)
	}
	return c
}
