package moves

import (
	"github.com/latoulicious/dexbox/pkg/record"
)

const (
	PlaceholderLabel = "选择技能"
	SeparatorLabel   = "──────────"
	// ConflictMessage is shown when a move is already held by another slot.
	ConflictMessage = "不能选择相同技能！"
)

// Option is one entry of a slot's option list.
type Option struct {
	Value     string   `json:"value"`
	Label     string   `json:"label"`
	Category  Category `json:"category,omitempty"`
	Separator bool     `json:"separator,omitempty"`
	Disabled  bool     `json:"disabled,omitempty"`
	// Dynamic marks a value injected because it is outside the pools.
	Dynamic bool `json:"dynamic,omitempty"`
}

// Conflict describes a rejected duplicate selection.
type Conflict struct {
	Slot    int    `json:"slot"`
	Value   string `json:"value"`
	HeldBy  int    `json:"held_by"`
	Message string `json:"message"`
}

// SlotView is the display state of one slot.
type SlotView struct {
	Index   int      `json:"index"`
	Value   string   `json:"value"`
	Options []Option `json:"options"`
}

type slot struct {
	options []Option
	// committed is the last accepted value, the rollback target.
	committed string
}

func (s *slot) has(value string) bool {
	for _, opt := range s.options {
		if !opt.Separator && opt.Value == value {
			return true
		}
	}
	return false
}

func (s *slot) ensure(value string) {
	if value == "" || s.has(value) {
		return
	}
	s.options = append(s.options, Option{Value: value, Label: value, Dynamic: true})
}

// SlotSet holds the four move slots. It is not safe for concurrent use;
// the editor session serializes access.
type SlotSet struct {
	slots      [record.SlotCount]slot
	pools      Pools
	onConflict func(Conflict)
}

// NewSlotSet creates empty slots. onConflict, if non-nil, is called for
// every rejected selection.
func NewSlotSet(onConflict func(Conflict)) *SlotSet {
	s := &SlotSet{onConflict: onConflict}
	for i := range s.slots {
		s.slots[i].options = baseOptions(Pools{})
	}
	return s
}

func baseOptions(p Pools) []Option {
	options := make([]Option, 0, len(p.Level)+len(p.TM)+2)
	options = append(options, Option{Value: "", Label: PlaceholderLabel})
	for _, move := range p.Level {
		options = append(options, Option{Value: move, Label: move, Category: CategoryLevel})
	}
	if len(p.Level) > 0 && len(p.TM) > 0 {
		options = append(options, Option{Label: SeparatorLabel, Separator: true, Disabled: true})
	}
	for _, move := range p.TM {
		options = append(options, Option{Value: move, Label: move, Category: CategoryTM})
	}
	return options
}

// Rebuild recomputes every slot's options from the record's pools. A slot
// shows the record's stored move, else its last committed value. A value a
// previous slot already shows is dropped to keep slots distinct.
func (s *SlotSet) Rebuild(r record.Record) {
	s.pools = AvailableMoves(r)

	taken := make(map[string]struct{}, record.SlotCount)
	for i := range s.slots {
		sl := &s.slots[i]
		sl.options = baseOptions(s.pools)

		value := r.Move(i)
		if value == "" {
			value = sl.committed
		}
		if _, dup := taken[value]; dup {
			value = ""
		}
		if value != "" {
			taken[value] = struct{}{}
		}

		sl.ensure(value)
		sl.committed = value
	}
}

// SetSlot selects value for slot index. Empty values always succeed. A value
// held by another slot is rejected: the slot keeps its committed value and
// the conflict handler fires.
func (s *SlotSet) SetSlot(index int, value string) bool {
	if index < 0 || index >= len(s.slots) {
		return false
	}
	sl := &s.slots[index]

	if value == "" {
		sl.committed = ""
		return true
	}

	for i := range s.slots {
		if i != index && s.slots[i].committed == value {
			sl.ensure(sl.committed)
			if s.onConflict != nil {
				s.onConflict(Conflict{Slot: index, Value: value, HeldBy: i, Message: ConflictMessage})
			}
			return false
		}
	}

	sl.ensure(value)
	sl.committed = value
	return true
}

// Value returns the committed value of slot index.
func (s *SlotSet) Value(index int) string {
	if index < 0 || index >= len(s.slots) {
		return ""
	}
	return s.slots[index].committed
}

// Values returns all committed values.
func (s *SlotSet) Values() [record.SlotCount]string {
	var out [record.SlotCount]string
	for i := range s.slots {
		out[i] = s.slots[i].committed
	}
	return out
}

// Apply writes the committed values into the record.
func (s *SlotSet) Apply(r *record.Record) {
	for i, value := range s.Values() {
		r.SetMove(i, value)
	}
}

// Pools returns the pools of the last rebuild.
func (s *SlotSet) Pools() Pools {
	return s.pools
}

// Views returns the display state of every slot.
func (s *SlotSet) Views() []SlotView {
	views := make([]SlotView, len(s.slots))
	for i := range s.slots {
		options := make([]Option, len(s.slots[i].options))
		copy(options, s.slots[i].options)
		views[i] = SlotView{Index: i, Value: s.slots[i].committed, Options: options}
	}
	return views
}
