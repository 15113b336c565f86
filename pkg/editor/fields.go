package editor

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/latoulicious/dexbox/pkg/level"
	"github.com/latoulicious/dexbox/pkg/record"
	"github.com/latoulicious/dexbox/pkg/spread"
)

// fieldHandler applies one change to the current record and fills in the
// parts of the update it touched.
type fieldHandler func(s *Session, r *record.Record, c Change, u *Update)

var fieldHandlers = map[string]fieldHandler{
	"No":          setText(func(r *record.Record) *string { return &r.No }),
	"Dex_No":      setText(func(r *record.Record) *string { return &r.DexNo }),
	"CN_Name":     setText(func(r *record.Record) *string { return &r.CNName }),
	"ENG_Name":    setText(func(r *record.Record) *string { return &r.ENGName }),
	"Web_Name":    setText(func(r *record.Record) *string { return &r.WebName }),
	"Gender_Type": setText(func(r *record.Record) *string { return &r.GenderType }),
	"Move_Boss":   setText(func(r *record.Record) *string { return &r.MoveBoss }),
	"Pre_Nature":  setText(func(r *record.Record) *string { return &r.PreNature }),
	"Pre_Gender":  setText(func(r *record.Record) *string { return &r.PreGender }),
	"Pre_Ball":    setText(func(r *record.Record) *string { return &r.PreBall }),
	"Held_Item":   setText(func(r *record.Record) *string { return &r.HeldItem }),
	"Boss_LV_Min": handleBossLevel,
	"LV_Min":      handleLevel,
	"Body_Size":   handleBodySize,
	"Move_Lv":     handleMovePool(func(r *record.Record) *string { return &r.MoveLv }),
	"Move_TM":     handleMovePool(func(r *record.Record) *string { return &r.MoveTM }),
	"Pre_Move1":   handleMoveSlot(0),
	"Pre_Move2":   handleMoveSlot(1),
	"Pre_Move3":   handleMoveSlot(2),
	"Pre_Move4":   handleMoveSlot(3),
	"Pre_Evs":     handleEffortSpread,
	"Ivs":         handleInnateSpread,
	"Picture":     handlePicture,
	"Is_Shiny":    handleShiny,
	"Is_Boss":     handleBoss,
}

func init() {
	for i, stat := range spread.StatKeys {
		fieldHandlers["ev_"+stat] = handleEffortStat(i)
		fieldHandlers["iv_"+stat] = handleInnateStat(i)
	}
}

// Fields lists every field name OnFieldChange accepts, sorted.
func Fields() []string {
	names := make([]string, 0, len(fieldHandlers))
	for name := range fieldHandlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OnFieldChange applies one field change and returns the corrected,
// display-ready values. Bad input is corrected, never reported as an error;
// a duplicate move selection is rejected with Accepted=false.
func (s *Session) OnFieldChange(c Change) (Update, error) {
	handler, ok := fieldHandlers[c.Field]
	if !ok {
		return Update{}, fmt.Errorf("%w: %q", ErrUnknownField, c.Field)
	}
	if c.Phase == "" {
		c.Phase = PhaseCommit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return Update{}, ErrNoCurrentRecord
	}

	u := Update{Field: c.Field, Accepted: true}
	handler(s, s.current, c, &u)
	u.Notification = s.flush()
	u.Record = *s.current

	s.logger.Debug("Field changed", map[string]interface{}{
		"field":    c.Field,
		"phase":    string(c.Phase),
		"accepted": u.Accepted,
	})
	return u, nil
}

func setText(field func(r *record.Record) *string) fieldHandler {
	return func(s *Session, r *record.Record, c Change, u *Update) {
		value := c.Value
		if c.Phase == PhaseCommit {
			value = strings.TrimSpace(value)
		}
		*field(r) = value
		u.Value = value
	}
}

func handleEffortStat(index int) fieldHandler {
	return func(s *Session, r *record.Record, c Change, u *Update) {
		result := spread.Effort.SetValue(s.effort, index, c.Value)
		s.effort = result.Spread
		r.PreEvs = spread.Encode(s.effort)
		u.Value = strconv.Itoa(result.Spread[index])
		u.Effort = &result
	}
}

func handleInnateStat(index int) fieldHandler {
	return func(s *Session, r *record.Record, c Change, u *Update) {
		result := spread.Innate.SetValue(s.innate, index, c.Value)
		s.innate = result.Spread
		r.Ivs = spread.Encode(s.innate)
		u.Value = strconv.Itoa(result.Spread[index])
		u.Innate = &result
	}
}

func handleEffortSpread(s *Session, r *record.Record, c Change, u *Update) {
	result := spread.Effort.Fit(spread.Decode(c.Value, spread.DefaultEffort))
	s.effort = result.Spread
	r.PreEvs = spread.Encode(s.effort)
	u.Value = r.PreEvs
	u.Effort = &result
}

func handleInnateSpread(s *Session, r *record.Record, c Change, u *Update) {
	result := spread.Innate.Fit(spread.Decode(c.Value, spread.DefaultInnate))
	s.innate = result.Spread
	r.Ivs = spread.Encode(s.innate)
	u.Value = r.Ivs
	u.Innate = &result
}

func handleLevel(s *Session, r *record.Record, c Change, u *Update) {
	if c.Phase == PhaseInput {
		r.LVMin = level.SanitizeInput(c.Value)
		bounds := level.Bounds(*r)
		u.Level = &bounds
		u.Value = r.LVMin
		return
	}
	r.LVMin = c.Value
	constraint := level.Reconcile(r)
	u.Level = &constraint
	u.Value = r.LVMin
}

func handleBossLevel(s *Session, r *record.Record, c Change, u *Update) {
	r.BossLVMin = strings.TrimSpace(c.Value)
	u.Value = r.BossLVMin
	if c.Phase == PhaseInput {
		bounds := level.Bounds(*r)
		u.Level = &bounds
		return
	}
	constraint := level.Reconcile(r)
	u.Level = &constraint
}

func handleBodySize(s *Session, r *record.Record, c Change, u *Update) {
	if r.IsBoss {
		control := r.ReconcileBodySize(false)
		u.BodySize = &control
		u.Value = control.Value
		return
	}
	if c.Phase == PhaseInput {
		r.BodySize = record.BodySizeInput(c.Value)
	} else {
		r.BodySize = record.BodySizeCommit(c.Value)
	}
	control := record.BodySizeControl{Value: r.BodySize}
	u.BodySize = &control
	u.Value = r.BodySize
}

func handleMovePool(field func(r *record.Record) *string) fieldHandler {
	return func(s *Session, r *record.Record, c Change, u *Update) {
		*field(r) = c.Value
		s.slots.Rebuild(*r)
		s.slots.Apply(r)
		u.Value = c.Value
		u.Slots = s.slots.Views()
	}
}

func handleMoveSlot(index int) fieldHandler {
	return func(s *Session, r *record.Record, c Change, u *Update) {
		u.Accepted = s.slots.SetSlot(index, strings.TrimSpace(c.Value))
		s.slots.Apply(r)
		u.Value = s.slots.Value(index)
		u.Slots = s.slots.Views()
	}
}

func handlePicture(s *Session, r *record.Record, c Change, u *Update) {
	r.Picture = strings.TrimSpace(c.Value)
	u.Value = r.Picture
	s.view.Show(s.resolver, r.Picture)
	state := s.view.State()
	u.Sprite = &state
}

func parseFlag(value string) bool {
	flag, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return strings.EqualFold(strings.TrimSpace(value), "on")
	}
	return flag
}

func handleShiny(s *Session, r *record.Record, c Change, u *Update) {
	r.IsShiny = parseFlag(c.Value)
	u.Value = strconv.FormatBool(r.IsShiny)
	u.Chips = &Chips{Shiny: r.IsShiny, Boss: r.IsBoss}
}

func handleBoss(s *Session, r *record.Record, c Change, u *Update) {
	r.IsBoss = parseFlag(c.Value)
	u.Value = strconv.FormatBool(r.IsBoss)
	u.Chips = &Chips{Shiny: r.IsShiny, Boss: r.IsBoss}

	control := r.ReconcileBodySize(false)
	u.BodySize = &control
	constraint := level.Reconcile(r)
	u.Level = &constraint
}
