// Package record holds the editable creature record and its enrichment from
// a dataset entry.
package record

import (
	"strconv"
	"strings"

	"github.com/latoulicious/dexbox/pkg/catalog"
	"github.com/latoulicious/dexbox/pkg/numeric"
	"github.com/latoulicious/dexbox/pkg/spread"
)

const (
	// MaxBodySize is both the body size cap and the value used for boss records.
	MaxBodySize = 255
	// SlotCount is the number of move slots on a record.
	SlotCount = 4
	// UnnamedDisplayName is shown when a record has no name at all.
	UnnamedDisplayName = "未命名精灵"
)

// Record is the editable document. Field names and JSON keys follow the
// dataset so a saved record can be exported as a dataset entry.
type Record struct {
	No         string `json:"No"`
	DexNo      string `json:"Dex_No"`
	CNName     string `json:"CN_Name"`
	ENGName    string `json:"ENG_Name"`
	WebName    string `json:"Web_Name"`
	GenderType string `json:"Gender_Type"`
	// LVMin is the current level of the record.
	LVMin     string `json:"LV_Min"`
	BossLVMin string `json:"Boss_LV_Min"`
	// LevelFloor is the dataset's LV_Min, kept so the floor does not drift
	// once the current level has been raised.
	LevelFloor string `json:"Base_LV_Min"`
	MoveLv     string `json:"Move_Lv"`
	MoveTM     string `json:"Move_TM"`
	MoveBoss   string `json:"Move_Boss"`
	PreMove1   string `json:"Pre_Move1"`
	PreMove2   string `json:"Pre_Move2"`
	PreMove3   string `json:"Pre_Move3"`
	PreMove4   string `json:"Pre_Move4"`
	PreEvs     string `json:"Pre_Evs"`
	PreNature  string `json:"Pre_Nature"`
	PreGender  string `json:"Pre_Gender"`
	PreBall    string `json:"Pre_Ball"`
	HeldItem   string `json:"Held_Item"`
	BodySize   string `json:"Body_Size"`
	Picture    string `json:"Picture"`
	Ivs        string `json:"Ivs"`
	IsShiny    bool   `json:"Is_Shiny"`
	IsBoss     bool   `json:"Is_Boss"`
}

// Defaults are the values enrichment fills in.
type Defaults struct {
	HeldItemName string
}

// FromEntry enriches a dataset entry into an editable record. Held_Item is
// only defaulted when absent; a present empty value is kept.
func FromEntry(entry catalog.Entry, defaults Defaults) Record {
	r := Record{
		No:         entry.No.Value,
		DexNo:      entry.DexNo.Value,
		CNName:     entry.CNName.Value,
		ENGName:    entry.ENGName.Value,
		WebName:    entry.WebName.Value,
		GenderType: entry.GenderType.Value,
		LVMin:      entry.LVMin.Value,
		BossLVMin:  entry.BossLVMin.Value,
		LevelFloor: entry.LVMin.Value,
		MoveLv:     entry.MoveLv.Value,
		MoveTM:     entry.MoveTM.Value,
		MoveBoss:   entry.MoveBoss.Value,
		PreMove1:   entry.PreMove1.Value,
		PreMove2:   entry.PreMove2.Value,
		PreMove3:   entry.PreMove3.Value,
		PreMove4:   entry.PreMove4.Value,
		PreEvs:     entry.PreEvs.Or(spread.Encode(spread.DefaultEffort)),
		PreNature:  entry.PreNature.Value,
		PreGender:  entry.PreGender.Value,
		PreBall:    entry.PreBall.Value,
		HeldItem:   entry.HeldItem.Or(defaults.HeldItemName),
		BodySize:   NormalizeBodySize(entry.BodySize.Value),
		Picture:    entry.Picture.Value,
		Ivs:        entry.Ivs.Or(spread.Encode(spread.DefaultInnate)),
		IsShiny:    entry.IsShiny.Truthy(),
		IsBoss:     entry.IsBoss.Truthy(),
	}
	if r.Picture == "" {
		r.Picture = r.No
	}
	return r
}

// DisplayName is the first non-empty name, else a placeholder.
func (r Record) DisplayName() string {
	for _, name := range []string{r.CNName, r.ENGName, r.WebName} {
		if name != "" {
			return name
		}
	}
	return UnnamedDisplayName
}

// PaddedNo is the three digit display number.
func (r Record) PaddedNo() string {
	return catalog.PadNo(r.No)
}

// SpriteKey is the picture reference used for sprite resolution.
func (r Record) SpriteKey() string {
	if r.Picture != "" {
		return r.Picture
	}
	return r.No
}

// Move returns the stored move of slot i (0-based).
func (r Record) Move(i int) string {
	switch i {
	case 0:
		return r.PreMove1
	case 1:
		return r.PreMove2
	case 2:
		return r.PreMove3
	case 3:
		return r.PreMove4
	}
	return ""
}

// SetMove stores the move of slot i (0-based).
func (r *Record) SetMove(i int, move string) {
	switch i {
	case 0:
		r.PreMove1 = move
	case 1:
		r.PreMove2 = move
	case 2:
		r.PreMove3 = move
	case 3:
		r.PreMove4 = move
	}
}

// Moves returns the four stored moves.
func (r Record) Moves() [SlotCount]string {
	return [SlotCount]string{r.PreMove1, r.PreMove2, r.PreMove3, r.PreMove4}
}

// TrimText trims surrounding whitespace from every text field.
func (r *Record) TrimText() {
	for _, field := range []*string{
		&r.No, &r.DexNo, &r.CNName, &r.ENGName, &r.WebName, &r.GenderType,
		&r.LVMin, &r.BossLVMin, &r.LevelFloor, &r.MoveLv, &r.MoveTM, &r.MoveBoss,
		&r.PreMove1, &r.PreMove2, &r.PreMove3, &r.PreMove4, &r.PreEvs,
		&r.PreNature, &r.PreGender, &r.PreBall, &r.HeldItem, &r.BodySize,
		&r.Picture, &r.Ivs,
	} {
		*field = strings.TrimSpace(*field)
	}
}

// NormalizeBodySize parses a body size leniently: unparseable input becomes
// MaxBodySize, anything else is clamped to [0, MaxBodySize].
func NormalizeBodySize(raw string) string {
	value, ok := numeric.ParseInt(strings.TrimSpace(raw))
	if !ok {
		return strconv.Itoa(MaxBodySize)
	}
	return strconv.Itoa(numeric.Clamp(value, 0, MaxBodySize))
}

// BodySizeInput normalizes a body size while it is being typed. An empty
// value is allowed so the field can be cleared.
func BodySizeInput(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return NormalizeBodySize(raw)
}

// BodySizeCommit normalizes a body size when the field loses focus. An empty
// value becomes 0.
func BodySizeCommit(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "0"
	}
	return NormalizeBodySize(raw)
}

// BodySizeControl is the body size value plus whether it is editable.
type BodySizeControl struct {
	Value    string `json:"value"`
	Disabled bool   `json:"disabled"`
}

// ReconcileBodySize forces MaxBodySize on boss records and normalizes the
// stored value otherwise. keepEmpty leaves an empty value alone, as while the
// user is typing in the field.
func (r *Record) ReconcileBodySize(keepEmpty bool) BodySizeControl {
	if r.IsBoss {
		r.BodySize = strconv.Itoa(MaxBodySize)
		return BodySizeControl{Value: r.BodySize, Disabled: true}
	}
	if keepEmpty {
		r.BodySize = BodySizeInput(r.BodySize)
	} else {
		r.BodySize = NormalizeBodySize(r.BodySize)
	}
	return BodySizeControl{Value: r.BodySize}
}
