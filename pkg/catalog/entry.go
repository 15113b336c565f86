package catalog

import (
	"strings"

	"github.com/latoulicious/dexbox/pkg/numeric"
)

// Entry is one creature of the reference dataset. JSON names match the
// dataset columns.
type Entry struct {
	No         Field `json:"No"`
	DexNo      Field `json:"Dex_No"`
	CNName     Field `json:"CN_Name"`
	ENGName    Field `json:"ENG_Name"`
	WebName    Field `json:"Web_Name"`
	GenderType Field `json:"Gender_Type"`
	LVMin      Field `json:"LV_Min"`
	BossLVMin  Field `json:"Boss_LV_Min"`
	MoveLv     Field `json:"Move_Lv"`
	MoveTM     Field `json:"Move_TM"`
	MoveBoss   Field `json:"Move_Boss"`
	PreMove1   Field `json:"Pre_Move1"`
	PreMove2   Field `json:"Pre_Move2"`
	PreMove3   Field `json:"Pre_Move3"`
	PreMove4   Field `json:"Pre_Move4"`
	PreEvs     Field `json:"Pre_Evs"`
	PreNature  Field `json:"Pre_Nature"`
	PreGender  Field `json:"Pre_Gender"`
	PreBall    Field `json:"Pre_Ball"`
	HeldItem   Field `json:"Held_Item"`
	BodySize   Field `json:"Body_Size"`
	Picture    Field `json:"Picture"`
	Ivs        Field `json:"Ivs"`
	IsShiny    Field `json:"Is_Shiny"`
	IsBoss     Field `json:"Is_Boss"`
}

// Summary is the selector list row for an entry.
type Summary struct {
	No       string `json:"no"`
	PaddedNo string `json:"padded_no"`
	Name     string `json:"name"`
	Level    string `json:"level"`
}

// Summary builds the selector row.
func (e Entry) Summary() Summary {
	name := e.CNName.Value
	if name == "" {
		name = e.ENGName.Value
	}
	if name == "" {
		name = "未知精灵"
	}
	level := e.LVMin.Value
	if level == "" {
		level = "--"
	}
	return Summary{
		No:       e.No.Value,
		PaddedNo: PadNo(e.No.Value),
		Name:     name,
		Level:    level,
	}
}

// PadNo left-pads a dex number to three digits, "--" when empty.
func PadNo(no string) string {
	if no == "" {
		return "--"
	}
	if len(no) >= 3 {
		return no
	}
	return strings.Repeat("0", 3-len(no)) + no
}

// sortKey is the numeric value of No; ok is false when No is not a number.
func (e Entry) sortKey() (float64, bool) {
	return numeric.ParseNumber(e.No.Value)
}
