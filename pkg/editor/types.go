package editor

import (
	"errors"

	"github.com/google/uuid"

	"github.com/latoulicious/dexbox/pkg/level"
	"github.com/latoulicious/dexbox/pkg/moves"
	"github.com/latoulicious/dexbox/pkg/notify"
	"github.com/latoulicious/dexbox/pkg/record"
	"github.com/latoulicious/dexbox/pkg/spread"
	"github.com/latoulicious/dexbox/pkg/sprite"
)

var (
	// ErrRecordNotFound is returned when a catalogue number does not exist.
	ErrRecordNotFound = errors.New("record not found in catalogue")
	// ErrNoCurrentRecord is returned when nothing has been selected yet.
	ErrNoCurrentRecord = errors.New("no record is being edited")
	// ErrUnknownField is returned for field names the editor does not have.
	ErrUnknownField = errors.New("unknown field")
	// ErrCatalogNotLoaded is returned before the first catalogue is installed.
	ErrCatalogNotLoaded = errors.New("catalogue not loaded")
)

// Phase tells whether a change happens while typing or when the control
// loses focus.
type Phase string

const (
	PhaseInput  Phase = "input"
	PhaseCommit Phase = "commit"
)

// Change is one field mutation coming from the UI.
type Change struct {
	Field string `json:"field"`
	Value string `json:"value"`
	Phase Phase  `json:"phase"`
}

// Chips are the flag badges next to the record name.
type Chips struct {
	Shiny bool `json:"shiny"`
	Boss  bool `json:"boss"`
}

// Update is the display-ready result of one change. Only the parts the
// change touched are set.
type Update struct {
	Field string `json:"field"`
	// Accepted is false when the change was rejected and rolled back.
	Accepted     bool                    `json:"accepted"`
	Value        string                  `json:"value"`
	Effort       *spread.Result          `json:"effort,omitempty"`
	Innate       *spread.Result          `json:"innate,omitempty"`
	Level        *level.Constraint       `json:"level,omitempty"`
	BodySize     *record.BodySizeControl `json:"body_size,omitempty"`
	Slots        []moves.SlotView        `json:"slots,omitempty"`
	Sprite       *sprite.ViewState       `json:"sprite,omitempty"`
	Chips        *Chips                  `json:"chips,omitempty"`
	Notification *notify.Notification    `json:"notification,omitempty"`
	Record       record.Record           `json:"record"`
}

// Snapshot is the complete derived state of the editor.
type Snapshot struct {
	Record      record.Record          `json:"record"`
	PaddedNo    string                 `json:"padded_no"`
	DisplayName string                 `json:"display_name"`
	Effort      spread.Result          `json:"effort"`
	Innate      spread.Result          `json:"innate"`
	Level       level.Constraint       `json:"level"`
	BodySize    record.BodySizeControl `json:"body_size"`
	Pools       moves.Pools            `json:"pools"`
	Slots       []moves.SlotView       `json:"slots"`
	Sprite      sprite.ViewState       `json:"sprite"`
	Chips       Chips                  `json:"chips"`
	Editing     uuid.UUID              `json:"editing"`
	Toast       *notify.Toast          `json:"toast,omitempty"`
}
