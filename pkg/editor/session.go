// Package editor owns the record being edited and keeps it consistent as
// fields change. Every mutation goes through a Session, which serializes
// them the way a single UI event loop would.
package editor

import (
	"context"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/latoulicious/dexbox/pkg/box"
	"github.com/latoulicious/dexbox/pkg/catalog"
	"github.com/latoulicious/dexbox/pkg/level"
	"github.com/latoulicious/dexbox/pkg/logging"
	"github.com/latoulicious/dexbox/pkg/moves"
	"github.com/latoulicious/dexbox/pkg/notify"
	"github.com/latoulicious/dexbox/pkg/record"
	"github.com/latoulicious/dexbox/pkg/spread"
	"github.com/latoulicious/dexbox/pkg/sprite"
)

// Options configures a Session.
type Options struct {
	DefaultHeldItemID   string
	DefaultHeldItemName string
	// Locale drives box name ordering.
	Locale language.Tag
}

// DefaultOptions are the editor defaults.
func DefaultOptions() Options {
	return Options{
		DefaultHeldItemID:   "1",
		DefaultHeldItemName: "大师球",
		Locale:              language.SimplifiedChinese,
	}
}

// Session is the single state owner of the editor.
type Session struct {
	mu sync.Mutex

	id       string
	opts     Options
	catalog  *catalog.Catalog
	current  *record.Record
	effort   spread.Spread
	innate   spread.Spread
	slots    *moves.SlotSet
	box      *box.Box
	resolver *sprite.Resolver
	view     *sprite.View
	board    *notify.Board
	notifier notify.Notifier
	logger   logging.Logger

	// pending collects notifications raised while a change is applied.
	pending []notify.Notification
}

// NewSession creates a Session. board may be nil when no toast area is
// shown; notifier receives every notification, the board's included.
func NewSession(opts Options, resolver *sprite.Resolver, board *notify.Board, notifier notify.Notifier) *Session {
	id := uuid.NewString()
	s := &Session{
		id:       id,
		opts:     opts,
		box:      box.New(opts.Locale),
		resolver: resolver,
		view:     sprite.NewView(),
		board:    board,
		notifier: notifier,
		logger:   logging.GetGlobalLoggerFactory().CreateSessionLogger(id),
	}
	s.slots = moves.NewSlotSet(s.onConflict)
	return s
}

// ID identifies the session in logs.
func (s *Session) ID() string {
	return s.id
}

func (s *Session) onConflict(c moves.Conflict) {
	s.pending = append(s.pending, notify.Notification{
		Kind:    notify.KindConflict,
		Message: c.Message,
		Detail: map[string]string{
			"move":    c.Value,
			"slot":    strconv.Itoa(c.Slot),
			"held_by": strconv.Itoa(c.HeldBy),
		},
	})
}

// flush delivers pending notifications and returns the last one.
func (s *Session) flush() *notify.Notification {
	if len(s.pending) == 0 {
		return nil
	}
	var last notify.Notification
	for _, n := range s.pending {
		last = n
		if s.notifier == nil {
			continue
		}
		if err := s.notifier.Notify(n); err != nil {
			s.logger.Warn("Failed to deliver notification", map[string]interface{}{
				"kind":  string(n.Kind),
				"error": err.Error(),
			})
		}
	}
	s.pending = s.pending[:0]
	return &last
}

// SetCatalog installs a loaded catalogue. When nothing is being edited the
// default entry is selected.
func (s *Session) SetCatalog(c *catalog.Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.catalog = c
	s.logger.Info("Catalogue installed", map[string]interface{}{
		"entries": c.Len(),
	})

	if s.current != nil {
		return
	}
	if entry, ok := c.Default(); ok {
		s.load(record.FromEntry(entry, s.defaults()))
	}
}

func (s *Session) defaults() record.Defaults {
	name := s.opts.DefaultHeldItemName
	if s.catalog != nil {
		name = s.catalog.DefaultHeldItemName(s.opts.DefaultHeldItemID, s.opts.DefaultHeldItemName)
	}
	return record.Defaults{HeldItemName: name}
}

// Catalog returns the installed catalogue, nil before the first load.
func (s *Session) Catalog() *catalog.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog
}

// Select loads catalogue entry no as the current record. Selecting from the
// catalogue stops editing any box entry.
func (s *Session) Select(no string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.catalog == nil {
		return Snapshot{}, ErrCatalogNotLoaded
	}
	entry, ok := s.catalog.Find(no)
	if !ok {
		return Snapshot{}, ErrRecordNotFound
	}

	s.box.StopEditing()
	s.load(record.FromEntry(entry, s.defaults()))
	s.logger.Info("Record selected", map[string]interface{}{
		"no": no,
	})
	return s.snapshot(), nil
}

// load installs r as the current record and derives everything from it.
func (s *Session) load(r record.Record) {
	effort := spread.Effort.Fit(spread.Decode(r.PreEvs, spread.DefaultEffort))
	innate := spread.Innate.Fit(spread.Decode(r.Ivs, spread.DefaultInnate))
	s.effort = effort.Spread
	s.innate = innate.Spread
	r.PreEvs = spread.Encode(s.effort)
	r.Ivs = spread.Encode(s.innate)

	s.slots.Rebuild(r)
	s.slots.Apply(&r)

	r.ReconcileBodySize(false)
	level.Reconcile(&r)

	s.current = &r
	s.view.Show(s.resolver, r.SpriteKey())
}

// Current returns the derived state of the current record.
func (s *Session) Current() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return Snapshot{}, ErrNoCurrentRecord
	}
	return s.snapshot(), nil
}

func (s *Session) snapshot() Snapshot {
	r := *s.current
	snap := Snapshot{
		Record:      r,
		PaddedNo:    r.PaddedNo(),
		DisplayName: r.DisplayName(),
		Effort:      spread.Effort.Renormalize(s.effort),
		Innate:      spread.Innate.Renormalize(s.innate),
		Level:       level.Bounds(r),
		BodySize:    record.BodySizeControl{Value: r.BodySize, Disabled: r.IsBoss},
		Pools:       s.slots.Pools(),
		Slots:       s.slots.Views(),
		Sprite:      s.view.State(),
		Chips:       Chips{Shiny: r.IsShiny, Boss: r.IsBoss},
		Editing:     s.box.Editing(),
	}
	if s.board != nil {
		if toast, ok := s.board.Current(); ok {
			snap.Toast = &toast
		}
	}
	return snap
}

// Save stores the current record in the box: it overwrites the entry being
// edited or appends a new one. A record without a number is not saved.
func (s *Session) Save() (box.SaveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return box.SaveResult{}, ErrNoCurrentRecord
	}

	r := s.current
	r.TrimText()
	level.Reconcile(r)
	r.ReconcileBodySize(false)
	if r.Picture == "" {
		r.Picture = r.No
	}
	r.PreEvs = spread.Encode(s.effort)
	r.Ivs = spread.Encode(s.innate)
	s.slots.Apply(r)

	result := s.box.Save(*r)
	if !result.Saved {
		s.logger.Debug("Save skipped, record has no number", nil)
		return result, nil
	}

	s.logger.Info("Record saved to box", map[string]interface{}{
		"no":     r.No,
		"handle": result.Handle.String(),
		"added":  result.Added,
	})
	if result.Added {
		s.pending = append(s.pending, notify.Notification{
			Kind:    notify.KindBoxAdded,
			Message: notify.BoxAddedMessage,
			Detail: map[string]string{
				"no":     r.PaddedNo(),
				"name":   r.DisplayName(),
				"handle": result.Handle.String(),
			},
		})
		s.flush()
	}
	return result, nil
}

// EditBoxEntry loads a copy of a box entry as the current record and marks
// it as the entry being edited.
func (s *Session) EditBoxEntry(handle uuid.UUID) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.box.Edit(handle)
	if err != nil {
		return Snapshot{}, err
	}
	s.load(r)
	return s.snapshot(), nil
}

// DeleteBoxEntry removes a box entry.
func (s *Session) DeleteBoxEntry(handle uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.box.Delete(handle)
}

// BoxEntry returns one box entry without starting to edit it.
func (s *Session) BoxEntry(handle uuid.UUID) (box.Entry, error) {
	return s.box.Get(handle)
}

// Box lists the box as cards in the given order.
func (s *Session) Box(order box.Order) []box.Card {
	return s.box.Cards(order)
}

// Search lists catalogue entries matching query.
func (s *Session) Search(query string) []catalog.Summary {
	s.mu.Lock()
	c := s.catalog
	s.mu.Unlock()

	if c == nil {
		return []catalog.Summary{}
	}
	entries := c.Search(query)
	out := make([]catalog.Summary, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.Summary())
	}
	return out
}

// Lists returns the lookup lists of the installed catalogue.
func (s *Session) Lists() catalog.Lists {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.catalog == nil {
		return catalog.Lists{}
	}
	return s.catalog.Lists()
}

// ResolveSprite probes reference's candidates on the calling goroutine and
// returns the first that loads. The sprite view is left untouched.
func (s *Session) ResolveSprite(ctx context.Context, reference string) (string, error) {
	return s.resolver.ResolveSync(ctx, reference)
}

// SpriteCandidates lists the probe order for a picture reference.
func (s *Session) SpriteCandidates(reference string) []string {
	return s.resolver.Candidates(reference)
}
