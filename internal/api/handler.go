package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/latoulicious/dexbox/internal/version"
	"github.com/latoulicious/dexbox/pkg/box"
	"github.com/latoulicious/dexbox/pkg/editor"
	"github.com/latoulicious/dexbox/pkg/logging"
	"github.com/latoulicious/dexbox/pkg/sprite"
)

const pingTimeout = 2 * time.Second

// Pinger checks an optional backing service, such as the database.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the editor session.
type Handler struct {
	session   *editor.Session
	db        Pinger
	startTime time.Time
	logger    logging.Logger
}

// NewHandler creates a Handler. db may be nil when no database is used.
func NewHandler(session *editor.Session, db Pinger) *Handler {
	return &Handler{
		session:   session,
		db:        db,
		startTime: time.Now(),
		logger:    logging.GetGlobalLoggerFactory().CreateLogger("api"),
	}
}

type selectRequest struct {
	No string `json:"no" binding:"required"`
}

type fieldRequest struct {
	Field string       `json:"field" binding:"required"`
	Value string       `json:"value"`
	Phase editor.Phase `json:"phase"`
}

// Health answers 200 once a catalogue is installed and the database, if
// any, answers.
func (h *Handler) Health(c *gin.Context) {
	catalogLoaded := h.session.Catalog() != nil
	databaseOK := true
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()
		databaseOK = h.db.Ping(ctx) == nil
	}

	status := http.StatusOK
	state := "healthy"
	if !catalogLoaded || !databaseOK {
		status = http.StatusServiceUnavailable
		state = "unhealthy"
	}

	c.JSON(status, gin.H{
		"status":             state,
		"uptime":             time.Since(h.startTime).String(),
		"start_time":         h.startTime.Format(time.RFC3339),
		"catalog_loaded":     catalogLoaded,
		"database_connected": h.db != nil && databaseOK,
	})
}

// Status reports version and catalogue counts.
func (h *Handler) Status(c *gin.Context) {
	counts := gin.H{}
	if cat := h.session.Catalog(); cat != nil {
		lists := cat.Lists()
		counts = gin.H{
			"entries": cat.Len(),
			"balls":   len(lists.Balls),
			"items":   len(lists.Items),
			"natures": len(lists.Natures),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"application": "dexbox",
		"version":     version.Get(),
		"uptime":      time.Since(h.startTime).String(),
		"session_id":  h.session.ID(),
		"catalog":     counts,
		"box_size":    len(h.session.Box(box.OrderInsertion)),
	})
}

// SearchCreatures lists catalogue entries matching ?q=.
func (h *Handler) SearchCreatures(c *gin.Context) {
	if h.session.Catalog() == nil {
		h.respondError(c, editor.ErrCatalogNotLoaded)
		return
	}
	c.JSON(http.StatusOK, gin.H{"creatures": h.session.Search(c.Query("q"))})
}

// GetLists returns the ball, item and nature lists.
func (h *Handler) GetLists(c *gin.Context) {
	if h.session.Catalog() == nil {
		h.respondError(c, editor.ErrCatalogNotLoaded)
		return
	}
	c.JSON(http.StatusOK, h.session.Lists())
}

// GetCurrent returns the full derived state of the current record.
func (h *Handler) GetCurrent(c *gin.Context) {
	snap, err := h.session.Current()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// SelectCreature loads a catalogue entry.
func (h *Handler) SelectCreature(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	snap, err := h.session.Select(req.No)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// ChangeField applies one field change. A rejected move selection answers
// 409 with the corrected state.
func (h *Handler) ChangeField(c *gin.Context) {
	var req fieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if req.Phase != "" && req.Phase != editor.PhaseInput && req.Phase != editor.PhaseCommit {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phase must be input or commit"})
		return
	}

	update, err := h.session.OnFieldChange(editor.Change{
		Field: req.Field,
		Value: req.Value,
		Phase: req.Phase,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	if !update.Accepted {
		c.JSON(http.StatusConflict, update)
		return
	}
	c.JSON(http.StatusOK, update)
}

// SaveToBox stores the current record.
func (h *Handler) SaveToBox(c *gin.Context) {
	result, err := h.session.Save()
	if err != nil {
		h.respondError(c, err)
		return
	}

	switch {
	case !result.Saved:
		c.Status(http.StatusNoContent)
	case result.Added:
		c.JSON(http.StatusCreated, result)
	default:
		c.JSON(http.StatusOK, result)
	}
}

// ListBox returns box cards in ?order=.
func (h *Handler) ListBox(c *gin.Context) {
	order := box.Order(c.Query("order"))
	c.JSON(http.StatusOK, gin.H{
		"order": order,
		"cards": h.session.Box(order),
	})
}

// GetBoxEntry returns one box entry.
func (h *Handler) GetBoxEntry(c *gin.Context) {
	handle, ok := parseHandle(c)
	if !ok {
		return
	}

	entry, err := h.session.BoxEntry(handle)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// EditBoxEntry loads a box entry into the editor.
func (h *Handler) EditBoxEntry(c *gin.Context) {
	handle, ok := parseHandle(c)
	if !ok {
		return
	}

	snap, err := h.session.EditBoxEntry(handle)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// DeleteBoxEntry removes a box entry.
func (h *Handler) DeleteBoxEntry(c *gin.Context) {
	handle, ok := parseHandle(c)
	if !ok {
		return
	}

	if err := h.session.DeleteBoxEntry(handle); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SpriteCandidates lists the probe order for ?ref=.
func (h *Handler) SpriteCandidates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"candidates": h.session.SpriteCandidates(c.Query("ref"))})
}

// ResolveSprite returns the first candidate of ?ref= that loads.
func (h *Handler) ResolveSprite(c *gin.Context) {
	ref := c.Query("ref")
	location, err := h.session.ResolveSprite(c.Request.Context(), ref)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reference": ref, "location": location})
}

func parseHandle(c *gin.Context) (uuid.UUID, bool) {
	handle, err := uuid.Parse(c.Param("handle"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid box handle"})
		return uuid.Nil, false
	}
	return handle, true
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, editor.ErrUnknownField):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "fields": editor.Fields()})
	case errors.Is(err, editor.ErrRecordNotFound),
		errors.Is(err, editor.ErrNoCurrentRecord),
		errors.Is(err, box.ErrEntryNotFound),
		errors.Is(err, sprite.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, editor.ErrCatalogNotLoaded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Request failed", err, map[string]interface{}{
			"path": c.FullPath(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
