package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foliocms/foliocms/internal/editor"
	"github.com/foliocms/foliocms/internal/portfolio"
	"github.com/foliocms/foliocms/internal/portfolio/service"
	"github.com/foliocms/foliocms/pkg/logger"
)

// editorStore holds open editing workspaces keyed by id. Single-operator
// deployments rarely hold more than one, but ids keep concurrent tabs from
// clobbering each other.
type editorStore struct {
	mu      sync.Mutex
	editors map[string]*editor.Editor
}

func newEditorStore() *editorStore {
	return &editorStore{editors: map[string]*editor.Editor{}}
}

func (s *editorStore) put(ed *editor.Editor) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.editors[id] = ed
	s.mu.Unlock()
	return id
}

func (s *editorStore) get(id string) (*editor.Editor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ed, ok := s.editors[id]
	return ed, ok
}

func (s *editorStore) delete(id string) {
	s.mu.Lock()
	delete(s.editors, id)
	s.mu.Unlock()
}

// EditorHandler exposes the editing workspace over the gated admin API.
type EditorHandler struct {
	svc   *service.Service
	store *editorStore
}

func NewEditorHandler(svc *service.Service) *EditorHandler {
	return &EditorHandler{svc: svc, store: newEditorStore()}
}

// Register routes under /api/editor. Every route requires a session.
func (h *EditorHandler) Register(rg *gin.RouterGroup, requireSession gin.HandlerFunc) {
	e := rg.Group("/api/editor", requireSession)
	e.POST("", h.Open)
	e.GET("/:id", h.State)
	e.PUT("/:id/section", h.SetSection)
	e.POST("/:id/items", h.AddItem)
	e.DELETE("/:id/items/:index", h.RemoveItem)
	e.PATCH("/:id/field", h.UpdateField)
	e.POST("/:id/links", h.AddLink)
	e.DELETE("/:id/links/:index", h.RemoveLink)
	e.POST("/:id/submit", h.Submit)
	e.DELETE("/:id", h.Close)
}

// Open loads the aggregate into a fresh workspace and returns its id.
func (h *EditorHandler) Open(c *gin.Context) {
	data, err := h.svc.Load(c.Request.Context())
	if err != nil {
		logger.Errorf("failed to load portfolio for editing: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load portfolio"})
		return
	}
	ed, err := editor.NewEditor(data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open editor"})
		return
	}
	id := h.store.put(ed)
	c.JSON(http.StatusCreated, gin.H{"id": id, "activeSection": ed.Active()})
}

// State returns the working copy, active section and dirty flag.
func (h *EditorHandler) State(c *gin.Context) {
	ed, ok := h.store.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "editor not found"})
		return
	}
	snap, err := ed.Snapshot()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to snapshot editor"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"activeSection": ed.Active(),
		"dirty":         ed.Dirty(),
		"data":          snap,
	})
}

// SetSection switches the section under edit.
func (h *EditorHandler) SetSection(c *gin.Context) {
	ed, ok := h.store.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "editor not found"})
		return
	}
	var req struct {
		Section string `json:"section" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	section, err := portfolio.ParseSection(req.Section)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ed.SetActive(section)
	c.JSON(http.StatusOK, gin.H{"activeSection": section})
}

// AddItem appends a default record to the active list section.
func (h *EditorHandler) AddItem(c *gin.Context) {
	ed, ok := h.store.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "editor not found"})
		return
	}
	idx, err := ed.AddItem()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"index": idx})
}

// RemoveItem deletes the record at :index from the active list section.
func (h *EditorHandler) RemoveItem(c *gin.Context) {
	ed, ok := h.store.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "editor not found"})
		return
	}
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
		return
	}
	if err := ed.RemoveItem(idx); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, editor.ErrIndexRange) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": idx})
}

// UpdateField patches one field. For list sections the request carries the
// item index; scalar sections replace whole values through typed setters.
func (h *EditorHandler) UpdateField(c *gin.Context) {
	ed, ok := h.store.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "editor not found"})
		return
	}
	var req struct {
		Index *int            `json:"index"`
		Field string          `json:"field"`
		Value json.RawMessage `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if ed.Active().IsList() {
		if req.Index == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "index is required for list sections"})
			return
		}
		var value interface{}
		if len(req.Value) > 0 {
			if err := json.Unmarshal(req.Value, &value); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid value"})
				return
			}
		}
		if err := ed.UpdateField(*req.Index, req.Field, value); err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, editor.ErrIndexRange) {
				status = http.StatusNotFound
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"updated": req.Field})
		return
	}

	if err := h.applyScalar(ed, req.Value); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": string(ed.Active())})
}

// applyScalar replaces the active scalar section from the request value.
func (h *EditorHandler) applyScalar(ed *editor.Editor, raw json.RawMessage) error {
	switch ed.Active() {
	case portfolio.SectionHero:
		var hero portfolio.Hero
		if err := json.Unmarshal(raw, &hero); err != nil {
			return err
		}
		ed.SetHero(hero)
	case portfolio.SectionContact:
		var contact portfolio.Contact
		if err := json.Unmarshal(raw, &contact); err != nil {
			return err
		}
		ed.SetContact(contact)
	case portfolio.SectionAbout:
		var about struct {
			Description string `json:"description"`
		}
		if err := json.Unmarshal(raw, &about); err != nil {
			return err
		}
		ed.SetAboutDescription(about.Description)
	case portfolio.SectionResume:
		var resume portfolio.Resume
		if err := json.Unmarshal(raw, &resume); err != nil {
			return err
		}
		ed.SetResumeURL(resume.ResumeURL)
	default:
		return errors.New("unsupported section")
	}
	return nil
}

// AddLink appends an annotation over the about description.
func (h *EditorHandler) AddLink(c *gin.Context) {
	ed, ok := h.store.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "editor not found"})
		return
	}
	var req struct {
		Text       string `json:"text" binding:"required"`
		URL        string `json:"url" binding:"required"`
		StartIndex int    `json:"startIndex"`
		EndIndex   int    `json:"endIndex"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := ed.Annotate(req.Text, req.URL, req.StartIndex, req.EndIndex); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": req.Text})
}

// RemoveLink deletes the annotation at :index.
func (h *EditorHandler) RemoveLink(c *gin.Context) {
	ed, ok := h.store.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "editor not found"})
		return
	}
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
		return
	}
	if err := ed.RemoveLink(idx); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, editor.ErrIndexRange) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": idx})
}

// Submit persists the active section of the workspace.
func (h *EditorHandler) Submit(c *gin.Context) {
	ed, ok := h.store.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "editor not found"})
		return
	}
	if err := ed.Submit(c.Request.Context(), h.svc); err != nil {
		if errors.Is(err, service.ErrInvalidPayload) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Errorf("editor submit failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save section"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"section": ed.Active(), "saved": true})
}

// Close discards the workspace.
func (h *EditorHandler) Close(c *gin.Context) {
	h.store.delete(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"closed": true})
}
