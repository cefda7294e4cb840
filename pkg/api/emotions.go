package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tableflip.dev/palette/pkg/app"
	"tableflip.dev/palette/pkg/entry"
	"tableflip.dev/palette/pkg/store"
)

type emotionsHandler struct {
	svc *app.Service
}

func (h *emotionsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/emotions", h.list)
	rg.POST("/emotions", h.create)
	rg.GET("/emotions/:id", h.get)
	rg.PUT("/emotions/:id", h.update)
	rg.DELETE("/emotions/:id", h.delete)
}

func (h *emotionsHandler) clock() time.Time {
	if h.svc.Now != nil {
		return h.svc.Now()
	}
	return time.Now()
}

func (h *emotionsHandler) list(c *gin.Context) {
	entries, err := h.svc.EntriesBetween(c.Request.Context(), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	OK(c, entries)
}

// create stores a client-built entry. Missing ids, dates and timestamps are
// filled in the same way a local save would. Posting an id that is already
// stored answers 200 with the stored record, so a client retrying after a
// lost reply does not get stuck on a conflict.
func (h *emotionsHandler) create(c *gin.Context) {
	var in entry.Entry
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}
	e := in.Clone()
	if strings.TrimSpace(e.ID) == "" {
		e.ID = entry.NewID()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = entry.Timestamp{Time: h.clock()}
	}
	if strings.TrimSpace(e.Date) == "" {
		e.Date = entry.DateOf(e.Timestamp.Time)
	}
	if e.EmotionIntensity == 0 {
		e.EmotionIntensity = entry.DefaultIntensity
	}
	if color, err := entry.NormalizeColor(e.Color); err == nil {
		e.Color = color
	}
	if avoid, err := entry.NormalizeColor(e.AvoidColor); err == nil {
		e.AvoidColor = avoid
	}
	e.PendingSync = false

	if err := h.svc.Persist(c.Request.Context(), e); err != nil {
		if errors.Is(err, store.ErrDuplicateID) {
			if existing, gerr := h.svc.Get(c.Request.Context(), e.ID); gerr == nil {
				OK(c, existing)
				return
			}
		}
		Error(c, err)
		return
	}
	Created(c, e)
}

func (h *emotionsHandler) get(c *gin.Context) {
	e, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		Error(c, err)
		return
	}
	OK(c, e)
}

func (h *emotionsHandler) update(c *gin.Context) {
	var patch entry.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if patch.Empty() {
		BadRequest(c, "nothing to update")
		return
	}
	e, err := h.svc.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		Error(c, err)
		return
	}
	OK(c, e)
}

func (h *emotionsHandler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		Error(c, err)
		return
	}
	NoContent(c)
}
