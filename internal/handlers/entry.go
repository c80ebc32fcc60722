package handlers

import (
	"errors"
	"net/http"

	"entryledger/internal/auth"
	dom "entryledger/internal/domain"
	"entryledger/internal/dto"
	"entryledger/internal/service"

	"github.com/gin-gonic/gin"
)

// EntryHandler exposes the entry lifecycle over HTTP. The acting
// identity comes from the session; only Delegate names a target
// explicitly.
type EntryHandler struct {
	svc *service.EntryService
}

// NewEntryHandler returns a new EntryHandler.
func NewEntryHandler(svc *service.EntryService) *EntryHandler {
	return &EntryHandler{svc: svc}
}

// Create godoc
// @Summary      Create the caller's entry
// @Tags         entry
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.CreateEntryRequest  true  "Entry content"
// @Success      201   {object}  dto.EntryResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /entry [post]
func (h *EntryHandler) Create(c *gin.Context) {
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e, err := h.svc.Create(c.Request.Context(), auth.IdentityFromContext(c), req.Content)
	if err != nil {
		writeEntryError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entryToResponse(e))
}

// Delegate godoc
// @Summary      Create an entry for another identity
// @Tags         entry
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.DelegateEntryRequest  true  "Target and content"
// @Success      201   {object}  dto.EntryResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /entry/delegate [post]
func (h *EntryHandler) Delegate(c *gin.Context) {
	var req dto.DelegateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e, err := h.svc.Delegate(c.Request.Context(), dom.Identity(req.TargetIdentity), req.Content)
	if err != nil {
		writeEntryError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entryToResponse(e))
}

// Update godoc
// @Summary      Replace the caller's entry content and completion
// @Tags         entry
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.UpdateEntryRequest  true  "Full replacement"
// @Success      200   {object}  dto.EntryResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /entry [put]
func (h *EntryHandler) Update(c *gin.Context) {
	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e, err := h.svc.Update(c.Request.Context(), auth.IdentityFromContext(c), req.Content, *req.Completed)
	if err != nil {
		writeEntryError(c, err)
		return
	}
	c.JSON(http.StatusOK, entryToResponse(e))
}

// Delete godoc
// @Summary      Delete the caller's entry
// @Tags         entry
// @Security     CookieAuth
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /entry [delete]
func (h *EntryHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), auth.IdentityFromContext(c)); err != nil {
		writeEntryError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AssignPriority godoc
// @Summary      Set the caller's priority tier
// @Tags         entry
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.AssignPriorityRequest  true  "Tier 1..3"
// @Success      200   {object}  dto.PriorityResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /entry/priority [put]
func (h *EntryHandler) AssignPriority(c *gin.Context) {
	var req dto.AssignPriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.svc.AssignPriority(c.Request.Context(), auth.IdentityFromContext(c), req.Tier)
	if err != nil {
		writeEntryError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PriorityResponse{Identity: string(p.Identity), Tier: p.Tier})
}

// ConfigureDeadline godoc
// @Summary      Set the caller's deadline from the current height
// @Tags         entry
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.ConfigureDeadlineRequest  true  "Duration in blocks"
// @Success      200   {object}  dto.DeadlineResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /entry/deadline [put]
func (h *EntryHandler) ConfigureDeadline(c *gin.Context) {
	var req dto.ConfigureDeadlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.svc.ConfigureDeadline(c.Request.Context(), auth.IdentityFromContext(c), req.DurationBlocks)
	if err != nil {
		writeEntryError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeadlineResponse{
		Identity: string(t.Identity),
		Deadline: t.Deadline,
		Notified: t.Notified,
	})
}

// Fetch godoc
// @Summary      Get the caller's entry
// @Tags         entry
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.EntryResponse
// @Failure      404  {object}  map[string]string
// @Router       /entry [get]
func (h *EntryHandler) Fetch(c *gin.Context) {
	e, err := h.svc.Fetch(c.Request.Context(), auth.IdentityFromContext(c))
	if err != nil {
		writeEntryError(c, err)
		return
	}
	c.JSON(http.StatusOK, entryToResponse(e))
}

// CheckCompletion godoc
// @Summary      Get the caller's completion flag
// @Tags         entry
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.CompletionResponse
// @Failure      404  {object}  map[string]string
// @Router       /entry/completed [get]
func (h *EntryHandler) CheckCompletion(c *gin.Context) {
	done, err := h.svc.CheckCompletion(c.Request.Context(), auth.IdentityFromContext(c))
	if err != nil {
		writeEntryError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CompletionResponse{Completed: done})
}

// Diagnostics godoc
// @Summary      Introspect the caller's entry slot
// @Tags         entry
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.DiagnosticsResponse
// @Router       /entry/diagnostics [get]
func (h *EntryHandler) Diagnostics(c *gin.Context) {
	d, err := h.svc.Diagnostics(c.Request.Context(), auth.IdentityFromContext(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.DiagnosticsResponse{
		Exists:        d.Exists,
		ContentLength: d.ContentLength,
		Completed:     d.Completed,
	})
}

func writeEntryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidParameter):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEntryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDuplicateEntry):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func entryToResponse(e dom.Entry) dto.EntryResponse {
	return dto.EntryResponse{
		Identity:  string(e.Identity),
		Content:   e.Content,
		Completed: e.Completed,
	}
}
