package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/giveawayhq/sweepstakes-backend/internal/draw"
	"github.com/giveawayhq/sweepstakes-backend/internal/models"
	"github.com/giveawayhq/sweepstakes-backend/internal/services"
)

// DrawSessionHandler handles draw-session HTTP requests
type DrawSessionHandler struct {
	sessionService services.DrawSessionService
}

// NewDrawSessionHandler creates a new DrawSessionHandler
func NewDrawSessionHandler(sessionService services.DrawSessionService) *DrawSessionHandler {
	return &DrawSessionHandler{sessionService: sessionService}
}

// statusForDrawError maps engine sentinels to HTTP statuses. Everything the
// engine reports is recoverable, so nothing here maps to 500.
func statusForDrawError(err error) int {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, draw.ErrDrawInProgress),
		errors.Is(err, draw.ErrInvalidTransition),
		errors.Is(err, draw.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, draw.ErrJustificationRequired),
		errors.Is(err, draw.ErrNotEligible),
		errors.Is(err, draw.ErrZeroEligible),
		errors.Is(err, draw.ErrPositionOutOfRange),
		errors.Is(err, draw.ErrNoSlots):
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}

func respondDrawError(c *gin.Context, err error) {
	c.JSON(statusForDrawError(err), gin.H{"error": err.Error()})
}

// CreateSession handles POST /draw-sessions
type CreateSessionRequest struct {
	Campaign        string                     `json:"campaign" binding:"required"`
	Prizes          []models.Prize             `json:"prizes" binding:"required"`
	Criteria        models.EligibilityCriteria `json:"criteria"`
	ExistingWinners []*models.Winner           `json:"existingWinners"`
}

func (h *DrawSessionHandler) CreateSession(c *gin.Context) {
	var request CreateSessionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.sessionService.CreateSession(c.Request.Context(), &services.CreateSessionRequest{
		Campaign:        request.Campaign,
		Prizes:          request.Prizes,
		Criteria:        request.Criteria,
		ExistingWinners: request.ExistingWinners,
	})
	if err != nil {
		respondDrawError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// GetSession handles GET /draw-sessions/:id
func (h *DrawSessionHandler) GetSession(c *gin.Context) {
	session, err := h.sessionService.GetSession(c.Param("id"))
	if err != nil {
		respondDrawError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Configure handles POST /draw-sessions/:id/configure
type ConfigureRequest struct {
	NumberOfWinners int                    `json:"numberOfWinners" binding:"required,min=1"`
	Method          models.SelectionMethod `json:"method" binding:"required"`
}

func (h *DrawSessionHandler) Configure(c *gin.Context) {
	var request ConfigureRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.sessionService.Configure(c.Param("id"), request.NumberOfWinners, request.Method)
	if err != nil {
		respondDrawError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// ExecuteDraw handles POST /draw-sessions/:id/draw
func (h *DrawSessionHandler) ExecuteDraw(c *gin.Context) {
	outcome, err := h.sessionService.ExecuteDraw(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDrawError(c, err)
		return
	}

	session, err := h.sessionService.GetSession(c.Param("id"))
	if err != nil {
		respondDrawError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"outcome": outcome, "session": session})
}

// RollSlot handles POST /draw-sessions/:id/slots/:position/reroll. An empty
// slot gets a fresh draw, an occupied unconfirmed slot is rerolled.
func (h *DrawSessionHandler) RollSlot(c *gin.Context) {
	position, ok := h.position(c)
	if !ok {
		return
	}
	session, err := h.sessionService.RollSlot(c.Request.Context(), c.Param("id"), position)
	if err != nil {
		respondDrawError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// ManualAssign handles POST /draw-sessions/:id/slots/:position/manual
type ManualAssignRequest struct {
	ParticipantID string `json:"participantId" binding:"required"`
}

func (h *DrawSessionHandler) ManualAssign(c *gin.Context) {
	position, ok := h.position(c)
	if !ok {
		return
	}
	var request ManualAssignRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	participantID, err := primitive.ObjectIDFromHex(request.ParticipantID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid participant ID format"})
		return
	}

	session, err := h.sessionService.ManualAssign(c.Request.Context(), c.Param("id"), position, participantID)
	if err != nil {
		respondDrawError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// ConfirmSlot handles POST /draw-sessions/:id/slots/:position/confirm
func (h *DrawSessionHandler) ConfirmSlot(c *gin.Context) {
	position, ok := h.position(c)
	if !ok {
		return
	}
	session, err := h.sessionService.ConfirmSlot(c.Param("id"), position)
	if err != nil {
		respondDrawError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// ConfirmAll handles POST /draw-sessions/:id/confirm-all
func (h *DrawSessionHandler) ConfirmAll(c *gin.Context) {
	session, err := h.sessionService.ConfirmAll(c.Param("id"))
	if err != nil {
		respondDrawError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// ConfirmPartial handles POST /draw-sessions/:id/confirm-partial
func (h *DrawSessionHandler) ConfirmPartial(c *gin.Context) {
	session, err := h.sessionService.ConfirmPartial(c.Param("id"))
	if err != nil {
		respondDrawError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// RemoveConfirmed handles POST /draw-sessions/:id/slots/:position/remove
type RemoveConfirmedRequest struct {
	Justification string `json:"justification"`
}

func (h *DrawSessionHandler) RemoveConfirmed(c *gin.Context) {
	position, ok := h.position(c)
	if !ok {
		return
	}
	var request RemoveConfirmedRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.sessionService.RemoveConfirmed(c.Param("id"), position, request.Justification)
	if err != nil {
		respondDrawError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// UpdateClaimStatus handles POST /draw-sessions/:id/slots/:position/claim-status
type UpdateClaimStatusRequest struct {
	Status models.ClaimStatus `json:"status" binding:"required"`
}

func (h *DrawSessionHandler) UpdateClaimStatus(c *gin.Context) {
	position, ok := h.position(c)
	if !ok {
		return
	}
	var request UpdateClaimStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.sessionService.UpdateClaimStatus(c.Param("id"), position, request.Status)
	if err != nil {
		respondDrawError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// ChangeView handles POST /draw-sessions/:id/view
type ChangeViewRequest struct {
	View string `json:"view" binding:"required"` // results | manual | audit
}

func (h *DrawSessionHandler) ChangeView(c *gin.Context) {
	var request ChangeViewRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var target draw.SessionState
	switch request.View {
	case "results":
		target = draw.StateResults
	case "manual":
		target = draw.StateManual
	case "audit":
		target = draw.StateAudit
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid view (results, manual or audit)"})
		return
	}

	session, err := h.sessionService.ChangeView(c.Param("id"), target)
	if err != nil {
		respondDrawError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Reopen handles POST /draw-sessions/:id/reopen
type ReopenRequest struct {
	StartOver bool `json:"startOver"`
}

func (h *DrawSessionHandler) Reopen(c *gin.Context) {
	var request ReopenRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.sessionService.Reopen(c.Param("id"), request.StartOver)
	if err != nil {
		respondDrawError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// GetAudit handles GET /draw-sessions/:id/audit
func (h *DrawSessionHandler) GetAudit(c *gin.Context) {
	entries, err := h.sessionService.Audit(c.Param("id"))
	if err != nil {
		respondDrawError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Finalize handles POST /draw-sessions/:id/finalize
func (h *DrawSessionHandler) Finalize(c *gin.Context) {
	finalizedBy, _ := c.Get("userEmail")
	email, _ := finalizedBy.(string)

	record, err := h.sessionService.Finalize(c.Request.Context(), c.Param("id"), email)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			respondDrawError(c, err)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to finalize draw: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, record)
}

// Discard handles DELETE /draw-sessions/:id
func (h *DrawSessionHandler) Discard(c *gin.Context) {
	if err := h.sessionService.Discard(c.Param("id")); err != nil {
		respondDrawError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session discarded"})
}

func (h *DrawSessionHandler) position(c *gin.Context) (int, bool) {
	position, err := strconv.Atoi(c.Param("position"))
	if err != nil || position < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slot position"})
		return 0, false
	}
	return position, true
}
