package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/giveawayhq/sweepstakes-backend/internal/models"
	"github.com/giveawayhq/sweepstakes-backend/internal/services"
)

// WinnerHandler handles finalized winner and draw record HTTP requests
type WinnerHandler struct {
	winnerService services.WinnerService
}

// NewWinnerHandler creates a new WinnerHandler
func NewWinnerHandler(winnerService services.WinnerService) *WinnerHandler {
	return &WinnerHandler{winnerService: winnerService}
}

// GetDrawRecords handles GET /draws
func (h *WinnerHandler) GetDrawRecords(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	records, err := h.winnerService.GetDrawRecords(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get draw records: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

// GetDrawRecordByID handles GET /draws/:id
func (h *WinnerHandler) GetDrawRecordByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid draw ID format"})
		return
	}

	record, err := h.winnerService.GetDrawRecordByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Draw record not found"})
		return
	}
	c.JSON(http.StatusOK, record)
}

// GetWinnersByDrawID handles GET /draws/:id/winners
func (h *WinnerHandler) GetWinnersByDrawID(c *gin.Context) {
	drawID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid draw ID format"})
		return
	}

	winners, err := h.winnerService.GetWinnersByDrawID(c.Request.Context(), drawID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get winners: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, winners)
}

// GetAuditTrail handles GET /draws/:id/audit
func (h *WinnerHandler) GetAuditTrail(c *gin.Context) {
	drawID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid draw ID format"})
		return
	}

	entries, err := h.winnerService.GetAuditTrail(c.Request.Context(), drawID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get audit trail: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetWinnersByClaimStatus handles GET /winners
func (h *WinnerHandler) GetWinnersByClaimStatus(c *gin.Context) {
	status := models.ClaimStatus(c.DefaultQuery("status", string(models.ClaimStatusPending)))
	if !models.ValidClaimStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid claim status"})
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	winners, err := h.winnerService.GetWinnersByClaimStatus(c.Request.Context(), status, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get winners: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, winners)
}

// UpdateWinnerClaimStatus handles PUT /winners/:id/claim-status
type UpdateWinnerClaimStatusRequest struct {
	Status models.ClaimStatus `json:"status" binding:"required"`
}

func (h *WinnerHandler) UpdateWinnerClaimStatus(c *gin.Context) {
	winnerID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid winner ID format"})
		return
	}
	var request UpdateWinnerClaimStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidClaimStatus(request.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid claim status"})
		return
	}

	if err := h.winnerService.UpdateClaimStatus(c.Request.Context(), winnerID, request.Status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update claim status: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Claim status updated"})
}
