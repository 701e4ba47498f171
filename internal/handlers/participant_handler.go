package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/giveawayhq/sweepstakes-backend/internal/models"
	"github.com/giveawayhq/sweepstakes-backend/internal/services"
)

// ParticipantHandler handles roster HTTP requests
type ParticipantHandler struct {
	participantService services.ParticipantService
}

// NewParticipantHandler creates a new ParticipantHandler
func NewParticipantHandler(participantService services.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{participantService: participantService}
}

// GetParticipants handles GET /participants. With a status query parameter the
// roster is filtered by account status and optional minScore instead of paged.
func (h *ParticipantHandler) GetParticipants(c *gin.Context) {
	if status := c.Query("status"); status != "" {
		minScore, _ := strconv.Atoi(c.DefaultQuery("minScore", "0"))
		participants, err := h.participantService.GetParticipantsByStatus(c.Request.Context(),
			models.ParticipantStatus(strings.ToUpper(status)), minScore)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve participants: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, participants)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	participants, err := h.participantService.GetParticipants(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve participants: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, participants)
}

// GetParticipantByID handles GET /participants/:id
func (h *ParticipantHandler) GetParticipantByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	participant, err := h.participantService.GetParticipantByID(c.Request.Context(), id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Participant not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve participant: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, participant)
}

// CreateParticipant handles POST /participants
type CreateParticipantRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Country      string `json:"country"`
	QualityScore int    `json:"qualityScore" binding:"min=0,max=100"`
	Engagement   int    `json:"engagement" binding:"min=0,max=100"`
	Entries      int    `json:"entries" binding:"min=0"`
}

func (h *ParticipantHandler) CreateParticipant(c *gin.Context) {
	var request CreateParticipantRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	participant := &models.Participant{
		Name:         request.Name,
		Email:        request.Email,
		Country:      request.Country,
		QualityScore: request.QualityScore,
		Engagement:   request.Engagement,
		Entries:      request.Entries,
		Status:       models.ParticipantStatusActive,
	}
	if err := h.participantService.CreateParticipant(c.Request.Context(), participant); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create participant: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, participant)
}

// UpdateParticipant handles PUT /participants/:id
func (h *ParticipantHandler) UpdateParticipant(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var participant models.Participant
	if err := c.ShouldBindJSON(&participant); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	participant.ID = id

	if err := h.participantService.UpdateParticipant(c.Request.Context(), &participant); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update participant: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, participant)
}

// DeleteParticipant handles DELETE /participants/:id
func (h *ParticipantHandler) DeleteParticipant(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.participantService.DeleteParticipant(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete participant: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Participant deleted"})
}

// GetParticipantCount handles GET /participants/count
func (h *ParticipantHandler) GetParticipantCount(c *gin.Context) {
	count, err := h.participantService.GetParticipantCount(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count participants: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// ImportRoster handles POST /participants/import (multipart CSV upload)
func (h *ParticipantHandler) ImportRoster(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "CSV file is required (field 'file')"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer f.Close()

	result, err := h.participantService.ImportRoster(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Import failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
