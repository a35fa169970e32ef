package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"olcmelab/internal/models"
)

type ResponseSubmitRequest struct {
	SessionID uint            `json:"session_id" binding:"required"`
	TaskID    string          `json:"task_id" binding:"required"`
	Payload   json.RawMessage `json:"payload"`
}

// SubmitResponseHandler appends a response row. The task_id is not
// checked against the instrument spec, and a session may answer the
// same task more than once; listings keep insertion order.
func (h *Handler) SubmitResponseHandler(c *gin.Context) {
	var req ResponseSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request: session_id and task_id are required"})
		return
	}

	var session models.Session
	if err := h.DB.First(&session, req.SessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Session not found"})
			return
		}
		log.Printf("ERROR: Could not look up session %d: %v", req.SessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not submit response"})
		return
	}

	if len(req.Payload) == 0 {
		req.Payload = json.RawMessage("{}")
	}

	response := models.Response{SessionID: req.SessionID, TaskID: req.TaskID, Payload: req.Payload}
	if err := h.DB.Create(&response).Error; err != nil {
		log.Printf("ERROR: Could not create response: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not submit response"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "response_id": response.ID})
}

func (h *Handler) ListResponsesBySessionHandler(c *gin.Context) {
	sessionID, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	var responses []models.Response
	if err := h.DB.Where("session_id = ?", sessionID).Order("id ASC").Find(&responses).Error; err != nil {
		log.Printf("ERROR: Could not list responses for session %d: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not list responses"})
		return
	}

	c.JSON(http.StatusOK, projectResponses(responses))
}

func (h *Handler) ListResponsesByInstrumentHandler(c *gin.Context) {
	instrumentID, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	var responses []models.Response
	err := h.DB.
		Joins("JOIN sessions ON sessions.id = responses.session_id").
		Where("sessions.instrument_id = ?", instrumentID).
		Order("responses.id ASC").
		Find(&responses).Error
	if err != nil {
		log.Printf("ERROR: Could not list responses for instrument %d: %v", instrumentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not list responses"})
		return
	}

	c.JSON(http.StatusOK, projectResponses(responses))
}

func projectResponses(responses []models.Response) []gin.H {
	out := make([]gin.H, 0, len(responses))
	for _, r := range responses {
		out = append(out, gin.H{
			"id":         r.ID,
			"session_id": r.SessionID,
			"task_id":    r.TaskID,
			"payload":    r.Payload,
			"created_at": r.CreatedAt,
		})
	}
	return out
}
