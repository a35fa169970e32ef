package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"olcmelab/internal/models"
)

type SessionCreateRequest struct {
	InstrumentID uint `json:"instrument_id" binding:"required"`
}

// newParticipantID returns a 32-hex-character pseudonymous participant
// handle (128 bits of entropy).
func newParticipantID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func (h *Handler) CreateSessionHandler(c *gin.Context) {
	var req SessionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request: instrument_id is required"})
		return
	}

	var instrument models.Instrument
	if err := h.DB.First(&instrument, req.InstrumentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Instrument not found"})
			return
		}
		log.Printf("ERROR: Could not look up instrument %d: %v", req.InstrumentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not create session"})
		return
	}

	participantID, err := newParticipantID()
	if err != nil {
		log.Printf("ERROR: Could not generate participant id: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not create session"})
		return
	}

	session := models.Session{InstrumentID: req.InstrumentID, ParticipantID: participantID}
	if err := h.DB.Create(&session).Error; err != nil {
		log.Printf("ERROR: Could not create session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session_id": session.ID, "participant_id": session.ParticipantID})
}

// GetSessionHandler returns the session together with a projection of
// its instrument so a participant client can render the form in one
// round trip.
func (h *Handler) GetSessionHandler(c *gin.Context) {
	sessionID, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	var session models.Session
	if err := h.DB.First(&session, sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Session not found"})
			return
		}
		log.Printf("ERROR: Could not load session %d: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not load session"})
		return
	}

	var instrument models.Instrument
	if err := h.DB.First(&instrument, session.InstrumentID).Error; err != nil {
		// Defensive: the instrument may have been deleted between the
		// two reads.
		c.JSON(http.StatusNotFound, gin.H{"detail": "Instrument not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id":     session.ID,
		"participant_id": session.ParticipantID,
		"instrument": gin.H{
			"id":   instrument.ID,
			"name": instrument.Name,
			"spec": instrument.Spec,
		},
	})
}

func (h *Handler) DeleteSessionHandler(c *gin.Context) {
	sessionID, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	var session models.Session
	if err := h.DB.First(&session, sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found"})
			return
		}
		log.Printf("ERROR: Could not load session %d: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not delete session"})
		return
	}

	if err := h.DB.Delete(&session).Error; err != nil {
		log.Printf("ERROR: Could not delete session %d: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not delete session"})
		return
	}

	c.Status(http.StatusNoContent)
}
