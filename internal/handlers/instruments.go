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

type InstrumentCreateRequest struct {
	StudyID uint            `json:"study_id" binding:"required"`
	Name    string          `json:"name" binding:"required"`
	Spec    json.RawMessage `json:"spec"`
}

func (h *Handler) CreateInstrumentHandler(c *gin.Context) {
	var req InstrumentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request: study_id and name are required"})
		return
	}

	var study models.Study
	if err := h.DB.First(&study, req.StudyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Study not found"})
			return
		}
		log.Printf("ERROR: Could not look up study %d: %v", req.StudyID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not create instrument"})
		return
	}

	// The spec is opaque to the backend; clients interpret it as an
	// ordered list of blocks/tasks.
	if len(req.Spec) == 0 {
		req.Spec = json.RawMessage("{}")
	}

	instrument := models.Instrument{StudyID: req.StudyID, Name: req.Name, Spec: req.Spec}
	if err := h.DB.Create(&instrument).Error; err != nil {
		log.Printf("ERROR: Could not create instrument: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not create instrument"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": instrument.ID, "study_id": instrument.StudyID, "name": instrument.Name})
}

func (h *Handler) ListInstrumentsHandler(c *gin.Context) {
	var instruments []models.Instrument
	if err := h.DB.Order("id DESC").Find(&instruments).Error; err != nil {
		log.Printf("ERROR: Could not list instruments: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not list instruments"})
		return
	}

	out := make([]gin.H, 0, len(instruments))
	for _, ins := range instruments {
		out = append(out, gin.H{"id": ins.ID, "study_id": ins.StudyID, "name": ins.Name})
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetInstrumentHandler(c *gin.Context) {
	instrumentID, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	var instrument models.Instrument
	if err := h.DB.First(&instrument, instrumentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found"})
			return
		}
		log.Printf("ERROR: Could not load instrument %d: %v", instrumentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not load instrument"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       instrument.ID,
		"study_id": instrument.StudyID,
		"name":     instrument.Name,
		"spec":     instrument.Spec,
	})
}

// DeleteInstrumentHandler relies on the database-level ON DELETE
// CASCADE chain to remove the instrument's sessions and responses.
func (h *Handler) DeleteInstrumentHandler(c *gin.Context) {
	instrumentID, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	var instrument models.Instrument
	if err := h.DB.First(&instrument, instrumentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found"})
			return
		}
		log.Printf("ERROR: Could not load instrument %d: %v", instrumentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not delete instrument"})
		return
	}

	if err := h.DB.Delete(&instrument).Error; err != nil {
		log.Printf("ERROR: Could not delete instrument %d: %v", instrumentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not delete instrument"})
		return
	}

	c.Status(http.StatusNoContent)
}
