package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"olcmelab/internal/models"
)

type StudyCreateRequest struct {
	Title string `json:"title" binding:"required"`
}

func (h *Handler) CreateStudyHandler(c *gin.Context) {
	var req StudyCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request: title is required"})
		return
	}

	study := models.Study{Title: req.Title}
	if err := h.DB.Create(&study).Error; err != nil {
		log.Printf("ERROR: Could not create study: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not create study"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": study.ID, "title": study.Title})
}

func (h *Handler) ListStudiesHandler(c *gin.Context) {
	var studies []models.Study
	if err := h.DB.Order("id DESC").Find(&studies).Error; err != nil {
		log.Printf("ERROR: Could not list studies: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not list studies"})
		return
	}

	out := make([]gin.H, 0, len(studies))
	for _, s := range studies {
		out = append(out, gin.H{"id": s.ID, "title": s.Title})
	}
	c.JSON(http.StatusOK, out)
}

// DeleteStudyHandler removes a study and everything under it. There is
// no foreign-key path from Study down to Sessions and Responses, so the
// cascade is spelled out in dependency order inside one transaction.
func (h *Handler) DeleteStudyHandler(c *gin.Context) {
	studyID, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var study models.Study
		if err := tx.First(&study, studyID).Error; err != nil {
			return err
		}

		var instrumentIDs []uint
		if err := tx.Model(&models.Instrument{}).Where("study_id = ?", studyID).Pluck("id", &instrumentIDs).Error; err != nil {
			return err
		}

		if len(instrumentIDs) > 0 {
			var sessionIDs []uint
			if err := tx.Model(&models.Session{}).Where("instrument_id IN ?", instrumentIDs).Pluck("id", &sessionIDs).Error; err != nil {
				return err
			}

			if len(sessionIDs) > 0 {
				if err := tx.Where("session_id IN ?", sessionIDs).Delete(&models.Response{}).Error; err != nil {
					return err
				}
			}

			if err := tx.Where("instrument_id IN ?", instrumentIDs).Delete(&models.Session{}).Error; err != nil {
				return err
			}
			if err := tx.Where("study_id = ?", studyID).Delete(&models.Instrument{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&study).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found"})
			return
		}
		log.Printf("ERROR: Could not delete study %d: %v", studyID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not delete study"})
		return
	}

	c.Status(http.StatusNoContent)
}
