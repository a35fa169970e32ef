package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"olcmelab/internal/config"
	"olcmelab/internal/middleware"
	"olcmelab/internal/queue"
)

type Handler struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Broker *queue.Broker
}

func New(db *gorm.DB, cfg *config.Config, broker *queue.Broker) Handler {
	return Handler{DB: db, Cfg: cfg, Broker: broker}
}

// RegisterRoutes wires the full HTTP surface. Session creation/read and
// response submission are participant-facing and deliberately open;
// everything that manages or reads study data requires a token.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	authRequired := middleware.AuthRequired(h.Cfg.JWTSecret, h.Cfg.JWTAlg)

	router.GET("/health", h.HealthHandler)

	auth := router.Group("/auth")
	{
		auth.POST("/register", h.RegisterHandler)
		auth.POST("/login", h.LoginHandler)
	}

	studies := router.Group("/studies", authRequired)
	{
		studies.POST("", h.CreateStudyHandler)
		studies.GET("", h.ListStudiesHandler)
		studies.DELETE("/:id", h.DeleteStudyHandler)
	}

	instruments := router.Group("/instruments", authRequired)
	{
		instruments.POST("", h.CreateInstrumentHandler)
		instruments.GET("", h.ListInstrumentsHandler)
		instruments.GET("/:id", h.GetInstrumentHandler)
		instruments.DELETE("/:id", h.DeleteInstrumentHandler)
	}

	router.POST("/sessions", h.CreateSessionHandler)
	router.GET("/sessions/:id", h.GetSessionHandler)
	router.DELETE("/sessions/:id", authRequired, h.DeleteSessionHandler)

	router.POST("/responses", h.SubmitResponseHandler)
	responses := router.Group("/responses", authRequired)
	{
		responses.GET("/by-session/:id", h.ListResponsesBySessionHandler)
		responses.GET("/by-instrument/:id", h.ListResponsesByInstrumentHandler)
	}
}
