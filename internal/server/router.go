package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/studypath-backend/internal/handlers"
	"github.com/yungbote/studypath-backend/internal/middleware"
)

type RouterConfig struct {
	CatalogHandler *handlers.CatalogHandler
	ContentHandler *handlers.ContentHandler
	RequestLogger  *middleware.RequestLogger

	// AllowOrigins overrides the local-dev CORS defaults; comma-separated.
	AllowOrigins string
	ServiceName  string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.RequestLogger != nil {
		router.Use(cfg.RequestLogger.Handler())
	}
	if cfg.ServiceName != "" {
		router.Use(otelgin.Middleware(cfg.ServiceName))
	}

	origins := []string{
		"http://localhost:80",
		"http://localhost:3000",
		"http://localhost:5173",
	}
	if cfg.AllowOrigins != "" {
		origins = origins[:0]
		for _, o := range strings.Split(cfg.AllowOrigins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Requested-With", middleware.RequestIDHeader},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)
	router.GET("/subjects", cfg.CatalogHandler.ListSubjects)
	router.GET("/subtopics/:subject/:topic", cfg.ContentHandler.GetSubtopics)
	router.POST("/explain", cfg.ContentHandler.Explain)
	router.POST("/question", cfg.ContentHandler.AskQuestion)

	return router
}
