// Package v1 exposes the public HTTP API.
package v1

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/semaphore"

	"github.com/adotepet/adotepet/catalog"
	"github.com/adotepet/adotepet/internal/profile"
	"github.com/adotepet/adotepet/interview"
	"github.com/adotepet/adotepet/plugin/compress"
	"github.com/adotepet/adotepet/store"
)

type APIV1Service struct {
	Profile   *profile.Profile
	Store     *store.Store
	Catalog   *catalog.Manager
	Interview *interview.Service

	compressor *compress.Compressor
	petCare    *petCareGuide
	logger     *slog.Logger

	// photoSemaphore limits concurrent photo compression to bound memory use.
	photoSemaphore *semaphore.Weighted
}

func NewAPIV1Service(
	profile *profile.Profile,
	store *store.Store,
	catalogManager *catalog.Manager,
	interviewService *interview.Service,
	compressor *compress.Compressor,
	logger *slog.Logger,
) *APIV1Service {
	return &APIV1Service{
		Profile:        profile,
		Store:          store,
		Catalog:        catalogManager,
		Interview:      interviewService,
		compressor:     compressor,
		petCare:        loadPetCareGuide(profile, logger),
		logger:         logger,
		photoSemaphore: semaphore.NewWeighted(3),
	}
}

// RegisterRoutes mounts all v1 endpoints on the echo server.
func (s *APIV1Service) RegisterRoutes(echoServer *echo.Echo) {
	group := echoServer.Group("/api/v1")
	group.Use(middleware.CORS())

	group.POST("/chat", s.Chat)

	group.GET("/animals", s.ListAnimals)
	group.GET("/animals/:id", s.GetAnimal)

	group.POST("/interviews/events", s.HandleInterviewEvent)
	group.POST("/interviews/photos", s.HandleInterviewPhoto)
	group.GET("/interviews", s.ListInterviews)

	group.GET("/metrics", s.GetMetrics)
}
