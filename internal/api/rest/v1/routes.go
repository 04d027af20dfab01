package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/algorithms"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/keys"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/system"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/threats"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/users"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/logger"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/ratelimit"
)

// Services bundles everything the version 1 routes depend on.
type Services struct {
	Auth      users.AuthService
	Users     users.Repository
	Catalog   algorithms.Catalog
	Selection algorithms.SelectionService
	Lifecycle keys.LifecycleService
	History   keys.HistoryRepository
	System    system.Service
	Threats   threats.Service
	Activity  system.ActivityRepository
	Limiter   *ratelimit.Limiter
	Logger    logger.Logger
}

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine, services Services) {
	if services.Limiter == nil {
		services.Limiter = ratelimit.NewLimiter()
	}

	v1 := r.Group(BasePath) // lookup in version file

	// Auth Routes
	authHandler := NewAuthHandler(services.Auth, services.Users)
	auth := v1.Group("/auth", RateLimit(services.Limiter, ratelimit.ClassAuth))
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", AuthRequired(services.Auth), authHandler.Me)

	// Everything below requires a bearer token and writes the audit trail on
	// mutations.
	authed := v1.Group("", AuthRequired(services.Auth), RecordActivity(services.Activity, services.Logger))

	// Algorithm Routes
	algorithmHandler := NewAlgorithmHandler(services.Catalog, services.Selection)
	authed.GET("/algorithms", RateLimit(services.Limiter, ratelimit.ClassRead), algorithmHandler.List)
	authed.GET("/algorithms/:id", RateLimit(services.Limiter, ratelimit.ClassRead), algorithmHandler.GetByID)
	authed.POST("/algorithms/compare", RateLimit(services.Limiter, ratelimit.ClassCompute), algorithmHandler.Compare)
	authed.POST("/algorithms/recommend", RateLimit(services.Limiter, ratelimit.ClassCompute), algorithmHandler.Recommend)

	// Key Routes
	keyHandler := NewKeyHandler(services.Lifecycle)
	authed.POST("/keys", RateLimit(services.Limiter, ratelimit.ClassMutate), keyHandler.Create)
	authed.GET("/keys", RateLimit(services.Limiter, ratelimit.ClassRead), keyHandler.List)
	authed.GET("/keys/:id", RateLimit(services.Limiter, ratelimit.ClassRead), keyHandler.GetByID)
	authed.POST("/keys/:id/rotate", RateLimit(services.Limiter, ratelimit.ClassMutate), keyHandler.Rotate)
	authed.POST("/keys/:id/usage", RateLimit(services.Limiter, ratelimit.ClassMutate), keyHandler.RecordUsage)
	authed.GET("/keys/:id/triggers", RateLimit(services.Limiter, ratelimit.ClassRead), keyHandler.CheckTriggers)

	// Threat Routes
	threatHandler := NewThreatHandler(services.Threats)
	authed.GET("/threats", RateLimit(services.Limiter, ratelimit.ClassRead), threatHandler.List)
	authed.POST("/threats", RateLimit(services.Limiter, ratelimit.ClassMutate), threatHandler.Report)
	authed.POST("/threats/:id/deactivate", RateLimit(services.Limiter, ratelimit.ClassMutate), threatHandler.Deactivate)
	authed.GET("/threats/stats", RateLimit(services.Limiter, ratelimit.ClassRead), RequireClearance(sensitiveClearanceLevel), threatHandler.Stats)

	// System Routes
	systemHandler := NewSystemHandler(services.System, services.History, services.Activity)
	authed.GET("/system/config", RateLimit(services.Limiter, ratelimit.ClassRead), systemHandler.GetConfiguration)
	authed.PUT("/system/config", RateLimit(services.Limiter, ratelimit.ClassMutate), systemHandler.UpdateConfiguration)
	authed.GET("/system/rotation-history", RateLimit(services.Limiter, ratelimit.ClassRead), systemHandler.RotationHistory)
	authed.GET("/system/status", RateLimit(services.Limiter, ratelimit.ClassRead), RequireClearance(sensitiveClearanceLevel), systemHandler.Status)

	// Activity Routes
	authed.GET("/activity", RateLimit(services.Limiter, ratelimit.ClassRead), RequireRole(users.RoleAdmin), systemHandler.Activity)
}
