package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fieldworks/agrifield-api/internal/api/handler"
	"github.com/fieldworks/agrifield-api/internal/api/middleware"
	"github.com/fieldworks/agrifield-api/internal/core/domain"
	"github.com/fieldworks/agrifield-api/internal/core/ports"
	"github.com/fieldworks/agrifield-api/internal/core/service"
	mongorepo "github.com/fieldworks/agrifield-api/internal/infrastructure/db/mongo"
)

// Options carries everything the router needs beyond its database handles.
type Options struct {
	JWTSecret string
	TokenTTL  time.Duration
	SMSQueue  handler.Enqueuer
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Log)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("agrifield"))

	// --- Repositories ---
	farmerRepo := mongorepo.NewFarmerRepository(db)
	crpRepo := mongorepo.NewCRPRepository(db)
	expertRepo := mongorepo.NewExpertRepository(db)
	supervisorRepo := mongorepo.NewSupervisorRepository(db)
	trainingRepo := mongorepo.NewTrainingRepository(db)
	problemRepo := mongorepo.NewProblemRepository(db)

	// --- Services ---
	tokens := service.NewTokenService(opts.JWTSecret, opts.TokenTTL)
	authService := service.NewAuthService(map[domain.Role]ports.AccountStore{
		domain.RoleFarmer:     farmerRepo,
		domain.RoleCRP:        crpRepo,
		domain.RoleExpert:     expertRepo,
		domain.RoleSupervisor: supervisorRepo,
	}, tokens, opts.Log)
	farmerService := service.NewFarmerService(farmerRepo, tokens, opts.Log)
	crpService := service.NewCRPService(crpRepo, farmerRepo, trainingRepo, tokens, opts.Log)
	expertService := service.NewExpertService(expertRepo, crpRepo, farmerRepo, tokens, opts.Log)
	supervisorService := service.NewSupervisorService(supervisorRepo, expertRepo, crpRepo, farmerRepo, tokens, opts.Log)
	trainingService := service.NewTrainingService(trainingRepo, opts.Log)
	problemService := service.NewProblemService(problemRepo, farmerRepo, opts.Log)

	// --- Handlers ---
	farmerHandler := handler.NewFarmerHandler(farmerService, authService)
	crpHandler := handler.NewCRPHandler(crpService, authService)
	expertHandler := handler.NewExpertHandler(expertService, authService)
	supervisorHandler := handler.NewSupervisorHandler(supervisorService, authService)
	trainingHandler := handler.NewTrainingHandler(trainingService)
	problemHandler := handler.NewProblemHandler(problemService)
	smsHandler := handler.NewSMSHandler(opts.SMSQueue)

	auth := middleware.Auth(authService)

	// --- Role auth namespaces ---
	farmerAuth := e.Group("/api/farmer-auth")
	farmerAuth.POST("/signup", farmerHandler.Signup)
	farmerAuth.POST("/login", farmerHandler.Login)
	farmerAuth.POST("/signout", farmerHandler.Signout, auth)
	farmerAuth.GET("/profile", farmerHandler.Profile, auth)
	farmerAuth.PUT("/profile", farmerHandler.UpdateProfile, auth)

	crpAuth := e.Group("/api/crp-auth")
	crpAuth.POST("/signup", crpHandler.Signup)
	crpAuth.POST("/login", crpHandler.Login)
	crpAuth.POST("/signout", crpHandler.Signout, auth)
	crpAuth.GET("/profile", crpHandler.Profile, auth)
	crpAuth.PUT("/profile", crpHandler.UpdateProfile, auth)

	expertAuth := e.Group("/api/expert-auth")
	expertAuth.POST("/signup", expertHandler.Signup)
	expertAuth.POST("/login", expertHandler.Login)
	expertAuth.POST("/signout", expertHandler.Signout, auth)
	expertAuth.GET("/profile", expertHandler.Profile, auth)
	expertAuth.PUT("/profile", expertHandler.UpdateProfile, auth)

	supervisorAuth := e.Group("/api/supervisor-auth")
	supervisorAuth.POST("/signup", supervisorHandler.Signup)
	supervisorAuth.POST("/login", supervisorHandler.Login)
	supervisorAuth.POST("/signout", supervisorHandler.Signout, auth)
	supervisorAuth.GET("/profile", supervisorHandler.Profile, auth)
	supervisorAuth.PUT("/profile", supervisorHandler.UpdateProfile, auth)

	// --- Farmer records (open, matching the farmer registration flow) ---
	farmers := e.Group("/api/farmers")
	farmers.POST("", farmerHandler.Create)
	farmers.GET("", farmerHandler.List)
	farmers.GET("/:id", farmerHandler.Get)
	farmers.PUT("/:id", farmerHandler.Update)
	farmers.DELETE("/:id", farmerHandler.Delete)

	// --- CRP namespace (every route requires a token) ---
	crp := e.Group("/api/crp", auth)
	crp.POST("", crpHandler.Create)
	crp.GET("", crpHandler.List)
	crpOwn := crp.Group("", middleware.RequireRole(domain.RoleCRP))
	crpOwn.GET("/dashboard", crpHandler.Dashboard)
	crpOwn.GET("/farmers", crpHandler.Farmers)
	crpOwn.GET("/farmers/district/:district", crpHandler.FarmersByDistrict)
	crpOwn.GET("/farmers/crop/:crop", crpHandler.FarmersByCrop)
	crpOwn.GET("/farmer/:farmerId", crpHandler.FarmerDetail)
	crpOwn.POST("/add-farmer", crpHandler.AddFarmer)
	crpOwn.DELETE("/remove-farmer/:farmerId", crpHandler.RemoveFarmer)
	crpOwn.PUT("/visit-report", crpHandler.UpdateVisitReport)
	crpOwn.GET("/trainings", crpHandler.Trainings)
	crp.GET("/:id", crpHandler.Get)
	crp.PUT("/:id", crpHandler.Update)
	crp.DELETE("/:id", crpHandler.Delete)

	// --- Expert namespace (every route requires a token) ---
	expert := e.Group("/api/expert", auth)
	expert.POST("", expertHandler.Create)
	expert.GET("", expertHandler.List)
	expertOwn := expert.Group("", middleware.RequireRole(domain.RoleExpert))
	expertOwn.GET("/dashboard", expertHandler.Dashboard)
	expertOwn.GET("/crps", expertHandler.CRPs)
	expertOwn.GET("/farmers", expertHandler.Farmers)
	expertOwn.POST("/link-crp", expertHandler.LinkCRP)
	expertOwn.DELETE("/unlink-crp", expertHandler.UnlinkCRP)
	expertOwn.POST("/add-farmer", expertHandler.AddFarmer)
	expertOwn.DELETE("/remove-farmer/:farmerId", expertHandler.RemoveFarmer)
	expertOwn.PUT("/recommendations", expertHandler.UpdateRecommendations)
	expert.GET("/:id", expertHandler.Get)
	expert.PUT("/:id", expertHandler.Update)
	expert.DELETE("/:id", expertHandler.Delete)

	// --- Supervisor namespace (all routes role-gated) ---
	supervisor := e.Group("/api/supervisor", auth, middleware.RequireRole(domain.RoleSupervisor))
	supervisor.GET("/overview", supervisorHandler.Overview)
	supervisor.GET("/farmers/aggregated", supervisorHandler.AggregatedFarmers)
	supervisor.GET("/crp-reports", supervisorHandler.CRPReports)
	supervisor.GET("/expert-recommendations", supervisorHandler.ExpertRecommendations)
	supervisor.POST("/follow-up", supervisorHandler.CreateFollowUpTask)
	supervisor.PUT("/follow-up/:id", supervisorHandler.UpdateFollowUpTask)
	supervisor.GET("/export/:type", supervisorHandler.Export)
	supervisor.GET("/experts", supervisorHandler.Experts)
	supervisor.GET("/crps", supervisorHandler.CRPs)
	supervisor.GET("/farmers", supervisorHandler.Farmers)
	supervisor.GET("/dashboard", supervisorHandler.Dashboard)
	supervisor.POST("/assign-expert", supervisorHandler.AssignExpert)
	supervisor.DELETE("/remove-expert/:expertId", supervisorHandler.RemoveExpert)

	// --- Trainings (canonical records) ---
	trainings := e.Group("/api/trainings", auth)
	trainings.POST("", trainingHandler.Create)
	trainings.GET("", trainingHandler.List)
	trainings.GET("/:id", trainingHandler.Get)
	trainings.PUT("/:id", trainingHandler.Update)
	trainings.DELETE("/:id", trainingHandler.Delete)

	// --- Problems ---
	problems := e.Group("/api/problems", auth)
	problems.POST("", problemHandler.Create)
	problems.GET("/farmer/:farmerId", problemHandler.ListByFarmer)
	problems.PUT("/:id", problemHandler.Update)
	problems.DELETE("/:id", problemHandler.Delete)

	// --- SMS ---
	sms := e.Group("/api/sms", auth, middleware.RequireRole(domain.RoleCRP, domain.RoleExpert, domain.RoleSupervisor))
	sms.POST("/send", smsHandler.Send)
	sms.POST("/send-schemes", smsHandler.SendSchemes)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
