package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/opencampus/profile-service/adapters/event"
	"github.com/opencampus/profile-service/adapters/gateway"
	httpAdapter "github.com/opencampus/profile-service/adapters/http"
	"github.com/opencampus/profile-service/adapters/media_storage"
	"github.com/opencampus/profile-service/adapters/persistence"
	"github.com/opencampus/profile-service/internal/application/service"
	badgeUC "github.com/opencampus/profile-service/internal/application/usecase/badge"
	directoryUC "github.com/opencampus/profile-service/internal/application/usecase/directory"
	eligibilityUC "github.com/opencampus/profile-service/internal/application/usecase/eligibility"
	experienceUC "github.com/opencampus/profile-service/internal/application/usecase/experience"
	profileUC "github.com/opencampus/profile-service/internal/application/usecase/profile"
	projectUC "github.com/opencampus/profile-service/internal/application/usecase/project"
	publicationUC "github.com/opencampus/profile-service/internal/application/usecase/publication"
	"github.com/opencampus/profile-service/internal/config"
	"github.com/opencampus/profile-service/internal/domain/identity"
	"github.com/opencampus/profile-service/pkg/auth"
	"github.com/opencampus/profile-service/pkg/logger"
	"github.com/opencampus/profile-service/pkg/tracing"
)

func main() {
	fmt.Println("Start Campus Profile API Server...")

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	if cfg.Tracing.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "profile-service")
		if err != nil {
			appLogger.Fatal("cannot init tracer", err)
		}
		defer tp.Shutdown(context.Background())
	}

	// Initialize dependencies
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	identityGateway, err := gateway.NewIdentityClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot init Identity Gateway client", err)
	}

	var publisher service.AwardEventPublisher = event.NoopPublisher{}
	if cfg.Notifications.Enabled {
		kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("cannot init Kafka", err)
		}
		defer kafkaClient.Close()
		publisher = kafkaClient
	}

	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize uploader", err)
	}

	// Repositories
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	projectRepo := persistence.NewPostgresProjectRepo(dbPool, appLogger)
	publicationRepo := persistence.NewPostgresPublicationRepo(dbPool, appLogger)
	experienceRepo := persistence.NewPostgresExperienceRepo(dbPool, appLogger)
	definitionRepo := persistence.NewPostgresBadgeDefinitionRepo(dbPool, appLogger)
	awardRepo := persistence.NewPostgresAwardRepo(dbPool, appLogger)
	policyRepo := persistence.NewPostgresPolicyRepo(dbPool, appLogger)
	eligibilityCache := persistence.NewRedisEligibilityCache(redisClient, appLogger)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret)

	// Use Cases
	profileUseCase := profileUC.NewProfileUseCase(profileRepo, identityGateway, appLogger)
	enrichUseCase := profileUC.NewEnrichProfileUseCase(profileRepo, projectRepo, publicationRepo, experienceRepo, identityGateway, appLogger)
	projectUseCase := projectUC.NewProjectUseCase(projectRepo, profileRepo, uploader, appLogger)
	publicationUseCase := publicationUC.NewPublicationUseCase(publicationRepo, profileRepo, appLogger)
	experienceUseCase := experienceUC.NewExperienceUseCase(experienceRepo, profileRepo, appLogger)
	definitionUseCase := badgeUC.NewDefinitionUseCase(definitionRepo, appLogger)
	awardUseCase := badgeUC.NewAwardBadgeUseCase(awardRepo, definitionRepo, profileRepo, identityGateway, publisher, appLogger)
	exportUseCase := badgeUC.NewExportAwardsUseCase(awardRepo, identityGateway, appLogger)
	policyUseCase := badgeUC.NewPolicyUseCase(policyRepo, appLogger)
	eligibilityUseCase := eligibilityUC.NewEligibilityUseCase(awardRepo, policyRepo, eligibilityCache, identityGateway, appLogger)
	directoryUseCase := directoryUC.NewDirectoryUseCase(identityGateway, appLogger)

	// HTTP Handlers
	profileHandler := httpAdapter.NewProfileHandler(profileUseCase, enrichUseCase, appLogger)
	projectHandler := httpAdapter.NewProjectHandler(projectUseCase, appLogger)
	publicationHandler := httpAdapter.NewPublicationHandler(publicationUseCase, appLogger)
	experienceHandler := httpAdapter.NewExperienceHandler(experienceUseCase, appLogger)
	badgeHandler := httpAdapter.NewBadgeHandler(definitionUseCase, awardUseCase, exportUseCase, policyUseCase, eligibilityUseCase, appLogger)
	directoryHandler := httpAdapter.NewDirectoryHandler(directoryUseCase, appLogger)

	// Middleware
	authMiddleware := httpAdapter.AuthMiddleware(jwtSvc, appLogger)
	errorMiddleware := httpAdapter.ErrorMiddleware(appLogger)

	awarderRoles := httpAdapter.RequireRoles(identity.RoleFaculty, identity.RoleDeptAdmin, identity.RoleHeadAdmin)
	publisherRoles := httpAdapter.RequireRoles(identity.RoleFaculty, identity.RoleHeadAdmin)
	headAdminOnly := httpAdapter.RequireRoles(identity.RoleHeadAdmin)

	// Setup Gin router
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(errorMiddleware)

	v1 := router.Group("/v1")
	{
		v1.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
		v1.GET("/colleges", directoryHandler.ListColleges)
		v1.GET("/badge-definitions", badgeHandler.ListDefinitions)

		private := v1.Group("/")
		private.Use(authMiddleware)
		{
			private.GET("/users", directoryHandler.ListUsers)

			profileRoutes := private.Group("/profile")
			{
				profileRoutes.GET("/me", profileHandler.GetMyProfile)
				profileRoutes.PUT("/me", profileHandler.UpdateMyProfile)
				profileRoutes.GET("/user/:userId", profileHandler.GetUserProfile)

				profileRoutes.GET("/skills", profileHandler.ListSkills)
				profileRoutes.POST("/skills", profileHandler.AddSkill)
				profileRoutes.DELETE("/skills/:skill", profileHandler.RemoveSkill)

				projects := profileRoutes.Group("/projects")
				{
					projects.POST("", projectHandler.CreateProject)
					projects.GET("", projectHandler.ListProjects)
					projects.PUT("/:id", projectHandler.UpdateProject)
					projects.DELETE("/:id", projectHandler.DeleteProject)
					projects.POST("/:id/image", projectHandler.UploadImage)
				}

				publications := profileRoutes.Group("/publications")
				{
					publications.GET("", publicationHandler.ListPublications)
					publications.POST("", publisherRoles, publicationHandler.CreatePublication)
					publications.PUT("/:id", publisherRoles, publicationHandler.UpdatePublication)
					publications.DELETE("/:id", publisherRoles, publicationHandler.DeletePublication)
				}

				experiences := profileRoutes.Group("/experiences")
				{
					experiences.POST("", experienceHandler.CreateExperience)
					experiences.GET("", experienceHandler.ListExperiences)
					experiences.PUT("/:id", experienceHandler.UpdateExperience)
					experiences.DELETE("/:id", experienceHandler.DeleteExperience)
				}
			}

			private.POST("/badge-definitions", awarderRoles, badgeHandler.CreateDefinition)

			badges := private.Group("/badges")
			{
				badges.POST("/award", awarderRoles, badgeHandler.AwardBadge)
				badges.GET("/export", awarderRoles, badgeHandler.ExportAwards)
				badges.GET("/eligibility/:userId", badgeHandler.CheckEligibility)
				badges.POST("/policies", headAdminOnly, badgeHandler.SetPolicy)
				badges.GET("/policies/:collegeId", badgeHandler.GetPolicy)
			}
		}
	}

	appLogger.Info("Server running on port " + cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("Cannot run server", err)
	}
}
