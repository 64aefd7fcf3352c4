package server

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/visionmates/api/internal/middleware"
	"github.com/visionmates/api/pkg/storage"

	discoveryHttp "github.com/visionmates/api/internal/modules/discovery/delivery/http"
	discoveryRepo "github.com/visionmates/api/internal/modules/discovery/repository"
	discoveryService "github.com/visionmates/api/internal/modules/discovery/service"

	likeHttp "github.com/visionmates/api/internal/modules/like/delivery/http"
	likeRepo "github.com/visionmates/api/internal/modules/like/repository"
	likeService "github.com/visionmates/api/internal/modules/like/service"

	messageHttp "github.com/visionmates/api/internal/modules/message/delivery/http"
	messageRepo "github.com/visionmates/api/internal/modules/message/repository"
	messageService "github.com/visionmates/api/internal/modules/message/service"

	participationHttp "github.com/visionmates/api/internal/modules/participation/delivery/http"
	participationRepo "github.com/visionmates/api/internal/modules/participation/repository"
	participationService "github.com/visionmates/api/internal/modules/participation/service"

	profileHttp "github.com/visionmates/api/internal/modules/profile/delivery/http"
	profileService "github.com/visionmates/api/internal/modules/profile/service"

	projectHttp "github.com/visionmates/api/internal/modules/project/delivery/http"
	projectRepo "github.com/visionmates/api/internal/modules/project/repository"
	projectService "github.com/visionmates/api/internal/modules/project/service"

	reactionHttp "github.com/visionmates/api/internal/modules/reaction/delivery/http"
	reactionRepo "github.com/visionmates/api/internal/modules/reaction/repository"
	reactionService "github.com/visionmates/api/internal/modules/reaction/service"

	userHttp "github.com/visionmates/api/internal/modules/user/delivery/http"
	userRepo "github.com/visionmates/api/internal/modules/user/repository"
	userService "github.com/visionmates/api/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := userRepo.NewUserRepository(db)

	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Printf("cloudinary storage unavailable, avatar uploads disabled: %v", err)
		imageStorage = nil
	}

	authSvc := userService.NewAuthService(userRepo)
	authHandler := userHttp.NewAuthHandler(authSvc)

	profileSvc := profileService.NewProfileService(userRepo, imageStorage)
	profileHandler := profileHttp.NewProfileHandler(profileSvc)

	projectRepo := projectRepo.NewProjectRepository(db)
	projectSvc := projectService.NewProjectService(projectRepo)
	projectHandler := projectHttp.NewProjectHandler(projectSvc)

	participationRepo := participationRepo.NewParticipationRepository(db)
	participationSvc := participationService.NewParticipationService(participationRepo, projectRepo)
	participationHandler := participationHttp.NewParticipationHandler(participationSvc)

	messageRepo := messageRepo.NewMessageRepository(db)
	messageSvc := messageService.NewMessageService(messageRepo, userRepo)
	messageHandler := messageHttp.NewMessageHandler(messageSvc)

	reactionRepo := reactionRepo.NewReactionRepository(db)
	reactionSvc := reactionService.NewReactionService(reactionRepo, projectRepo, messageRepo, redisClient)
	reactionHandler := reactionHttp.NewReactionHandler(reactionSvc)

	discoveryRepo := discoveryRepo.NewDiscoveryRepository(db)
	discoverySvc := discoveryService.NewDiscoveryService(discoveryRepo)
	discoveryHandler := discoveryHttp.NewDiscoveryHandler(discoverySvc)

	likeRepo := likeRepo.NewLikeRepository(db)
	likeSvc := likeService.NewLikeService(likeRepo, projectRepo)
	likeHandler := likeHttp.NewLikeHandler(likeSvc)

	router := gin.New()

	setupCORS(router)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware()

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.GET("/google/login", authHandler.GoogleLogin)
		auth.GET("/google/callback", authHandler.GoogleCallback)
	}

	// Read routes usable anonymously; a valid token still attaches the
	// caller so responses can include per-user fields.
	public := api.Group("")
	public.Use(authMiddleware.OptionalAuth())
	{
		public.GET("/projects/discover", discoveryHandler.Discover)
		public.GET("/projects/:project_id", projectHandler.GetProject)
		public.GET("/projects/:project_id/participations", participationHandler.GetParticipations)
		public.GET("/projects/:project_id/updates", projectHandler.GetProgressUpdates)
		public.GET("/projects/:project_id/comments", projectHandler.GetComments)
		public.GET("/reactions/:target_type/:target_id", reactionHandler.GetReactionStatus)
		public.GET("/users/:user_id", profileHandler.GetPublicProfile)
	}

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		// Project routes
		protected.POST("/projects", projectHandler.CreateProject)
		protected.GET("/projects/me", projectHandler.GetMyProjects)
		protected.PUT("/projects/:project_id", projectHandler.UpdateProject)
		protected.DELETE("/projects/:project_id", projectHandler.DeleteProject)
		protected.POST("/projects/:project_id/updates", projectHandler.CreateProgressUpdate)
		protected.POST("/projects/:project_id/comments", projectHandler.CreateComment)
		protected.PUT("/projects/:project_id/skills", projectHandler.UpsertRequiredSkills)

		// Participation routes
		protected.POST("/projects/:project_id/participate", participationHandler.SetParticipation)
		protected.DELETE("/projects/:project_id/participate", participationHandler.RemoveParticipation)
		protected.POST("/projects/:project_id/participations", participationHandler.AddParticipation)

		// Like and hide routes
		protected.POST("/projects/:project_id/like", likeHandler.ToggleLike)
		protected.POST("/projects/:project_id/hide", likeHandler.ToggleHide)
		protected.GET("/projects/liked", likeHandler.ListLiked)

		// Reaction routes
		protected.POST("/reactions", reactionHandler.ToggleReaction)

		// Message routes
		protected.POST("/messages", messageHandler.SendMessage)
		protected.GET("/conversations", messageHandler.ListConversations)
		protected.GET("/conversations/:conversation_id", messageHandler.GetConversation)

		// Profile routes
		protected.GET("/profile/me", profileHandler.GetCurrentProfile)
		protected.PUT("/profile", profileHandler.UpdateProfile)
		protected.PUT("/profile/skills", profileHandler.UpsertSkills)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// Engine exposes the router for in-process HTTP tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func setupCORS(router *gin.Engine) {
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
