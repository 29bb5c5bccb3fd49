package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/eventorg/smart-event-api/docs"
	v1 "github.com/eventorg/smart-event-api/internal/api/handler/v1"
	"github.com/eventorg/smart-event-api/internal/api/middleware"
	"github.com/eventorg/smart-event-api/internal/config"
	"github.com/eventorg/smart-event-api/internal/repository"
	"github.com/eventorg/smart-event-api/internal/repository/dao"
	"github.com/eventorg/smart-event-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	accountRepo := repository.NewAccountRepository(dao.NewAccountDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	announcementRepo := repository.NewAnnouncementRepository(dao.NewAnnouncementDAO(db))
	registrationRepo := repository.NewRegistrationRepository(dao.NewRegistrationDAO(db))
	feedbackRepo := repository.NewFeedbackRepository(dao.NewFeedbackDAO(db))

	authSvc := service.NewAuthService(accountRepo)
	eventSvc := service.NewEventService(eventRepo, registrationRepo)
	announcementSvc := service.NewAnnouncementService(announcementRepo)
	registrationSvc := service.NewRegistrationService(registrationRepo, eventRepo)
	feedbackSvc := service.NewFeedbackService(feedbackRepo, registrationRepo)

	authHandler := v1.NewAuthHandler(s.Config.API, authSvc)
	eventHandler := v1.NewEventHandler(eventSvc, authSvc)
	announcementHandler := v1.NewAnnouncementHandler(announcementSvc, authSvc)
	registrationHandler := v1.NewRegistrationHandler(registrationSvc, authSvc)
	feedbackHandler := v1.NewFeedbackHandler(feedbackSvc, authSvc)

	s.MountHandlers(authHandler, eventHandler, announcementHandler, registrationHandler, feedbackHandler)

	return s
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	eventHandler *v1.EventHandler,
	announcementHandler *v1.AnnouncementHandler,
	registrationHandler *v1.RegistrationHandler,
	feedbackHandler *v1.FeedbackHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	authenticated := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authenticated.GET("/events", eventHandler.HandleListEvents)
		authenticated.GET("/events/:eventID", eventHandler.HandleGetEvent)
		authenticated.POST("/events", eventHandler.HandleCreateEvent)
		authenticated.PUT("/events/:eventID", eventHandler.HandleUpdateEvent)
		authenticated.DELETE("/events/:eventID", eventHandler.HandleDeleteEvent)

		authenticated.GET("/announcements", announcementHandler.HandleListAnnouncements)
		authenticated.POST("/announcements", announcementHandler.HandlePostAnnouncement)
		authenticated.DELETE("/announcements/:announcementID", announcementHandler.HandleDeleteAnnouncement)

		authenticated.GET("/registrations", registrationHandler.HandleListMyRegistrations)
		authenticated.POST("/events/:eventID/registrations", registrationHandler.HandleRegister)
		authenticated.GET("/events/:eventID/registrations", registrationHandler.HandleListEventRegistrations)
		authenticated.GET("/events/:eventID/registrations.csv", registrationHandler.HandleExportEventRegistrations)
		authenticated.POST("/registrations/:registrationID/payment", registrationHandler.HandleConfirmPayment)
		authenticated.POST("/registrations/:registrationID/cancel", registrationHandler.HandleCancel)

		authenticated.POST("/events/:eventID/feedback", feedbackHandler.HandleSubmitFeedback)
		authenticated.GET("/events/:eventID/feedback", feedbackHandler.HandleListFeedback)
		authenticated.GET("/events/:eventID/feedback/average", feedbackHandler.HandleAverageRating)

		authenticated.GET("/stats", eventHandler.HandleGetStats)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Smart Event Organizer API"
	docs.SwaggerInfo.Description = "Event announcements, scheduling, registration and feedback."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
