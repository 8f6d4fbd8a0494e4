package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/primefit-labs/training-scheduler/internal/audit"
	"github.com/primefit-labs/training-scheduler/internal/config"
	"github.com/primefit-labs/training-scheduler/internal/handlers"
	infraRepo "github.com/primefit-labs/training-scheduler/internal/infra/repository"
	"github.com/primefit-labs/training-scheduler/internal/media"
	"github.com/primefit-labs/training-scheduler/internal/middleware"
	"github.com/primefit-labs/training-scheduler/internal/notify"
	"github.com/primefit-labs/training-scheduler/internal/realtime"
	ucBooking "github.com/primefit-labs/training-scheduler/internal/usecase/booking"
	ucDrill "github.com/primefit-labs/training-scheduler/internal/usecase/drill"
	ucLeaderboard "github.com/primefit-labs/training-scheduler/internal/usecase/leaderboard"
	ucMessaging "github.com/primefit-labs/training-scheduler/internal/usecase/messaging"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	leaderboardRepo := infraRepo.NewLeaderboardGormRepository(db)
	messagingRepo := infraRepo.NewMessagingGormRepository(db)
	drillRepo := infraRepo.NewDrillGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	hub := realtime.NewHub(rdb)
	mailer := notify.NewEmailSender(cfg)
	storage := media.NewStorage(cfg)

	// ======================================================
	// USE CASES — SLOTS & BOOKINGS
	// ======================================================
	createSlotUC := ucBooking.NewCreateSlot(
		bookingRepo,
		auditDispatcher,
	)

	listSlotsUC := ucBooking.NewListAvailableSlots(
		bookingRepo,
	)

	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		auditDispatcher,
	)

	transitionBookingUC := ucBooking.NewTransitionBooking(
		bookingRepo,
		auditDispatcher,
	)

	// ======================================================
	// USE CASES — LEADERBOARD / MESSAGING / IMPORT
	// ======================================================
	computeLeaderboardUC := ucLeaderboard.NewCompute(leaderboardRepo, rdb)

	sendMessageUC := ucMessaging.NewSendMessage(messagingRepo, hub)
	openConversationUC := ucMessaging.NewOpenConversation(messagingRepo)

	importDrillsUC := ucDrill.NewImport(drillRepo, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, mailer)
	meHandler := handlers.NewMeHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	metricHandler := handlers.NewMetricHandler(db, auditDispatcher)

	slotHandler := handlers.NewSlotHandler(createSlotUC, listSlotsUC)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		transitionBookingUC,
		bookingRepo,
	)

	leaderboardHandler := handlers.NewLeaderboardHandler(computeLeaderboardUC)

	messageHandler := handlers.NewMessageHandler(
		messagingRepo,
		sendMessageUC,
		openConversationUC,
		hub,
	)

	drillHandler := handlers.NewDrillHandler(db, importDrillsUC)
	mediaHandler := handlers.NewMediaHandler(storage)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/slots", slotHandler.List)
			publicAPI.GET("/services", serviceHandler.List)
			publicAPI.GET("/leaderboard/metrics", leaderboardHandler.Metrics)
			publicAPI.GET("/leaderboard", leaderboardHandler.Get)
			publicAPI.GET("/media/gallery", mediaHandler.Gallery)
			publicAPI.GET("/media/proxy", mediaHandler.ProxyImage)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/parent-notify", authHandler.ParentNotify)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)

			// ------------------------------
			// SLOTS & BOOKINGS
			// ------------------------------
			secured.POST("/me/slots",
				middleware.RequireRole(middleware.RoleCoach, middleware.RoleAdmin),
				slotHandler.Create,
			)

			secured.POST("/me/bookings", bookingHandler.Create)
			secured.GET("/me/bookings", bookingHandler.ListMine)
			secured.PATCH("/me/bookings/:id/confirm",
				middleware.RequireRole(middleware.RoleCoach, middleware.RoleAdmin),
				bookingHandler.Confirm,
			)
			secured.PATCH("/me/bookings/:id/complete",
				middleware.RequireRole(middleware.RoleCoach, middleware.RoleAdmin),
				bookingHandler.Complete,
			)
			secured.PATCH("/me/bookings/:id/cancel", bookingHandler.Cancel)

			// ------------------------------
			// PERFORMANCE METRICS
			// ------------------------------
			secured.POST("/me/metrics", metricHandler.Create)
			secured.GET("/me/metrics/:id", metricHandler.ListForAthlete)

			// ------------------------------
			// MESSAGING
			// ------------------------------
			secured.GET("/me/conversations", messageHandler.ListConversations)
			secured.GET("/me/conversations/:id", messageHandler.OpenConversation)
			secured.GET("/me/conversations/:id/stream", messageHandler.Stream)
			secured.POST("/me/messages", messageHandler.Send)

			// ------------------------------
			// DRILL LIBRARY
			// ------------------------------
			secured.GET("/me/drills", drillHandler.List)
			secured.POST("/me/drills",
				middleware.RequireRole(middleware.RoleCoach, middleware.RoleAdmin),
				drillHandler.Create,
			)
			secured.PATCH("/me/drills/:id",
				middleware.RequireRole(middleware.RoleCoach, middleware.RoleAdmin),
				drillHandler.Update,
			)
			secured.POST("/me/drills/import",
				middleware.RequireRole(middleware.RoleCoach, middleware.RoleAdmin),
				drillHandler.Import,
			)

			// ------------------------------
			// ROSTER / ADMIN
			// ------------------------------
			secured.GET("/me/athletes",
				middleware.RequireRole(middleware.RoleCoach, middleware.RoleAdmin),
				meHandler.ListAthletes,
			)

			secured.POST("/services",
				middleware.RequireRole(middleware.RoleAdmin),
				serviceHandler.Create,
			)
			secured.PATCH("/services/:id",
				middleware.RequireRole(middleware.RoleAdmin),
				serviceHandler.Update,
			)

			secured.POST("/media/upload",
				middleware.RequireRole(middleware.RoleCoach, middleware.RoleAdmin),
				mediaHandler.Upload,
			)
		}
	}
}
