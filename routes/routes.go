package routes

import (
	"dormly/config"
	authController "dormly/controllers/auth"
	bookingController "dormly/controllers/booking"
	dormController "dormly/controllers/dorm"
	paymentController "dormly/controllers/payment"
	roomController "dormly/controllers/room"
	"dormly/controllers/server"
	httpServices "dormly/httpServices/payment"
	"dormly/logger"
	"dormly/middleware"
	"dormly/services/auth"
	"dormly/services/booking"
	"dormly/services/dorm"
	"dormly/services/payment"
	"dormly/services/room"
	"dormly/services/search"
	"dormly/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Deps are the shared resources the routes are built from. Gateway and
// LogWriter default to the Omise client and the logs table.
type Deps struct {
	DB        *gorm.DB
	Config    *config.Config
	Cipher    *utils.Cipher
	Gateway   payment.Gateway
	LogWriter logger.LogWriter
}

// SetupRoutes registers every route on app and starts the request logger.
// The caller closes the returned logger on shutdown.
func SetupRoutes(app *fiber.App, deps Deps) *logger.AsyncLogger {
	cfg := deps.Config
	if deps.Gateway == nil {
		deps.Gateway = httpServices.NewClient(cfg.OmiseBaseURL, cfg.OmiseSecretKey)
	}
	if deps.LogWriter == nil {
		deps.LogWriter = logger.GormLogWriter{DB: deps.DB}
	}

	asyncLogger := logger.NewAsyncLogger(deps.LogWriter, cfg.LogWorkers)
	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()
	app.Use(middleware.RequestLogger(asyncLogger))

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	bookingService := booking.NewService(booking.NewGormStore(deps.DB))

	healthHandler := server.NewHealthController(deps.DB)
	authHandler := authController.NewAuthController(auth.NewService(deps.DB, tokens, deps.Cipher))
	dormHandler := dormController.NewDormController(search.NewService(deps.DB), dorm.NewService(deps.DB))
	roomHandler := roomController.NewRoomController(room.NewService(deps.DB), bookingService)
	bookingHandler := bookingController.NewBookingController(bookingService)
	paymentHandler := paymentController.NewPaymentController(payment.NewService(deps.Gateway, bookingService))

	requireAuth := middleware.IsAuthenticated(tokens)

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Get("/health", healthHandler.Health)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/profile", requireAuth, authHandler.Profile)

	/*=============================================================================
	| Dorm & Room Routes
	===============================================================================*/
	dormGroup := api.Group("/dorms")
	dormGroup.Post("/search", dormHandler.Search)
	dormGroup.Get("/:id", dormHandler.Show)

	roomGroup := api.Group("/rooms")
	roomGroup.Get("/dorm/:dormId", roomHandler.ByDorm)
	roomGroup.Get("/dorm/:dormId/available", roomHandler.AvailableByDorm)
	roomGroup.Get("/:id", roomHandler.Show)
	roomGroup.Put("/:id", requireAuth, roomHandler.Update)

	/*=============================================================================
	| Booking Routes
	===============================================================================*/
	bookingGroup := api.Group("/bookings", requireAuth)
	bookingGroup.Get("/my", bookingHandler.Mine)
	bookingGroup.Get("/:id", bookingHandler.Show)
	bookingGroup.Post("/", bookingHandler.Store)
	bookingGroup.Delete("/:id", bookingHandler.Cancel)

	/*=============================================================================
	| Payment Routes
	===============================================================================*/
	paymentGroup := api.Group("/payment", requireAuth)
	paymentGroup.Post("/create-charge", paymentHandler.CreateCharge)
	paymentGroup.Get("/verify/:chargeId", paymentHandler.Verify)

	return asyncLogger
}
