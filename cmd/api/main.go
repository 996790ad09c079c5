package main

import (
	"os"
	"os/signal"
	"syscall"

	"go-teachain-ws/internal/config"
	"go-teachain-ws/internal/handler"
	"go-teachain-ws/internal/ledger"
	"go-teachain-ws/internal/ledger/evm"
	"go-teachain-ws/internal/lifecycle"
	"go-teachain-ws/internal/middleware"
	"go-teachain-ws/internal/model"
	"go-teachain-ws/internal/repository"
	"go-teachain-ws/internal/service"
	"go-teachain-ws/internal/ws"
	"go-teachain-ws/pkg/database"
	"go-teachain-ws/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(&model.Account{}, &model.Submission{})

	// 3. Seed default admin account
	seedAdmin(db, log)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub(log)
	go wsHub.Run()

	// 5. Ledger gateway. A dial failure leaves the API up; every ledger
	// operation then reports the gateway as unavailable instead of the
	// process refusing to start.
	var gw ledger.Gateway
	if cfg.Ledger.RPCURL != "" {
		contractGw, err := evm.Dial(cfg.Ledger, log)
		if err != nil {
			log.Error().Err(err).Msg("ledger gateway unavailable, starting without it")
		} else {
			gw = contractGw
			log.Info().Str("caller", contractGw.Caller()).Msg("ledger gateway connected")
		}
	} else {
		log.Warn().Msg("LEDGER_RPC_URL not set, ledger operations disabled")
	}

	// 6. Dependency Injection (Wiring Layers)
	accountRepo := repository.NewAccountRepo(db)
	submissionRepo := repository.NewSubmissionRepo(db)

	authService := service.NewAuthService(accountRepo)
	controller := lifecycle.NewController(gw, nil, submissionRepo, log)

	writes := handler.NewInflight()
	authHandler := handler.NewAuthHandler(authService, controller, writes)
	userHandler := handler.NewUserHandler(controller, wsHub, writes)
	productHandler := handler.NewProductHandler(controller, wsHub, writes)
	batchHandler := handler.NewBatchHandler(controller, wsHub, writes)
	verifyHandler := handler.NewVerifyHandler(controller)
	submissionHandler := handler.NewSubmissionHandler(submissionRepo)

	// 7. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "TeaChain Tracker v1.0",
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// 8. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/heartbeat", middleware.RequireAuth(accountRepo), authHandler.Heartbeat)
	auth.Post("/logout", middleware.RequireAuth(accountRepo), authHandler.Logout)

	// Consumer-facing provenance lookup, no session needed
	api.Get("/verify/:id", verifyHandler.GetProvenance)
	api.Get("/meta/options", verifyHandler.GetOptions)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(accountRepo))

	// Participant management (admin only)
	protected.Get("/users", middleware.RequireRole("Admin"), userHandler.GetUsers)
	protected.Post("/users", middleware.RequireRole("Admin"), userHandler.AddUser)
	protected.Patch("/users/:wallet/status", middleware.RequireRole("Admin"), userHandler.UpdateStatus)

	// Write audit trail (admin only)
	protected.Get("/submissions", middleware.RequireRole("Admin"), submissionHandler.GetRecent)
	protected.Get("/submissions/:wallet", middleware.RequireRole("Admin"), submissionHandler.GetByWallet)

	// Batches (manufacturers create, anyone authenticated can look up)
	protected.Post("/batches", middleware.RequireRole("Manufacturer", "Admin"), batchHandler.CreateBatch)
	protected.Get("/batches/:no", batchHandler.GetBatch)

	// Products and stage transitions
	protected.Get("/products", productHandler.GetProducts)
	protected.Post("/products", middleware.RequireRole("Manufacturer"), productHandler.CreateProduct)
	protected.Post("/products/:id/check-in", middleware.RequireRole("Distributor", "Retailer"), productHandler.CheckIn)
	protected.Post("/products/:id/stage", middleware.RequireRole("Manufacturer", "Distributor", "Retailer", "Admin"), productHandler.UpdateStage)
	protected.Post("/products/:id/lost", middleware.RequireRole("Manufacturer", "Distributor", "Retailer", "Admin"), productHandler.MarkLost)
	protected.Post("/products/:id/sold", middleware.RequireRole("Retailer"), productHandler.MarkSold)

	// 9. WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 10. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited")
}

// seedAdmin creates the default dashboard admin if no admin account exists.
// The wallet mirrors the ledger service key's address and must match the
// contract owner for status updates to succeed.
func seedAdmin(db *gorm.DB, log zerolog.Logger) {
	accountRepo := repository.NewAccountRepo(db)

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	if _, err := accountRepo.FindByEmail(email); err == nil {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	admin := &model.Account{
		Email:     email,
		Name:      "Administrator",
		Wallet:    os.Getenv("ADMIN_WALLET"),
		RoleLabel: "Admin",
		IsActive:  true,
	}
	if err := admin.SetPassword(password); err != nil {
		log.Warn().Err(err).Msg("failed to hash admin password")
		return
	}
	if err := accountRepo.Create(admin); err != nil {
		log.Warn().Err(err).Msg("failed to create admin account")
		return
	}
	log.Info().Str("email", email).Msg("admin account created")
}
