package main

import (
	"os"
	"os/signal"
	"syscall"

	"go-commerce-api/internal/config"
	"go-commerce-api/internal/handler"
	"go-commerce-api/internal/middleware"
	"go-commerce-api/internal/model"
	"go-commerce-api/internal/repository"
	"go-commerce-api/internal/service"
	"go-commerce-api/internal/ws"
	"go-commerce-api/pkg/database"
	"go-commerce-api/pkg/jwt"
	"go-commerce-api/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// 1. Config and logging
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	appLog := logger.Setup(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	// 2. Database
	db, err := database.Connect(database.Options{DSN: cfg.DSN(), LogLevel: zerolog.GlobalLevel()}, appLog)
	if err != nil {
		appLog.Fatal().Err(err).Msg("connect database")
	}
	if cfg.AutoMigrate {
		if err := db.AutoMigrate(model.All()...); err != nil {
			appLog.Fatal().Err(err).Msg("auto migrate")
		}
	}

	// 3. Repositories and seed data
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	catalogRepo := repository.NewCatalogRepo(db)
	productRepo := repository.NewProductRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	promoRepo := repository.NewPromoRepo(db)
	couponRepo := repository.NewCouponRepo(db)

	seedPrivilegesRolesAndAdmin(cfg, privilegeRepo, roleRepo, userRepo, appLog)

	// 4. WebSocket hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Services and handlers
	tokens := jwt.NewManager(cfg.JWTSecret, cfg.TokenTTL())
	authService := service.NewAuthService(userRepo, tokens)
	userService := service.NewUserService(userRepo, roleRepo)
	catalogService := service.NewCatalogService(catalogRepo, productRepo, wsHub)
	orderService := service.NewOrderService(orderRepo, productRepo, couponRepo, cfg.QuantityPolicy(), wsHub)
	promoService := service.NewPromoService(promoRepo, productRepo, wsHub)
	couponService := service.NewCouponService(couponRepo)
	dashService := service.NewDashboardService(orderRepo, productRepo)

	server := &handler.Server{
		Auth:      handler.NewAuthHandler(authService),
		Users:     handler.NewUserHandler(userService),
		Catalog:   handler.NewCatalogHandler(catalogService),
		Orders:    handler.NewOrderHandler(orderService),
		Promos:    handler.NewPromoHandler(promoService, couponService),
		Dashboard: handler.NewDashboardHandler(dashService),
	}

	// 6. Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.AppName,
	})
	app.Use(recover.New())
	app.Use(middleware.RequestLogger(appLog))
	app.Use(cors.New())

	handler.SetupRoutes(app, server, authService, wsHub)

	// 7. Graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			appLog.Panic().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info().Msg("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		appLog.Fatal().Err(err).Msg("Server forced to shutdown")
	}
	if err := database.Close(db); err != nil {
		appLog.Error().Err(err).Msg("database shutdown")
	}

	appLog.Info().Msg("Server exited")
}
