package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dormly/config"
	"dormly/database"
	"dormly/logger"
	"dormly/routes"
	"dormly/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg, envErr := config.Load()
	logger.SetLevel(logger.ParseLevel(cfg.LogLevel))
	if envErr != nil {
		logger.Warning("Error loading .env file: " + envErr.Error())
	}
	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	app := fiber.New(fiber.Config{
		ReadBufferSize:  32768, // 32KB read buffer
		WriteBufferSize: 32768, // 32KB write buffer
		ReadTimeout:     time.Second * 30,
		WriteTimeout:    time.Second * 30,
		BodyLimit:       4 * 1024 * 1024,
	})

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return
	}

	var cipher *utils.Cipher
	if cfg.EncryptionKey != "" {
		cipher, err = utils.NewCipher(cfg.EncryptionKey)
		if err != nil {
			logger.Error("Invalid ENCRYPTION_KEY", err)
			return
		}
	} else {
		logger.Warning("ENCRYPTION_KEY is not set, national ids are stored unencrypted")
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	asyncLogger := routes.SetupRoutes(app, routes.Deps{DB: db, Config: cfg, Cipher: cipher})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Info("Shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("Server shutdown failed", err)
		}
	}()

	addr := cfg.AppHost + ":" + cfg.AppPort
	logger.Success("Server is running on " + addr)
	if err := app.Listen(addr); err != nil {
		logger.Error("Server stopped", err)
	}

	asyncLogger.Close()
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	fmt.Println("Server exited")
}
