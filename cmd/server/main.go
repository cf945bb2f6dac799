package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"server/cmd/migration/initialize"
	"server/internal/app"
	"server/internal/handlers"
	"server/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	log := logger.New("main")

	application, err := app.New()
	if err != nil {
		log.Er("failed to initialize app", err)
		os.Exit(1)
	}

	if err := initialize.InitializeTables(application.Database.SQL, application.Config, log); err != nil {
		log.Er("failed to run schema migrations", err)
		os.Exit(1)
	}

	server := fiber.New(fiber.Config{
		AppName:      "tracker",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	server.Use(recover.New())
	server.Use(cors.New(cors.Config{
		AllowOrigins:     application.Config.CorsOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept",
	}))

	if err := handlers.Router(server, application); err != nil {
		log.Er("failed to register routes", err)
		os.Exit(1)
	}

	go func() {
		if err := server.Listen(":" + application.Config.ServerPort); err != nil {
			log.Er("server stopped", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	if err := server.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Er("failed to shut down server cleanly", err)
	}

	if err := application.Close(); err != nil {
		log.Er("failed to close app", err)
	}
}
