package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mauv0809/earnings-lens/internal/config"
	"github.com/mauv0809/earnings-lens/internal/dashboard"
	"github.com/mauv0809/earnings-lens/internal/gateway"
	"github.com/mauv0809/earnings-lens/internal/handlers"
)

func main() {
	// Load .env file if it exists (local dev)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Setup Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error == nil {
				log.Printf("%d %s", v.Status, v.URI)
			} else {
				log.Printf("%d %s - %v", v.Status, v.URI, v.Error)
			}
			return nil
		},
	}))
	e.Use(middleware.Recover())

	// Remote data gateway and per-session dashboard state
	gw := gateway.New(cfg)
	store := dashboard.NewStore(0, func() *dashboard.Controller {
		return dashboard.NewController(&cfg, gw)
	})

	h := handlers.New(&cfg, gw, store)
	h.Register(e)

	log.Printf("Starting server on %s", cfg.ListenAddr)
	if err := e.Start(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
