package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/Eursukkul/events-dashboard/config"
	refreshconsumer "github.com/Eursukkul/events-dashboard/internal/consumer"
	"github.com/Eursukkul/events-dashboard/internal/handler"
	"github.com/Eursukkul/events-dashboard/internal/middleware"
	"github.com/Eursukkul/events-dashboard/internal/repository"
	"github.com/Eursukkul/events-dashboard/internal/service"
	"github.com/Eursukkul/events-dashboard/pkg/backend"
	"github.com/Eursukkul/events-dashboard/pkg/database"
	"github.com/Eursukkul/events-dashboard/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/urfave/cli/v2"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the dashboard proxy in front of the events backend.",
		Action: func(c *cli.Context) error {
			return runServer(c.Context, config.Load())
		},
	}
}

func runServer(ctx context.Context, cfg *config.Config) error {
	client := backend.NewClient(cfg.APIURL, cfg.BackendTimeout)

	var runs repository.RefreshRunRepository
	if cfg.HistoryEnabled() {
		db, err := database.OpenHistory(cfg.DSN(), database.DefaultPool)
		if err != nil {
			return err
		}
		runs = repository.NewRefreshRunRepository(db)
	} else {
		log.Println("DB_HOST not set, refresh history disabled")
	}

	var publisher service.Notifier
	if cfg.MessagingEnabled() {
		p, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		defer p.Close()
		publisher = p
	}

	svc := service.NewEventService(repository.NewEventRepository(client), runs, publisher)

	if cfg.MessagingEnabled() {
		consumer, err := rabbitmq.NewConsumer(cfg.RabbitURL, rabbitmq.RefreshBinding)
		if err != nil {
			return fmt.Errorf("failed to connect consumer to RabbitMQ: %w", err)
		}
		defer consumer.Close()

		msgs, err := consumer.Consume()
		if err != nil {
			return err
		}
		refreshconsumer.NewRefreshConsumer(svc).Start(ctx, msgs)
	}

	e := newServer(svc)

	log.Printf("Events dashboard proxy starting on :%s (backend %s)", cfg.ServerPort, client.BaseURL())
	if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func newServer(svc service.EventService) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = handler.NewRequestValidator()
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "events-dashboard"})
	})

	api := e.Group("/api")
	handler.NewEventHandler(svc).RegisterRoutes(api)

	return e
}
