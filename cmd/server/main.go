package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	users "github.com/goliatone/go-users"
	"github.com/joho/godotenv"
)

type App struct {
	config  *users.EnvConfig
	store   *users.MemoryStore
	auth    *users.Auther
	service *users.Service
	srv     *fiber.App
	logger  *glog.BaseLogger
}

func (a *App) GetLogger(name string) glog.Logger {
	return a.logger.GetLogger(name)
}

func main() {
	// .env is optional; real deployments set the environment directly.
	godotenv.Load()

	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("users"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	app := &App{
		config: users.ConfigFromEnv(),
		logger: lgr,
	}

	ctx := context.Background()

	if err := WithServices(ctx, app); err != nil {
		lgr.Error("Service bootstrap failed", "error", err)
		os.Exit(1)
	}

	if err := WithHTTPServer(ctx, app); err != nil {
		lgr.Error("HTTP bootstrap failed", "error", err)
		os.Exit(1)
	}

	go func() {
		if err := app.srv.Listen(app.config.GetListenAddress()); err != nil {
			lgr.Error("Server stopped", "error", err)
			os.Exit(1)
		}
	}()

	lgr.Info("Listening", "address", app.config.GetListenAddress())

	WaitExitSignal()

	lgr.Info("Shutting down")
	if err := app.srv.Shutdown(); err != nil {
		lgr.Error("Shutdown error", "error", err)
	}
}

func WithServices(ctx context.Context, app *App) error {
	store := users.NewMemoryStore()

	tokens := users.NewTokenService(
		[]byte(app.config.GetSigningKey()),
		app.config.GetIssuer(),
		app.GetLogger("tokens"),
	)

	auther := users.NewAuthenticator(store, tokens).
		WithLogger(app.GetLogger("auth")).
		WithSessionTTL(time.Duration(app.config.GetTokenTTL()) * time.Minute)

	service := users.NewService(store).
		WithLogger(app.GetLogger("service"))

	if err := users.SeedAdmin(ctx, store, app.config); err != nil {
		return err
	}
	app.GetLogger("seed").Info("Admin account ready", "email", app.config.GetAdminEmail())

	app.store = store
	app.auth = auther
	app.service = service

	return nil
}

func WithHTTPServer(ctx context.Context, app *App) error {
	srv := fiber.New(fiber.Config{
		AppName:      "go-users",
		UnescapePath: true,
	})

	srv.Use(recover.New())
	srv.Use(cors.New(cors.Config{
		AllowOrigins: app.config.GetAllowedOrigins(),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	controller := users.NewController(
		app.auth,
		app.service,
		users.WithControllerLogger(app.GetLogger("http")),
	)

	users.RegisterRoutes(srv, controller)

	app.srv = srv
	return nil
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
