package main

import (
	"context"
	"errors"
	"fmt"
	"inventory/app/health"
	"inventory/app/item"
	"inventory/app/login"
	"inventory/infra/rabbitmq"
	"inventory/infra/sqldb"
	"inventory/internal/middleware"
	"inventory/pkg/auth"
	"inventory/pkg/aws"
	"inventory/pkg/config"
	"inventory/pkg/events"
	"inventory/pkg/httperror"
	"inventory/pkg/logger"
	"inventory/pkg/metric"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"go.uber.org/zap"
)

type Request any
type Response any

type HandlerInterface[R Request, Res Response] interface {
	Handle(ctx context.Context, req *R) (*Res, error)
}

// statusCoder lets a response pick a success status other than 200.
type statusCoder interface {
	StatusCode() int
}

// attachment responses are sent as a binary download instead of JSON.
type attachment interface {
	AttachmentName() string
	ContentType() string
	Bytes() []byte
}

func handle[R Request, Res Response](handler HandlerInterface[R, Res]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req R

		if err := c.BodyParser(&req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
			return writeError(c, httperror.BadRequest(
				"request.invalid_body",
				"Invalid body",
				fiber.Map{"error": err.Error()},
			))
		}

		if err := c.ParamsParser(&req); err != nil {
			return writeError(c, httperror.BadRequest(
				"request.invalid_path_params",
				"Invalid path params",
				fiber.Map{"error": err.Error()},
			))
		}

		if err := c.QueryParser(&req); err != nil {
			return writeError(c, httperror.BadRequest(
				"request.invalid_query_params",
				"Invalid query params",
				fiber.Map{"error": err.Error()},
			))
		}

		ctx := c.UserContext()

		res, err := handler.Handle(ctx, &req)
		if err != nil {
			return writeError(c, err)
		}

		switch r := any(res).(type) {
		case attachment:
			c.Attachment(r.AttachmentName())
			c.Set(fiber.HeaderContentType, r.ContentType())
			return c.Send(r.Bytes())
		case statusCoder:
			return c.Status(r.StatusCode()).JSON(res)
		}

		return c.JSON(res)
	}
}

type dependencies struct {
	repository    item.Repository
	authenticator *auth.Authenticator
	publisher     events.Publisher
	archiver      item.Archiver
	serviceName   string
	authRequired  bool
}

func newApp(deps dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		IdleTimeout:  5 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		Concurrency:  256 * 1024,
		ErrorHandler: writeError,
	})

	loginHandler := login.NewLoginHandler(deps.authenticator)
	healthHandler := health.NewHealthHandler(deps.repository)
	createItemHandler := item.NewCreateItemHandler(deps.repository, deps.publisher, deps.serviceName)
	getItemsHandler := item.NewGetItemsHandler(deps.repository)
	getItemHandler := item.NewGetItemHandler(deps.repository)
	updateItemHandler := item.NewUpdateItemHandler(deps.repository, deps.publisher, deps.serviceName)
	deleteItemHandler := item.NewDeleteItemHandler(deps.repository, deps.publisher, deps.serviceName)
	downloadHandler := item.NewDownloadInventoryHandler(deps.repository, deps.archiver)

	metrics := metric.NewHTTP()
	app.Use(middleware.NewMetricsMiddleware(metrics))

	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	app.Get("/healthz", handle[health.HealthRequest, health.HealthResponse](healthHandler))
	app.Post("/login", handle[login.LoginRequest, login.LoginResponse](loginHandler))

	guard := func(h fiber.Handler) []fiber.Handler {
		if deps.authRequired {
			return []fiber.Handler{middleware.NewCredentialsMiddleware(deps.authenticator.Allows), h}
		}
		return []fiber.Handler{h}
	}

	app.Post("/add_item", guard(handle[item.CreateItemRequest, item.CreateItemResponse](createItemHandler))...)
	app.Get("/get_inventory", guard(handle[item.GetItemsRequest, item.GetItemsResponse](getItemsHandler))...)
	app.Get("/get_item/:id<int>", guard(handle[item.GetItemRequest, item.GetItemResponse](getItemHandler))...)
	app.Put("/update_item/:id<int>", guard(handle[item.UpdateItemRequest, item.UpdateItemResponse](updateItemHandler))...)
	app.Delete("/delete_item/:id<int>", guard(handle[item.DeleteItemRequest, item.DeleteItemResponse](deleteItemHandler))...)
	app.Get("/download_inventory", guard(handle[item.DownloadInventoryRequest, item.DownloadInventoryResponse](downloadHandler))...)

	return app
}

func main() {
	appConfig := config.Read()
	log := logger.Init(appConfig.IsProduction())
	defer log.Sync()

	zap.L().Info("app starting...")
	zap.L().Info("app config",
		zap.String("port", appConfig.Port),
		zap.String("dbDriver", appConfig.DBDriver),
		zap.Bool("authRequired", appConfig.AuthRequired),
		zap.Bool("exportArchive", appConfig.ExportArchive),
	)

	repository, err := sqldb.NewRepository(appConfig)
	if err != nil {
		zap.L().Fatal("Failed to open database", zap.Error(err))
	}
	defer repository.Close()

	if err := repository.Migrate(context.Background()); err != nil {
		zap.L().Fatal("Failed to create schema", zap.Error(err))
	}

	deps := dependencies{
		repository:    repository,
		authenticator: auth.NewAuthenticator(appConfig.AuthAllowedEmails, appConfig.AuthPasswordHash),
		serviceName:   appConfig.ServiceName,
		authRequired:  appConfig.AuthRequired,
	}

	if appConfig.RabbitMQURL != "" {
		publisher, err := rabbitmq.NewRabbitMQPublisher(appConfig.RabbitMQURL, appConfig.ServiceName)
		if err != nil {
			zap.L().Error("Event publishing disabled", zap.Error(err))
		} else {
			defer publisher.Close()
			deps.publisher = publisher
		}
	}

	if appConfig.ExportArchive {
		if appConfig.S3Enabled() {
			bucket := aws.NewS3Bucket(appConfig)
			defer bucket.Close()
			deps.archiver = bucket
		} else {
			zap.L().Warn("EXPORT_ARCHIVE is set but AWS_BUCKET/AWS_ENDPOINT are missing; archiving disabled")
		}
	}

	app := newApp(deps)

	// Start server in a goroutine
	go func() {
		if err := app.Listen(fmt.Sprintf("0.0.0.0:%s", appConfig.Port)); err != nil {
			zap.L().Error("Failed to start server", zap.Error(err))
			os.Exit(1)
		}
	}()

	zap.L().Info("Server started on port", zap.String("port", appConfig.Port))

	gracefulShutdown(app)
}

func gracefulShutdown(app *fiber.App) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	zap.L().Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		zap.L().Error("Error during server shutdown", zap.Error(err))
	}

	zap.L().Info("Server gracefully stopped")
}

func writeError(c *fiber.Ctx, err error) error {
	var httpErr *httperror.Error
	if errors.As(err, &httpErr) {
		payload := fiber.Map{
			"code":    httpErr.Code,
			"message": httpErr.Message,
		}

		if httpErr.Details != nil {
			payload["details"] = httpErr.Details
		}

		if httpErr.Status >= fiber.StatusInternalServerError {
			zap.L().Error("Handler returned server error", zap.String("code", httpErr.Code), zap.Error(httpErr))
		} else {
			zap.L().Warn("Handler returned client error", zap.String("code", httpErr.Code), zap.Error(httpErr))
		}

		return c.Status(httpErr.Status).JSON(payload)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		zap.L().Warn("Fiber error", zap.String("message", fiberErr.Message), zap.Error(err))
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"code":    "request.invalid",
			"message": fiberErr.Message,
		})
	}

	zap.L().Error("Unhandled error", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"code":    "internal_server_error",
		"message": "Internal server error.",
	})
}
