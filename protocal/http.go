package protocal

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"line-callback/configs"
	_ "line-callback/docs"
	httpAdapter "line-callback/internal/adapters/input/http"
	"line-callback/internal/adapters/output/evaluator"
	lineAdapter "line-callback/internal/adapters/output/line"
	"line-callback/internal/application"
	"line-callback/internal/ports/output"

	swagger "github.com/arsmn/fiber-swagger/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

type config struct {
	ENV string `mapstructure:"env"`
}

// LoadConfig reads .env, the config file and the environment.
// It fails when the LINE channel secret or access token is missing.
func LoadConfig(path, env string) (*configs.Config, error) {
	configs.LoadDotEnv()
	if err := configs.InitViper(path, env); err != nil {
		return nil, err
	}
	cfg := configs.GetViper()
	SetupLogger(cfg.App)
	return cfg, nil
}

// SetupLogger configures logrus from the app config
func SetupLogger(app configs.App) {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	level, err := logrus.ParseLevel(app.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if app.Debug {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)
}

// NewApp wires the hexagonal layers into a fiber app
func NewApp(cfg *configs.Config) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Use(recover.New())

	// Output adapters
	lineClient, err := lineAdapter.NewLineClientAdapter(
		cfg.Line.ChannelToken,
		cfg.Line.APIEndpoint,
		time.Duration(cfg.Line.Timeout)*time.Second,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create LINE client: %w", err)
	}

	var evaluatorClient output.EvaluatorClient
	if cfg.Evaluator.URL != "" {
		evaluatorClient, err = evaluator.NewEvaluatorClientAdapter(cfg.Evaluator)
		if err != nil {
			return nil, fmt.Errorf("failed to create evaluator client: %w", err)
		}
	} else {
		logrus.Warn("EVALUATOR_URL is not set, trigger phrases will get the evaluator error message")
	}

	// Application service (LINE webhook use case)
	lineWebhookSrv := application.NewLineWebhookService(lineClient, evaluatorClient, application.MessageSettings{
		EchoTemplate:          cfg.Bot.EchoTemplate,
		Triggers:              cfg.Evaluator.Triggers,
		EvaluatorErrorMessage: cfg.Evaluator.ErrorMessage,
	})

	// Input adapters
	hdl := httpAdapter.New(cfg.App.Env)
	lineWebhookHdl := httpAdapter.NewLineWebhookHandler(lineWebhookSrv, cfg.Line.ChannelSecret)

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/health", hdl.HealthCheck)
	app.Post(cfg.Bot.CallbackPath, lineWebhookHdl.HandleWebhook)

	return app, nil
}

// ServeHTTP func
func ServeHTTP() error {
	var cfg config
	flag.StringVar(&cfg.ENV, "env", "", "the environment to use")
	flag.Parse()

	conf, err := LoadConfig("./configs", cfg.ENV)
	if err != nil {
		return err
	}
	logrus.Infof("Environment: %s", conf.App.Env)

	app, err := NewApp(conf)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logrus.Infof("Listening on port: %s", conf.App.Port)
		return app.Listen(":" + conf.App.Port)
	})
	group.Go(func() error {
		<-groupCtx.Done()
		logrus.Info("Graceful shut down ...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logrus.Info("Server stopped")
	return nil
}
