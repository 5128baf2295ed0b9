// Package handler exposes the callback server as a single net/http handler
// for serverless hosting (the Vercel Go runtime looks for an exported Handler).
package handler

import (
	"net/http"
	"os"
	"sync"

	protocol "line-callback/protocal"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/sirupsen/logrus"
)

var (
	once        sync.Once
	appHandler  http.HandlerFunc
	configsPath = "./configs"
)

// Handler serves every request routed to the function
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(initApp)
	appHandler(w, r)
}

// initApp runs once per cold start. Missing LINE credentials are fatal.
func initApp() {
	cfg, err := protocol.LoadConfig(configsPath, os.Getenv("APP_ENV"))
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	app, err := protocol.NewApp(cfg)
	if err != nil {
		logrus.Fatalf("Failed to create app: %v", err)
	}
	appHandler = adaptor.FiberApp(app)
}
