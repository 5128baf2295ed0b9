package http

import (
	"github.com/gofiber/fiber/v2"
)

// HTTPHandler struct - Primary/Driving adapter for HTTP
type HTTPHandler struct {
	env string
}

// New func - Creates new HTTP handler
func New(env string) *HTTPHandler {
	return &HTTPHandler{
		env: env,
	}
}

// HealthCheck godoc
// @Summary Health check
// @Description Reports that the callback server is up
// @Tags Health
// @Produce json
// @Success 200 {object} ResponseBody
// @Router /health [get]
func (hdl *HTTPHandler) HealthCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(ResponseBody{
		Status: Success,
		Data:   fiber.Map{"env": hdl.env},
	})
}
