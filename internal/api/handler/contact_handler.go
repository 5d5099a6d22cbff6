package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devfolio/portfolio-api/internal/core/ports"
)

type ContactHandler struct {
	mailer ports.Mailer
	to     string
	logger zerolog.Logger
}

func NewContactHandler(mailer ports.Mailer, to string, logger zerolog.Logger) *ContactHandler {
	return &ContactHandler{mailer: mailer, to: to, logger: logger}
}

type contactRequest struct {
	Name    string `json:"name"    validate:"required,max=100"`
	Email   string `json:"email"   validate:"required,email"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

const contactMailTimeout = 30 * time.Second

// Submit accepts a contact-form message and relays it by mail. Delivery
// happens off the request path so a slow SMTP server cannot stall the
// client; the response only acknowledges receipt.
//
// @Summary      Send a contact message
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        body  body      contactRequest  true  "Contact message"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /api/contact [post]
func (h *ContactHandler) Submit(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	subject := "[contact] new message"
	if req.Subject != "" {
		subject = fmt.Sprintf("[contact] %s", req.Subject)
	}
	body := fmt.Sprintf("From: %s <%s>\r\n\r\n%s", req.Name, req.Email, req.Message)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), contactMailTimeout)
		defer cancel()
		if err := h.mailer.Send(ctx, h.to, subject, body); err != nil {
			h.logger.Error().Err(err).Str("sender", req.Email).Msg("contact mail delivery failed")
		}
	}()

	return c.JSON(http.StatusOK, map[string]string{"message": "message received"})
}
