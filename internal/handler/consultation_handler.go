package handler

import (
	"context"
	"errors"

	"rag-symptom-be/internal/dto"
	"rag-symptom-be/internal/pkg/logger"
	"rag-symptom-be/internal/pkg/serverutils"
	"rag-symptom-be/internal/service"
	internalWS "rag-symptom-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// ConsultationHandler runs consultation turns over a websocket. Every text
// frame is one turn; turns are pushed to all watchers of the session.
type ConsultationHandler struct {
	service service.IAssistantService
	hub     *internalWS.Hub
	logger  logger.ILogger
}

func NewConsultationHandler(service service.IAssistantService, hub *internalWS.Hub, log logger.ILogger) *ConsultationHandler {
	return &ConsultationHandler{
		service: service,
		hub:     hub,
		logger:  log,
	}
}

func (h *ConsultationHandler) RegisterRoutes(app fiber.Router) {
	app.Get("/ws/consultation/:id", h.ServeWs)
}

// ServeWs checks the session exists before upgrading
func (h *ConsultationHandler) ServeWs(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if _, err := h.service.GetConsultation(c.UserContext(), sessionID); err != nil {
		return err
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("WEBSOCKET", "Starting consultation socket", map[string]interface{}{"session_id": sessionID})
		// fiber.Ctx is recycled after the upgrade; ServeWs cancels turns itself when the socket stops reading.
		internalWS.ServeWs(context.Background(), h.hub, conn, sessionID, h.turn)
		h.logger.Info("WEBSOCKET", "Consultation socket closed", map[string]interface{}{"session_id": sessionID})
	})(c)
}

func (h *ConsultationHandler) turn(ctx context.Context, sessionID, message string) error {
	req := dto.SendMessageRequest{Message: message}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	if _, err := h.service.SendMessage(ctx, sessionID, &req); err != nil {
		// only the caller-safe message goes back over the socket
		_, msg := serverutils.StatusFor(err)
		return errors.New(msg)
	}
	return nil
}
