package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"wa-coach-bot/internal/domain"
)

// Gateway lifecycle event types.
const (
	EventQR            = "qr"
	EventAuthenticated = "authenticated"
	EventAuthFailure   = "auth_failure"
	EventReady         = "ready"
	EventDisconnected  = "disconnected"
	EventMessage       = "message"
)

// GatewayEvent is the webhook payload pushed by the chat gateway.
type GatewayEvent struct {
	Type    string                 `json:"type"`
	Reason  string                 `json:"reason,omitempty"`
	Message *domain.InboundMessage `json:"message,omitempty"`
}

type messageDispatcher interface {
	HandleMessage(ctx context.Context, msg domain.InboundMessage)
}

type sessionArchiver interface {
	Backup() error
}

// GatewayHandler receives gateway webhook events: inbound chat messages and
// connection lifecycle notifications.
type GatewayHandler struct {
	dispatcher messageDispatcher
	backup     sessionArchiver
	logger     domain.Logger
}

// NewGatewayHandler creates a new gateway webhook handler
func NewGatewayHandler(dispatcher messageDispatcher, backup sessionArchiver, logger domain.Logger) *GatewayHandler {
	return &GatewayHandler{
		dispatcher: dispatcher,
		backup:     backup,
		logger:     logger,
	}
}

// HandleEvent handles one webhook delivery. Messages are dispatched off the
// request goroutine so a slow completion call never blocks the gateway's
// webhook loop.
func (h *GatewayHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	var event GatewayEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event payload")
		return
	}

	switch event.Type {
	case EventMessage:
		if event.Message == nil {
			writeError(w, http.StatusBadRequest, "Message event without message")
			return
		}
		msg := *event.Message
		go h.dispatcher.HandleMessage(context.Background(), msg)

	case EventAuthenticated:
		h.logger.Info("Gateway authenticated")
		go h.runBackup()

	case EventDisconnected:
		h.logger.Warn("Gateway disconnected", "reason", event.Reason)
		go h.runBackup()

	case EventQR:
		h.logger.Info("Gateway waiting for QR scan")

	case EventReady:
		h.logger.Info("Gateway ready")

	case EventAuthFailure:
		h.logger.Error("Gateway authentication failed", nil, "reason", event.Reason)

	default:
		writeError(w, http.StatusBadRequest, "Unknown event type")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func (h *GatewayHandler) runBackup() {
	if err := h.backup.Backup(); err != nil {
		h.logger.Warn("Session backup failed", "error", err)
	}
}
