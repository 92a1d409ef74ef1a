package handler

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/mcoot/turnherald/internal/api/apierr"
	"github.com/mcoot/turnherald/internal/api/request"
	"github.com/mcoot/turnherald/internal/api/response"
	"github.com/mcoot/turnherald/internal/services/turn"
)

// maxWebhookBody bounds inbound webhook payloads
const maxWebhookBody = 64 * 1024

// WebhookHandler handles inbound turn-change webhooks
type WebhookHandler struct {
	processor *turn.Processor
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(processor *turn.Processor) *WebhookHandler {
	return &WebhookHandler{processor: processor}
}

// Turn handles POST /api/v1/webhook/turn
func (h *WebhookHandler) Turn(w http.ResponseWriter, r *http.Request) {
	ev, err := parseTurnEvent(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	result, err := h.processor.ProcessEvent(r.Context(), ev.ToModel())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TurnEventResponse{
		Advanced: result.Advanced,
		Notified: result.Notified,
	})
}

// parseTurnEvent accepts either a JSON or form-encoded body
func parseTurnEvent(r *http.Request) (request.TurnEvent, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.Contains(contentType, "application/json") {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
		if err != nil {
			return request.TurnEvent{}, apierr.NewInvalidRequestError("could not read request body")
		}
		ev, err := request.ParseJSON(body)
		if err != nil {
			return request.TurnEvent{}, apierr.NewInvalidRequestError("invalid JSON payload")
		}
		return ev, nil
	}

	if err := r.ParseForm(); err != nil {
		return request.TurnEvent{}, apierr.NewInvalidRequestError("invalid form payload")
	}

	ev := request.TurnEvent{
		GameID:     r.Form.Get("gameId"),
		GameName:   r.Form.Get("gameName"),
		UserName:   r.Form.Get("userName"),
		CivName:    r.Form.Get("civName"),
		LeaderName: r.Form.Get("leaderName"),
	}
	if raw := r.Form.Get("round"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return request.TurnEvent{}, apierr.NewInvalidRequestError("round must be a number")
		}
		ev.Round = request.FlexibleInt(n)
	}
	return ev, nil
}
