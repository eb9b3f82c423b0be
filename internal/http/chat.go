package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/diversicloud/cloudcompare/internal/domain"
	"github.com/diversicloud/cloudcompare/internal/observability"
)

// HandleChat serves POST /api/chat: the cost-advisor completion proxy.
// Validation failures never reach the upstream provider.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		writeJSON(ctx, w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	var req domain.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(ctx, w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if strings.TrimSpace(req.Prompt) == "" {
		writeJSON(ctx, w, http.StatusBadRequest, errorResponse{Error: "Prompt is required"})
		return
	}

	completion, err := h.chat.Complete(ctx, &req)
	if err != nil {
		observability.FromContext(ctx).Error("chat completion failed",
			observability.String("provider", h.chat.Name()),
			observability.Error(err),
		)
		writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(ctx, w, http.StatusOK, domain.ChatResponse{Completion: completion})
}
