package http

import (
	"fmt"
	"net/http"

	"github.com/diversicloud/cloudcompare/internal/domain"
	"github.com/diversicloud/cloudcompare/internal/observability"
)

// HandleServices serves GET /api/services: the category and service
// enumeration backing the dashboard's selectors. Without a category it lists
// the categories; with one it lists that category's services.
func (h *Handler) HandleServices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodGet {
		writeJSON(ctx, w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	category := r.URL.Query().Get("category")
	if category == "" {
		writeJSON(ctx, w, http.StatusOK, map[string][]string{
			"categories": domain.Categories(),
		})
		return
	}

	ctx = observability.WithCategory(ctx, category)

	services := domain.Services(category)
	if len(services) == 0 {
		writeJSON(ctx, w, http.StatusBadRequest, errorResponse{
			Error: fmt.Sprintf("unknown category: %s", category),
		})
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{
		"category": category,
		"services": services,
	})
}
