// internal/matching/handlers.go

package matching

import (
	"net/http"
	"strconv"

	"github.com/linkme-app/linkme-backend/internal/auth"
	"github.com/linkme-app/linkme-backend/internal/common/utils"
)

type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

// GetRecommendations handles GET /api/v1/match/recommendations.
// Query params page and size are optional; invalid values fall back to
// the defaults rather than erroring.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	page := intQueryParam(r, "page", 1)
	size := intQueryParam(r, "size", defaultPageSize)

	records, err := h.engine.GetRecommendations(r.Context(), userID, page, size)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute recommendations")
		return
	}

	utils.RespondWithData(w, http.StatusOK, records)
}

func intQueryParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
