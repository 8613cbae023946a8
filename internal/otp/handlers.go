// internal/otp/handlers.go

package otp

import (
	"encoding/json"
	"net/http"

	"github.com/linkme-app/linkme-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// SendCode handles POST /api/v1/verification/send.
func (h *Handler) SendCode(w http.ResponseWriter, r *http.Request) {
	var req SendCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.Send(r.Context(), &req)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to send verification code")
		return
	}

	utils.RespondWithData(w, http.StatusOK, resp)
}
