// internal/profile/handlers.go

package profile

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/linkme-app/linkme-backend/internal/auth"
	"github.com/linkme-app/linkme-backend/internal/common/utils"
)

const maxAvatarSize = 5 << 20 // 5 MB

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	utils.RespondWithData(w, http.StatusOK, profile)
}

func (h *Handler) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	utils.RespondWithData(w, http.StatusOK, profile)
}

func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxAvatarSize); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Avatar too large or malformed")
		return
	}
	file, header, err := r.FormFile("avatar")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing avatar file")
		return
	}
	defer file.Close()

	url, err := h.service.UploadAvatar(r.Context(), userID, file, header)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to upload avatar")
		return
	}

	utils.RespondWithData(w, http.StatusOK, map[string]string{"avatar_url": url})
}

func (h *Handler) SavePreference(w http.ResponseWriter, r *http.Request) {
	h.saveJSON(w, r, &PreferenceRequest{}, func(r *http.Request, userID int64, req interface{}) error {
		return h.service.SavePreference(r.Context(), userID, req.(*PreferenceRequest))
	})
}

func (h *Handler) SavePersonality(w http.ResponseWriter, r *http.Request) {
	h.saveJSON(w, r, &PersonalityRequest{}, func(r *http.Request, userID int64, req interface{}) error {
		return h.service.SavePersonality(r.Context(), userID, req.(*PersonalityRequest))
	})
}

func (h *Handler) SaveHobbies(w http.ResponseWriter, r *http.Request) {
	h.saveJSON(w, r, &HobbiesRequest{}, func(r *http.Request, userID int64, req interface{}) error {
		return h.service.SaveHobbies(r.Context(), userID, req.(*HobbiesRequest))
	})
}

func (h *Handler) SaveQualities(w http.ResponseWriter, r *http.Request) {
	h.saveJSON(w, r, &QualitiesRequest{}, func(r *http.Request, userID int64, req interface{}) error {
		return h.service.SaveQualities(r.Context(), userID, req.(*QualitiesRequest))
	})
}

func (h *Handler) SaveDimensions(w http.ResponseWriter, r *http.Request) {
	h.saveJSON(w, r, &DimensionsRequest{}, func(r *http.Request, userID int64, req interface{}) error {
		return h.service.SaveDimensions(r.Context(), userID, req.(*DimensionsRequest))
	})
}

func (h *Handler) ListHobbies(w http.ResponseWriter, r *http.Request) {
	hobbies, err := h.service.ListHobbies(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list hobbies")
		return
	}
	utils.RespondWithData(w, http.StatusOK, hobbies)
}

// saveJSON factors the decode/validate/save shape shared by the
// questionnaire endpoints.
func (h *Handler) saveJSON(w http.ResponseWriter, r *http.Request, req interface{},
	save func(r *http.Request, userID int64, req interface{}) error) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := save(r, userID, req); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save")
		return
	}

	utils.MessageResponse(w, "Saved", http.StatusOK)
}
