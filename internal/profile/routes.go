// internal/profile/routes.go

package profile

import (
	"github.com/gorilla/mux"
	"github.com/linkme-app/linkme-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/profile").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/me", handler.GetMyProfile).Methods("GET")
	api.HandleFunc("/me", handler.UpdateMyProfile).Methods("PUT")
	api.HandleFunc("/me/avatar", handler.UploadAvatar).Methods("POST")

	api.HandleFunc("/me/preference", handler.SavePreference).Methods("PUT")
	api.HandleFunc("/me/personality", handler.SavePersonality).Methods("PUT")
	api.HandleFunc("/me/hobbies", handler.SaveHobbies).Methods("PUT")
	api.HandleFunc("/me/qualities", handler.SaveQualities).Methods("PUT")
	api.HandleFunc("/me/dimensions", handler.SaveDimensions).Methods("PUT")

	api.HandleFunc("/hobbies", handler.ListHobbies).Methods("GET")
}
