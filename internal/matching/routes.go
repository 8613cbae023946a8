// internal/matching/routes.go

package matching

import (
	"github.com/gorilla/mux"
	"github.com/linkme-app/linkme-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/match").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/recommendations", handler.GetRecommendations).Methods("GET")
}
