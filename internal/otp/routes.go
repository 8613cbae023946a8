// internal/otp/routes.go

package otp

import "github.com/gorilla/mux"

func RegisterRoutes(router *mux.Router, handler *Handler) {
	api := router.PathPrefix("/api/v1/verification").Subrouter()

	api.HandleFunc("/send", handler.SendCode).Methods("POST")
}
