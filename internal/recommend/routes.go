package recommend

import (
	"github.com/gorilla/mux"

	"github.com/campuslab/fyphub-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/recommendations").Subrouter()

	// Tracking mutates the log and requires an authenticated identity
	track := api.PathPrefix("/track").Subrouter()
	track.Use(authMiddleware.Authenticate)
	track.HandleFunc("", handler.TrackInteraction).Methods("POST")

	// Read-only queries
	api.HandleFunc("/user/{userId}", handler.GetRecommendations).Methods("GET")
	api.HandleFunc("/similar/{projectId}", handler.GetSimilarProjects).Methods("GET")
	api.HandleFunc("/insights/{userId}", handler.GetUserInsights).Methods("GET")
	api.HandleFunc("/analytics", handler.GetAnalytics).Methods("GET")
}
