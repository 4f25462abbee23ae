package recommend

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/campuslab/fyphub-backend/internal/catalog"
	"github.com/campuslab/fyphub-backend/internal/common/utils"
)

type Handler struct {
	service      Service
	logger       *zap.Logger
	defaultLimit int
	maxLimit     int
}

func NewHandler(service Service, logger *zap.Logger, defaultLimit, maxLimit int) *Handler {
	return &Handler{
		service:      service,
		logger:       logger,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

func (h *Handler) TrackInteraction(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Missing user identity")
		return
	}

	var dto TrackInteractionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.TrackInteraction(r.Context(), userID, &dto); err != nil {
		if err == ErrUnknownKind {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to track interaction", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to track interaction")
		return
	}

	utils.RespondWithData(w, http.StatusCreated, map[string]bool{"tracked": true})
}

func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	limit := h.limitParam(r, h.defaultLimit)

	started := time.Now()
	set, err := h.service.GetPersonalizedRecommendations(r.Context(), userID, limit)
	if err != nil {
		h.logger.Error("failed to generate recommendations",
			zap.String("user_id", userID), zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate recommendations")
		return
	}
	ObservePipelineDuration(time.Since(started).Seconds())

	utils.RespondWithData(w, http.StatusOK, set)
}

func (h *Handler) GetSimilarProjects(w http.ResponseWriter, r *http.Request) {
	projectID, err := strconv.ParseInt(mux.Vars(r)["projectId"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	similar, err := h.service.GetSimilarProjects(r.Context(), projectID, h.limitParam(r, similarDefaultLimit))
	if err != nil {
		if err == catalog.ErrProjectNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "Project not found")
			return
		}
		h.logger.Error("failed to find similar projects",
			zap.Int64("project_id", projectID), zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to find similar projects")
		return
	}

	utils.RespondWithData(w, http.StatusOK, similar)
}

func (h *Handler) GetUserInsights(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	insights, err := h.service.GetUserInsights(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to build user insights",
			zap.String("user_id", userID), zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to build user insights")
		return
	}

	utils.RespondWithData(w, http.StatusOK, insights)
}

func (h *Handler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.service.GetAnalytics(r.Context())
	if err != nil {
		h.logger.Error("failed to collect analytics", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to collect analytics")
		return
	}

	utils.RespondWithData(w, http.StatusOK, analytics)
}

// similarDefaultLimit is the neighbor count when the caller omits one.
const similarDefaultLimit = 3

// limitParam reads the limit query parameter, falling back to the given
// per-route default and clamping to the configured maximum.
func (h *Handler) limitParam(r *http.Request, fallback int) int {
	limit := fallback
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > h.maxLimit {
		limit = h.maxLimit
	}
	return limit
}
