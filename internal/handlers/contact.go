package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"inkpost/internal/logger"
	"inkpost/internal/models"
	"inkpost/internal/services"
	"inkpost/internal/utils/helpers"
)

type ContactHandler struct {
	svc *services.ContactService
}

func NewContactHandler(svc *services.ContactService) *ContactHandler {
	return &ContactHandler{svc: svc}
}

// Submit godoc
// @Summary Send a contact message
// @Description Queues the visitor's message for delivery to the blog owner.
// @Tags contact
// @Accept json
// @Produce json
// @Param input body models.ContactRequest true "Message"
// @Success 202 {object} helpers.Response
// @Failure 400 {object} helpers.Response
// @Failure 503 {object} helpers.Response
// @Router /api/contact [post]
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		logger.WithCtx(r.Context()).Warn("Failed to decode contact JSON", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.svc.Submit(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}

	helpers.JSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}
