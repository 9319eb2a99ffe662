package handler

import (
	"net/http"
	"strconv"

	"salelog/internal/apierror"
	"salelog/internal/dto"
	"salelog/internal/middleware"
	"salelog/internal/service"

	"github.com/gin-gonic/gin"
)

type HandoverHandler struct{ svc service.HandoverService }

func NewHandoverHandler(svc service.HandoverService) *HandoverHandler {
	return &HandoverHandler{svc: svc}
}

// Request godoc
// @Summary      Mail a shift handover sheet
// @Description  Queues a job that renders the shift's product breakdown to PDF and mails it.
// @Tags         shifts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        shift path     int                 true "Shift number"
// @Param        body  body     dto.HandoverRequest true "Recipient"
// @Success      202   {object} dto.HandoverResponse
// @Failure      400   {object} apierror.APIError
// @Router       /v1/shifts/{shift}/handover [post]
func (h *HandoverHandler) Request(c *gin.Context) {
	shift, err := strconv.Atoi(c.Param("shift"))
	if err != nil || shift <= 0 {
		c.JSON(http.StatusBadRequest, apierror.New("invalid shift"))
		return
	}
	var req dto.HandoverRequest
	if !bindAndValidate(c, &req) {
		return
	}
	requestedBy := ""
	if claims := middleware.GetClaims(c); claims != nil {
		requestedBy = claims.Username
	}
	if err := h.svc.Request(c.Request.Context(), shift, req.Email, requestedBy); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, dto.HandoverResponse{Shift: shift, Status: "queued"})
}
