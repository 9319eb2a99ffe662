package handler

import (
	"bytes"
	"net/http"

	"salelog/internal/infra"
	"salelog/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	svc   service.SaleService
	title string
}

func NewDashboardHandler(svc service.SaleService, shopName string) *DashboardHandler {
	return &DashboardHandler{svc: svc, title: shopName + " sales per hour"}
}

// Dashboard godoc
// @Summary      Sales dashboard
// @Description  Totals, hourly and cumulative series, product and shift breakdowns. Recomputed on every call.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object} dto.DashboardResponse
// @Router       /v1/dashboard [get]
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	resp, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Chart godoc
// @Summary      Hourly chart
// @Description  HTML page with the hourly quantity and running total line chart.
// @Tags         dashboard
// @Produce      html
// @Security     BearerAuth
// @Success      200
// @Router       /v1/dashboard/chart [get]
func (h *DashboardHandler) Chart(c *gin.Context) {
	rep, _, err := h.svc.Report(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := infra.RenderHourlyChart(&buf, h.title, rep.Hourly, rep.Cumulative); err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
