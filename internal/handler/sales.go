package handler

import (
	"net/http"

	"salelog/internal/dto"
	"salelog/internal/service"

	"github.com/gin-gonic/gin"
)

type SalesHandler struct{ svc service.SaleService }

func NewSalesHandler(svc service.SaleService) *SalesHandler { return &SalesHandler{svc: svc} }

// Record godoc
// @Summary      Record a sale
// @Description  Looks up the catalog item, copies its name and price onto the sale and stores it.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RecordSaleRequest true "Sale"
// @Success      201  {object} dto.SaleResponse
// @Failure      404  {object} apierror.APIError
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/sales [post]
func (h *SalesHandler) Record(c *gin.Context) {
	var req dto.RecordSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Record(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary      List sales
// @Description  Every sale in the configured list order, with the grand total.
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object} dto.SaleListResponse
// @Router       /v1/sales [get]
func (h *SalesHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary      Delete a sale
// @Tags         sales
// @Security     BearerAuth
// @Param        id   path     int  true "Sale id"
// @Success      204
// @Failure      404  {object} apierror.APIError
// @Router       /v1/sales/{id} [delete]
func (h *SalesHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Export godoc
// @Summary      Export sales
// @Description  Downloads every sale in the configured export order. CSV starts with a UTF-8 BOM.
// @Tags         sales
// @Produce      text/csv
// @Security     BearerAuth
// @Param        format query string false "csv or xlsx" default(csv)
// @Success      200  {file} file
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/sales/export [get]
func (h *SalesHandler) Export(c *gin.Context) {
	var q dto.ExportQuery
	if !bindQueryAndValidate(c, &q) {
		return
	}
	file, err := h.svc.Export(c.Request.Context(), q.Format)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
