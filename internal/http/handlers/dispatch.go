package handlers

import (
	"net/http"

	"gateway/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/dispatch
func (h Handlers) Dispatch(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req services.DispatchRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	o, err := h.dispatch(c).Assign(c.Request.Context(), tenant, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// GET /api/dispatch/drivers/:id/manifest returns the driver's run sheet (inline PDF).
func (h Handlers) DriverManifest(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	pdfBytes, filename, err := h.dispatch(c).Manifest(c.Request.Context(), tenant, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func (h Handlers) Dashboard(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	d, err := h.dashboard().Snapshot(c.Request.Context(), tenant)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}
