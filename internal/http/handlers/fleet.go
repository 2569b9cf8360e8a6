package handlers

import (
	"net/http"
	"strings"

	"gateway/internal/domain/models"
	"gateway/internal/listquery"

	"github.com/gin-gonic/gin"
)

// GET /api/drivers?status=available
func (h Handlers) ListDrivers(c *gin.Context, q listquery.Directives) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	status := models.DriverStatus(strings.TrimSpace(c.Query("status")))
	page, err := h.drivers(c).List(c.Request.Context(), tenant, status, q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h Handlers) GetDriver(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	d, err := h.drivers(c).Get(c.Request.Context(), tenant, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h Handlers) CreateDriver(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var p models.DriverPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	d, err := h.drivers(c).Create(c.Request.Context(), tenant, p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h Handlers) UpdateDriver(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var p models.DriverPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	d, err := h.drivers(c).Update(c.Request.Context(), tenant, id, p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h Handlers) DeleteDriver(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.drivers(c).Delete(c.Request.Context(), tenant, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "driver deleted"})
}

// GET /api/vehicles?q=VAN
func (h Handlers) ListVehicles(c *gin.Context, q listquery.Directives) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	page, err := h.vehicles(c).List(c.Request.Context(), tenant, c.Query("q"), q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h Handlers) GetVehicle(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	v, err := h.vehicles(c).Get(c.Request.Context(), tenant, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h Handlers) CreateVehicle(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var p models.VehiclePayload
	if !BindJSONOrError(c, &p) {
		return
	}
	v, err := h.vehicles(c).Create(c.Request.Context(), tenant, p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (h Handlers) UpdateVehicle(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var p models.VehiclePayload
	if !BindJSONOrError(c, &p) {
		return
	}
	v, err := h.vehicles(c).Update(c.Request.Context(), tenant, id, p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h Handlers) DeleteVehicle(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.vehicles(c).Delete(c.Request.Context(), tenant, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vehicle deleted"})
}

func (h Handlers) ListRoutes(c *gin.Context, q listquery.Directives) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	page, err := h.routes().List(c.Request.Context(), tenant, q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h Handlers) GetRoute(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	rt, err := h.routes().Get(c.Request.Context(), tenant, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rt)
}

func (h Handlers) CreateRoute(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var p models.RoutePayload
	if !BindJSONOrError(c, &p) {
		return
	}
	rt, err := h.routes().Create(c.Request.Context(), tenant, p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rt)
}

func (h Handlers) UpdateRoute(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var p models.RoutePayload
	if !BindJSONOrError(c, &p) {
		return
	}
	rt, err := h.routes().Update(c.Request.Context(), tenant, id, p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rt)
}

func (h Handlers) DeleteRoute(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.routes().Delete(c.Request.Context(), tenant, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "route deleted"})
}
