package handlers

import (
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"gateway/internal/domain"
	"gateway/internal/domain/models"
	"gateway/internal/listquery"
	"gateway/internal/utils"

	"github.com/gin-gonic/gin"
)

type statusPayload struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// GET /api/orders?status=pending&driverId=3&page=1&pageSize=20&sortProperty=createdAt&sortDirection=descending
func (h Handlers) ListOrders(c *gin.Context, q listquery.Directives) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	f := models.OrderFilter{Status: models.OrderStatus(strings.TrimSpace(c.Query("status")))}
	if raw := strings.TrimSpace(c.Query("driverId")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			RespondDomainError(c, domain.ValidationError{Field: "driverId", Msg: "must be a positive integer"})
			return
		}
		f.DriverID = id
	}
	h.listOrders(c, tenant, f, q)
}

// POST /api/orders/query
//
//	{"filter": {"status": "pending"}, "paging": {...}, "sorting": {...}}
func (h Handlers) QueryOrders(c *gin.Context, q listquery.Directives) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	f, err := orderFilterFromBody(raw)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	h.listOrders(c, tenant, f, q)
}

// orderFilterFromBody reads the optional "filter" object. Its keys are
// matched case-insensitively.
func orderFilterFromBody(raw []byte) (models.OrderFilter, error) {
	var f models.OrderFilter
	v, ok := utils.LookupPath(raw, "filter")
	if !ok {
		return f, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return f, domain.ValidationError{Field: "filter", Msg: "must be an object"}
	}
	m = utils.LowercaseKeys(m)

	switch s := m["status"].(type) {
	case nil:
	case string:
		f.Status = models.OrderStatus(strings.TrimSpace(s))
	default:
		return f, domain.ValidationError{Field: "filter.status", Msg: "must be a string"}
	}
	switch id := m["driverid"].(type) {
	case nil:
	case float64:
		if id <= 0 || id != math.Trunc(id) {
			return f, domain.ValidationError{Field: "filter.driverId", Msg: "must be a positive integer"}
		}
		f.DriverID = int64(id)
	default:
		return f, domain.ValidationError{Field: "filter.driverId", Msg: "must be a positive integer"}
	}
	return f, nil
}

func (h Handlers) listOrders(c *gin.Context, tenant int64, f models.OrderFilter, q listquery.Directives) {
	page, err := h.orders(c).List(c.Request.Context(), tenant, f, q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h Handlers) GetOrder(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	o, err := h.orders(c).Get(c.Request.Context(), tenant, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h Handlers) CreateOrder(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var p models.OrderPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	o, err := h.orders(c).Create(c.Request.Context(), tenant, p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

// PUT /api/orders/:id/status
func (h Handlers) UpdateOrderStatus(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var p statusPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	o, err := h.orders(c).UpdateStatus(c.Request.Context(), tenant, id, p.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h Handlers) DeleteOrder(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.orders(c).Delete(c.Request.Context(), tenant, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
}
