package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jubilee-retail/backoffice/internal/application/partner"
	"github.com/jubilee-retail/backoffice/internal/application/table"
	"github.com/jubilee-retail/backoffice/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// LookupHandler serves the city and courier reference data
type LookupHandler struct {
	BaseHandler
	lookupService *partner.LookupService
}

// NewLookupHandler creates a new lookup handler
func NewLookupHandler(lookupService *partner.LookupService, logger *zap.Logger) *LookupHandler {
	return &LookupHandler{BaseHandler: NewBaseHandler(logger), lookupService: lookupService}
}

// RegisterRoutes mounts the city and courier endpoints
func (h *LookupHandler) RegisterRoutes(rg *gin.RouterGroup) {
	h.RegisterCityRoutes(rg)
	h.RegisterCourierRoutes(rg)
}

// RegisterCityRoutes mounts the city endpoints
func (h *LookupHandler) RegisterCityRoutes(rg *gin.RouterGroup) {
	cities := rg.Group("/cities")
	{
		cities.GET("", h.ListCities)
		cities.GET("/:id", h.GetCity)
		cities.POST("", h.CreateCity)
		cities.PUT("/:id", h.UpdateCity)
		cities.POST("/:id/activate", h.ActivateCity)
		cities.POST("/:id/deactivate", h.DeactivateCity)
		cities.DELETE("/:id", h.DeleteCity)
	}
}

// RegisterCourierRoutes mounts the courier endpoints
func (h *LookupHandler) RegisterCourierRoutes(rg *gin.RouterGroup) {
	couriers := rg.Group("/couriers")
	{
		couriers.GET("", h.ListCouriers)
		couriers.GET("/:id", h.GetCourier)
		couriers.POST("", h.CreateCourier)
		couriers.PUT("/:id", h.UpdateCourier)
		couriers.POST("/:id/activate", h.ActivateCourier)
		couriers.POST("/:id/deactivate", h.DeactivateCourier)
		couriers.DELETE("/:id", h.DeleteCourier)
	}
}

func cityColumns() []table.Column[partner.CityDTO] {
	return []table.Column[partner.CityDTO]{
		{Key: "name", Title: "Name", Visible: true, Value: func(c partner.CityDTO) string { return c.Name }},
		{Key: "province", Title: "Province", Visible: true, Value: func(c partner.CityDTO) string { return c.Province }},
		{Key: "is_active", Title: "Active", Visible: true, Options: []string{"true", "false"}, Value: func(c partner.CityDTO) string { return strconv.FormatBool(c.IsActive) }},
		{Key: "created_at", Title: "Created", Visible: true, Value: func(c partner.CityDTO) string { return c.CreatedAt.Format(time.RFC3339) }},
	}
}

// ListCities returns a page of cities, or the current view as a file
// when export=csv|xlsx is requested.
func (h *LookupHandler) ListCities(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	filter := req.ToFilter()

	format, requested, ok := exportRequested(&h.BaseHandler, c)
	if !ok {
		return
	}
	if requested {
		rows, err := h.lookupService.ListAllCities(c.Request.Context())
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		writeDataset(&h.BaseHandler, c, "cities", cityColumns(), rows, filter, format)
		return
	}

	page, err := h.lookupService.ListCities(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, page)
}

// GetCity returns one city
func (h *LookupHandler) GetCity(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	city, err := h.lookupService.GetCity(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, city)
}

type cityRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Province string `json:"province" binding:"max=100"`
}

// CreateCity adds a city
func (h *LookupHandler) CreateCity(c *gin.Context) {
	var req cityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	city, err := h.lookupService.CreateCity(c.Request.Context(), partner.CityInput{Name: req.Name, Province: req.Province})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, city)
}

// UpdateCity modifies a city
func (h *LookupHandler) UpdateCity(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	var req cityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	city, err := h.lookupService.UpdateCity(c.Request.Context(), id, partner.CityInput{Name: req.Name, Province: req.Province})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, city)
}

// ActivateCity re-enables a city
func (h *LookupHandler) ActivateCity(c *gin.Context) {
	h.setCityActive(c, true)
}

// DeactivateCity disables a city
func (h *LookupHandler) DeactivateCity(c *gin.Context) {
	h.setCityActive(c, false)
}

func (h *LookupHandler) setCityActive(c *gin.Context, active bool) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	city, err := h.lookupService.SetCityActive(c.Request.Context(), id, active)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, city)
}

// DeleteCity removes a city
func (h *LookupHandler) DeleteCity(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	if err := h.lookupService.DeleteCity(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

func courierColumns() []table.Column[partner.CourierDTO] {
	return []table.Column[partner.CourierDTO]{
		{Key: "name", Title: "Name", Visible: true, Value: func(c partner.CourierDTO) string { return c.Name }},
		{Key: "service_code", Title: "Service Code", Visible: true, Value: func(c partner.CourierDTO) string { return c.ServiceCode }},
		{Key: "tracking_url", Title: "Tracking URL", Visible: true, Value: func(c partner.CourierDTO) string { return c.TrackingURL }},
		{Key: "is_active", Title: "Active", Visible: true, Options: []string{"true", "false"}, Value: func(c partner.CourierDTO) string { return strconv.FormatBool(c.IsActive) }},
		{Key: "created_at", Title: "Created", Visible: true, Value: func(c partner.CourierDTO) string { return c.CreatedAt.Format(time.RFC3339) }},
	}
}

// ListCouriers returns a page of couriers, or the current view as a
// file when export=csv|xlsx is requested.
func (h *LookupHandler) ListCouriers(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	filter := req.ToFilter()

	format, requested, ok := exportRequested(&h.BaseHandler, c)
	if !ok {
		return
	}
	if requested {
		rows, err := h.lookupService.ListAllCouriers(c.Request.Context())
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		writeDataset(&h.BaseHandler, c, "couriers", courierColumns(), rows, filter, format)
		return
	}

	page, err := h.lookupService.ListCouriers(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, page)
}

// GetCourier returns one courier
func (h *LookupHandler) GetCourier(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	courier, err := h.lookupService.GetCourier(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, courier)
}

type courierRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	ServiceCode string `json:"service_code" binding:"required,max=50"`
	TrackingURL string `json:"tracking_url" binding:"omitempty,url,max=500"`
}

// CreateCourier adds a courier
func (h *LookupHandler) CreateCourier(c *gin.Context) {
	var req courierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	courier, err := h.lookupService.CreateCourier(c.Request.Context(), partner.CourierInput{
		Name: req.Name, ServiceCode: req.ServiceCode, TrackingURL: req.TrackingURL,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, courier)
}

// UpdateCourier modifies a courier
func (h *LookupHandler) UpdateCourier(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	var req courierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	courier, err := h.lookupService.UpdateCourier(c.Request.Context(), id, partner.CourierInput{
		Name: req.Name, ServiceCode: req.ServiceCode, TrackingURL: req.TrackingURL,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, courier)
}

// ActivateCourier re-enables a courier
func (h *LookupHandler) ActivateCourier(c *gin.Context) {
	h.setCourierActive(c, true)
}

// DeactivateCourier disables a courier
func (h *LookupHandler) DeactivateCourier(c *gin.Context) {
	h.setCourierActive(c, false)
}

func (h *LookupHandler) setCourierActive(c *gin.Context, active bool) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	courier, err := h.lookupService.SetCourierActive(c.Request.Context(), id, active)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, courier)
}

// DeleteCourier removes a courier
func (h *LookupHandler) DeleteCourier(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	if err := h.lookupService.DeleteCourier(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
