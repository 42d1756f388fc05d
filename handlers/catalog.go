package handlers

import (
	"net/http"

	"barberbook/models"
	"barberbook/services/catalog"
	"barberbook/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler exposes the service catalog, barber roster and shop
// settings over HTTP.
type CatalogHandler struct {
	svc catalog.CatalogService
}

func NewCatalogHandler(svc catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// ListServicesHandler returns the service catalog.
func (h *CatalogHandler) ListServicesHandler(c *gin.Context) {
	services, err := h.svc.GetServices(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load services", err.Error())
		return
	}
	c.JSON(http.StatusOK, services)
}

// SaveServiceHandler creates or updates a catalog entry. Admin only.
func (h *CatalogHandler) SaveServiceHandler(c *gin.Context) {
	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	if err := h.svc.SaveService(c.Request.Context(), &svc); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to save service", err.Error())
		return
	}
	c.JSON(http.StatusOK, svc)
}

// DeleteServiceHandler removes a catalog entry. Admin only.
func (h *CatalogHandler) DeleteServiceHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.DeleteService(c.Request.Context(), id); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to delete service", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListBarbersHandler returns the barber roster.
func (h *CatalogHandler) ListBarbersHandler(c *gin.Context) {
	barbers, err := h.svc.GetBarbers(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load barbers", err.Error())
		return
	}
	c.JSON(http.StatusOK, barbers)
}

// GetShopSettingsHandler returns the working-hours configuration.
func (h *CatalogHandler) GetShopSettingsHandler(c *gin.Context) {
	settings, err := h.svc.GetShopSettings(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load shop settings", err.Error())
		return
	}
	c.JSON(http.StatusOK, settings)
}

// SaveShopSettingsHandler writes the working-hours configuration. Admin only.
func (h *CatalogHandler) SaveShopSettingsHandler(c *gin.Context) {
	var settings models.ShopSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	if err := h.svc.SaveShopSettings(c.Request.Context(), &settings); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to save shop settings", err.Error())
		return
	}
	c.JSON(http.StatusOK, settings)
}
