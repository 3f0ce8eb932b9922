package main

import (
	"errors"
	"net/http"

	"history-map/internal/location"
	"history-map/internal/types"
	"history-map/internal/viewport"

	"github.com/gin-gonic/gin"
)

// Messages shown to the user by the location controls
const (
	alertGeolocationFailed = "Unable to retrieve your location."
	alertNoGeolocation     = "Geolocation is not supported."
	alertNoMarker          = "No marker to remove."
)

// LocateInput carries an optional position measured by the client
type LocateInput struct {
	Latitude  *float64 `form:"lat" binding:"omitempty,min=-90,max=90"`   // Latitude in decimal degrees
	Longitude *float64 `form:"lon" binding:"omitempty,min=-180,max=180"` // Longitude in decimal degrees
}

// AlertResponse is a message the client shows to the user
type AlertResponse struct {
	Alert string `json:"alert" example:"Unable to retrieve your location."`
}

// handleLocate godoc
// @Summary Locate the user
// @Description Resolves the user's position once, centers the map on it and replaces the "You are here" marker
// @Tags location
// @Produce json
// @Param lat query number false "Client-reported latitude" minimum(-90) maximum(90) example(48.8566)
// @Param lon query number false "Client-reported longitude" minimum(-180) maximum(180) example(2.3522)
// @Success 200 {object} viewport.Marker
// @Failure 400 {object} map[string]string
// @Failure 501 {object} AlertResponse
// @Failure 502 {object} AlertResponse
// @Router /location [post]
func (app *App) handleLocate(c *gin.Context) {
	var input LocateInput
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if (input.Latitude == nil) != (input.Longitude == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon must be given together"})
		return
	}

	req := location.Request{ClientIP: c.ClientIP()}
	if input.Latitude != nil {
		pos := types.NewCoords(*input.Latitude, *input.Longitude)
		req.Reported = &pos
	}

	marker, err := app.session.Locate(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, location.ErrUnsupportedCapability):
			c.JSON(http.StatusNotImplemented, AlertResponse{Alert: alertNoGeolocation})
		default:
			c.JSON(http.StatusBadGateway, AlertResponse{Alert: alertGeolocationFailed})
		}
		return
	}
	c.JSON(http.StatusOK, marker)
}

// handleRemoveLocation godoc
// @Summary Remove the location marker
// @Description Removes the "You are here" marker
// @Tags location
// @Success 204
// @Failure 404 {object} AlertResponse
// @Router /location [delete]
func (app *App) handleRemoveLocation(c *gin.Context) {
	if err := app.session.RemoveLocation(); err != nil {
		if errors.Is(err, location.ErrNoMarker) {
			c.JSON(http.StatusNotFound, AlertResponse{Alert: alertNoMarker})
			return
		}
		app.logger.Error("failed to remove marker", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove marker"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ThemeResponse reports the active theme
type ThemeResponse struct {
	Theme viewport.Theme `json:"theme" example:"dark"`
}

// handleToggleTheme godoc
// @Summary Toggle theme
// @Description Switches between the light and dark theme
// @Tags map
// @Produce json
// @Success 200 {object} ThemeResponse
// @Failure 404 {object} map[string]string
// @Router /theme/toggle [post]
func (app *App) handleToggleTheme(c *gin.Context) {
	theme, err := app.session.ToggleTheme()
	if err != nil {
		if errors.Is(err, viewport.ErrNoThemeControl) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ThemeResponse{Theme: theme})
}
