package main

import (
	"bytes"
	"errors"
	"net/http"

	"history-map/internal/boundary"
	"history-map/internal/canvas"
	"history-map/internal/interaction"
	"history-map/internal/session"
	"history-map/internal/types"
	"history-map/internal/viewport"

	"github.com/gin-gonic/gin"
)

// PointInput is a map coordinate given as query parameters
type PointInput struct {
	Latitude  *float64 `form:"lat" binding:"required,min=-90,max=90"`   // Latitude in decimal degrees
	Longitude *float64 `form:"lon" binding:"required,min=-180,max=180"` // Longitude in decimal degrees
}

func (in PointInput) coords() types.Coords {
	return types.NewCoords(*in.Latitude, *in.Longitude)
}

// FactResponse is the historical fact of one country
type FactResponse struct {
	Country     string `json:"country" example:"France"`
	Description string `json:"description" example:"The storming of the Bastille on 14 July 1789 marked the start of the French Revolution."`
}

// ClickResponse describes the popup opened by a click
type ClickResponse struct {
	Country string         `json:"country" example:"France"`
	Popup   viewport.Popup `json:"popup"`
}

// handleGetMap godoc
// @Summary Get map state
// @Description Current viewport, tile layer, popup, markers, theme and whether the country layer is loaded
// @Tags map
// @Produce json
// @Success 200 {object} session.MapState
// @Router /map [get]
func (app *App) handleGetMap(c *gin.Context) {
	c.JSON(http.StatusOK, app.session.State())
}

// handleGetCountries godoc
// @Summary Get country layer
// @Description Country boundaries as a GeoJSON FeatureCollection in paint order, with each feature's name, style and visual state
// @Tags map
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]string
// @Router /countries [get]
func (app *App) handleGetCountries(c *gin.Context) {
	fc, err := app.session.Countries()
	if err != nil {
		app.writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, fc)
}

// handleGetFact godoc
// @Summary Get historical fact
// @Description Historical fact for a country
// @Tags facts
// @Produce json
// @Param name path string true "Country name" example(France)
// @Success 200 {object} FactResponse
// @Failure 404 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /facts/{name} [get]
func (app *App) handleGetFact(c *gin.Context) {
	name := c.Param("name")
	fact, ok, err := app.session.Fact(name)
	if err != nil {
		app.writeSessionError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": interaction.NoFactText})
		return
	}
	c.JSON(http.StatusOK, FactResponse{Country: name, Description: fact.Description})
}

// handleEnter godoc
// @Summary Pointer enters a country
// @Description Highlights the country and raises it to the front when the client engine supports it
// @Tags interaction
// @Param name path string true "Country name" example(France)
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /countries/{name}/enter [post]
func (app *App) handleEnter(c *gin.Context) {
	if err := app.session.Enter(c.Param("name"), c.Request.UserAgent()); err != nil {
		app.writeSessionError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handleLeave godoc
// @Summary Pointer leaves a country
// @Description Restores the layer default style on the country
// @Tags interaction
// @Param name path string true "Country name" example(France)
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /countries/{name}/leave [post]
func (app *App) handleLeave(c *gin.Context) {
	if err := app.session.Leave(c.Param("name"), c.Request.UserAgent()); err != nil {
		app.writeSessionError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handleClick godoc
// @Summary Click a country
// @Description Opens the fact popup at the click position, narrates the fact and draws the country outline on the canvas
// @Tags interaction
// @Produce json
// @Param name path string true "Country name" example(France)
// @Param lat query number true "Latitude in decimal degrees" minimum(-90) maximum(90) example(46.5)
// @Param lon query number true "Longitude in decimal degrees" minimum(-180) maximum(180) example(2.2)
// @Success 200 {object} ClickResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /countries/{name}/click [post]
func (app *App) handleClick(c *gin.Context) {
	var input PointInput
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := c.Param("name")
	popup, err := app.session.Click(name, input.coords(), c.Request.UserAgent())
	if err != nil {
		app.writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, ClickResponse{Country: name, Popup: popup})
}

// handleClickAt godoc
// @Summary Click the map
// @Description Finds the topmost country at the coordinate and clicks it
// @Tags interaction
// @Produce json
// @Param lat query number true "Latitude in decimal degrees" minimum(-90) maximum(90) example(46.5)
// @Param lon query number true "Longitude in decimal degrees" minimum(-180) maximum(180) example(2.2)
// @Success 200 {object} ClickResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /click [post]
func (app *App) handleClickAt(c *gin.Context) {
	var input PointInput
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name, popup, err := app.session.ClickAt(input.coords(), c.Request.UserAgent())
	if err != nil {
		app.writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, ClickResponse{Country: name, Popup: popup})
}

// handleGetCanvas godoc
// @Summary Get canvas image
// @Description The auxiliary canvas with the outline of the last clicked country
// @Tags interaction
// @Produce png
// @Param id path string true "Canvas element id" example(countryCanvas)
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Router /canvas/{id} [get]
func (app *App) handleGetCanvas(c *gin.Context) {
	var buf bytes.Buffer
	if err := app.session.WriteCanvasPNG(c.Param("id"), &buf); err != nil {
		if errors.Is(err, canvas.ErrSurfaceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		app.logger.Error("failed to encode canvas", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode canvas"})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// writeSessionError maps session errors to responses
func (app *App) writeSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrNoLayer):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, boundary.ErrUnknownFeature), errors.Is(err, interaction.ErrNoCountry):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		app.logger.Error("session request failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
