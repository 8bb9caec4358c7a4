package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"datavista/internal/chart"
)

// RegisterRoutes registers all the routes for the visualization service.
func RegisterRoutes(router *gin.Engine, api *API) {
	// All routes live under /api/v1
	v1 := router.Group("/api/v1")

	v1.GET("/meta", MetaHandler)

	datasets := v1.Group("/datasets")
	{
		datasets.POST("", api.UploadHandler)
		datasets.GET("/:id", api.GetDatasetHandler)
		datasets.DELETE("/:id", api.DeleteSessionHandler)
		datasets.POST("/:id/sheet", api.SelectSheetHandler)
		datasets.POST("/:id/suggest", api.SuggestHandler)
		datasets.POST("/:id/charts", api.CreateChartHandler)
	}
}

// MetaHandler lists the chart kinds and color scales the UI can offer.
func MetaHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"chart_kinds":  chart.Kinds,
		"color_scales": chart.ColorScales,
	})
}
