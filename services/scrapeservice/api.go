package scrapeservice

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"scratchroi-backend/lib/metrics"
	"scratchroi-backend/lib/scrape"
)

// NewRouter builds the REST surface over the service.
func NewRouter(svc *Service) *gin.Engine {
	router := gin.Default()

	router.GET("/scrape", func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.ScrapeAll(c.Request.Context()))
	})

	router.GET("/scrape-state/:state", func(c *gin.Context) {
		tickets, err := svc.ScrapeState(c.Request.Context(), c.Param("state"))
		if errors.Is(err, ErrUnknownState) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unknown or inactive state.",
				"state": c.Param("state"),
			})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, tickets)
	})

	router.GET("/export-tickets", func(c *gin.Context) {
		c.Header("Content-Disposition", `attachment; filename="tickets_by_price.xlsx"`)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		err := svc.ExportAll(c.Request.Context(), c.Writer)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
	})

	router.GET("/export-state/:state", func(c *gin.Context) {
		c.Header("Content-Disposition", `attachment; filename="tickets_`+c.Param("state")+`.xlsx"`)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		err := svc.ExportState(c.Request.Context(), c.Param("state"), c.Writer)
		if errors.Is(err, ErrUnknownState) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unknown or inactive state.",
				"state": c.Param("state"),
			})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
	})

	router.GET("/supported-sites", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"supported_sites": svc.SupportedSites(),
			"domains":         svc.States().SupportedDomains(),
		})
	})

	scrapeSingle := func(c *gin.Context) {
		url := c.Query("url")
		if url == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "The url parameter is required."})
			return
		}

		t, err := svc.ScrapeSingle(c.Request.Context(), url)
		if errors.Is(err, scrape.ErrUnsupportedSite) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":           "This URL is not supported. Please check supported sites.",
				"supported_sites": svc.SupportedSites(),
			})
			return
		}
		if errors.Is(err, metrics.ErrTicketExpired) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "This ticket has expired (end date is in the past)",
				"url":   url,
			})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, t)
	}
	router.GET("/scrape-single", scrapeSingle)
	router.POST("/scrape-single", scrapeSingle)

	api := router.Group("/api")
	{
		api.GET("/states", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"states": svc.States().ActiveStates(),
				"stats":  svc.States().Stats(),
			})
		})

		api.GET("/states/urls", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"urls": svc.States().AllGamesListURLs(),
			})
		})

		api.POST("/validate-url", func(c *gin.Context) {
			var req struct {
				URL string `json:"url" binding:"required"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			state, ok := svc.States().ValidateURL(req.URL)
			if !ok {
				c.JSON(http.StatusNotFound, gin.H{
					"valid": false,
					"url":   req.URL,
				})
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"valid": true,
				"url":   req.URL,
				"state": gin.H{
					"key":      state.Key,
					"name":     state.Name,
					"base_url": state.BaseURL,
				},
			})
		})
	}

	return router
}
