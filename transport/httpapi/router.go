// Package httpapi exposes the engine's three query modes and status over HTTP, as a
// read-only companion to the CLI's fixed JSON contract (spec §6). Every route returns the
// exact same JSON shape the CLI prints for the equivalent flag combination.
package httpapi

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kestrelsearch/textsearch/internal/engine"
	"github.com/kestrelsearch/textsearch/internal/metrics"
	"github.com/kestrelsearch/textsearch/services"
)

// API holds the dependencies shared by every handler.
type API struct {
	engine  *engine.Engine
	metrics *metrics.Metrics
}

// NewRouter builds a gin.Engine exposing /status, /search, /autocomplete, /prefixsearch, and
// /metrics (Prometheus scrape endpoint) over the given, already-built engine.
func NewRouter(eng *engine.Engine) *gin.Engine {
	api := &API{engine: eng, metrics: metrics.New()}
	api.engine.SetMetrics(api.metrics)
	stats := api.engine.GetIndexStats()
	api.metrics.SetIndexSize(stats.Documents, stats.UniqueTerms)

	router := gin.Default()
	router.Use(requestIDMiddleware())

	router.GET("/status", api.StatusHandler)
	router.GET("/search", api.SearchHandler)
	router.GET("/autocomplete", api.AutocompleteHandler)
	router.GET("/prefixsearch", api.PrefixSearchHandler)
	router.GET("/metrics", gin.WrapH(api.metrics.Handler()))

	return router
}

// requestIDMiddleware tags every request with a uuid, mirroring the teacher's QueryId field
// on services.SearchResult, and logs method/path/request id/latency on completion.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Set("request_id", requestID)
		c.Header("X-Request-Id", requestID)
		c.Next()
		log.Printf("httpapi: %s %s request_id=%s latency=%s",
			c.Request.Method, c.Request.URL.Path, requestID, time.Since(start))
	}
}

// searchQueryParams is the shared query-string shape for /search and /prefixsearch.
type searchQueryParams struct {
	Page     int `form:"page,default=1"`
	PageSize int `form:"pageSize,default=10"`
}

// StatusHandler returns the same JSON shape as the CLI's no-mode invocation.
func (api *API) StatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.engine.GetIndexStats())
}

// SearchHandler handles GET /search?q=<query>&page=&pageSize=.
func (api *API) SearchHandler(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, services.ErrorResult{Error: "missing required query parameter \"q\""})
		return
	}

	var params searchQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, services.ErrorResult{Error: "invalid query parameters: " + err.Error()})
		return
	}

	result := api.timedSearch("search", func() services.SearchResult {
		return api.engine.Search(query, params.Page, params.PageSize)
	})
	c.JSON(http.StatusOK, result)
}

// AutocompleteHandler handles GET /autocomplete?prefix=<prefix>&limit=.
func (api *API) AutocompleteHandler(c *gin.Context) {
	prefix := c.Query("prefix")
	if prefix == "" {
		c.JSON(http.StatusBadRequest, services.ErrorResult{Error: "missing required query parameter \"prefix\""})
		return
	}
	limit := queryInt(c, "limit", 10)

	start := time.Now()
	result := api.engine.Autocomplete(prefix, limit)
	api.metrics.QueriesTotal.WithLabelValues("autocomplete").Inc()
	api.metrics.QueryDuration.WithLabelValues("autocomplete").Observe(time.Since(start).Seconds())

	c.JSON(http.StatusOK, result)
}

// PrefixSearchHandler handles GET /prefixsearch?prefix=<prefix>&expandLimit=&page=&pageSize=.
func (api *API) PrefixSearchHandler(c *gin.Context) {
	prefix := c.Query("prefix")
	if prefix == "" {
		c.JSON(http.StatusBadRequest, services.ErrorResult{Error: "missing required query parameter \"prefix\""})
		return
	}

	var params searchQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, services.ErrorResult{Error: "invalid query parameters: " + err.Error()})
		return
	}
	expandLimit := queryInt(c, "expandLimit", 100)

	result := api.timedSearch("prefix_search", func() services.SearchResult {
		return api.engine.PrefixSearch(prefix, expandLimit, params.Page, params.PageSize)
	})
	c.JSON(http.StatusOK, result)
}

func (api *API) timedSearch(mode string, run func() services.SearchResult) services.SearchResult {
	start := time.Now()
	result := run()
	api.metrics.QueriesTotal.WithLabelValues(mode).Inc()
	api.metrics.QueryDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
	return result
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
