package api

import (
	"context"
	"net/http"
	"strconv"

	stderrors "errors"

	"github.com/gin-gonic/gin"

	"pmj0612/shopscraper/logger"
	"pmj0612/shopscraper/pkg/errors"
)

// Invoker runs one scrape over the first pageLimit catalog pages
type Invoker interface {
	Invoke(ctx context.Context, pageLimit int, proxyURL string) (int, error)
	DefaultPageLimit() int
}

// Handler exposes the scrape trigger over HTTP
type Handler struct {
	invoker Invoker
	runCtx  context.Context
	log     *logger.Logger
}

// NewHandler creates the API handler. Scrape runs execute under runCtx, not
// the request context: a started run finishes all its pages even if the
// caller disconnects.
func NewHandler(runCtx context.Context, invoker Invoker) *Handler {
	return &Handler{
		invoker: invoker,
		runCtx:  runCtx,
		log:     logger.For("api"),
	}
}

// Router builds the gin engine with the trigger routes
func (h *Handler) Router() *gin.Engine {
	r := gin.Default()
	r.POST("/scrape", h.Scrape)
	r.GET("/healthz", h.Healthz)
	return r
}

// Scrape handles POST /scrape?page_limit=N&proxy=ADDR
func (h *Handler) Scrape(c *gin.Context) {
	pageLimit := h.invoker.DefaultPageLimit()
	if raw := c.Query("page_limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page_limit must be a positive integer"})
			return
		}
		pageLimit = parsed
	}

	proxyURL := c.Query("proxy")

	count, err := h.invoker.Invoke(h.runCtx, pageLimit, proxyURL)
	if err != nil {
		var scrapeErr *errors.ScrapeError
		if stderrors.As(err, &scrapeErr) &&
			(scrapeErr.Type == errors.ErrorTypeValidation || scrapeErr.Type == errors.ErrorTypeConfiguration) {
			c.JSON(http.StatusBadRequest, gin.H{"error": scrapeErr.Message})
			return
		}

		h.log.Error().Err(err).Msg("Scrape run failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "scrape run failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "success",
		"updated_count": count,
	})
}

// Healthz reports liveness
func (h *Handler) Healthz(c *gin.Context) {
	c.Status(http.StatusOK)
}
