package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/newsharvest/internal/database"
)

const (
	defaultLimit = 20
	defaultBegin = 0
	maxLimit     = 100
)

// NewsHandler handles article read requests.
type NewsHandler struct {
	repo ArticleReader
}

// NewNewsHandler creates a new news handler.
func NewNewsHandler(repo ArticleReader) *NewsHandler {
	return &NewsHandler{repo: repo}
}

// List handles GET /api/news?begin=N&limit=M, newest articles first.
func (h *NewsHandler) List(c *gin.Context) {
	begin, limit := parseBeginLimit(c)

	articles, err := h.repo.List(c.Request.Context(), begin, limit)
	if err != nil {
		respondInternalError(c, "Failed to retrieve articles")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"news":  articles,
		"begin": begin,
		"limit": limit,
	})
}

// Count handles GET /api/news/count.
func (h *NewsHandler) Count(c *gin.Context) {
	count, err := h.repo.Count(c.Request.Context())
	if err != nil {
		respondInternalError(c, "Failed to count articles")
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// Filter handles GET /api/news/filter?field=F&value=V over the
// whitelisted columns.
func (h *NewsHandler) Filter(c *gin.Context) {
	field := c.Query("field")
	value := c.Query("value")
	if field == "" || value == "" {
		respondBadRequest(c, "field and value query parameters are required")
		return
	}
	if _, ok := database.FilterColumns[field]; !ok {
		respondBadRequest(c, "unsupported filter field: "+field)
		return
	}

	articles, err := h.repo.Filter(c.Request.Context(), field, value)
	if err != nil {
		respondInternalError(c, "Failed to filter articles")
		return
	}

	c.JSON(http.StatusOK, gin.H{"news": articles})
}

// parseBeginLimit parses begin and limit query params with defaults.
func parseBeginLimit(c *gin.Context) (begin, limit int) {
	beginStr := c.DefaultQuery("begin", strconv.Itoa(defaultBegin))
	limitStr := c.DefaultQuery("limit", strconv.Itoa(defaultLimit))

	begin, err := strconv.Atoi(beginStr)
	if err != nil || begin < 0 {
		begin = defaultBegin
	}

	limit, err = strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return begin, limit
}
