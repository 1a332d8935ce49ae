package canteen

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// Browse canteens with stores, menus and ratings
// --------------------------------------------------
func (h *Handler) ListCanteens(c *gin.Context) {
	var filter ListFilter

	if ids := c.Query("canteenIds"); ids != "" {
		filter.CanteenIDs = strings.Split(ids, ",")
	}
	filter.MinPrice = queryFloat(c, "minPrice")
	filter.MaxPrice = queryFloat(c, "maxPrice")
	filter.Page = queryInt(c, "page")
	filter.PageSize = queryInt(c, "pageSize")

	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, page)
}

func queryFloat(c *gin.Context, name string) float64 {
	v, err := strconv.ParseFloat(c.Query(name), 64)
	if err != nil {
		return 0
	}
	return v
}

func queryInt(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}
