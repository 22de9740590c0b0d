package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/storefront-golang/internal/catalog"
)

type browseQuery struct {
	Category string `form:"category"`
	Term     string `form:"q"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
}

// ListProducts serves one page of the catalog, filtered by category and title.
func (h *Handlers) ListProducts(c *gin.Context) {
	var q browseQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}

	page, err := h.App.Products(c.Request.Context(), catalog.Query{
		Category: q.Category,
		Term:     q.Term,
		Page:     q.Page,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handlers) GetCategories(c *gin.Context) {
	categories, err := h.App.Categories(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// SearchProducts serves live search suggestions. A request overtaken by a
// newer one gets 409.
func (h *Handlers) SearchProducts(c *gin.Context) {
	products, err := h.App.Suggest(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *Handlers) GetTopRated(c *gin.Context) {
	products, err := h.App.TopRated(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *Handlers) GetBiggestSales(c *gin.Context) {
	products, err := h.App.BiggestSales(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *Handlers) GetProduct(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	product, err := h.App.Product(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handlers) GetSimilarProducts(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	products, err := h.App.Similar(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}
