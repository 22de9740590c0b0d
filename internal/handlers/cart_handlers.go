package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

//
// --- Cart Handlers ---
//

// AddToCartInput defines the JSON for adding an item to the cart.
type AddToCartInput struct {
	ProductID int64 `json:"product_id" binding:"required,gt=0"`
}

// AddToCart adds one unit of a product. The route sits behind the bearer
// auth middleware, and the storefront re-checks the session.
func (h *Handlers) AddToCart(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input AddToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	// 2. --- Add & Re-resolve ---
	view, err := h.App.AddToCart(c.Request.Context(), input.ProductID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// GetCart re-resolves and renders the cart. ?shipping=standard|express.
func (h *Handlers) GetCart(c *gin.Context) {
	view, err := h.App.Cart(c.Request.Context(), c.Query("shipping"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handlers) GetCartCount(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": h.App.CartCount()})
}

type UpdateCartItemInput struct {
	Quantity int `json:"quantity"`
}

// UpdateCartItem sets a quantity. Values below 1 are stored as 1.
func (h *Handlers) UpdateCartItem(c *gin.Context) {
	productID, ok := paramID(c, "product_id")
	if !ok {
		return
	}

	var input UpdateCartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	view, err := h.App.SetQuantity(c.Request.Context(), productID, input.Quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handlers) DeleteCartItem(c *gin.Context) {
	productID, ok := paramID(c, "product_id")
	if !ok {
		return
	}
	view, err := h.App.RemoveFromCart(c.Request.Context(), productID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handlers) ClearCart(c *gin.Context) {
	view, err := h.App.ClearCart(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type CheckoutInput struct {
	Shipping string `json:"shipping"`
	Address  string `json:"address"`
}

// Checkout returns the order summary. Nothing is charged and the cart stays.
func (h *Handlers) Checkout(c *gin.Context) {
	// 1. --- Bind JSON ---
	var input CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	// 2. --- Build the Summary ---
	// Empty cart, blank address and unknown shipping are all 400s.
	receipt, err := h.App.Checkout(c.Request.Context(), input.Shipping, input.Address)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Order placed successfully!",
		"receipt": receipt,
	})
}
