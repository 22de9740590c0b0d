package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/01moynul/storefront-golang/internal/handlers"
	"github.com/01moynul/storefront-golang/internal/middleware"
)

// CORSMiddleware allows the configured web frontend to call the API.
func CORSMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		// "Authorization" carries the bearer token.
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		// Preflight.
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers, corsOrigin string, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(CORSMiddleware(corsOrigin))

	v1 := router.Group("/v1")
	{
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Session ---
		v1.POST("/register", h.Register)
		v1.POST("/login", h.Login)
		v1.POST("/logout", h.Logout)
		v1.GET("/session", h.GetSession)

		// --- Catalog ---
		v1.GET("/products", h.ListProducts)
		v1.GET("/products/categories", h.GetCategories)
		v1.GET("/products/search", h.SearchProducts)
		v1.GET("/products/top-rated", h.GetTopRated)
		v1.GET("/products/biggest-sales", h.GetBiggestSales)
		v1.GET("/products/:id", h.GetProduct)
		v1.GET("/products/:id/similar", h.GetSimilarProducts)

		// --- Comments ---
		v1.GET("/products/:id/comments", h.GetComments)
		v1.POST("/products/:id/comments", h.AddComment)
		v1.DELETE("/products/:id/comments/:index", h.DeleteComment)

		// --- Cart ---
		v1.GET("/cart", h.GetCart)
		v1.GET("/cart/count", h.GetCartCount)
		v1.PUT("/cart/items/:product_id", h.UpdateCartItem)
		v1.DELETE("/cart/items/:product_id", h.DeleteCartItem)
		v1.DELETE("/cart", h.ClearCart)
		v1.POST("/cart/checkout", h.Checkout)

		// Adding to the cart needs a logged-in shopper.
		auth := v1.Group("/")
		auth.Use(middleware.AuthMiddleware(h.App))
		{
			auth.POST("/cart/items", h.AddToCart)
		}
	}

	return router
}
