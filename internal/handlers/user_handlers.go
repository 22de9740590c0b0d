package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/storefront-golang/internal/auth"
)

// RegisterUserInput is the sign-up form. The field rules live in the
// registry so the API and the CLI report the same messages.
type RegisterUserInput struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (h *Handlers) Register(c *gin.Context) {
	// 1. --- Bind JSON ---
	var input RegisterUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	// 2. --- Validate & Save ---
	// Field errors come back as a ValidationError with the form's message.
	user, err := h.App.Register(c.Request.Context(), auth.RegisterInput{
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Email:           input.Email,
		Password:        input.Password,
		ConfirmPassword: input.ConfirmPassword,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	// 3. --- Send Success Response ---
	// The user is not logged in yet; the client goes to the login form next.
	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful! Please log in.",
		"user":    user.Public(),
	})
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login starts the session and returns a bearer token for it.
func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	// Unknown email and wrong password get the same 401.
	user, token, err := h.App.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user.Public(),
	})
}

// Logout ends the session and empties the cart.
func (h *Handlers) Logout(c *gin.Context) {
	h.App.Logout(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetSession reports who is logged in, if anyone.
func (h *Handlers) GetSession(c *gin.Context) {
	user, ok := h.App.CurrentUser()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"loggedIn": false, "user": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"loggedIn": true, "user": user.Public()})
}
