package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CommentInput struct {
	Text string `json:"text"`
}

func (h *Handlers) GetComments(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": h.App.Comments(c.Request.Context(), id)})
}

func (h *Handlers) AddComment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	comments, err := h.App.AddComment(c.Request.Context(), id, input.Text)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comments": comments})
}

// DeleteComment removes the comment at :index. Unknown indexes are ignored.
func (h *Handlers) DeleteComment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment index"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": h.App.RemoveComment(c.Request.Context(), id, index)})
}
