package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Message is the success body shape: {"msg": "..."} plus optional id.
type Message struct {
	Msg string `json:"msg"`
	ID  string `json:"id,omitempty"`
}

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusOK, payload)
}
