// Package httperr shapes every error reply as {"error": {"message": ...}}.
package httperr

import (
	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
}

// AbortWithError writes the JSON body and keeps the underlying error on the
// context so the error middleware can log it.
func AbortWithError(c *gin.Context, status int, err error, msg string) {
	if err == nil {
		panic("httperr: AbortWithError called without an error")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
