package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the data payload of a successful API reply.
type Response map[string]interface{}

// Business error codes.
const (
	CodeOK           = 0
	CodeInvalidParam = 40001
	CodeEmptyField   = 40002
	CodeAuth         = 40101
	CodeForbidden    = 40301
	CodeNotFound     = 40401
	CodeServerErr    = 50001
)

// Success writes the uniform success envelope.
func Success(c *gin.Context, data Response) {
	c.JSON(http.StatusOK, gin.H{
		"code": CodeOK,
		"data": data,
	})
}

// Error writes the uniform error envelope.
func Error(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"code":    code,
		"message": msg,
	})
}

// Store error kinds exposed on the wire so clients can discriminate
// without parsing message text.
const (
	KindEmptyField    = "empty_field"
	KindInvalidAmount = "invalid_amount"
	KindNotFound      = "not_found"
	KindUnauthorized  = "unauthorized"
)

// ErrorKind writes an error envelope tagged with a store error kind.
// field names the offending field for the empty-field kind.
func ErrorKind(c *gin.Context, httpStatus int, code int, kind, field, msg string) {
	h := gin.H{
		"code":    code,
		"kind":    kind,
		"message": msg,
	}
	if field != "" {
		h["field"] = field
	}
	c.JSON(httpStatus, h)
}
