package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"staybook/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// ErrorHandler writes the body of the latest public error when a handler
// aborted without writing one. A handler that neither wrote nor set a status
// gets a 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		if resp, ok := latestPublicResponse(c.Errors); ok {
			c.JSON(resp.Status, resp)
			return
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		if last := c.Errors.Last(); last != nil {
			slog.ErrorContext(c.Request.Context(), "request failed without a response",
				"path", c.FullPath(), "request_id", GetRequestID(c), "error", last.Err)
		}
		c.JSON(http.StatusInternalServerError, internalErrorResponse())
	}
}

func latestPublicResponse(errors []*gin.Error) (httperr.Response, bool) {
	for i := len(errors) - 1; i >= 0; i-- {
		if !errors[i].IsType(gin.ErrorTypePublic) {
			continue
		}
		if resp, ok := errors[i].Meta.(httperr.Response); ok {
			return resp, true
		}
	}
	return httperr.Response{}, false
}

func internalErrorResponse() httperr.Response {
	resp := httperr.Response{Status: http.StatusInternalServerError}
	resp.Error.Message = "Internal server error"
	return resp
}

// CustomRecovery answers a panicking request with the standard 500 body.
func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				slog.ErrorContext(c.Request.Context(), "recovered from panic",
					"panic", r, "path", c.Request.URL.Path, "request_id", GetRequestID(c),
					"stack", string(debug.Stack()))
				c.AbortWithStatusJSON(http.StatusInternalServerError, internalErrorResponse())
			}
		}()
		c.Next()
	}
}
