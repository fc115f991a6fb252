package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func bodyLimitRouter(limit int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(BodyLimit(limit))
	r.POST("/stock", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.String(http.StatusBadRequest, "read failed")
			return
		}
		c.String(http.StatusOK, "ok")
	})
	return r
}

func TestBodyLimit(t *testing.T) {
	tests := []struct {
		name          string
		limit         int64
		size          int
		contentLength int64 // -1 for a streamed body
		wantStatus    int
	}{
		{"within limit", 1024, 10, 10, http.StatusOK},
		{"declared length over limit", 100, 200, 200, http.StatusRequestEntityTooLarge},
		{"streamed body over limit", 50, 100, -1, http.StatusBadRequest},
		{"streamed body within limit", 50, 20, -1, http.StatusOK},
		{"zero disables the limit", 0, 4096, 4096, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/stock", strings.NewReader(strings.Repeat("x", tt.size)))
			req.ContentLength = tt.contentLength
			w := httptest.NewRecorder()
			bodyLimitRouter(tt.limit).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusRequestEntityTooLarge {
				assert.Contains(t, w.Body.String(), `"code":"REQUEST_TOO_LARGE"`)
			}
		})
	}
}
