package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/circtek/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stockLineRequest struct {
	SKU      string `json:"sku" binding:"required,sku"`
	Currency string `json:"currency" binding:"omitempty,currency_code"`
	Quantity int64  `json:"quantity" binding:"gt=0"`
}

func newValidatingRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, SetupValidator())

	router := gin.New()
	router.Use(RequestID())
	router.POST("/lines", func(c *gin.Context) {
		var req stockLineRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(http.StatusOK, "OK", req))
	})
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestValidation_CustomRules(t *testing.T) {
	router := newValidatingRouter(t)

	t.Run("accepts valid sku and currency", func(t *testing.T) {
		w := postJSON(router, "/lines", `{"sku":"SCR-IP13/black","currency":"eur","quantity":2}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("reports each rejected field by json name", func(t *testing.T) {
		w := postJSON(router, "/lines", `{"sku":"-bad sku","currency":"EURO","quantity":0}`)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.NotEmpty(t, resp.Error.RequestID)
		assert.Equal(t, http.StatusBadRequest, resp.Status)

		fields := map[string]string{}
		for _, d := range resp.Error.Details {
			fields[d.Field] = d.Message
		}
		assert.Equal(t, "Invalid SKU", fields["sku"])
		assert.Equal(t, "Must be a 3-letter currency code", fields["currency"])
		assert.Equal(t, "Must be greater than 0", fields["quantity"])
	})

	t.Run("missing sku is required", func(t *testing.T) {
		w := postJSON(router, "/lines", `{"quantity":1}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "This field is required")
	})
}
