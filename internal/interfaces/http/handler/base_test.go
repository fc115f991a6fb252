package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/circtek/backend/internal/domain/shared"
	"github.com/circtek/backend/internal/interfaces/http/dto"
	"github.com/circtek/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := middleware.SetupValidator(); err != nil {
		panic(err)
	}
}

// newTestRouter returns an engine that authenticates every request as actor
// when actor is non-nil
func newTestRouter(actor *shared.Actor) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.RequestIDKey, "req-test")
		if actor != nil {
			c.Set(middleware.JWTActorKey, *actor)
		}
		c.Next()
	})
	return r
}

func performRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			_ = json.NewEncoder(&buf).Encode(b)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetRequestID(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(*gin.Context)
		expectedID string
	}{
		{
			name: "from context",
			setup: func(c *gin.Context) {
				c.Set(middleware.RequestIDKey, "ctx-request-id")
			},
			expectedID: "ctx-request-id",
		},
		{
			name: "from header when context empty",
			setup: func(c *gin.Context) {
				c.Request.Header.Set("X-Request-ID", "header-request-id")
			},
			expectedID: "header-request-id",
		},
		{
			name:       "empty when not set",
			setup:      func(c *gin.Context) {},
			expectedID: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/", nil)
			tt.setup(c)

			assert.Equal(t, tt.expectedID, getRequestID(c))
		})
	}
}

func TestBaseHandlerSuccess(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)

	h.Success(c, map[string]string{"key": "value"})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "value", resp.Data.(map[string]any)["key"])
	assert.Nil(t, resp.Error)
}

func TestBaseHandlerCreated(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/", nil)

	h.Created(c, gin.H{"id": "1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, http.StatusCreated, decodeResponse(t, w).Status)
}

func TestPage_EmptyListIsArray(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)

	page := shared.NewPaginated[string](nil, 0, 1, 20)
	Page(h, c, &page)

	assert.Contains(t, w.Body.String(), `"data":[]`)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(0), resp.Meta.Total)
	assert.Equal(t, 20, resp.Meta.PageSize)
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
		expectedMsg    string
	}{
		{
			name:           "not found",
			err:            shared.ErrNotFound,
			expectedStatus: http.StatusNotFound,
			expectedCode:   "NOT_FOUND",
		},
		{
			name:           "wrapped conflict",
			err:            fmt.Errorf("save: %w", shared.NewDomainError("ALREADY_EXISTS", "Warehouse name already exists")),
			expectedStatus: http.StatusConflict,
			expectedCode:   "ALREADY_EXISTS",
			expectedMsg:    "Warehouse name already exists",
		},
		{
			name:           "insufficient stock",
			err:            shared.NewDomainError("INSUFFICIENT_STOCK", "Not enough stock"),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   "INSUFFICIENT_STOCK",
		},
		{
			name:           "orphaned role",
			err:            shared.NewDomainError("ROLE_NOT_FOUND", "Role not found"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "ROLE_NOT_FOUND",
		},
		{
			name:           "unmapped invalid code",
			err:            shared.NewDomainError("INVALID_SKU", "SKU is required"),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_SKU",
		},
		{
			name:           "unknown error is hidden",
			err:            errors.New("pq: connection reset by peer"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "INTERNAL_ERROR",
			expectedMsg:    "An internal error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/", nil)
			c.Set(middleware.RequestIDKey, "req-1")

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)
			resp := decodeResponse(t, w)
			assert.Equal(t, tt.expectedStatus, resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.expectedCode, resp.Error.Code)
			assert.Equal(t, "req-1", resp.Error.RequestID)
			if tt.expectedMsg != "" {
				assert.Equal(t, tt.expectedMsg, resp.Error.Message)
			}
		})
	}
}

func TestHandleError_NilWritesNothing(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)

	h.HandleError(c, nil)

	assert.Empty(t, w.Body.String())
}

func TestBindJSON(t *testing.T) {
	type request struct {
		SKU      string `json:"sku" binding:"required,sku"`
		Quantity int64  `json:"quantity" binding:"required,gt=0"`
	}
	h := &BaseHandler{}
	r := newTestRouter(nil)
	r.POST("/bind", func(c *gin.Context) {
		var req request
		if !h.bindJSON(c, &req) {
			return
		}
		h.Success(c, req)
	})

	t.Run("valid", func(t *testing.T) {
		w := performRequest(r, http.MethodPost, "/bind", `{"sku":"SCR-1","quantity":2}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("validation errors carry field details", func(t *testing.T) {
		w := performRequest(r, http.MethodPost, "/bind", `{"sku":"","quantity":0}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)

		fields := make([]string, 0, len(resp.Error.Details))
		for _, d := range resp.Error.Details {
			fields = append(fields, d.Field)
		}
		assert.ElementsMatch(t, []string{"sku", "quantity"}, fields)
	})

	t.Run("malformed json", func(t *testing.T) {
		w := performRequest(r, http.MethodPost, "/bind", `{"sku":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidInput, decodeResponse(t, w).Error.Code)
	})
}

func TestUUIDParamAndActor(t *testing.T) {
	h := &BaseHandler{}
	handler := func(c *gin.Context) {
		if _, ok := h.actor(c); !ok {
			return
		}
		id, ok := h.uuidParam(c, "id")
		if !ok {
			return
		}
		h.Success(c, id)
	}

	t.Run("missing actor", func(t *testing.T) {
		r := newTestRouter(nil)
		r.GET("/items/:id", handler)
		w := performRequest(r, http.MethodGet, "/items/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		r := newTestRouter(&shared.Actor{UserID: uuid.New(), TenantID: uuid.New()})
		r.GET("/items/:id", handler)
		w := performRequest(r, http.MethodGet, "/items/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid id", decodeResponse(t, w).Error.Message)
	})

	t.Run("ok", func(t *testing.T) {
		r := newTestRouter(&shared.Actor{UserID: uuid.New(), TenantID: uuid.New()})
		r.GET("/items/:id", handler)
		id := uuid.New()
		w := performRequest(r, http.MethodGet, "/items/"+id.String(), nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, id.String(), decodeResponse(t, w).Data)
	})
}
