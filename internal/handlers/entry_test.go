package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"entryledger/internal/auth"
	dom "entryledger/internal/domain"
	"entryledger/internal/repo"
	"entryledger/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedHeight uint64

func (f fixedHeight) Current(context.Context) (uint64, error) { return uint64(f), nil }

// newTestRouter wires the entry routes behind a middleware that acts
// as the session layer, stamping every request with identity "tester".
func newTestRouter(h uint64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewEntryService(repo.NewMemEntryRepo(), nil, fixedHeight(h))
	handler := NewEntryHandler(svc)

	r := gin.New()
	api := r.Group("/api/v1", func(c *gin.Context) {
		auth.SetIdentity(c, dom.Identity("tester"))
		c.Next()
	})
	api.POST("/entry", handler.Create)
	api.GET("/entry", handler.Fetch)
	api.PUT("/entry", handler.Update)
	api.DELETE("/entry", handler.Delete)
	api.POST("/entry/delegate", handler.Delegate)
	api.PUT("/entry/priority", handler.AssignPriority)
	api.PUT("/entry/deadline", handler.ConfigureDeadline)
	api.GET("/entry/completed", handler.CheckCompletion)
	api.GET("/entry/diagnostics", handler.Diagnostics)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestEntryLifecycleOverHTTP(t *testing.T) {
	r := newTestRouter(100)

	w := do(t, r, http.MethodPost, "/api/v1/entry", `{"content":"write report"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Duplicate create conflicts.
	w = do(t, r, http.MethodPost, "/api/v1/entry", `{"content":"again"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodGet, "/api/v1/entry", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
	assert.Equal(t, "tester", entry["identity"])
	assert.Equal(t, "write report", entry["content"])
	assert.Equal(t, false, entry["completed"])

	w = do(t, r, http.MethodPut, "/api/v1/entry", `{"content":"done report","completed":true}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/api/v1/entry/completed", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"completed":true}`, w.Body.String())

	w = do(t, r, http.MethodDelete, "/api/v1/entry", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodGet, "/api/v1/entry", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateRequiresBothFields(t *testing.T) {
	r := newTestRouter(0)

	w := do(t, r, http.MethodPost, "/api/v1/entry", `{"content":"x"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	// Missing completed flag: full replace needs both fields.
	w = do(t, r, http.MethodPut, "/api/v1/entry", `{"content":"y"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// completed:false must bind (pointer field, not required-nonzero).
	w = do(t, r, http.MethodPut, "/api/v1/entry", `{"content":"y","completed":false}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDelegateTargetsExplicitIdentity(t *testing.T) {
	r := newTestRouter(0)

	w := do(t, r, http.MethodPost, "/api/v1/entry/delegate", `{"target_identity":"someone-else","content":"assigned"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
	assert.Equal(t, "someone-else", entry["identity"])

	// The caller's own slot is untouched.
	w = do(t, r, http.MethodGet, "/api/v1/entry", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPost, "/api/v1/entry/delegate", `{"target_identity":"someone-else","content":"again"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPriorityAndDeadlineEndpoints(t *testing.T) {
	r := newTestRouter(100)

	// Both gate on entry existence.
	w := do(t, r, http.MethodPut, "/api/v1/entry/priority", `{"tier":2}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, r, http.MethodPut, "/api/v1/entry/deadline", `{"duration_blocks":5}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPost, "/api/v1/entry", `{"content":"x"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodPut, "/api/v1/entry/priority", `{"tier":2}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"identity":"tester","tier":2}`, w.Body.String())

	w = do(t, r, http.MethodPut, "/api/v1/entry/priority", `{"tier":4}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPut, "/api/v1/entry/deadline", `{"duration_blocks":5}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"identity":"tester","deadline":105,"notified":false}`, w.Body.String())

	w = do(t, r, http.MethodPut, "/api/v1/entry/deadline", `{"duration_blocks":-1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDiagnosticsAlwaysOK(t *testing.T) {
	r := newTestRouter(0)

	w := do(t, r, http.MethodGet, "/api/v1/entry/diagnostics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"exists":false,"content_length":0,"completed":false}`, w.Body.String())

	w = do(t, r, http.MethodPost, "/api/v1/entry", `{"content":"abc"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodGet, "/api/v1/entry/diagnostics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"exists":true,"content_length":3,"completed":false}`, w.Body.String())
}
