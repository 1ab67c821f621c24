package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(APIKeyMiddleware(map[string]string{"k1": "alice"}))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, User(c))
	})
	return r
}

func TestAPIKeyMiddlewareRejectsUnknownKey(t *testing.T) {
	for _, key := range []string{"", "nope"} {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if key != "" {
			req.Header.Set("X-API-Key", key)
		}
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("key %q: expected 401 got %d", key, w.Code)
		}
	}
}

func TestAPIKeyMiddlewareSetsUser(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-API-Key", " k1 ")
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, req)

	if w.Code != http.StatusOK || w.Body.String() != "alice" {
		t.Errorf("expected 200 alice, got %d %q", w.Code, w.Body.String())
	}
}
