package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/Shiva143-debug/backend-exp/internal/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestCORS(t *testing.T) {
	t.Run("preflight_short_circuits", func(t *testing.T) {
		r := gin.New()
		r.Use(CORS("*"))
		r.OPTIONS("/x", func(c *gin.Context) { t.Error("handler should not run") })

		rec := serve(r, http.MethodOptions, "/x", map[string]string{"Origin": "http://app.local"})
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://app.local" {
			t.Errorf("expected origin reflected, got %q", got)
		}
	})

	t.Run("fixed_origin", func(t *testing.T) {
		r := gin.New()
		r.Use(CORS("https://expenses.example"))
		r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

		rec := serve(r, http.MethodGet, "/x", map[string]string{"Origin": "http://evil.local"})
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://expenses.example" {
			t.Errorf("expected configured origin, got %q", got)
		}
	})
}

func TestUserScope(t *testing.T) {
	r := gin.New()
	r.GET("/users/:userId/things", UserScope("userId"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.MustGet(UserIDKey).(int64)})
	})

	t.Run("valid", func(t *testing.T) {
		rec := serve(r, http.MethodGet, "/users/42/things", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if decode(t, rec)["user"] != float64(42) {
			t.Errorf("unexpected body %s", rec.Body.String())
		}
	})

	for _, id := range []string{"abc", "0", "-3"} {
		t.Run("rejects_"+id, func(t *testing.T) {
			rec := serve(r, http.MethodGet, "/users/"+id+"/things", nil)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			errObj := decode(t, rec)["error"].(map[string]any)
			if errObj["code"] != apperrors.ErrInvalidInput.Code {
				t.Errorf("unexpected error %v", errObj)
			}
		})
	}
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/app", func(c *gin.Context) { _ = c.Error(apperrors.ErrCategoryInUse) })
	r.GET("/plain", func(c *gin.Context) { _ = c.Error(errors.New("boom")) })
	r.GET("/written", func(c *gin.Context) {
		_ = c.Error(errors.New("late"))
		c.JSON(http.StatusTeapot, gin.H{"ok": true})
	})

	rec := serve(r, http.MethodGet, "/app", nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}

	rec = serve(r, http.MethodGet, "/plain", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if decode(t, rec)["error"].(map[string]any)["message"] != apperrors.ErrInternalServer.Message {
		t.Errorf("expected generic message, got %s", rec.Body.String())
	}

	rec = serve(r, http.MethodGet, "/written", nil)
	if rec.Code != http.StatusTeapot {
		t.Errorf("expected handler response kept, got %d", rec.Code)
	}
}

func TestRequestLogging(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogging())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, RequestID(c)) })

	t.Run("issues_id", func(t *testing.T) {
		rec := serve(r, http.MethodGet, "/x", nil)
		id := rec.Header().Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			t.Fatalf("expected uuid request id, got %q", id)
		}
		if rec.Body.String() != id {
			t.Errorf("expected context id %q, got %q", id, rec.Body.String())
		}
	})

	t.Run("reuses_caller_id", func(t *testing.T) {
		id := uuid.New().String()
		rec := serve(r, http.MethodGet, "/x", map[string]string{"X-Request-ID": id})
		if rec.Header().Get("X-Request-ID") != id {
			t.Errorf("expected caller id reused")
		}
	})

	t.Run("replaces_malformed_id", func(t *testing.T) {
		rec := serve(r, http.MethodGet, "/x", map[string]string{"X-Request-ID": "<script>"})
		if rec.Header().Get("X-Request-ID") == "<script>" {
			t.Error("expected malformed id to be replaced")
		}
	})
}

func TestReplyRecovery(t *testing.T) {
	r := gin.New()
	r.Use(ReplyRecovery("Something went wrong."))
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })

	rec := serve(r, http.MethodGet, "/panic", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	body := decode(t, rec)
	if body["action"] != "reply" || body["reply"] != "Something went wrong." {
		t.Errorf("unexpected body %v", body)
	}
}
