package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// helper: new Echo with the middleware and a simple route
func setupEcho(rdb *redis.Client, ttl time.Duration, handler echo.HandlerFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(IdempotencyMiddleware(rdb, ttl))
	e.POST("/disaster_report", handler)
	e.GET("/disaster_report", handler) // for non-mutating bypass test
	return e
}

func mkJSONBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return bytes.NewReader(b)
}

func doReq(t *testing.T, e *echo.Echo, method, path string, body io.Reader, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newMiniredisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, rdb
}

const reqID = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

func TestIdempotency_ReplaysFirstResponse(t *testing.T) {
	_, rdb := newMiniredisClient(t)

	var calls int32
	e := setupEcho(rdb, time.Minute, func(c echo.Context) error {
		n := atomic.AddInt32(&calls, 1)
		return c.JSON(http.StatusCreated, map[string]any{"success": true, "report_id": n})
	})

	body := map[string]any{"disaster": "earthquake"}
	hdr := map[string]string{"X-Request-Id": reqID}

	first := doReq(t, e, http.MethodPost, "/disaster_report", mkJSONBody(t, body), hdr)
	if first.Code != http.StatusCreated {
		t.Fatalf("first status = %d", first.Code)
	}
	second := doReq(t, e, http.MethodPost, "/disaster_report", mkJSONBody(t, body), hdr)
	if second.Code != http.StatusCreated {
		t.Fatalf("replay status = %d (%s)", second.Code, second.Body.String())
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("replay must return the recorded body: %q vs %q", first.Body.String(), second.Body.String())
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("handler ran %d times, want 1", got)
	}
}

func TestIdempotency_SameIDDifferentBodyConflicts(t *testing.T) {
	_, rdb := newMiniredisClient(t)
	e := setupEcho(rdb, time.Minute, func(c echo.Context) error {
		return c.JSON(http.StatusCreated, map[string]any{"success": true})
	})
	hdr := map[string]string{"X-Request-Id": reqID}

	doReq(t, e, http.MethodPost, "/disaster_report", mkJSONBody(t, map[string]any{"a": 1}), hdr)
	rec := doReq(t, e, http.MethodPost, "/disaster_report", mkJSONBody(t, map[string]any{"a": 2}), hdr)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestIdempotency_NoHeaderBypasses(t *testing.T) {
	_, rdb := newMiniredisClient(t)

	var calls int32
	e := setupEcho(rdb, time.Minute, func(c echo.Context) error {
		atomic.AddInt32(&calls, 1)
		return c.JSON(http.StatusCreated, map[string]any{"success": true})
	})

	for i := 0; i < 2; i++ {
		rec := doReq(t, e, http.MethodPost, "/disaster_report", mkJSONBody(t, map[string]any{"a": i}), nil)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d", rec.Code)
		}
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("handler ran %d times, want 2 (no dedupe without header)", got)
	}
}

func TestIdempotency_GetBypasses(t *testing.T) {
	_, rdb := newMiniredisClient(t)
	var calls int32
	e := setupEcho(rdb, time.Minute, func(c echo.Context) error {
		atomic.AddInt32(&calls, 1)
		return c.JSON(http.StatusOK, map[string]any{"success": true})
	})
	hdr := map[string]string{"X-Request-Id": reqID}

	doReq(t, e, http.MethodGet, "/disaster_report", nil, hdr)
	doReq(t, e, http.MethodGet, "/disaster_report", nil, hdr)
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("GET must bypass dedupe, ran %d times", got)
	}
}

func TestIdempotency_InvalidRequestID(t *testing.T) {
	_, rdb := newMiniredisClient(t)
	e := setupEcho(rdb, time.Minute, func(c echo.Context) error {
		return c.JSON(http.StatusCreated, map[string]any{"success": true})
	})

	rec := doReq(t, e, http.MethodPost, "/disaster_report", strings.NewReader("{}"),
		map[string]string{"X-Request-Id": "not-a-valid-id"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestIdempotency_SkewedRequestAt(t *testing.T) {
	_, rdb := newMiniredisClient(t)
	e := setupEcho(rdb, time.Minute, func(c echo.Context) error {
		return c.JSON(http.StatusCreated, map[string]any{"success": true})
	})

	old := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
	rec := doReq(t, e, http.MethodPost, "/disaster_report", strings.NewReader("{}"),
		map[string]string{"X-Request-Id": reqID, "X-Request-At": old})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
