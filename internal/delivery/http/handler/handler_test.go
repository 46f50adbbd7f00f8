package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pathway/internal/delivery/http/middleware"
	"pathway/internal/domain/conviction"
	"pathway/internal/mentor"
	"pathway/internal/pkg/jwt"
	"pathway/internal/pkg/response"
	"pathway/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type routeRegistrar interface {
	RegisterRoutes(r fiber.Router)
}

func newTestApp(t *testing.T, handlers ...routeRegistrar) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	api := app.Group("/api", middleware.NewAuthMiddleware(jwt.NewHMACService(testSecret, time.Minute)).Middleware())
	for _, h := range handlers {
		h.RegisterRoutes(api)
	}
	return app
}

func bearer(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	tok, err := jwt.NewHMACService(testSecret, time.Minute).GenerateAccessToken(userID)
	require.NoError(t, err)
	return "Bearer " + tok
}

func do(t *testing.T, app *fiber.App, method, target, auth, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, b
}

type stubConvictions struct {
	out conviction.Breakdown
	err error
}

func (s stubConvictions) Get(context.Context, uuid.UUID, string) (conviction.Breakdown, error) {
	return s.out, s.err
}

func TestConvictionHandler_Success(t *testing.T) {
	app := newTestApp(t, NewConvictionHandler(stubConvictions{out: conviction.Combine(100, 80, 100, 50)}, time.Second))

	status, body := do(t, app, http.MethodGet, "/api/careers/conviction?occupationId=15-1252.00", bearer(t, uuid.New()), "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"breakdown":{"total":84,"riasec":100,"skills":80,"education":100,"engagement":50}}`, string(body))
}

func TestConvictionHandler_StatusMapping(t *testing.T) {
	auth := bearer(t, uuid.New())
	cases := []struct {
		name   string
		err    error
		target string
		auth   string
		want   int
	}{
		{"no token", nil, "/api/careers/conviction?occupationId=x", "", http.StatusUnauthorized},
		{"bad token", nil, "/api/careers/conviction?occupationId=x", "Bearer nope", http.StatusUnauthorized},
		{"missing occupation id", nil, "/api/careers/conviction", auth, http.StatusBadRequest},
		{"user missing", usecase.ErrUserNotFound, "/api/careers/conviction?occupationId=x", auth, http.StatusNotFound},
		{"occupation missing", usecase.ErrOccupationNotFound, "/api/careers/conviction?occupationId=x", auth, http.StatusNotFound},
		{"store down", errors.New("dial tcp 10.0.0.5:5432: connection refused"), "/api/careers/conviction?occupationId=x", auth, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(t, NewConvictionHandler(stubConvictions{err: tc.err}, time.Second))
			status, body := do(t, app, http.MethodGet, tc.target, tc.auth, "")
			assert.Equal(t, tc.want, status)

			var env response.SemanticResponse
			require.NoError(t, json.Unmarshal(body, &env))
			assert.Equal(t, tc.want, env.Status)
			assert.NotContains(t, string(body), "10.0.0.5")
		})
	}
}

type blockingConvictions struct {
	seen chan error
}

func (s blockingConvictions) Get(ctx context.Context, _ uuid.UUID, _ string) (conviction.Breakdown, error) {
	<-ctx.Done()
	s.seen <- ctx.Err()
	return conviction.Breakdown{}, ctx.Err()
}

func TestConvictionHandler_RequestTimeoutCancelsReads(t *testing.T) {
	stub := blockingConvictions{seen: make(chan error, 1)}
	app := newTestApp(t, NewConvictionHandler(stub, 50*time.Millisecond))

	start := time.Now()
	status, body := do(t, app, http.MethodGet, "/api/careers/conviction?occupationId=15-1252.00", bearer(t, uuid.New()), "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Less(t, time.Since(start), 900*time.Millisecond)
	assert.NotContains(t, string(body), "deadline")

	select {
	case err := <-stub.seen:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	default:
		t.Fatal("usecase context was never canceled")
	}
}

type stubEngagement struct {
	calls []string
	err   error
}

func (s *stubEngagement) RecordPageView(context.Context, uuid.UUID, string) error {
	s.calls = append(s.calls, "view")
	return s.err
}

func (s *stubEngagement) AddTimeSpent(_ context.Context, _ uuid.UUID, _ string, seconds int) error {
	if seconds <= 0 {
		return usecase.ErrInvalidInput
	}
	s.calls = append(s.calls, "time")
	return s.err
}

func (s *stubEngagement) RecordVideoWatch(_ context.Context, _ uuid.UUID, _ string, w conviction.VideoWatch) error {
	s.calls = append(s.calls, "video:"+w.VideoID)
	return s.err
}

func TestEngagementHandler(t *testing.T) {
	uc := &stubEngagement{}
	app := newTestApp(t, NewEngagementHandler(uc, time.Second))
	auth := bearer(t, uuid.New())

	status, _ := do(t, app, http.MethodPost, "/api/careers/engagement/view", auth, `{"occupationId":"15-1252.00"}`)
	assert.Equal(t, http.StatusOK, status)

	status, _ = do(t, app, http.MethodPost, "/api/careers/engagement/time", auth, `{"occupationId":"15-1252.00","seconds":45}`)
	assert.Equal(t, http.StatusOK, status)

	status, _ = do(t, app, http.MethodPost, "/api/careers/engagement/time", auth, `{"occupationId":"15-1252.00","seconds":0}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, app, http.MethodPost, "/api/careers/videos/watch", auth, `{"occupationId":"15-1252.00","videoId":"intro","watchedSeconds":30,"completed":true}`)
	assert.Equal(t, http.StatusOK, status)

	assert.Equal(t, []string{"view", "time", "video:intro"}, uc.calls)
}

func TestEngagementHandler_OccupationMissing(t *testing.T) {
	app := newTestApp(t, NewEngagementHandler(&stubEngagement{err: usecase.ErrOccupationNotFound}, time.Second))
	status, _ := do(t, app, http.MethodPost, "/api/careers/engagement/view", bearer(t, uuid.New()), `{"occupationId":"00-0000.00"}`)
	assert.Equal(t, http.StatusNotFound, status)
}

type stubDiscovery struct {
	got usecase.DiscoveryParams
}

func (s *stubDiscovery) Discover(_ context.Context, _ uuid.UUID, p usecase.DiscoveryParams) ([]usecase.DiscoveryItem, error) {
	s.got = p
	return []usecase.DiscoveryItem{{OccupationCode: "15-1252.00", Title: "Software Developers", Fit: 77, Estimated: true}}, nil
}

func TestDiscoveryHandler(t *testing.T) {
	uc := &stubDiscovery{}
	app := newTestApp(t, NewDiscoveryHandler(uc, time.Second))

	status, body := do(t, app, http.MethodGet, "/api/careers/discover?limit=5&offset=10", bearer(t, uuid.New()), "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, usecase.DiscoveryParams{Limit: 5, Offset: 10}, uc.got)

	var env struct {
		Data struct {
			Items []struct {
				OccupationID string `json:"occupationId"`
				Fit          int    `json:"fit"`
				Estimated    bool   `json:"estimated"`
			} `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &env))
	require.Len(t, env.Data.Items, 1)
	assert.Equal(t, "15-1252.00", env.Data.Items[0].OccupationID)
	assert.True(t, env.Data.Items[0].Estimated)
}

func TestMentorHandler(t *testing.T) {
	ex := mentor.NewExecutor(stubConvictions{out: conviction.Combine(50, 0, 50, 0)}, nil)
	app := newTestApp(t, NewMentorHandler(ex, time.Second))
	auth := bearer(t, uuid.New())

	status, body := do(t, app, http.MethodGet, "/api/mentor/tools", auth, "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), mentor.ToolGetCareerConviction)

	status, body = do(t, app, http.MethodPost, "/api/mentor/tools/call", auth,
		`{"id":"c1","name":"get_career_conviction","args":{"occupationId":"15-1252.00"}}`)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"total":25`)

	status, _ = do(t, app, http.MethodPost, "/api/mentor/tools/call", auth, `{"name":"get_weather","args":{}}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestHealthHandler(t *testing.T) {
	cases := []struct {
		name  string
		db    error
		cache error
		want  int
		body  string
	}{
		{"all up", nil, nil, http.StatusOK, `"cache":"up"`},
		{"cache down", nil, errors.New("refused"), http.StatusOK, `"cache":"bypassed"`},
		{"db down", errors.New("refused"), nil, http.StatusServiceUnavailable, `"database":"down"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			NewHealthHandler(stubPinger{tc.db}, stubPinger{tc.cache}).RegisterRoutes(app)

			status, body := do(t, app, http.MethodGet, "/health", "", "")
			assert.Equal(t, tc.want, status)
			assert.Contains(t, string(body), tc.body)
		})
	}
}
