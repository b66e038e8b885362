package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventcatalog/internal/adapters/auth"
	"eventcatalog/internal/delivery/http/controllers"
	"eventcatalog/internal/delivery/http/helpers"
	"eventcatalog/internal/domain"
	"eventcatalog/internal/eventbus"
	"eventcatalog/internal/projection"
	"eventcatalog/internal/repository/memory"
	"eventcatalog/internal/usecase"
)

const testSecret = "router-test-secret"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher := eventbus.NewPublisher(logger)
	writes := memory.NewEventCommandRepository(publisher, time.Now)
	reads := memory.NewEventReadRepository(time.Now)
	projection.NewEventProjector(reads, logger).Register(publisher)

	commands := usecase.NewCommandBus(usecase.NewEventCommandHandlers(writes, logger, 5*time.Second).Handlers())
	queries := usecase.NewQueryBus(usecase.NewEventQueryHandlers(reads, 5*time.Second).Handlers())
	router := NewRouter(
		controllers.NewEventController(logger, commands, queries),
		controllers.NewHealthController(),
		auth.NewJWTVerifier(testSecret),
		logger,
	)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func bearer(t *testing.T, organizer string) string {
	t.Helper()
	token, err := auth.NewJWTIssuer(testSecret).Issue(domain.OrganizerID(organizer), time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func do(t *testing.T, srv *httptest.Server, method, path, token, body string) (int, helpers.APIResponse) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, r)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp.StatusCode, envelope
}

func field(t *testing.T, envelope helpers.APIResponse, key string) any {
	t.Helper()
	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok, "data must be an object, got %T", envelope.Data)
	return data[key]
}

func TestRouter_EventLifecycle(t *testing.T) {
	srv := newTestServer(t)
	orgA := bearer(t, "org-a")
	start := time.Now().Add(30 * 24 * time.Hour).UTC().Truncate(time.Second)
	body := fmt.Sprintf(`{"name":"Konferencja IT","description":"Talks","start_date":%q,"end_date":%q,"is_online":true}`,
		start.Format(time.RFC3339), start.Add(8*time.Hour).Format(time.RFC3339))

	status, envelope := do(t, srv, http.MethodPost, "/api/events", orgA, body)
	require.Equal(t, http.StatusCreated, status)
	eventID, ok := field(t, envelope, "event_id").(string)
	require.True(t, ok)
	require.NotEmpty(t, eventID)

	status, envelope = do(t, srv, http.MethodGet, "/api/events/"+eventID, "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, field(t, envelope, "is_published"))
	assert.Equal(t, "org-a", field(t, envelope, "organizer_id"))

	status, _ = do(t, srv, http.MethodPost, "/api/events/"+eventID+"/publish", bearer(t, "org-b"), "")
	assert.Equal(t, http.StatusForbidden, status, "only the owner may publish")

	status, envelope = do(t, srv, http.MethodPost, "/api/events/"+eventID+"/publish", orgA, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, field(t, envelope, "published"))

	status, envelope = do(t, srv, http.MethodGet, "/api/events/published", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, field(t, envelope, "count"))

	status, envelope = do(t, srv, http.MethodGet, "/api/events/organizer/org-b", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 0, field(t, envelope, "count"))

	status, envelope = do(t, srv, http.MethodGet, "/api/stats", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, field(t, envelope, "total_events"))
	assert.EqualValues(t, 1, field(t, envelope, "published_events"))
	assert.EqualValues(t, 0, field(t, envelope, "draft_events"))

	status, envelope = do(t, srv, http.MethodPost, "/api/events/"+eventID+"/cancel", orgA, `{"reason":"venue closed"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, field(t, envelope, "cancelled"))

	status, envelope = do(t, srv, http.MethodGet, "/api/events/published", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 0, field(t, envelope, "count"))
}

func TestRouter_Errors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "command without token",
			method:     http.MethodPost,
			path:       "/api/events",
			body:       `{}`,
			wantStatus: http.StatusUnauthorized,
			wantCode:   helpers.ErrCodeUnauthorized,
		},
		{
			name:       "command with forged token",
			method:     http.MethodPost,
			path:       "/api/events/ev-1/publish",
			token:      "Bearer not-a-jwt",
			wantStatus: http.StatusUnauthorized,
			wantCode:   helpers.ErrCodeUnauthorized,
		},
		{
			name:       "publish unknown event",
			method:     http.MethodPost,
			path:       "/api/events/does-not-exist/publish",
			token:      bearer(t, "org-a"),
			wantStatus: http.StatusNotFound,
			wantCode:   helpers.ErrCodeNotFound,
		},
		{
			name:       "get unknown event",
			method:     http.MethodGet,
			path:       "/api/events/does-not-exist",
			wantStatus: http.StatusNotFound,
			wantCode:   helpers.ErrCodeNotFound,
		},
		{
			name:       "event in the past",
			method:     http.MethodPost,
			path:       "/api/events",
			token:      bearer(t, "org-a"),
			body:       `{"name":"Old","description":"d","start_date":"2001-01-01T09:00:00Z","end_date":"2001-01-01T10:00:00Z","is_online":true}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, envelope := do(t, srv, tt.method, tt.path, tt.token, tt.body)
			require.Equal(t, tt.wantStatus, status)
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantCode, envelope.Error.Code)
		})
	}
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t)
	status, envelope := do(t, srv, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OK", field(t, envelope, "status"))
}
