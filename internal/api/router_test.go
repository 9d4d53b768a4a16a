package api_test

import (
	"chatrelay/backend/internal/api"
	"chatrelay/backend/internal/api/handler"
	"chatrelay/backend/internal/chathub"
	"chatrelay/backend/internal/models"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func startServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := chathub.NewManagerService(zerolog.Nop())
	router := chathub.NewRouter(zerolog.Nop(), hub, chathub.NopMirror{})
	hub.SetRouter(router)

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv := httptest.NewServer(api.NewRouter(handler.NewHandler(hub, router, zerolog.Nop(), 16, 4096)))
	t.Cleanup(func() {
		cancel()
		<-hub.Done()
		srv.Close()
	})
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func emit(t *testing.T, conn *websocket.Conn, event string, data any) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(map[string]any{"event": event, "data": data}))
}

func next(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var f frame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

func rosterOf(t *testing.T, f frame) []string {
	t.Helper()
	require.Equal(t, models.EventUserList, f.Event)
	var users []models.RosterUser
	require.NoError(t, json.Unmarshal(f.Data, &users))
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.Identity)
	}
	return ids
}

func threadOf(t *testing.T, f frame, event string) []models.Message {
	t.Helper()
	require.Equal(t, event, f.Event)
	var thread []models.Message
	require.NoError(t, json.Unmarshal(f.Data, &thread))
	return thread
}

func TestWebSocket_EndToEnd(t *testing.T) {
	srv := startServer(t)

	alice := dial(t, srv)
	emit(t, alice, "login", map[string]string{"employeeCode": "E1", "fullname": "Alice", "profilePic": ""})
	assert.Equal(t, []string{"E1"}, rosterOf(t, next(t, alice)))

	bob := dial(t, srv)
	emit(t, bob, "login", map[string]string{"employeeCode": "E2", "fullname": "Bob", "profilePic": ""})
	assert.Equal(t, []string{"E1", "E2"}, rosterOf(t, next(t, alice)))
	assert.Equal(t, []string{"E1", "E2"}, rosterOf(t, next(t, bob)))

	emit(t, alice, "server-message", map[string]string{
		"fromEmployeeCode": "E1",
		"fromName":         "Alice",
		"fromProfilePic":   "",
		"toEmployeeCode":   "E2",
		"message":          "hi",
	})
	for _, conn := range []*websocket.Conn{alice, bob} {
		thread := threadOf(t, next(t, conn), models.EventClientMessage)
		require.Len(t, thread, 1)
		assert.Equal(t, "hi", thread[0].Body)
		assert.Equal(t, "E1", thread[0].SenderIdentity)
		assert.Equal(t, "E2", thread[0].RecipientIdentity)
		assert.NotZero(t, thread[0].SentAt)
	}

	emit(t, bob, "server-get-messages", map[string]string{"fromEmployeeCode": "E2", "toEmployeeCode": "E1"})
	thread := threadOf(t, next(t, bob), models.EventClientGetMessages)
	require.Len(t, thread, 1)
	assert.Equal(t, "hi", thread[0].Body)

	require.NoError(t, alice.Close())
	assert.Equal(t, []string{"E2"}, rosterOf(t, next(t, bob)))
}

func TestWebSocket_MalformedFramesAreSkipped(t *testing.T) {
	srv := startServer(t)
	conn := dial(t, srv)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	emit(t, conn, "login", map[string]string{"fullname": "No Identity"})
	emit(t, conn, "typing", map[string]string{})
	emit(t, conn, "login", map[string]string{"employeeCode": "E1", "fullname": "Alice"})

	assert.Equal(t, []string{"E1"}, rosterOf(t, next(t, conn)), "the connection survives bad frames")
}

func TestHTTPRoutes(t *testing.T) {
	srv := startServer(t)

	for _, path := range []string{"/healthz", "/api/roster", "/metrics"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err, path)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}

	resp, err := http.Get(srv.URL + "/api/history")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
