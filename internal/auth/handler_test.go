package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/meubentin/bentin/internal/auth"
	"github.com/meubentin/bentin/internal/platform/kv"
	"github.com/meubentin/bentin/internal/shared"
	_ "github.com/meubentin/bentin/testing"
)

func newAuthHandler(t *testing.T) (*auth.Handler, *auth.Service, *shared.SessionManager) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := auth.NewService(auth.NewRepository(kv.NewMemory()), logger)
	require.NoError(t, service.EnsureAdmin(context.Background(), "dona@meubentin.com", "segredo123"))

	mr := miniredis.RunT(t)
	sessions := shared.NewSessionManager(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "test_session", time.Hour, false)

	return auth.NewHandler(logger, service, sessions), service, sessions
}

func loginRequest(t *testing.T, sessions *shared.SessionManager, email, password string) (*httptest.ResponseRecorder, *shared.Session, *http.Request) {
	t.Helper()
	body, err := json.Marshal(map[string]string{"email": email, "senha": password})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	sess, err := sessions.Load(context.Background(), req)
	require.NoError(t, err)
	req = req.WithContext(shared.ContextWithSession(req.Context(), sess))

	return httptest.NewRecorder(), sess, req
}

func TestLoginSuccess(t *testing.T) {
	handler, _, sessions := newAuthHandler(t)

	res, sess, req := loginRequest(t, sessions, "dona@meubentin.com", "segredo123")
	handler.Login(res, req)
	require.NoError(t, sessions.Commit(req.Context(), res, sess))

	require.Equal(t, http.StatusOK, res.Code)
	require.NotEmpty(t, sess.User())

	var body map[string]string
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	require.Equal(t, "dona@meubentin.com", body["email"])
	require.Equal(t, "Administrador", body["nome"])

	// The recorder snapshots headers on the handler's WriteHeader, before
	// Commit runs; parse Set-Cookie from the live header map instead.
	cookies := (&http.Response{Header: res.Header()}).Cookies()
	require.NotEmpty(t, cookies)
	require.Equal(t, sessions.CookieName(), cookies[0].Name)
}

func TestLoginInvalidCredentials(t *testing.T) {
	handler, _, sessions := newAuthHandler(t)

	res, sess, req := loginRequest(t, sessions, "dona@meubentin.com", "senha-errada")
	handler.Login(res, req)

	require.Equal(t, http.StatusUnauthorized, res.Code)
	require.Empty(t, sess.User())
}

func TestLoginValidation(t *testing.T) {
	handler, _, sessions := newAuthHandler(t)

	res, _, req := loginRequest(t, sessions, "nao-e-email", "x")
	handler.Login(res, req)

	require.Equal(t, http.StatusUnprocessableEntity, res.Code)
}

func TestMeAndRequireAuth(t *testing.T) {
	handler, service, _ := newAuthHandler(t)

	user, err := service.Authenticate(context.Background(), "dona@meubentin.com", "segredo123")
	require.NoError(t, err)

	protected := auth.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	// Anonymous session is rejected.
	anonReq := httptest.NewRequest(http.MethodGet, "/api/v1/produtos", nil)
	anonReq = anonReq.WithContext(shared.ContextWithSession(anonReq.Context(), &shared.Session{}))
	anonRes := httptest.NewRecorder()
	protected.ServeHTTP(anonRes, anonReq)
	require.Equal(t, http.StatusUnauthorized, anonRes.Code)

	// Bound session passes through.
	sess := &shared.Session{}
	sess.SetUser(user.ID)
	authReq := httptest.NewRequest(http.MethodGet, "/api/v1/produtos", nil)
	authReq = authReq.WithContext(shared.ContextWithSession(authReq.Context(), sess))
	authRes := httptest.NewRecorder()
	protected.ServeHTTP(authRes, authReq)
	require.Equal(t, http.StatusNoContent, authRes.Code)

	meReq := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	meReq = meReq.WithContext(shared.ContextWithSession(meReq.Context(), sess))
	meRes := httptest.NewRecorder()
	handler.Me(meRes, meReq)
	require.Equal(t, http.StatusOK, meRes.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(meRes.Body.Bytes(), &body))
	require.Equal(t, user.ID, body["id"])
}
