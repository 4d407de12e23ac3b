package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jober-app/go-alimtalk-client/api"
	"github.com/stretchr/testify/require"
)

func newClientFixture(t *testing.T, handler http.Handler) (*api.Client, *recordingAlerter, *int) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	alerter := &recordingAlerter{}
	logouts := 0
	guard := api.NewExpiryGuard(alerter, func() { logouts++ })
	client, err := api.New(srv.URL, guard)
	require.NoError(t, err)
	return client, alerter, &logouts
}

func TestLoginSetsSessionCookieAndSendsRequestID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+api.RouteUserLogin, func(w http.ResponseWriter, r *http.Request) {
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var req api.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "alice", req.Username)

		http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "abc"})
		_ = json.NewEncoder(w).Encode(api.User{UserID: 1, Username: "alice"})
	})
	mux.HandleFunc("GET "+api.RouteSpacesList, func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("JSESSIONID")
		require.NoError(t, err, "session cookie must ride along on every request")
		require.Equal(t, "abc", cookie.Value)
		_, _ = w.Write([]byte(`[]`))
	})

	client, _, _ := newClientFixture(t, mux)

	user, err := client.Login(context.Background(), api.LoginRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, api.User{UserID: 1, Username: "alice"}, user)

	_, err = client.ListSpaces(context.Background())
	require.NoError(t, err)
}

func TestLoginFailureIsNotTreatedAsExpiry(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+api.RouteUserLogin, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "wrong password"})
	})

	client, alerter, logouts := newClientFixture(t, mux)

	_, err := client.Login(context.Background(), api.LoginRequest{Username: "alice", Password: "nope"})
	require.Error(t, err)
	require.NotErrorIs(t, err, api.ErrSessionExpired)
	require.Equal(t, 401, api.StatusOf(err))
	require.Zero(t, alerter.count())
	require.Zero(t, *logouts)
}

func TestProtectedEndpointExpiryIsSuppressed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+api.RouteSpacesList, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	client, alerter, logouts := newClientFixture(t, mux)

	_, err := client.ListSpaces(context.Background())
	require.ErrorIs(t, err, api.ErrSessionExpired)
	require.Equal(t, 1, alerter.count())
	require.Equal(t, 1, *logouts)
}

func TestGenericServerErrorPropagates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+api.RouteTemplateList, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "boom"})
	})

	client, alerter, logouts := newClientFixture(t, mux)

	_, err := client.ListTemplates(context.Background(), 1)
	require.Error(t, err)
	require.Equal(t, 500, api.StatusOf(err))
	require.Equal(t, 1, alerter.count())
	require.Zero(t, *logouts)
}

func TestConnectivityFailureAlertsAndPropagates(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing listening anymore

	alerter := &recordingAlerter{}
	guard := api.NewExpiryGuard(alerter, func() {})
	client, err := api.New(srv.URL, guard)
	require.NoError(t, err)

	_, err = client.ListSpaces(context.Background())
	require.ErrorIs(t, err, api.ErrNoResponse)
	require.Equal(t, 1, alerter.count())
}

func TestListTemplatesNormalizesTemplateID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+api.RouteTemplateList, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "7", r.URL.Query().Get("spaceId"))
		_, _ = w.Write([]byte(`[{"templateId": 3, "title": "Welcome", "parameterizedTemplate": "Hi #{name}"}]`))
	})

	client, _, _ := newClientFixture(t, mux)

	list, err := client.ListTemplates(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, 3, list[0].ID)
	require.Equal(t, "Welcome", list[0].Title)
}

func TestIsDuplicateErr(t *testing.T) {
	require.True(t, api.IsDuplicateErr(&api.Error{Status: 409, Message: "username already exists"}))
	require.True(t, api.IsDuplicateErr(&api.Error{Status: 400, Message: "중복된 이메일입니다"}))
	require.False(t, api.IsDuplicateErr(&api.Error{Status: 400, Message: "invalid email"}))
	require.False(t, api.IsDuplicateErr(context.Canceled))
}
