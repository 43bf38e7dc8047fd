package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-regform/pkg/engine"
	"github.com/goliatone/go-regform/pkg/session"
)

var referenceEvents = []session.Event{
	{Field: "firstName", Value: "Ganesh"},
	{Field: "lastName", Value: "Palina"},
	{Field: "email", Value: "ganesh@example.com"},
	{Field: "phone", Value: "7483938485"},
	{Field: "age", Value: "22"},
	{Field: "gender", Value: "Male"},
	{Field: "address", Value: "Main Street, Sample Area"},
	{Field: "country", Value: "India"},
	{Field: "state", Value: "Gujarat"},
	{Field: "city", Value: "Ahmedabad"},
	{Field: "password", Value: "StrongPass1!"},
	{Field: "confirmPassword", Value: "StrongPass1!"},
	{Field: "terms", Value: "true"},
}

func newTestServer(t *testing.T, options ...Option) (*Server, *httptest.Server) {
	t.Helper()
	e, err := engine.New()
	require.NoError(t, err)
	srv, err := New(e, options...)
	require.NoError(t, err)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return srv, ts
}

func do(t *testing.T, ts *httptest.Server, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			r = strings.NewReader(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			r = bytes.NewReader(raw)
		}
	}
	req, err := http.NewRequest(method, ts.URL+path, r)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createSession(t *testing.T, ts *httptest.Server) session.Snapshot {
	t.Helper()
	resp := do(t, ts, http.MethodPost, "/api/sessions", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	snap := decode[session.Snapshot](t, resp)
	require.NotEmpty(t, snap.ID)
	return snap
}

func applyField(t *testing.T, ts *httptest.Server, id string, ev any) session.Snapshot {
	t.Helper()
	resp := do(t, ts, http.MethodPost, "/api/sessions/"+id+"/fields", ev)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[session.Snapshot](t, resp)
}

func TestServer_FlowA_RejectedWithoutLastName(t *testing.T) {
	_, ts := newTestServer(t)
	id := createSession(t, ts).ID

	for _, ev := range referenceEvents {
		applyField(t, ts, id, ev)
	}
	snap := applyField(t, ts, id, session.Event{Field: "lastName", Value: ""})
	assert.False(t, snap.Result.CanSubmit)
	assert.Equal(t, engine.StatusMissing, snap.Result.Fields["lastName"].Status)

	resp := do(t, ts, http.MethodPost, "/api/sessions/"+id+"/submit", nil)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	out := decode[SubmitResponse](t, resp)
	assert.False(t, out.Accepted)
	assert.Equal(t, "Ganesh", out.Snapshot.State.FirstName)
	assert.True(t, out.Snapshot.Attempted)
}

func TestServer_FlowB_AcceptedAndReset(t *testing.T) {
	var mu sync.Mutex
	var regs []session.Registration
	_, ts := newTestServer(t, WithSessionOptions(session.WithSubmitHook(func(_ context.Context, reg session.Registration) error {
		mu.Lock()
		defer mu.Unlock()
		regs = append(regs, reg)
		return nil
	})))
	id := createSession(t, ts).ID

	for _, ev := range referenceEvents {
		applyField(t, ts, id, ev)
	}

	resp := do(t, ts, http.MethodPost, "/api/sessions/"+id+"/submit", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[SubmitResponse](t, resp)
	assert.True(t, out.Accepted)
	assert.True(t, out.Snapshot.State.IsEmpty())
	require.NotNil(t, out.Snapshot.Registration)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, regs, 1)
	assert.Equal(t, "Ahmedabad", regs[0].Form.City)
	assert.Empty(t, regs[0].Form.Password)
}

func TestServer_FlowC_CascadeAndStrength(t *testing.T) {
	_, ts := newTestServer(t)
	id := createSession(t, ts).ID

	applyField(t, ts, id, session.Event{Field: "country", Value: "United States"})
	snap := applyField(t, ts, id, session.Event{Field: "state", Value: "California"})
	assert.Contains(t, snap.CityOptions, "Los Angeles")
	assert.Contains(t, snap.CityOptions, "San Francisco")

	snap = applyField(t, ts, id, session.Event{Field: "country", Value: "India"})
	assert.Empty(t, snap.State.State)
	assert.Empty(t, snap.State.City)
	assert.Contains(t, snap.StateOptions, "Gujarat")

	snap = applyField(t, ts, id, session.Event{Field: "password", Value: "abcd1234"})
	assert.Equal(t, engine.StrengthWeak, snap.Strength)
	snap = applyField(t, ts, id, session.Event{Field: "password", Value: "Abcd1234!"})
	assert.Equal(t, engine.StrengthStrong, snap.Strength)
	assert.Empty(t, snap.State.Password, "snapshots must not echo passwords")
}

func TestServer_TermsAcceptsBoolean(t *testing.T) {
	_, ts := newTestServer(t)
	id := createSession(t, ts).ID

	snap := applyField(t, ts, id, map[string]any{"field": "termsAccepted", "value": true})
	assert.True(t, snap.State.TermsAccepted)
	snap = applyField(t, ts, id, map[string]any{"field": "terms", "value": false})
	assert.False(t, snap.State.TermsAccepted)
}

func TestServer_Errors(t *testing.T) {
	_, ts := newTestServer(t)
	id := createSession(t, ts).ID

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"unknown session", http.MethodGet, "/api/sessions/missing", nil, http.StatusNotFound},
		{"unknown field", http.MethodPost, "/api/sessions/" + id + "/fields", session.Event{Field: "nickname", Value: "x"}, http.StatusBadRequest},
		{"malformed body", http.MethodPost, "/api/sessions/" + id + "/fields", "{", http.StatusBadRequest},
		{"object value", http.MethodPost, "/api/sessions/" + id + "/fields", `{"field":"city","value":{}}`, http.StatusBadRequest},
		{"unknown key", http.MethodPost, "/api/sessions/" + id + "/fields", `{"field":"city","value":"x","extra":1}`, http.StatusBadRequest},
		{"wrong method", http.MethodPut, "/api/sessions/" + id, nil, http.StatusMethodNotAllowed},
		{"submit unknown", http.MethodPost, "/api/sessions/missing/submit", nil, http.StatusNotFound},
		{"states without country", http.MethodGet, "/api/locations/states", nil, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := do(t, ts, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestServer_ErrorBodiesAreJSON(t *testing.T) {
	_, ts := newTestServer(t)
	id := createSession(t, ts).ID

	cases := []struct {
		name   string
		method string
		path   string
		want   int
		allow  string
		errMsg string
	}{
		{"states without country", http.MethodGet, "/api/locations/states", http.StatusBadRequest, "", "missing country"},
		{"cities without state", http.MethodGet, "/api/locations/cities?country=India", http.StatusBadRequest, "", "missing country or state"},
		{"put collection", http.MethodPut, "/api/sessions", http.StatusMethodNotAllowed, "POST", "Method Not Allowed"},
		{"patch session", http.MethodPatch, "/api/sessions/" + id, http.StatusMethodNotAllowed, "GET, HEAD, DELETE", "Method Not Allowed"},
		{"post countries", http.MethodPost, "/api/locations/countries", http.StatusMethodNotAllowed, "GET, HEAD", "Method Not Allowed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := do(t, ts, tc.method, tc.path, nil)
			require.Equal(t, tc.want, resp.StatusCode)
			assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json"), resp.Header.Get("Content-Type"))
			if tc.allow != "" {
				assert.Equal(t, tc.allow, resp.Header.Get("Allow"))
			}
			body := decode[map[string]string](t, resp)
			assert.Equal(t, tc.errMsg, body["error"])
		})
	}
}

func TestServer_DeleteSession(t *testing.T) {
	srv, ts := newTestServer(t)
	id := createSession(t, ts).ID
	require.Equal(t, 1, srv.Store().Len())

	resp := do(t, ts, http.MethodDelete, "/api/sessions/"+id, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = do(t, ts, http.MethodDelete, "/api/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, 0, srv.Store().Len())
}

func TestServer_FormHTML(t *testing.T) {
	_, ts := newTestServer(t)
	id := createSession(t, ts).ID
	applyField(t, ts, id, session.Event{Field: "password", Value: "Abcd1234"})

	resp := do(t, ts, http.MethodGet, "/api/sessions/"+id+"/form", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	html := string(body)
	assert.Contains(t, html, `id="registrationForm"`)
	assert.Contains(t, html, "strength-bar strength-medium")
	assert.NotContains(t, html, ">Required<")

	resp = do(t, ts, http.MethodGet, "/api/sessions/"+id+"/form?errors=all", nil)
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), ">Required<")
}

func TestServer_Locations(t *testing.T) {
	_, ts := newTestServer(t)

	resp := do(t, ts, http.MethodGet, "/api/locations/cities?country=India&state=Gujarat&q=s", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[struct {
		Data []struct {
			Value string `json:"value"`
		} `json:"data"`
	}](t, resp)
	require.NotEmpty(t, out.Data)
	assert.Equal(t, "Surat", out.Data[0].Value)
}

func TestServer_OpenAPIMatchesRoutes(t *testing.T) {
	srv, ts := newTestServer(t)

	resp := do(t, ts, http.MethodGet, "/openapi.json", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc := decode[struct {
		Paths map[string]map[string]any `json:"paths"`
	}](t, resp)

	for _, pattern := range srv.Patterns() {
		method, path, ok := strings.Cut(pattern, " ")
		require.True(t, ok, pattern)
		item, ok := doc.Paths[path]
		require.True(t, ok, "path %s not documented", path)
		assert.Contains(t, item, strings.ToLower(method), "operation %s not documented", pattern)
	}
}
