package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type handlerResponse struct {
	Data []Option `json:"data"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) handlerResponse {
	t.Helper()
	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON content-type, got %q", ct)
	}
	var payload handlerResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return payload
}

func TestHandler_StatesForCountry(t *testing.T) {
	h := NewHandler(LookupStates)
	req := httptest.NewRequest(http.MethodGet, "/api/locations/states?country=United+States", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	payload := decode(t, rec)
	found := false
	for _, opt := range payload.Data {
		if opt.Value == "California" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected California in %#v", payload.Data)
	}
}

func TestHandler_UnknownCountryReturnsEmptyArray(t *testing.T) {
	h := NewHandler(LookupCities)
	req := httptest.NewRequest(http.MethodGet, "/api/locations/cities?country=Atlantis&state=Deep", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	payload := decode(t, rec)
	if payload.Data == nil || len(payload.Data) != 0 {
		t.Fatalf("expected empty data array, got %#v", payload.Data)
	}
}

func TestHandler_MissingParentIsBadRequest(t *testing.T) {
	for _, tc := range []struct {
		lookup Lookup
		target string
		want   string
	}{
		{LookupStates, "/api/locations/states", "missing country"},
		{LookupCities, "/api/locations/cities?country=India", "missing country or state"},
	} {
		rec := httptest.NewRecorder()
		NewHandler(tc.lookup).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.target, nil))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tc.target, rec.Code)
		}
		got := decodeError(t, rec)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("%s: error body mismatch (-want +got):\n%s", tc.target, diff)
		}
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON error body, got content type %q", ct)
	}
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return payload.Error
}

func TestHandler_CustomCatalogAndSearch(t *testing.T) {
	c, err := NewBuilder().Add("India", "Gujarat", "Ahmedabad", "Surat").Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	h := NewHandler(LookupCities, WithCatalog(c), WithSearchParam("search"))
	req := httptest.NewRequest(http.MethodGet, "/x?country=India&state=Gujarat&search=sur", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	payload := decode(t, rec)
	if diff := cmp.Diff([]Option{{Value: "Surat", Label: "Surat"}}, payload.Data); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	h := NewHandler(LookupCountries)
	req := httptest.NewRequest(http.MethodPost, "/api/locations/countries", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); !strings.Contains(allow, http.MethodGet) {
		t.Fatalf("expected Allow header, got %q", allow)
	}
	if got := decodeError(t, rec); got != http.StatusText(http.StatusMethodNotAllowed) {
		t.Fatalf("unexpected error message %q", got)
	}
}

func TestHandler_GuardStatus(t *testing.T) {
	h := NewHandler(LookupCountries, WithGuard(func(*http.Request) error {
		return StatusError{Code: http.StatusUnauthorized, Err: errors.New("no token")}
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/locations/countries", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

type recordingMux struct {
	patterns []string
}

func (m *recordingMux) Handle(pattern string, _ http.Handler) {
	m.patterns = append(m.patterns, pattern)
}

func TestRegisterRoutes(t *testing.T) {
	mux := &recordingMux{}
	patterns, err := RegisterRoutes(mux, "/v1/", WithRoutePath("geo/"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	want := []string{"/v1/geo/countries", "/v1/geo/states", "/v1/geo/cities"}
	if diff := cmp.Diff(want, patterns); diff != "" {
		t.Fatalf("patterns mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, mux.patterns); diff != "" {
		t.Fatalf("mux patterns mismatch (-want +got):\n%s", diff)
	}

	if _, err := RegisterRoutes(nil, ""); err == nil {
		t.Fatalf("expected error for nil mux")
	}
}
