package catalog

import (
	"encoding/json"
	"errors"
	"iter"
	"net/http"
	"strconv"
	"strings"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type optionsResponse struct {
	Data []Option `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError answers with a JSON {"error": msg} body. An empty msg uses the
// status text.
func writeError(w http.ResponseWriter, code int, msg string) {
	if msg == "" {
		msg = http.StatusText(code)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg})
}

// Lookup names one of the option lists the handler serves.
type Lookup string

const (
	LookupCountries Lookup = "countries"
	LookupStates    Lookup = "states"
	LookupCities    Lookup = "cities"
)

// NewHandler builds a handler for a single lookup with default options plus
// any overrides.
func NewHandler(lookup Lookup, fns ...OptionFn) http.Handler {
	return HandlerWithOptions(lookup, NewOptions(fns...))
}

// HandlerWithOptions builds a handler for lookup from a pre-constructed
// Options value. A nil Options.Catalog falls back to the embedded default.
func HandlerWithOptions(lookup Lookup, opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			writeError(w, http.StatusBadRequest, "")
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			writeError(w, http.StatusMethodNotAllowed, "")
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		c := opts.Catalog
		if c == nil {
			loaded, err := Default()
			if err != nil {
				writeError(w, http.StatusInternalServerError, "")
				return
			}
			c = loaded
		}

		query := r.URL.Query()
		country := strings.TrimSpace(query.Get(opts.CountryParam))
		state := strings.TrimSpace(query.Get(opts.StateParam))
		var seq iter.Seq[string]
		switch lookup {
		case LookupCountries:
			seq = c.Countries()
		case LookupStates:
			if country == "" {
				writeError(w, http.StatusBadRequest, "missing "+opts.CountryParam)
				return
			}
			seq = c.States(country)
		case LookupCities:
			if country == "" || state == "" {
				writeError(w, http.StatusBadRequest, "missing "+opts.CountryParam+" or "+opts.StateParam)
				return
			}
			seq = c.Cities(country, state)
		default:
			writeError(w, http.StatusNotFound, "")
			return
		}

		results := Filter(seq, query.Get(opts.SearchParam), parseInt(query.Get(opts.LimitParam)), opts)
		if results == nil {
			results = []Option{}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}

		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(true)
		_ = enc.Encode(optionsResponse{Data: results})
	})
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		writeError(w, http.StatusForbidden, "")
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	writeError(w, code, "")
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
