package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rewired-gh/synthtel/internal/catalog"
	"github.com/rewired-gh/synthtel/internal/logger"
	"github.com/rewired-gh/synthtel/internal/synth"
)

// query reads typed query parameters and keeps the first parse error.
type query struct {
	values url.Values
	err    error
}

func newQuery(r *http.Request) *query {
	return &query{values: r.URL.Query()}
}

func (q *query) fail(name, raw, want string) {
	if q.err == nil {
		q.err = fmt.Errorf("%w: %s=%q is not %s", synth.ErrInvalidParameter, name, raw, want)
	}
}

func (q *query) str(name, def string) string {
	if v := q.values.Get(name); v != "" {
		return v
	}
	return def
}

func (q *query) int(name string, def int) int {
	raw := q.values.Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		q.fail(name, raw, "an integer")
		return def
	}
	return v
}

func (q *query) float(name string, def float64) float64 {
	raw := q.values.Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		q.fail(name, raw, "a number")
		return def
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		q.fail(name, raw, "a finite number")
		return def
	}
	return v
}

func (q *query) bool(name string, def bool) bool {
	raw := q.values.Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		q.fail(name, raw, "a boolean")
		return def
	}
	return v
}

func (q *query) env() catalog.Environment {
	env, err := catalog.ParseEnvironment(q.str("env", string(catalog.Prod)))
	if err != nil && q.err == nil {
		q.err = err
	}
	return env
}

const defaultService = "payment-api"

func (q *query) service() string {
	return q.str("service", defaultService)
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		logger.Error("Failed to encode response: %v", err)
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(errorBody{Error: "failed to encode response"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Warn("Failed to write response: %v", err)
	}
}

// writeError maps caller mistakes to 400 and everything else to 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, synth.ErrInvalidParameter) || errors.Is(err, synth.ErrUnsupportedVariant) {
		status = http.StatusBadRequest
	} else {
		logger.Error("Request %s failed: %v", RequestIDFrom(r.Context()), err)
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}
