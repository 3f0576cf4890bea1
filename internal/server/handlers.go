package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/rewired-gh/synthtel/internal/catalog"
	"github.com/rewired-gh/synthtel/internal/generator"
	"github.com/rewired-gh/synthtel/internal/models"
	"github.com/rewired-gh/synthtel/internal/synth"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

type servicesResponse struct {
	Services     []string                 `json:"services"`
	Environments []catalog.Environment    `json:"environments"`
	MetricTypes  []generator.ReportKind   `json:"metric_types"`
	Scenarios    []generator.ScenarioKind `json:"scenarios"`
	AnomalyKinds []synth.AnomalyKind      `json:"anomaly_kinds"`
}

func (s *Server) handleServices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, servicesResponse{
		Services:     s.gen.Catalog().Services(),
		Environments: catalog.Environments(),
		MetricTypes:  generator.ReportKinds(),
		Scenarios:    generator.ScenarioKinds(),
		AnomalyKinds: synth.AnomalyKinds(),
	})
}

func (s *Server) handleMetric(w http.ResponseWriter, r *http.Request) {
	kind, err := generator.ParseReportKind(mux.Vars(r)["metric"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	q := newQuery(r)
	service, env := q.service(), q.env()
	hours := q.int("hours", s.gen.Config().DefaultHours)
	anomaly := q.bool("anomaly", false)
	if q.err != nil {
		writeError(w, r, q.err)
		return
	}

	report, err := s.gen.Metric(kind, service, env, hours, anomaly)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	params := synth.Params{
		DurationHours:   q.float("duration_hours", float64(s.gen.Config().DefaultHours)),
		IntervalMinutes: q.float("interval_minutes", s.gen.Config().IntervalMinutes),
		Baseline:        q.float("baseline", 50),
		NoiseStdDev:     q.float("noise", 5),
	}

	var spec *synth.AnomalySpec
	if raw := q.str("anomaly", ""); raw != "" {
		kind, err := synth.ParseAnomalyKind(raw)
		if err != nil {
			writeError(w, r, err)
			return
		}
		spec = &synth.AnomalySpec{
			Kind:             kind,
			StartFraction:    q.float("start", catalog.AnomalyStart),
			DurationFraction: q.float("duration", catalog.AnomalyDuration),
			Magnitude:        q.float("magnitude", 2.0),
		}
	}
	if q.err != nil {
		writeError(w, r, q.err)
		return
	}

	report, err := s.gen.Series(params, spec)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

type logsResponse struct {
	Service     string            `json:"service"`
	Environment string            `json:"environment"`
	Count       int               `json:"count"`
	Logs        []models.LogEntry `json:"logs"`
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	service, env := q.service(), q.env()
	hours := q.int("hours", 1)
	withErrors := q.bool("errors", false)
	if q.err != nil {
		writeError(w, r, q.err)
		return
	}

	logs, err := s.gen.Logs(service, env, hours, withErrors)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, logsResponse{Service: service, Environment: string(env), Count: len(logs), Logs: logs})
}

type tracesResponse struct {
	Service     string         `json:"service"`
	Environment string         `json:"environment"`
	Count       int            `json:"count"`
	Traces      []models.Trace `json:"traces"`
}

func (s *Server) handleTraces(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	service, env := q.service(), q.env()
	count := q.int("count", 10)
	slow := q.bool("slow", false)
	if q.err != nil {
		writeError(w, r, q.err)
		return
	}

	traces, err := s.gen.Traces(service, env, count, slow)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tracesResponse{Service: service, Environment: string(env), Count: len(traces), Traces: traces})
}

type alertsResponse struct {
	Service     string         `json:"service"`
	Environment string         `json:"environment"`
	Count       int            `json:"count"`
	Alerts      []models.Alert `json:"alerts"`
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	service, env := q.service(), q.env()
	hours := q.int("hours", s.gen.Config().DefaultHours)
	if q.err != nil {
		writeError(w, r, q.err)
		return
	}

	alerts, err := s.gen.Alerts(service, env, hours)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, alertsResponse{Service: service, Environment: string(env), Count: len(alerts), Alerts: alerts})
}

func (s *Server) handleScenario(w http.ResponseWriter, r *http.Request) {
	kind, err := generator.ParseScenarioKind(mux.Vars(r)["scenario"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	q := newQuery(r)
	service, env := q.service(), q.env()
	if q.err != nil {
		writeError(w, r, q.err)
		return
	}

	sc, err := s.gen.Scenario(kind, service, env)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	kind, err := generator.ParseReportKind(q.str("metric", string(generator.ReportCPU)))
	if err != nil {
		writeError(w, r, err)
		return
	}
	service, env := q.service(), q.env()
	current := q.int("current_hours", s.gen.Config().DefaultHours)
	past := q.int("past_hours", s.gen.Config().DefaultHours)
	if q.err != nil {
		writeError(w, r, q.err)
		return
	}

	cmp, err := s.gen.Compare(service, env, kind, current, past)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cmp)
}

func (s *Server) handleWindow(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	service, env := q.service(), q.env()
	minutes := q.int("window_minutes", 60)
	if q.err != nil {
		writeError(w, r, q.err)
		return
	}

	report, err := s.gen.Window(service, env, minutes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
