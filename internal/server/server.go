package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"feedback-insights-go/internal/dashboard"
	"feedback-insights-go/internal/dataset"
	"feedback-insights-go/internal/logger"
)

const xlsxFilename = "feedback_analysis.xlsx"

type Server struct {
	ctrl      *dashboard.Controller
	exportURL string
}

// NewRouter wires the dashboard routes. exportURL is the backend CSV export
// the browser is sent to.
func NewRouter(ctrl *dashboard.Controller, exportURL string) http.Handler {
	s := &Server{ctrl: ctrl, exportURL: exportURL}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLog)

	r.Get("/", s.page)
	r.Get("/api/dashboard", s.view)
	r.Get("/export/csv", s.exportCSV)
	r.Get("/export/xlsx", s.exportXLSX)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ok")
	})
	return r
}

func requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logger.New().WithRequest(r).
			WithField("status", ww.Status()).
			WithField("duration_ms", time.Since(start).Milliseconds()).
			Info("request handled")
	})
}

func (s *Server) page(w http.ResponseWriter, r *http.Request) {
	v := s.ctrl.Refresh(r.Context())

	var buf bytes.Buffer
	if err := dashboard.RenderHTML(&buf, v, dashboard.Links{CSV: "/export/csv", XLSX: "/export/xlsx"}); err != nil {
		logger.New().WithRequest(r).WithField("error", err.Error()).Error("render failed")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) view(w http.ResponseWriter, r *http.Request) {
	v := s.ctrl.Refresh(r.Context())
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logger.New().WithRequest(r).WithField("error", err.Error()).Error("failed to write response")
	}
}

// exportCSV sends the browser straight to the backend download.
func (s *Server) exportCSV(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, s.exportURL, http.StatusFound)
}

// exportXLSX builds a workbook from the latest successful view, refreshing
// first when there is none.
func (s *Server) exportXLSX(w http.ResponseWriter, r *http.Request) {
	reqLog := logger.New().WithRequest(r).WithField("handler", "export_xlsx")

	v := s.ctrl.Current()
	if v == nil || v.Status.State != dashboard.StateSuccess {
		v = s.ctrl.Refresh(r.Context())
	}
	if v.Status.State != dashboard.StateSuccess || v.Stats == nil {
		reqLog.WithField("state", v.Status.State).Warn("nothing to export")
		http.Error(w, v.Status.Message, http.StatusServiceUnavailable)
		return
	}

	var buf bytes.Buffer
	if err := dataset.WriteWorkbook(&buf, v.Stats); err != nil {
		reqLog.WithField("error", err.Error()).Error("workbook failed")
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", xlsxFilename))
	_, _ = w.Write(buf.Bytes())
}
