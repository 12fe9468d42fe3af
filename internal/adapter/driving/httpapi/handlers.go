package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/diillson/paidmedia-dashboard-go/internal/application/usecase"
	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
	"github.com/diillson/paidmedia-dashboard-go/internal/domain/metrics"
	"github.com/diillson/paidmedia-dashboard-go/internal/shared/types"
)

const isoDate = "2006-01-02"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// listOptimizations serves GET /api/optimizations. Brand is required; the
// date range applies only when both bounds are given. month and year select
// a calendar month instead.
func (s *Server) listOptimizations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	brand := strings.TrimSpace(q.Get("brand"))
	if brand == "" {
		writeError(w, http.StatusBadRequest, "Brand code is required")
		return
	}

	var (
		notes []entity.Optimization
		err   error
	)
	if q.Get("month") != "" && q.Get("year") != "" {
		month, mErr := strconv.Atoi(q.Get("month"))
		year, yErr := strconv.Atoi(q.Get("year"))
		if mErr != nil || yErr != nil || month < 1 || month > 12 {
			writeError(w, http.StatusBadRequest, "month must be 1-12 and year a number")
			return
		}
		notes, err = s.uc.ListOptimizationsByMonth(r.Context(), brand, time.Month(month), year, q.Get("platform"))
	} else {
		notes, err = s.uc.ListOptimizations(r.Context(), entity.OptimizationQuery{
			Brand:     brand,
			StartDate: q.Get("startDate"),
			EndDate:   q.Get("endDate"),
			Platform:  q.Get("platform"),
		})
	}
	if err != nil {
		s.log.WithError(err).WithField("brand", brand).Error("failed to fetch optimization data")
		writeError(w, http.StatusInternalServerError, "Failed to fetch optimization data")
		return
	}
	if notes == nil {
		notes = []entity.Optimization{}
	}
	writeJSON(w, http.StatusOK, notes)
}

func (s *Server) createOptimization(w http.ResponseWriter, r *http.Request) {
	var note entity.Optimization
	if err := json.NewDecoder(r.Body).Decode(&note); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	err := s.uc.AddOptimization(r.Context(), &note)
	switch {
	case errors.Is(err, types.ErrBrandRequired):
		writeError(w, http.StatusBadRequest, "Brand code is required")
	case errors.Is(err, types.ErrInvalidDate):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		s.log.WithError(err).Error("failed to save optimization")
		writeError(w, http.StatusInternalServerError, "Failed to save optimization")
	default:
		writeJSON(w, http.StatusCreated, note)
	}
}

func (s *Server) requireDataset(w http.ResponseWriter) (*usecase.Dataset, bool) {
	ds := s.dataset()
	if ds == nil {
		writeError(w, http.StatusServiceUnavailable, "no data loaded")
		return nil, false
	}
	return ds, true
}

// snapshots serves the dashboard table. Zero-conversion rows are hidden
// unless hideZero=false.
func (s *Server) snapshots(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.requireDataset(w)
	if !ok {
		return
	}

	q := r.URL.Query()
	args := &types.CLIArgs{
		GroupBy:   q.Get("groupBy"),
		SortKey:   q.Get("sort"),
		Direction: q.Get("direction"),
		Group:     q.Get("group"),
		ShowZero:  strings.EqualFold(q.Get("hideZero"), "false"),
		Platform:  q.Get("platform"),
		Publisher: q.Get("publisher"),
		GoodsSold: q.Get("goodsSold"),
		Goods:     q.Get("goods"),
		Campaign:  q.Get("campaign"),
	}
	var err error
	if args.StartDate, err = parseOptionalDate(q.Get("startDate")); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if args.EndDate, err = parseOptionalDate(q.Get("endDate")); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	query, err := usecase.QueryFromArgs(args, s.uc.Today(nil))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows := s.uc.Snapshots(ds, query)
	s.metrics.SnapshotRows.WithLabelValues(string(query.GroupBy)).Observe(float64(len(rows)))
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) groups(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.requireDataset(w)
	if !ok {
		return
	}
	groups := ds.Groups()
	if groups == nil {
		groups = []string{}
	}
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) trend(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.requireDataset(w)
	if !ok {
		return
	}

	q := r.URL.Query()
	unit := entity.TrendDay
	if v := q.Get("unit"); v != "" {
		u, valid := entity.ParseTrendUnit(strings.ToLower(v))
		if !valid {
			writeError(w, http.StatusBadRequest, types.ErrInvalidTrendUnit.Error())
			return
		}
		unit = u
	}
	days, err := parseDays(q.Get("days"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, s.uc.Trend(ds, usecase.TrendRequest{
		Goods: q.Get("goods"),
		Unit:  unit,
		Days:  days,
		Today: s.uc.Today(nil),
	}))
}

func (s *Server) drilldown(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.requireDataset(w)
	if !ok {
		return
	}

	q := r.URL.Query()
	days, err := parseDays(q.Get("days"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if days == 0 {
		days = metrics.DefaultDrilldownDays
	}
	unit := entity.TrendDay
	if v := q.Get("unit"); v != "" {
		u, valid := entity.ParseTrendUnit(strings.ToLower(v))
		if !valid {
			writeError(w, http.StatusBadRequest, types.ErrInvalidTrendUnit.Error())
			return
		}
		unit = u
	}

	d, err := s.uc.Drilldown(r.Context(), ds, usecase.DrilldownRequest{
		Goods:      q.Get("goods"),
		Days:       days,
		Unit:       unit,
		Today:      s.uc.Today(nil),
		Thresholds: s.cfg.Thresholds,
	})
	if errors.Is(err, types.ErrProductRequired) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) reload(w http.ResponseWriter, r *http.Request) {
	if err := s.Reload(r.Context()); err != nil {
		s.log.WithError(err).Error("reload failed")
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	ds := s.dataset()
	writeJSON(w, http.StatusOK, map[string]any{
		"records":   len(ds.Records),
		"targets":   len(ds.Targets),
		"loaded_at": ds.LoadedAt,
	})
}

func parseOptionalDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(isoDate, v)
	if err != nil {
		return time.Time{}, types.ErrInvalidDate
	}
	return t, nil
}

func parseDays(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, errors.New("days must be a positive number")
	}
	return n, nil
}
