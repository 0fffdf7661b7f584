package ui

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"gosurvey/domain/analysis"
	"gosurvey/domain/core"
	"gosurvey/internal/report"
)

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"snapshot": a.service.Dataset().SnapshotID,
	})
}

func (a *App) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.service.ListQuestions())
}

func (a *App) handleSearchQuestions(w http.ResponseWriter, r *http.Request) {
	a.metrics.QueriesTotal.WithLabelValues("search").Inc()
	term := r.URL.Query().Get("q")
	results := a.service.SearchQuestions(term)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"term":    term,
		"count":   len(results),
		"results": results,
	})
}

func (a *App) handleSearchOptions(w http.ResponseWriter, r *http.Request) {
	a.metrics.QueriesTotal.WithLabelValues("search").Inc()
	term := r.URL.Query().Get("q")
	results := a.service.SearchOptions(term)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"term":    term,
		"count":   len(results),
		"results": results,
	})
}

func (a *App) handleGetQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := questionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	q, err := a.service.Dataset().Registry.Lookup(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (a *App) handleQuestionOptions(w http.ResponseWriter, r *http.Request) {
	id, err := questionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	options, err := a.service.QuestionOptions(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"question_id": id,
		"options":     options,
	})
}

func (a *App) handleDistribution(w http.ResponseWriter, r *http.Request) {
	a.metrics.QueriesTotal.WithLabelValues("distribution").Inc()
	id, err := questionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	dist, err := a.service.GetDistribution(id)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := map[string]interface{}{
		"question_id":     dist.QuestionID,
		"question_label":  dist.QuestionLabel,
		"kind":            dist.Kind,
		"total_responses": dist.TotalResponses,
		"entries":         dist.SortedEntries(),
	}
	if t := r.URL.Query().Get("threshold"); t != "" {
		threshold, err := strconv.ParseFloat(t, 64)
		if err != nil {
			writeError(w, badRequest("threshold must be a number"))
			return
		}
		resp["above_threshold"] = dist.AboveThreshold(threshold)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *App) handleNumericSummary(w http.ResponseWriter, r *http.Request) {
	a.metrics.QueriesTotal.WithLabelValues("summary").Inc()
	id, err := questionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	summary, err := a.service.NumericSummary(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (a *App) handleCreateSubset(w http.ResponseWriter, r *http.Request) {
	a.metrics.QueriesTotal.WithLabelValues("subset").Inc()
	q := r.URL.Query()
	id, err := strconv.Atoi(q.Get("question"))
	if err != nil {
		writeError(w, badRequest("question must be an integer id"))
		return
	}
	option := q.Get("option")
	if option == "" {
		writeError(w, badRequest("option is required"))
		return
	}

	mode := analysis.MatchContains
	if m := q.Get("mode"); m != "" {
		mode = analysis.MatchMode(m)
		if mode != analysis.MatchContains && mode != analysis.MatchToken {
			writeError(w, badRequest("mode must be 'contains' or 'token'"))
			return
		}
	}

	subset, err := a.service.CreateSubsetMode(id, option, mode)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"subset":     subset,
		"size":       subset.Size(),
		"percentage": subset.Percentage(),
	})
}

func (a *App) handleCompare(w http.ResponseWriter, r *http.Request) {
	a.metrics.QueriesTotal.WithLabelValues("compare").Inc()
	q := r.URL.Query()
	groupQ, err := strconv.Atoi(q.Get("group_question"))
	if err != nil {
		writeError(w, badRequest("group_question must be an integer id"))
		return
	}
	groupOpt := q.Get("group_option")
	if groupOpt == "" {
		writeError(w, badRequest("group_option is required"))
		return
	}
	target, err := strconv.Atoi(q.Get("target"))
	if err != nil {
		writeError(w, badRequest("target must be an integer id"))
		return
	}

	group, err := a.service.CreateSubset(groupQ, groupOpt)
	if err != nil {
		writeError(w, err)
		return
	}
	dist, err := a.service.DistributionWithin(target, group)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"group_size":      group.Size(),
		"group_pct":       group.Percentage(),
		"target_question": dist.QuestionLabel,
		"total_responses": dist.TotalResponses,
		"entries":         dist.SortedEntries(),
	})
}

func (a *App) handleIndependence(w http.ResponseWriter, r *http.Request) {
	a.metrics.QueriesTotal.WithLabelValues("independence").Inc()
	q := r.URL.Query()
	qa, err := strconv.Atoi(q.Get("a"))
	if err != nil {
		writeError(w, badRequest("a must be an integer question id"))
		return
	}
	qb, err := strconv.Atoi(q.Get("b"))
	if err != nil {
		writeError(w, badRequest("b must be an integer question id"))
		return
	}

	result, err := a.service.TestIndependence(qa, qb)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	a.metrics.QueriesTotal.WithLabelValues("report").Inc()
	md, err := report.Generate(a.service.Dataset(), a.report)
	if err != nil {
		writeError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(report.RenderHTML(md))
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(md))
}

func questionID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, badRequest("question id must be an integer")
	}
	return id, nil
}

type httpError struct {
	status  int
	message string
}

func (e *httpError) Error() string {
	return e.message
}

func badRequest(message string) error {
	return &httpError{status: http.StatusBadRequest, message: message}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to HTTP statuses
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var he *httpError
	switch {
	case errors.As(err, &he):
		status = he.status
	case core.IsQuestionNotFound(err):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrInvalidQuestionType):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrOptionNotFound):
		status = http.StatusNotFound
	}

	writeJSON(w, status, map[string]string{"error": err.Error()})
}
