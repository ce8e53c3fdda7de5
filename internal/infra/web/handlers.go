package web

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"learner-practice-portal/internal/domain/model"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func actionParam(r *http.Request) (model.ActionType, bool) {
	action := model.ActionType(chi.URLParam(r, "action"))
	return action, action.Valid()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"offline": s.state.Offline(),
	})
}

type planView struct {
	ID                 model.PlanID       `json:"id"`
	Name               string             `json:"name"`
	MaxScenariosPerDay int                `json:"max_scenarios_per_day"`
	MaxQuestionsPerDay int                `json:"max_questions_per_day"`
	PriceCents         int64              `json:"price_cents"`
	BillingCycle       model.BillingCycle `json:"billing_cycle"`
}

func (s *Server) handlePlans(w http.ResponseWriter, r *http.Request) {
	plans := s.catalog.List()
	sort.Slice(plans, func(i, j int) bool {
		if plans[i].PriceCents != plans[j].PriceCents {
			return plans[i].PriceCents < plans[j].PriceCents
		}
		return plans[i].ID < plans[j].ID
	})
	out := make([]planView, 0, len(plans))
	for _, p := range plans {
		out = append(out, planView{
			ID:                 p.ID,
			Name:               p.Name,
			MaxScenariosPerDay: p.MaxScenariosPerDay,
			MaxQuestionsPerDay: p.MaxQuestionsPerDay,
			PriceCents:         p.PriceCents,
			BillingCycle:       p.BillingCycle,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	action, ok := actionParam(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown action"})
		return
	}
	allowed := s.ent.CanPerform(r.Context(), UserID(r), action)
	writeJSON(w, http.StatusOK, map[string]any{
		"action":  action,
		"allowed": allowed,
		"offline": s.state.Offline(),
	})
}

func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	action, ok := actionParam(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown action"})
		return
	}
	recorded := s.ent.RecordUsage(r.Context(), UserID(r), action)
	writeJSON(w, http.StatusOK, map[string]any{
		"action":   action,
		"recorded": recorded,
	})
}

func (s *Server) handleGetUsage(w http.ResponseWriter, r *http.Request) {
	usage := s.usage.GetUsage(r.Context(), UserID(r))
	writeJSON(w, http.StatusOK, usage)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing user id"})
		return
	}
	reset := s.usage.ResetUsage(r.Context(), userID)
	writeJSON(w, http.StatusOK, map[string]any{"reset": reset})
}
