// Package api exposes HTTP handlers for the gym registry service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"example.com/gym/internal/auth"
	"example.com/gym/internal/domain"
)

// Handler coordinates HTTP requests with the registry service.
type Handler struct {
	service *domain.Service
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/members", h.members)
	mux.HandleFunc("/v1/members/", h.memberSubpath)
	mux.HandleFunc("/v1/equipment", h.equipment)
	mux.HandleFunc("/v1/equipment/", h.equipmentSubpath)
	mux.HandleFunc("/v1/snapshot/save", h.saveSnapshot)
	mux.HandleFunc("/v1/snapshot/load", h.loadSnapshot)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) members(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createMember(w, r)
	case http.MethodGet:
		h.listMembers(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

// memberSubpath routes /v1/members/{id} and /v1/members/{id}/{workouts|summary|stats}.
func (h *Handler) memberSubpath(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/members/")
	if rest == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing member id")
		return
	}

	parts := strings.SplitN(rest, "/", 2)
	id, err := strconv.Atoi(parts[0])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "member id must be an integer")
		return
	}

	if len(parts) == 1 {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
			return
		}
		h.getMember(w, r, id)
		return
	}

	switch parts[1] {
	case "workouts":
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
			return
		}
		h.logWorkout(w, r, id)
	case "summary":
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
			return
		}
		h.memberSummary(w, r, id)
	case "stats":
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
			return
		}
		h.memberStats(w, r, id)
	default:
		writeError(w, http.StatusNotFound, "not_found", "unknown member resource")
	}
}

func (h *Handler) createMember(w http.ResponseWriter, r *http.Request) {
	if !requireScope(w, r, auth.ScopeGymWrite) {
		return
	}

	var req CreateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	member := h.service.AddMember(r.Context(), req.Name)
	writeJSON(w, http.StatusCreated, CreateMemberResponse{
		MemberID: member.MembershipID,
		Name:     member.Name,
	})
}

func (h *Handler) listMembers(w http.ResponseWriter, r *http.Request) {
	if !requireReadScope(w, r) {
		return
	}

	members := h.service.ListMembers(r.Context())
	items := make([]MemberView, 0, len(members))
	for _, member := range members {
		items = append(items, toMemberView(member))
	}
	writeJSON(w, http.StatusOK, ListMembersResponse{GymName: h.service.GymName(), Items: items})
}

func (h *Handler) getMember(w http.ResponseWriter, r *http.Request, id int) {
	if !requireReadScope(w, r) {
		return
	}

	member, err := h.service.GetMember(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "member not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toMemberView(member))
}

func (h *Handler) logWorkout(w http.ResponseWriter, r *http.Request, id int) {
	if !requireScope(w, r, auth.ScopeGymWrite) {
		return
	}

	var req LogWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	record, err := h.service.LogWorkout(r.Context(), id, req.Exercise, req.Sets, req.Reps, req.Weight)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "member not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toWorkoutView(record))
}

func (h *Handler) memberSummary(w http.ResponseWriter, r *http.Request, id int) {
	if !requireReadScope(w, r) {
		return
	}

	summary, err := h.service.MemberSummary(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "member not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, SummaryResponse{MemberID: id, Summary: summary})
}

func (h *Handler) memberStats(w http.ResponseWriter, r *http.Request, id int) {
	if !requireReadScope(w, r) {
		return
	}

	stats, err := h.service.MemberStats(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "member not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, StatsResponse{
		MemberID:           id,
		TotalWorkouts:      stats.TotalWorkouts,
		TotalVolume:        stats.TotalVolume,
		AverageVolume:      stats.AverageVolume,
		MostCommonExercise: stats.MostCommonExercise,
	})
}

func (h *Handler) equipment(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.addEquipment(w, r)
	case http.MethodGet:
		h.listEquipment(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

// equipmentSubpath routes /v1/equipment/{name}/{checkout|checkin|maintenance}.
func (h *Handler) equipmentSubpath(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/equipment/")
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing equipment name or action")
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	if !requireScope(w, r, auth.ScopeGymWrite) {
		return
	}

	name := parts[0]
	var err error
	switch parts[1] {
	case "checkout":
		err = h.service.CheckOutEquipment(r.Context(), name)
	case "checkin":
		err = h.service.CheckInEquipment(r.Context(), name)
	case "maintenance":
		err = h.service.PerformMaintenance(r.Context(), name)
	default:
		writeError(w, http.StatusNotFound, "not_found", "unknown equipment action")
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEquipmentNotFound):
			writeError(w, http.StatusNotFound, "not_found", "equipment not found")
		case errors.Is(err, domain.ErrEquipmentUnavailable):
			writeError(w, http.StatusConflict, "conflict", "equipment is checked out")
		default:
			writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addEquipment(w http.ResponseWriter, r *http.Request) {
	if !requireScope(w, r, auth.ScopeGymWrite) {
		return
	}

	var req AddEquipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	if err := h.service.AddEquipment(r.Context(), req.Name, req.Weight); err != nil {
		if errors.Is(err, domain.ErrEquipmentExists) {
			writeError(w, http.StatusConflict, "conflict", "equipment already registered")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) listEquipment(w http.ResponseWriter, r *http.Request) {
	if !requireReadScope(w, r) {
		return
	}

	units := h.service.ListEquipment(r.Context())
	items := make([]EquipmentView, 0, len(units))
	for _, unit := range units {
		items = append(items, EquipmentView{
			Name:             unit.Name,
			Weight:           unit.Weight,
			Available:        unit.Available,
			TimesUsed:        unit.TimesUsed,
			NeedsMaintenance: unit.NeedsMaintenance(),
		})
	}
	writeJSON(w, http.StatusOK, ListEquipmentResponse{Items: items})
}

func (h *Handler) saveSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	if !requireScope(w, r, auth.ScopeGymWrite) {
		return
	}

	// Persistence failures are reported in the body, not as an HTTP error:
	// the in-memory registry is intact either way.
	outcome := h.service.SaveSnapshot()
	writeJSON(w, http.StatusOK, toSnapshotView(outcome))
}

func (h *Handler) loadSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	if !requireScope(w, r, auth.ScopeGymWrite) {
		return
	}

	outcome := h.service.LoadSnapshot()
	writeJSON(w, http.StatusOK, toSnapshotView(outcome))
}

func requireScope(w http.ResponseWriter, r *http.Request, scope string) bool {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return false
	}
	if !claims.HasScope(scope) {
		writeError(w, http.StatusForbidden, "forbidden", "scope "+scope+" required")
		return false
	}
	return true
}

// requireReadScope accepts either read or write scope: writers may also read.
func requireReadScope(w http.ResponseWriter, r *http.Request) bool {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return false
	}
	if !claims.HasScope(auth.ScopeGymRead) && !claims.HasScope(auth.ScopeGymWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope gym:read required")
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
