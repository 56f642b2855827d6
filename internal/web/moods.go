package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/justestif/wellness-journal/internal/journal"
)

// UpsertMood handles POST /api/moods.
func (h *Handlers) UpsertMood(w http.ResponseWriter, r *http.Request) {
	var in journal.MoodInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}

	mood, err := h.moods.Upsert(r.Context(), identity(r).UserID, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mood)
}

// ListMoods handles GET /api/moods.
func (h *Handlers) ListMoods(w http.ResponseWriter, r *http.Request) {
	moods, err := h.moods.List(r.Context(), identity(r).UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, moods)
}

// GetMood handles GET /api/moods/{date}.
func (h *Handlers) GetMood(w http.ResponseWriter, r *http.Request) {
	mood, err := h.moods.Get(r.Context(), identity(r).UserID, chi.URLParam(r, "date"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mood)
}

// DeleteMood handles DELETE /api/moods/{date}.
func (h *Handlers) DeleteMood(w http.ResponseWriter, r *http.Request) {
	if err := h.moods.Delete(r.Context(), identity(r).UserID, chi.URLParam(r, "date")); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Mood deleted successfully"})
}
