package web

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/justestif/wellness-journal/internal/auth"
	"github.com/justestif/wellness-journal/internal/journal"
	"github.com/justestif/wellness-journal/internal/metrics"
	"github.com/justestif/wellness-journal/internal/moods"
	"github.com/justestif/wellness-journal/internal/notes"
)

// Handlers contains HTTP handlers for the journal API.
type Handlers struct {
	auth    *auth.Service
	notes   *notes.Service
	moods   *moods.Service
	log     *logrus.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authSvc *auth.Service, notesSvc *notes.Service, moodsSvc *moods.Service, log *logrus.Logger, m *metrics.Metrics) *Handlers {
	return &Handlers{
		auth:    authSvc,
		notes:   notesSvc,
		moods:   moodsSvc,
		log:     log,
		metrics: m,
		now:     time.Now,
	}
}

func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, r, h.log, err)
}

// Health reports liveness (GET /health).
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}

// Register creates an account (POST /api/auth/register).
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var in journal.RegisterInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}

	res, err := h.auth.Register(r.Context(), in)
	h.metrics.RecordAuth("register", outcome(err))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// Login exchanges credentials for a token (POST /api/auth/login).
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var in journal.LoginInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}

	res, err := h.auth.Login(r.Context(), in)
	h.metrics.RecordAuth("login", outcome(err))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Me returns the caller's account (GET /api/auth/me).
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.CurrentUser(r.Context(), identity(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// Logout acknowledges a logout (POST /api/auth/logout). Tokens are
// stateless; the client discards its copy.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

// RequireAuth rejects requests without a valid bearer token and attaches the
// caller's identity to the request context.
func (h *Handlers) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			h.fail(w, r, journal.Unauthenticated("No token provided"))
			return
		}

		id, err := h.auth.VerifyToken(token)
		if err != nil {
			h.fail(w, r, err)
			return
		}

		setRequestUser(r.Context(), id.UserID.String())
		next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// identity returns the caller set by RequireAuth.
func identity(r *http.Request) journal.Identity {
	id, _ := auth.IdentityFrom(r.Context())
	return id
}

func outcome(err error) string {
	var verr *journal.ValidationError
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &verr):
		return "invalid"
	case errors.Is(err, journal.ErrConflict):
		return "conflict"
	case errors.Is(err, journal.ErrUnauthenticated):
		return "rejected"
	default:
		return "error"
	}
}
