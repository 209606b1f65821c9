package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"clientvoice/internal/app"
	"clientvoice/internal/auth"
	"clientvoice/internal/domain"
	"clientvoice/internal/dto"
)

const maxBody = 1 << 20

type Handlers struct {
	Q         *app.QueryService
	C         *app.CommandService
	Tokens    auth.TokenService
	SubmitRPS int
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	// public page
	s.mux.Get("/public/{slug}", h.publicProfile)
	s.mux.Post("/clients/{slug}/verify-secret", h.verifySecret)
	s.mux.Get("/clients/{slug}/avis", h.listReviews)
	s.mux.With(RateLimit(h.SubmitRPS, h.SubmitRPS)).Post("/clients/{slug}/avis", h.submitReview)

	// back office
	s.mux.Post("/admin/register", h.register)
	s.mux.Post("/admin/login", h.login)
	s.mux.Group(func(r chi.Router) {
		r.Use(Auth(h.Tokens))
		r.Get("/admin/me", h.me)
		r.Put("/admin/me", h.updateMe)
		r.Get("/admin/clients", h.listClients)
		r.Post("/admin/clients", h.createClient)
		r.Get("/admin/clients/{id}", h.getClient)
		r.Put("/admin/clients/{id}", h.updateClient)
		r.Delete("/admin/clients/{id}", h.deleteClient)
		r.Get("/admin/avis", h.adminReviews)
		r.Get("/admin/avis/export", h.exportReviews)
		r.Delete("/admin/avis/{id}", h.deleteReview)
		r.Get("/admin/dashboard", h.dashboard)
	})
}

/********** response helpers **********/

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// statusFor is the single mapping from domain errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidSecret), errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func writeErr(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	detail := err.Error()
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		detail = ve.Error()
	case status == http.StatusNotFound:
		detail = "not found"
	case errors.Is(err, domain.ErrInvalidSecret):
		detail = domain.ErrInvalidSecret.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		detail = "invalid credentials"
	case status == http.StatusInternalServerError:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		detail = "internal error"
	}
	writeProblem(w, status, http.StatusText(status), detail)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCacheable answers 304 when the client already has this version.
func writeCacheable(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if etag == "" {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "internal error")
		return
	}
	w.Header().Set("ETag", etag)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "request body must be valid JSON")
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return 0, false
	}
	return id, true
}

// queryInt parses an optional integer query parameter; 0 when absent.
func queryInt(w http.ResponseWriter, r *http.Request, key string) (int, bool) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid "+key, fmt.Sprintf("%s must be a non-negative integer", key))
		return 0, false
	}
	return n, true
}

/********** public handlers **********/

func (h *Handlers) publicProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.Q.PublicProfile(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	w.Header().Set("Content-Language", string(p.Langue))
	writeCacheable(w, r, p)
}

func (h *Handlers) verifySecret(w http.ResponseWriter, r *http.Request) {
	var in dto.SecretInput
	if !decode(w, r, &in) {
		return
	}
	if err := h.Q.VerifySecret(r.Context(), chi.URLParam(r, "slug"), in.SecretCode); err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	rs, err := h.Q.ListReviews(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeCacheable(w, r, rs)
}

func (h *Handlers) submitReview(w http.ResponseWriter, r *http.Request) {
	var in dto.ReviewInput
	if !decode(w, r, &in) {
		return
	}
	id, err := h.C.SubmitReview(r.Context(), chi.URLParam(r, "slug"), in)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

/********** admin handlers **********/

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var in dto.RegisterInput
	if !decode(w, r, &in) {
		return
	}
	a, err := h.C.Register(r.Context(), in)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var in dto.LoginInput
	if !decode(w, r, &in) {
		return
	}
	res, err := h.C.Login(r.Context(), in)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) me(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	if claims == nil {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "missing claims")
		return
	}
	a, err := h.Q.Me(r.Context(), claims.AdminID)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *Handlers) updateMe(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	if claims == nil {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "missing claims")
		return
	}
	var in dto.ProfileInput
	if !decode(w, r, &in) {
		return
	}
	a, err := h.C.UpdateMe(r.Context(), claims.AdminID, in)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *Handlers) listClients(w http.ResponseWriter, r *http.Request) {
	page, ok := queryInt(w, r, "page")
	if !ok {
		return
	}
	q := r.URL.Query()
	out, err := h.Q.ListClients(r.Context(), dto.ClientQuery{
		Search:   q.Get("q"),
		Status:   q.Get("statut"),
		Language: q.Get("langue"),
		Page:     page,
	})
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) createClient(w http.ResponseWriter, r *http.Request) {
	var in dto.ClientInput
	if !decode(w, r, &in) {
		return
	}
	c, err := h.C.CreateClient(r.Context(), in)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handlers) getClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	c, err := h.Q.GetClient(r.Context(), id)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handlers) updateClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in dto.ClientInput
	if !decode(w, r, &in) {
		return
	}
	c, err := h.C.UpdateClient(r.Context(), id, in)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handlers) deleteClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.C.DeleteClient(r.Context(), id); err != nil {
		writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) adminReviews(w http.ResponseWriter, r *http.Request) {
	page, ok := queryInt(w, r, "page")
	if !ok {
		return
	}
	note, ok := queryInt(w, r, "note")
	if !ok {
		return
	}
	out, err := h.Q.AdminReviews(r.Context(), dto.ReviewQuery{
		ClientName: r.URL.Query().Get("client"),
		Note:       note,
		Page:       page,
	})
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) deleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.C.DeleteReview(r.Context(), id); err != nil {
		writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) exportReviews(w http.ResponseWriter, r *http.Request) {
	b, err := h.Q.ExportReviewsXLSX(r.Context())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="avis.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(b); err != nil {
		log.Error().Err(err).Msg("failed to write export body")
	}
}

func (h *Handlers) dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.Q.Dashboard(r.Context())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
