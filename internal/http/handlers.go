package http

import (
	"encoding/json"
	"net/http"
	"time"

	applog "github.com/felipe-tno/moneymate/internal/log"
	"github.com/felipe-tno/moneymate/internal/session"
)

const sessionCookieName = "sessao"

type mensagemRequest struct {
	Texto string `json:"texto"`
}

type mensagemResponse struct {
	Resposta string `json:"resposta"`
	Sessao   string `json:"sessao"`
}

type orcamentoRequest struct {
	Categoria string  `json:"categoria"`
	Valor     float64 `json:"valor"`
}

type orcamentoResponse struct {
	Mensagem string `json:"mensagem"`
}

type gastoResponse struct {
	ID        string    `json:"id_gasto"`
	Descricao string    `json:"descricao"`
	Valor     float64   `json:"valor"`
	Categoria string    `json:"categoria"`
	CriadoEm  time.Time `json:"criado_em"`
}

type errorResponse struct {
	Erro string `json:"erro"`
}

// resolveSession finds the caller's conversation. The X-Session-Id header
// wins over the cookie; unknown or absent ids mint a fresh session, and the
// cookie is refreshed whenever the id the client sent is not the one in use.
func (s *Server) resolveSession(w http.ResponseWriter, r *http.Request) *session.Session {
	id := r.Header.Get("X-Session-Id")
	if id == "" {
		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			id = cookie.Value
		}
	}

	sess, created := s.sessions.GetOrCreate(id)
	if created || sess.ID != id {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "index.html", nil); err != nil {
		s.logger.Error("failed rendering index", applog.FieldError, err)
	}
}

func (s *Server) handleMensagem(w http.ResponseWriter, r *http.Request) {
	var req mensagemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Erro: "JSON inválido"})
		return
	}

	sess := s.resolveSession(w, r)
	resposta := s.conversation.Handle(r.Context(), sess, req.Texto)

	writeJSON(w, http.StatusOK, mensagemResponse{
		Resposta: resposta,
		Sessao:   sess.ID,
	})
}

func (s *Server) handleDefinirOrcamento(w http.ResponseWriter, r *http.Request) {
	var req orcamentoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Erro: "JSON inválido"})
		return
	}

	sess := s.resolveSession(w, r)
	mensagem := s.conversation.DefineBudget(r.Context(), sess, req.Categoria, req.Valor)

	writeJSON(w, http.StatusOK, orcamentoResponse{Mensagem: mensagem})
}

func (s *Server) handleGastos(w http.ResponseWriter, r *http.Request) {
	sess := s.resolveSession(w, r)

	expenses, err := s.conversation.ListExpenses(r.Context(), sess)
	if err != nil {
		s.logger.Error("failed listing expenses",
			applog.FieldError, err,
			applog.FieldSessionID, sess.ID)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Erro: "Erro ao buscar gastos."})
		return
	}

	out := make([]gastoResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, gastoResponse{
			ID:        e.ID,
			Descricao: e.Description,
			Valor:     e.Amount.Float(),
			Categoria: e.Category.String(),
			CriadoEm:  e.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if s.readyCheck != nil {
		if err := s.readyCheck(r.Context()); err != nil {
			s.logger.Warn("readiness check failed", applog.FieldError, err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
