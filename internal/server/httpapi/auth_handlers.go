package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/listkeeper/internal/server/models"
	"github.com/dmitrijs2005/listkeeper/internal/server/services"
)

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var input services.SignupInput
	if !s.decodeBody(w, r, &input) {
		return
	}

	result, err := s.auth.Signup(r.Context(), input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "user signed up", "userId", result.User.ID)
	s.writeJSON(w, http.StatusCreated, result)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var input services.LoginInput
	if !s.decodeBody(w, r, &input) {
		return
	}

	result, err := s.auth.Login(r.Context(), input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleRevalidate(w http.ResponseWriter, r *http.Request) {
	user, _ := CurrentUser(r.Context())

	result, err := s.auth.Revalidate(r.Context(), user)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

// profileResponse enriches the identity with its on-demand aggregates.
type profileResponse struct {
	*models.User
	ItemCount int64 `json:"itemCount"`
	ListCount int64 `json:"listCount"`
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	user, _ := CurrentUser(r.Context())

	itemCount, err := s.items.CountByUser(r.Context(), user)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	listCount, err := s.lists.CountByUser(r.Context(), user)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, profileResponse{User: user, ItemCount: itemCount, ListCount: listCount})
}
