package httpapi

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/listkeeper/internal/server/models"
	"github.com/dmitrijs2005/listkeeper/internal/server/services"
)

// handleUserList returns users, optionally filtered to those holding at
// least one of the roles in the comma-separated "roles" query parameter.
func (s *Server) handleUserList(w http.ResponseWriter, r *http.Request) {
	p, sr, err := parseListArgs(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var roles []models.Role
	if raw := strings.TrimSpace(r.URL.Query().Get("roles")); raw != "" {
		parts := strings.Split(raw, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		roles, err = models.ParseRoles(parts)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	result, err := s.users.FindAll(r.Context(), roles, p, sr)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

// userResponse enriches a user with its on-demand aggregates, mirroring
// the shape of the caller's own profile.
type userResponse struct {
	*models.User
	ItemCount int64 `json:"itemCount"`
	ListCount int64 `json:"listCount"`
}

func (s *Server) handleUserGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.users.FindOneByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

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

	s.writeJSON(w, http.StatusOK, userResponse{User: user, ItemCount: itemCount, ListCount: listCount})
}

// handleUserItems lets an administrator page through another user's items.
func (s *Server) handleUserItems(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	p, sr, err := parseListArgs(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.users.FindOneByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.items.FindAll(r.Context(), user, p, sr)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleUserUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var body struct {
		FullName *string  `json:"fullName"`
		Email    *string  `json:"email"`
		Password *string  `json:"password"`
		Roles    []string `json:"roles"`
		IsActive *bool    `json:"isActive"`
	}
	if !s.decodeBody(w, r, &body) {
		return
	}

	patch := services.UpdateUserInput{
		FullName: body.FullName,
		Email:    body.Email,
		Password: body.Password,
		IsActive: body.IsActive,
	}
	if body.Roles != nil {
		roles, err := models.ParseRoles(body.Roles)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		patch.Roles = roles
	}

	actor, _ := CurrentUser(r.Context())

	user, err := s.users.Update(r.Context(), id, patch, actor)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUserBlock(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	actor, _ := CurrentUser(r.Context())

	user, err := s.users.BlockUser(r.Context(), id, actor)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "user blocked", "userId", user.ID, "by", actor.ID)
	s.writeJSON(w, http.StatusOK, user)
}
