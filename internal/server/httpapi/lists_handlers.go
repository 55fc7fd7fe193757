package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/listkeeper/internal/server/models"
	"github.com/dmitrijs2005/listkeeper/internal/server/services"
)

func (s *Server) handleListCreate(w http.ResponseWriter, r *http.Request) {
	var input services.CreateListInput
	if !s.decodeBody(w, r, &input) {
		return
	}

	owner, _ := CurrentUser(r.Context())

	list, err := s.lists.Create(r.Context(), input, owner)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, list)
}

func (s *Server) handleListList(w http.ResponseWriter, r *http.Request) {
	p, sr, err := parseListArgs(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	owner, _ := CurrentUser(r.Context())

	result, err := s.lists.FindAll(r.Context(), owner, p, sr)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

// listResponse enriches a list with its on-demand pairing count.
type listResponse struct {
	*models.List
	TotalItems int64 `json:"totalItems"`
}

func (s *Server) handleListGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	owner, _ := CurrentUser(r.Context())

	list, err := s.lists.FindOne(r.Context(), id, owner)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	total, err := s.listItems.CountByList(r.Context(), list)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, listResponse{List: list, TotalItems: total})
}

func (s *Server) handleListUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var patch services.UpdateListInput
	if !s.decodeBody(w, r, &patch) {
		return
	}

	owner, _ := CurrentUser(r.Context())

	list, err := s.lists.Update(r.Context(), id, patch, owner)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, list)
}

// handleListDelete removes the list and echoes a snapshot of the deleted
// row back to the caller.
func (s *Server) handleListDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	owner, _ := CurrentUser(r.Context())

	list, err := s.lists.Remove(r.Context(), id, owner)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, list)
}

// handleListItemsOfList returns a list's pairings. The list is resolved
// through the ownership-scoped service first, so callers can only reach
// pairings of lists they own.
func (s *Server) handleListItemsOfList(w http.ResponseWriter, r *http.Request) {
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

	owner, _ := CurrentUser(r.Context())

	list, err := s.lists.FindOne(r.Context(), id, owner)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.listItems.FindAllByList(r.Context(), list, p, sr)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}
