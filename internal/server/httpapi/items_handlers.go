package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/listkeeper/internal/server/services"
)

func (s *Server) handleItemCreate(w http.ResponseWriter, r *http.Request) {
	var input services.CreateItemInput
	if !s.decodeBody(w, r, &input) {
		return
	}

	owner, _ := CurrentUser(r.Context())

	item, err := s.items.Create(r.Context(), input, owner)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleItemList(w http.ResponseWriter, r *http.Request) {
	p, sr, err := parseListArgs(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	owner, _ := CurrentUser(r.Context())

	result, err := s.items.FindAll(r.Context(), owner, p, sr)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleItemGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	owner, _ := CurrentUser(r.Context())

	item, err := s.items.FindOne(r.Context(), id, owner)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleItemUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var patch services.UpdateItemInput
	if !s.decodeBody(w, r, &patch) {
		return
	}

	owner, _ := CurrentUser(r.Context())

	item, err := s.items.Update(r.Context(), id, patch, owner)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, item)
}

// handleItemDelete removes the item and echoes a snapshot of the deleted
// row back to the caller.
func (s *Server) handleItemDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	owner, _ := CurrentUser(r.Context())

	item, err := s.items.Remove(r.Context(), id, owner)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, item)
}
