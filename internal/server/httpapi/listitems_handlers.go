package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/listkeeper/internal/server/services"
)

func (s *Server) handleListItemCreate(w http.ResponseWriter, r *http.Request) {
	var input services.CreateListItemInput
	if !s.decodeBody(w, r, &input) {
		return
	}

	listItem, err := s.listItems.Create(r.Context(), input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, listItem)
}

func (s *Server) handleListItemGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	listItem, err := s.listItems.FindOne(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, listItem)
}

func (s *Server) handleListItemUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var patch services.UpdateListItemInput
	if !s.decodeBody(w, r, &patch) {
		return
	}

	listItem, err := s.listItems.Update(r.Context(), id, patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, listItem)
}
