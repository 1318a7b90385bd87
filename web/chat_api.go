// ABOUTME: JSON endpoints for the floating chat widget
// ABOUTME: Thin wrappers over the shared chat dispatcher and session

package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/harperreed/inscrm/chat"
	"github.com/harperreed/inscrm/models"
)

type chatState struct {
	Messages   []models.ChatMessage `json:"messages"`
	Mode       chat.Mode            `json:"mode"`
	Open       bool                 `json:"open"`
	Processing bool                 `json:"processing"`
}

type chatSendRequest struct {
	Message string `json:"message"`
}

type chatSendResponse struct {
	Reply models.ChatMessage `json:"reply"`
	Mode  chat.Mode          `json:"mode"`
}

type chatModeRequest struct {
	Mode string `json:"mode"`
}

type apiError struct {
	Error string `json:"error"`
}

func (s *Server) state() chatState {
	session := s.dispatcher.Session()
	return chatState{
		Messages:   session.Messages(),
		Mode:       session.Mode(),
		Open:       session.IsOpen(),
		Processing: session.Processing(),
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to encode response", zap.Error(err))
	}
}

func (s *Server) handleChatState(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) handleChatSend(w http.ResponseWriter, r *http.Request) {
	var req chatSendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid JSON body"})
		return
	}

	reply, err := s.dispatcher.Send(r.Context(), req.Message)
	switch {
	case errors.Is(err, chat.ErrEmpty):
		s.writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
		return
	case errors.Is(err, chat.ErrBusy):
		s.writeJSON(w, http.StatusConflict, apiError{Error: err.Error()})
		return
	case err != nil:
		s.writeJSON(w, http.StatusInternalServerError, apiError{Error: err.Error()})
		return
	}

	s.writeJSON(w, http.StatusOK, chatSendResponse{Reply: reply, Mode: s.dispatcher.Session().Mode()})
}

func (s *Server) handleChatMode(w http.ResponseWriter, r *http.Request) {
	var req chatModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid JSON body"})
		return
	}
	mode, err := chat.ParseMode(req.Mode)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
		return
	}
	s.dispatcher.Session().SetMode(mode)
	s.writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) handleChatClear(w http.ResponseWriter, r *http.Request) {
	session := s.dispatcher.Session()
	if session.Processing() {
		s.writeJSON(w, http.StatusConflict, apiError{Error: chat.ErrBusy.Error()})
		return
	}
	session.Clear()
	s.writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) handleChatToggle(w http.ResponseWriter, r *http.Request) {
	s.dispatcher.Session().Toggle()
	s.writeJSON(w, http.StatusOK, s.state())
}
