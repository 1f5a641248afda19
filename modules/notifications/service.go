// Package notifications exposes the notification pipeline over HTTP:
// submitting a notification request and reading a user's in-app feed.
package notifications

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"notification-service/pkg/inapp"
	"notification-service/pkg/logger"
	"notification-service/pkg/notification"
	"notification-service/pkg/producer"
)

// Submitter is the producer-side contract the HTTP surface depends on.
type Submitter interface {
	Submit(ctx context.Context, req notification.Request) []producer.PublishResult
}

// Service carries the handlers' dependencies.
type Service struct {
	producer Submitter
	store    inapp.Store
	logger   *slog.Logger
}

// NewService creates the HTTP service.
func NewService(p Submitter, store inapp.Store, l *slog.Logger) *Service {
	if l == nil {
		l = slog.Default()
	}
	return &Service{producer: p, store: store, logger: l}
}

type response struct {
	OK    bool   `json:"ok"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// publishError is the per-channel entry returned when the broker rejected
// one channel's message while others were queued.
type publishError struct {
	Channel notification.Channel `json:"type"`
	Status  notification.Status  `json:"status"`
	Error   string               `json:"error"`
}

func (s *Service) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req notification.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respond(w, http.StatusBadRequest, response{OK: false, Error: "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		s.respond(w, http.StatusBadRequest, response{OK: false, Error: err.Error()})
		return
	}

	results := s.producer.Submit(r.Context(), req)
	data := make([]any, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			data = append(data, publishError{
				Channel: res.Channel,
				Status:  notification.StatusFailed,
				Error:   "failed to queue " + string(res.Channel) + " notification",
			})
			continue
		}
		data = append(data, res.Message)
	}
	s.respond(w, http.StatusOK, response{OK: true, Data: data})
}

func (s *Service) handleList(w http.ResponseWriter, r *http.Request) {
	userID := pathUserID(r)
	if userID == "" {
		s.respond(w, http.StatusBadRequest, response{OK: false, Error: "user_id is required"})
		return
	}

	msgs, err := s.store.List(r.Context(), userID)
	if err != nil {
		s.logger.Error("failed to list notifications",
			logger.UserID(userID),
			logger.Error(err))
		s.respond(w, http.StatusInternalServerError, response{OK: false})
		return
	}
	s.respond(w, http.StatusOK, response{OK: true, Data: msgs})
}

func (s *Service) respond(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode response", logger.Error(err))
	}
}
