package notifications

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Router mounts the notification endpoints:
//
//	POST /notifications
//	GET  /users/{userID}/notifications
func Router(svc *Service) chi.Router {
	r := chi.NewRouter()
	r.Post("/notifications", svc.handleCreate)
	r.Get("/users/{userID}/notifications", svc.handleList)
	return r
}

func pathUserID(r *http.Request) string {
	return chi.URLParam(r, "userID")
}
