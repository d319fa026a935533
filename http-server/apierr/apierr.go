// Package apierr maps service errors to HTTP responses.
package apierr

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"dwh-dashboard/internal/source"
	"dwh-dashboard/internal/source/etlapi"
)

type Response struct {
	Error string `json:"error"`
}

// Status picks the HTTP status for err.
func Status(err error) int {
	var upstream *etlapi.StatusError
	switch {
	case errors.Is(err, source.ErrUnknownDomain):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &upstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Write logs err under op and answers with a JSON error body.
func Write(w http.ResponseWriter, r *http.Request, log *slog.Logger, op string, err error) {
	status := Status(err)

	l := log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("error", err.Error()),
	)
	msg := http.StatusText(status)
	if status == http.StatusNotFound {
		l.Warn("unknown report domain")
		msg = err.Error()
	} else {
		l.Error("request failed")
	}

	render.Status(r, status)
	render.JSON(w, r, Response{Error: msg})
}

// BadRequest answers 400 with the validation message.
func BadRequest(w http.ResponseWriter, r *http.Request, err error) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, Response{Error: err.Error()})
}
