// Package http wires record endpoints to the service port
package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"paylens/internal/core/experience"
	"paylens/internal/modkit/httpkit"
	perr "paylens/internal/platform/errors"
	pnet "paylens/internal/platform/net"
	"paylens/internal/platform/net/http/bind"
	"paylens/internal/services/api/records/domain"
)

func init() {
	// experience categories carry spaces so oneof cannot express them
	_ = bind.RegisterValidation("experience_category", func(fl validator.FieldLevel) bool {
		return experience.Valid(fl.Field().String())
	})
}

type handlers struct {
	svc domain.ServicePort
}

// Register mounts the record routes, all of them require a principal
func Register(r httpkit.Router, svc domain.ServicePort) {
	h := &handlers{svc: svc}

	httpkit.Get(r, "/mine", h.mine)
	httpkit.PostJSON(r, "/", h.submit)
	httpkit.Delete(r, "/{record_id}", h.remove)
}

func principal(r *http.Request) (string, error) {
	uid := pnet.UserID(r.Context())
	if uid == "" {
		return "", perr.Unauthorizedf("authentication required")
	}
	return uid, nil
}

func (h *handlers) mine(r *http.Request) (any, error) {
	uid, err := principal(r)
	if err != nil {
		return nil, err
	}

	var year *int
	if raw := r.URL.Query().Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			return nil, perr.InvalidArgf("year must be an integer, got %q", raw)
		}
		year = &y
	}
	return h.svc.ListMine(r.Context(), uid, year)
}

func (h *handlers) submit(r *http.Request, in domain.SubmitIn) (any, error) {
	uid, err := principal(r)
	if err != nil {
		return nil, err
	}
	out, err := h.svc.Submit(r.Context(), uid, in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(out), nil
}

func (h *handlers) remove(r *http.Request) (any, error) {
	uid, err := principal(r)
	if err != nil {
		return nil, err
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "record_id"), 10, 64)
	if err != nil {
		return nil, perr.InvalidArgf("record_id must be an integer")
	}
	if err := h.svc.Delete(r.Context(), uid, id); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}
