// Package http provides http transport for tags
package http

import (
	stdhttp "net/http"

	"clientele/internal/modkit/httpkit"
	"clientele/internal/services/tags/domain"
	svc "clientele/internal/services/tags/service"

	"github.com/go-chi/chi/v5"
)

// Register mounts tag endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/", h.list)
	httpkit.PostJSON[domain.CreateTagInput](r, "/", h.create)
	httpkit.PutJSON[domain.RenameTagInput](r, "/{id}", h.rename)
	httpkit.Delete(r, "/{id}", h.remove)
	httpkit.PostJSON[domain.AssignTagInput](r, "/assign", h.assign)
	httpkit.PostJSON[domain.AssignTagInput](r, "/unassign", h.unassign)
}

type handlers struct{ svc svc.Service }

func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context())
}

func (h *handlers) create(r *stdhttp.Request, in domain.CreateTagInput) (any, error) {
	t, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(t), nil
}

func (h *handlers) rename(r *stdhttp.Request, in domain.RenameTagInput) (any, error) {
	return h.svc.Rename(r.Context(), chi.URLParam(r, "id"), in)
}

func (h *handlers) remove(r *stdhttp.Request) (any, error) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

func (h *handlers) assign(r *stdhttp.Request, in domain.AssignTagInput) (any, error) {
	if err := h.svc.Assign(r.Context(), in.ClientID, in.TagID); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

func (h *handlers) unassign(r *stdhttp.Request, in domain.AssignTagInput) (any, error) {
	if err := h.svc.Unassign(r.Context(), in.ClientID, in.TagID); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}
