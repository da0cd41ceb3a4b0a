// Package http provides http transport for clients
package http

import (
	stdhttp "net/http"

	"clientele/internal/modkit/httpkit"
	"clientele/internal/services/clients/domain"
	svc "clientele/internal/services/clients/service"
	"clientele/internal/services/clients/view"

	"github.com/go-chi/chi/v5"
)

// Register mounts client endpoints on the given router
func Register(r httpkit.Router, s svc.Service, ctrl *view.Controller) {
	h := &handlers{svc: s, ctrl: ctrl}

	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/counts", h.counts)
	httpkit.PostJSON[domain.CreateClientInput](r, "/", h.create)
	httpkit.PutJSON[domain.UpdateClientInput](r, "/{id}", h.update)

	httpkit.PostJSON[domain.BulkIDsInput](r, "/bulk/delete", h.bulkDelete)
	httpkit.PostJSON[domain.BulkIDsInput](r, "/bulk/duplicate", h.bulkDuplicate)
	httpkit.PostJSON[domain.ReassignReferrerInput](r, "/bulk/reassign-referrer", h.bulkReassign)
	httpkit.PostJSON[domain.BulkIDsInput](r, "/bulk/export", h.bulkExport)

	// derived view and selection, backed by the shared controller
	httpkit.Get(r, "/view", h.viewList)
	httpkit.PostJSON[domain.ViewCriteriaInput](r, "/view/criteria", h.viewCriteria)
	httpkit.PostJSON[domain.ViewSortInput](r, "/view/sort", h.viewSort)
	httpkit.PostJSON[domain.SelectAllInput](r, "/view/select-all", h.selectAll)
	httpkit.PostJSON[domain.SelectOneInput](r, "/view/select", h.selectOne)
	httpkit.Post(r, "/view/selection/clear", h.selectionClear)
	httpkit.Get(r, "/view/selection", h.selection)
}

type handlers struct {
	svc  svc.Service
	ctrl *view.Controller
}

func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context())
}

func (h *handlers) counts(r *stdhttp.Request) (any, error) {
	return h.svc.Counts(r.Context())
}

func (h *handlers) create(r *stdhttp.Request, in domain.CreateClientInput) (any, error) {
	c, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(c), nil
}

func (h *handlers) update(r *stdhttp.Request, in domain.UpdateClientInput) (any, error) {
	return h.svc.Update(r.Context(), chi.URLParam(r, "id"), in)
}

func (h *handlers) bulkDelete(r *stdhttp.Request, in domain.BulkIDsInput) (any, error) {
	return h.svc.Delete(r.Context(), in.IDs)
}

func (h *handlers) bulkDuplicate(r *stdhttp.Request, in domain.BulkIDsInput) (any, error) {
	return h.svc.Duplicate(r.Context(), in.IDs)
}

func (h *handlers) bulkReassign(r *stdhttp.Request, in domain.ReassignReferrerInput) (any, error) {
	return h.svc.ReassignReferrer(r.Context(), in.IDs, in.ReferrerID)
}

func (h *handlers) bulkExport(r *stdhttp.Request, in domain.BulkIDsInput) (any, error) {
	payload, err := h.svc.ExportCSV(r.Context(), in.IDs)
	if err != nil {
		return nil, err
	}
	hdr := stdhttp.Header{}
	hdr.Set("Content-Disposition", `attachment; filename="clients.csv"`)
	return httpkit.Response{
		Status: stdhttp.StatusOK,
		Header: hdr,
		Body:   httpkit.Raw{ContentType: "text/csv; charset=utf-8", Bytes: payload},
	}, nil
}

func (h *handlers) viewList(*stdhttp.Request) (any, error) {
	return h.ctrl.View()
}

type viewState struct {
	Clients []domain.Client     `json:"clients"`
	Counts  domain.PresetCounts `json:"counts"`
}

func (h *handlers) viewCriteria(r *stdhttp.Request, in domain.ViewCriteriaInput) (any, error) {
	h.ctrl.SetPreset(domain.Preset(in.Preset))
	h.ctrl.SetSearch(in.Search)
	h.ctrl.SetTags(r.Context(), in.TagIDs)
	clients, err := h.ctrl.View()
	if err != nil {
		return nil, err
	}
	return viewState{Clients: clients, Counts: h.ctrl.Counts()}, nil
}

type sortState struct {
	Field     domain.SortField     `json:"field"`
	Direction domain.SortDirection `json:"direction"`
}

func (h *handlers) viewSort(_ *stdhttp.Request, in domain.ViewSortInput) (any, error) {
	if err := h.ctrl.ToggleSort(domain.SortField(in.Field)); err != nil {
		return nil, err
	}
	f, d := h.ctrl.SortState()
	return sortState{Field: f, Direction: d}, nil
}

type selectionState struct {
	IDs   []string `json:"ids"`
	Count int      `json:"count"`
}

func (h *handlers) selectAll(_ *stdhttp.Request, in domain.SelectAllInput) (any, error) {
	if err := h.ctrl.SelectAll(in.Checked); err != nil {
		return nil, err
	}
	return h.selectionSnapshot(), nil
}

func (h *handlers) selectOne(_ *stdhttp.Request, in domain.SelectOneInput) (any, error) {
	h.ctrl.SelectOne(in.ID, in.Checked)
	return h.selectionSnapshot(), nil
}

func (h *handlers) selectionClear(*stdhttp.Request) (any, error) {
	h.ctrl.ClearSelection()
	return h.selectionSnapshot(), nil
}

func (h *handlers) selection(*stdhttp.Request) (any, error) {
	return h.selectionSnapshot(), nil
}

func (h *handlers) selectionSnapshot() selectionState {
	ids := h.ctrl.Selected()
	return selectionState{IDs: ids, Count: len(ids)}
}
