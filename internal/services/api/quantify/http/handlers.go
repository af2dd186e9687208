// Package http provides http transport for quantification
package http

import (
	stdhttp "net/http"

	"laurel/internal/modkit/httpkit"
	"laurel/internal/services/api/quantify/domain"
	qdom "laurel/internal/services/quantify/domain"
	qsvc "laurel/internal/services/quantify/service"
)

// Register mounts the router
func Register(r httpkit.Router, s qsvc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.QuantifyBatchRequest](r, "/batch", h.batch)
	httpkit.PostJSON[domain.QuantifyRequest](r, "/{itemId}", h.quantify)
}

type handlers struct{ svc qsvc.Service }

// @Summary Quantify one praise item
// @Tags quantify
// @Accept json
// @Produce json
// @Param itemId path string true "Praise item id"
// @Param payload body domain.QuantifyRequest true "Evaluation"
// @Success 200 {array} domain.ItemOut "affected items with recomputed scores"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Failure 409 {object} httpkit.Envelope "state conflict"
// @Router /quantify/{itemId} [post]
func (h *handlers) quantify(r *stdhttp.Request, in domain.QuantifyRequest) (any, error) {
	items, err := h.svc.Quantify(r.Context(), qdom.Input{
		RaterID:     in.RaterID,
		ItemID:      httpkit.URLParam(r, "itemId"),
		Score:       in.Score,
		Dismissed:   in.Dismissed,
		DuplicateOf: in.DuplicateOf,
	})
	if err != nil {
		return nil, err
	}
	return domain.ItemsOut(items), nil
}

// @Summary Quantify several praise items with the same evaluation
// @Tags quantify
// @Accept json
// @Produce json
// @Param payload body domain.QuantifyBatchRequest true "Batch evaluation"
// @Success 200 {array} domain.ItemOut "affected items with recomputed scores"
// @Router /quantify/batch [post]
func (h *handlers) batch(r *stdhttp.Request, in domain.QuantifyBatchRequest) (any, error) {
	items, err := h.svc.QuantifyMany(r.Context(), qdom.BatchInput{
		RaterID:     in.RaterID,
		ItemIDs:     in.ItemIDs,
		Score:       in.Score,
		Dismissed:   in.Dismissed,
		DuplicateOf: in.DuplicateOf,
	})
	if err != nil {
		return nil, err
	}
	return domain.ItemsOut(items), nil
}
