// Package http provides http transport for praise records
package http

import (
	stdhttp "net/http"

	"laurel/internal/modkit/httpkit"
	"laurel/internal/services/api/praise/domain"
	praisedom "laurel/internal/services/praise/domain"
	psvc "laurel/internal/services/praise/service"
	qsvc "laurel/internal/services/quantify/service"
)

// Register mounts the router
func Register(r httpkit.Router, records psvc.Service, engine qsvc.Service) {
	h := &handlers{records: records, engine: engine}
	httpkit.PostJSON[domain.CreatePraiseRequest](r, "/", h.create)
	httpkit.GetJSON(r, "/{itemId}", h.item)
	httpkit.GetJSON(r, "/{itemId}/ratings", h.ratings)
	httpkit.PostJSON[domain.AssignRequest](r, "/{itemId}/raters", h.assign)
	httpkit.PostJSON[domain.RecomputeRequest](r, "/{itemId}/score", h.recompute)
}

type handlers struct {
	records psvc.Service
	engine  qsvc.Service
}

// @Summary Record a new praise item
// @Tags praise
// @Accept json
// @Produce json
// @Param payload body domain.CreatePraiseRequest true "Praise"
// @Success 200 {object} domain.ItemOut "created item"
// @Router /praise [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreatePraiseRequest) (any, error) {
	it, err := h.records.CreateItem(r.Context(), praisedom.CreateItemInput{
		ReceiverID:  in.ReceiverID,
		GiverID:     in.GiverID,
		ForwarderID: in.ForwarderID,
		Reason:      in.Reason,
	})
	if err != nil {
		return nil, err
	}
	return domain.ItemOutFrom(it), nil
}

// @Summary Fetch one praise item
// @Tags praise
// @Produce json
// @Param itemId path string true "Praise item id"
// @Success 200 {object} domain.ItemOut "item"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /praise/{itemId} [get]
func (h *handlers) item(r *stdhttp.Request) (any, error) {
	it, err := h.records.Item(r.Context(), httpkit.URLParam(r, "itemId"))
	if err != nil {
		return nil, err
	}
	return domain.ItemOutFrom(it), nil
}

// @Summary List ratings for a praise item
// @Tags praise
// @Produce json
// @Param itemId path string true "Praise item id"
// @Success 200 {array} domain.RatingOut "ratings"
// @Router /praise/{itemId}/ratings [get]
func (h *handlers) ratings(r *stdhttp.Request) (any, error) {
	ratings, err := h.records.Ratings(r.Context(), httpkit.URLParam(r, "itemId"))
	if err != nil {
		return nil, err
	}
	return domain.RatingsOut(ratings), nil
}

// @Summary Assign a rater to a praise item
// @Tags praise
// @Accept json
// @Produce json
// @Param itemId path string true "Praise item id"
// @Param payload body domain.AssignRequest true "Rater"
// @Success 200 {object} domain.RatingOut "pristine rating"
// @Failure 409 {object} httpkit.Envelope "already assigned"
// @Router /praise/{itemId}/raters [post]
func (h *handlers) assign(r *stdhttp.Request, in domain.AssignRequest) (any, error) {
	rt, err := h.records.Assign(r.Context(), praisedom.AssignInput{
		ItemID:  httpkit.URLParam(r, "itemId"),
		RaterID: in.RaterID,
	})
	if err != nil {
		return nil, err
	}
	out := domain.RatingsOut([]praisedom.Rating{rt})
	return out[0], nil
}

// @Summary Recompute the composite score for a praise item
// @Tags praise
// @Accept json
// @Produce json
// @Param itemId path string true "Praise item id"
// @Param payload body domain.RecomputeRequest true "Recompute"
// @Success 200 {object} domain.ScoreOut "composite score"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /praise/{itemId}/score [post]
func (h *handlers) recompute(r *stdhttp.Request, in domain.RecomputeRequest) (any, error) {
	itemID := httpkit.URLParam(r, "itemId")
	score, err := h.engine.CompositeScore(r.Context(), itemID, in.Persist)
	if err != nil {
		return nil, err
	}
	return domain.ScoreOut{ItemID: itemID, Score: score}, nil
}
