package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"nightshift/model"
	"nightshift/store"
)

// ReviewResponse は評価の作成・更新APIの応答です。
type ReviewResponse struct {
	Message           string                   `json:"message"`
	PerformanceReview *model.PerformanceReview `json:"performanceReview"`
}

// Reviews is the /reviews collection as seen by one reviewer: List returns
// the reviews that employee has given.
type Reviews struct {
	*Resource[model.PerformanceReview]
	reviewer string
}

// Reviews returns the review collection of the reviewer with the given
// employee code.
func (c *Client) Reviews(reviewer string) *Reviews {
	return &Reviews{Resource: NewResource[model.PerformanceReview](c, "/reviews"), reviewer: reviewer}
}

func (r *Reviews) List(ctx context.Context) ([]model.PerformanceReview, error) {
	out := []model.PerformanceReview{}
	if r.reviewer == "" {
		return out, nil
	}
	if err := r.c.request(ctx, http.MethodGet, r.path+"/given/"+url.PathEscape(r.reviewer), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Received は指定従業員が受けた評価を返します。
func (r *Reviews) Received(ctx context.Context, employeeID string) ([]model.PerformanceReview, error) {
	out := []model.PerformanceReview{}
	if err := r.c.request(ctx, http.MethodGet, r.path+"/received/"+url.PathEscape(employeeID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get looks the review up among the given ones; the API has no single-review read.
func (r *Reviews) Get(ctx context.Context, id string) (model.PerformanceReview, error) {
	all, err := r.List(ctx)
	if err != nil {
		return model.PerformanceReview{}, err
	}
	for _, rev := range all {
		if string(rev.ID) == id {
			return rev, nil
		}
	}
	return model.PerformanceReview{}, fmt.Errorf("review %s: %w", id, store.ErrNotFound)
}

func (r *Reviews) Create(ctx context.Context, payload any) (model.PerformanceReview, error) {
	var out ReviewResponse
	if err := r.c.request(ctx, http.MethodPost, r.path, payload, &out); err != nil {
		return model.PerformanceReview{}, err
	}
	return reviewOf(out)
}

func (r *Reviews) Update(ctx context.Context, id string, payload any) (model.PerformanceReview, error) {
	var out ReviewResponse
	if err := r.c.request(ctx, http.MethodPut, r.path+"/"+url.PathEscape(id), payload, &out); err != nil {
		return model.PerformanceReview{}, err
	}
	return reviewOf(out)
}

func reviewOf(res ReviewResponse) (model.PerformanceReview, error) {
	if res.PerformanceReview == nil {
		return model.PerformanceReview{}, &Error{Status: http.StatusBadGateway, Message: res.Message}
	}
	return *res.PerformanceReview, nil
}
