package api

import (
	"context"
	"net/http"
	"net/url"

	"nightshift/model"
)

// Resource is a REST collection such as /items.
type Resource[T any] struct {
	c    *Client
	path string
}

func NewResource[T any](c *Client, path string) *Resource[T] {
	return &Resource[T]{c: c, path: path}
}

func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	out := []T{}
	if err := r.c.request(ctx, http.MethodGet, r.path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Resource[T]) Get(ctx context.Context, id string) (T, error) {
	var out T
	err := r.c.request(ctx, http.MethodGet, r.path+"/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (r *Resource[T]) Create(ctx context.Context, payload any) (T, error) {
	var out T
	err := r.c.request(ctx, http.MethodPost, r.path, payload, &out)
	return out, err
}

func (r *Resource[T]) Update(ctx context.Context, id string, payload any) (T, error) {
	var out T
	err := r.c.request(ctx, http.MethodPut, r.path+"/"+url.PathEscape(id), payload, &out)
	return out, err
}

func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	return r.c.request(ctx, http.MethodDelete, r.path+"/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Employees() *Resource[model.Employee] { return NewResource[model.Employee](c, "/employees") }
func (c *Client) Items() *Resource[model.Item]         { return NewResource[model.Item](c, "/items") }
func (c *Client) Orders() *Resource[model.Order]       { return NewResource[model.Order](c, "/orders") }
func (c *Client) Customers() *Resource[model.Customer] { return NewResource[model.Customer](c, "/customers") }
func (c *Client) Vendors() *Resource[model.Vendor]     { return NewResource[model.Vendor](c, "/vendors") }

// UpdateItemQuantity は在庫数量を変更し、追加された履歴を返します。
func (c *Client) UpdateItemQuantity(ctx context.Context, id string, in model.QuantityUpdate) (model.UpdateHistory, error) {
	var out model.UpdateHistory
	err := c.request(ctx, http.MethodPatch, "/items/"+url.PathEscape(id)+"/quantity", in, &out)
	return out, err
}
