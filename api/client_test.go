package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nightshift/model"
	"nightshift/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var in LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		if in.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{"message": "Invalid username or password!"})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "loggedInUser", Value: "u1", Path: "/"})
		_ = json.NewEncoder(w).Encode(map[string]any{"employee": map[string]any{"name": "Asha"}, "message": "Logged in successfully!"})
	})
	mux.HandleFunc("GET /api/items", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("loggedInUser"); err != nil || c.Value != "u1" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`[{"id":{"date":"i1"},"itemId":"ITEM-001","name":"Bolt","quantity":4,"threshold":10}]`))
	})
	mux.HandleFunc("PATCH /api/items/{id}/quantity", func(w http.ResponseWriter, r *http.Request) {
		var in model.QuantityUpdate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		_ = json.NewEncoder(w).Encode(model.UpdateHistory{VendorName: in.VendorName, QuantityUpdated: in.QuantityUpdated, Cost: in.Cost, UpdateType: in.UpdateType})
	})
	mux.HandleFunc("DELETE /api/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Item not found"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoginKeepsSessionCookie(t *testing.T) {
	srv := newTestServer(t)
	c, err := NewClient(srv.URL+"/api/", time.Second)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = c.Items().List(ctx)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Unauthorized", apiErr.Message)

	res, err := c.Login(ctx, "a@b.c", "secret")
	require.NoError(t, err)
	require.NotNil(t, res.Employee)
	assert.Equal(t, "Asha", res.Employee.Name)

	items, err := c.Items().List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, model.ID("i1"), items[0].ID)
	assert.Equal(t, "ITEM-001", items[0].ItemID)
}

func TestErrorMessageFromJSON(t *testing.T) {
	srv := newTestServer(t)
	c, err := NewClient(srv.URL+"/api", time.Second)
	require.NoError(t, err)

	_, err = c.Login(context.Background(), "a@b.c", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid username or password!", store.MessageOf(err, "fallback"))

	err = c.Items().Delete(context.Background(), "nope")
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Item not found", apiErr.Message)
}

func TestUpdateItemQuantity(t *testing.T) {
	srv := newTestServer(t)
	c, err := NewClient(srv.URL+"/api", time.Second)
	require.NoError(t, err)

	h, err := c.UpdateItemQuantity(context.Background(), "i1", model.QuantityUpdate{QuantityUpdated: 12, VendorName: "Bharat", Cost: 3.5, UpdateType: model.UpdateReplenishment})
	require.NoError(t, err)
	assert.Equal(t, 12, h.QuantityUpdated)
	assert.Equal(t, model.UpdateReplenishment, h.UpdateType)
}

func TestResourceSatisfiesRemote(t *testing.T) {
	var _ store.Remote[model.Vendor] = (*Resource[model.Vendor])(nil)
}

func TestCurrentUserAndChangePassword(t *testing.T) {
	var sent map[string]string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/auth/current", func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("loggedInUser"); err != nil {
			_, _ = w.Write([]byte(`{"message":"Not logged in"}`))
			return
		}
		_, _ = w.Write([]byte(`{"employee":{"employeeId":"EMP-001","name":"Asha"}}`))
	})
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "loggedInUser", Value: "u1", Path: "/"})
		_, _ = w.Write([]byte(`{"message":"Logged in successfully!"}`))
	})
	mux.HandleFunc("POST /api/auth/change-password", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL+"/api", time.Second)
	require.NoError(t, err)
	ctx := context.Background()

	u, err := c.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)

	_, err = c.Login(ctx, "a@b.c", "secret")
	require.NoError(t, err)
	u, err = c.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "EMP-001", u.EmployeeID)

	require.NoError(t, c.ChangePassword(ctx, "hunter22"))
	assert.Equal(t, map[string]string{"password": "hunter22", "confirmPassword": "hunter22"}, sent)
}
