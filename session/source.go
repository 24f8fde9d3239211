package session

import (
	"context"

	"nightshift/api"
	"nightshift/mock"
	"nightshift/model"
	"nightshift/store"
)

// Source bundles the remote collections and the calls that are not plain CRUD.
type Source struct {
	Employees store.Remote[model.Employee]
	Items     store.Remote[model.Item]
	Orders    store.Remote[model.Order]
	Customers store.Remote[model.Customer]
	Vendors   store.Remote[model.Vendor]
	Reviews   store.Remote[model.PerformanceReview]

	UpdateQuantity func(ctx context.Context, id string, in model.QuantityUpdate) (model.UpdateHistory, error)
	Organization   func(ctx context.Context) (model.Organization, error)
	Logout         func(ctx context.Context) error
	CurrentUser    func(ctx context.Context) (*model.Employee, error)
	ChangePassword func(ctx context.Context, password string) error
}

// APISource は nightshift API に接続するソースを作成します。
// reviewer is the logged-in employee code whose given reviews are listed.
func APISource(c *api.Client, orgID, reviewer string) Source {
	return Source{
		Employees:      c.Employees(),
		Items:          c.Items(),
		Orders:         c.Orders(),
		Customers:      c.Customers(),
		Vendors:        c.Vendors(),
		Reviews:        c.Reviews(reviewer),
		UpdateQuantity: c.UpdateItemQuantity,
		Organization: func(ctx context.Context) (model.Organization, error) {
			return c.Organization(ctx, orgID)
		},
		Logout:         c.Logout,
		CurrentUser:    c.CurrentUser,
		ChangePassword: c.ChangePassword,
	}
}

// MockSource serves everything from the in-memory backend.
func MockSource(b *mock.Backend) Source {
	return Source{
		Employees:      b.Employees,
		Items:          b.Items,
		Orders:         b.Orders,
		Customers:      b.Customers,
		Vendors:        b.Vendors,
		Reviews:        b.Reviews(),
		UpdateQuantity: b.UpdateItemQuantity,
		Organization:   b.GetOrganization,
		Logout:         func(context.Context) error { return nil },
		CurrentUser:    b.CurrentUser,
		ChangePassword: b.ChangePassword,
	}
}
