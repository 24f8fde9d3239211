package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"nightshift/aggregation"
	"nightshift/cache"
	"nightshift/filter"
	"nightshift/history"
	"nightshift/model"
	"nightshift/store"
	"nightshift/view"
)

// DashboardTop is how many vendors and customers the dashboard ranks.
const DashboardTop = 3

// Session はログイン中のユーザーに紐づくストアとビューをまとめます。
type Session struct {
	src   Source
	cache *cache.DB
	User  *model.Employee

	Employees *store.Store[model.Employee]
	Items     *store.Store[model.Item]
	Orders    *store.Store[model.Order]
	Customers *store.Store[model.Customer]
	Vendors   *store.Store[model.Vendor]
	Reviews   *store.Store[model.PerformanceReview]

	EmployeeView *view.View[model.Employee, model.EmployeeStats]
	ItemView     *view.View[model.Item, model.InventoryStats]
	OrderView    *view.View[model.Order, model.OrderStats]
	CustomerView *view.View[model.Customer, model.CustomerStats]
	VendorView   *view.View[model.Vendor, model.VendorStats]
}

func newStore[T any](name string, remote store.Remote[T], db *cache.DB, msgs store.Messages) *store.Store[T] {
	opts := []store.Option[T]{store.WithMessages[T](msgs)}
	if db != nil {
		opts = append(opts, store.WithPersister[T](cache.NewPersister[T](db, name)))
	}
	return store.New(name, remote, opts...)
}

// New builds the stores and views for one login. db may be nil.
func New(src Source, user *model.Employee, db *cache.DB) *Session {
	s := &Session{src: src, cache: db, User: user}

	empMsgs := store.DefaultMessages("employee", "employees")
	empMsgs.FetchOne = "Failed to fetch the employee with the given ID!"
	empMsgs.Create = "Failed to create the employee!"
	empMsgs.Update = "Failed to update the employee!"
	vendMsgs := store.DefaultMessages("vendor", "vendors")
	vendMsgs.Fetch = "Failed to get vendors!"
	vendMsgs.FetchOne = "Failed to get the vendor!"
	orderMsgs := store.DefaultMessages("order", "orders")
	orderMsgs.FetchOne = "Failed to fetch order!"

	s.Employees = newStore("employees", src.Employees, db, empMsgs)
	s.Items = newStore("items", src.Items, db, store.DefaultMessages("item", "items"))
	s.Orders = newStore("orders", src.Orders, db, orderMsgs)
	s.Customers = newStore("customers", src.Customers, db, store.DefaultMessages("customer", "customers"))
	s.Vendors = newStore("vendors", src.Vendors, db, vendMsgs)
	s.Reviews = newStore("reviews", src.Reviews, db, store.Messages{
		Fetch:    "Failed to fetch reviews given",
		FetchOne: "Failed to fetch review",
		Create:   "Failed to create review",
		Update:   "Failed to update review",
		Delete:   "Failed to delete review",
	})

	s.EmployeeView = view.New(s.Employees, filter.Employees, aggregation.EmployeeStats)
	s.ItemView = view.New(s.Items, filter.Items, aggregation.InventoryStats)
	s.OrderView = view.New(s.Orders, filter.Orders, aggregation.OrderStats)
	s.CustomerView = view.New(s.Customers, filter.Customers, aggregation.CustomerStats)
	s.VendorView = view.New(s.Vendors, filter.Vendors, aggregation.VendorStats)
	return s
}

// Hydrate loads every collection from the snapshot cache.
func (s *Session) Hydrate(ctx context.Context) {
	hydrate := []func(context.Context) (bool, error){
		s.Employees.Hydrate, s.Items.Hydrate, s.Orders.Hydrate, s.Customers.Hydrate, s.Vendors.Hydrate,
		s.Reviews.Hydrate,
	}
	for _, h := range hydrate {
		if _, err := h(ctx); err != nil {
			log.Printf("WARN: %v", err)
		}
	}
}

// Refresh は全コレクションを並行して再取得します。
func (s *Session) Refresh(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return s.Employees.Fetch(ctx) })
	g.Go(func() error { return s.Items.Fetch(ctx) })
	g.Go(func() error { return s.Orders.Fetch(ctx) })
	g.Go(func() error { return s.Customers.Fetch(ctx) })
	g.Go(func() error { return s.Vendors.Fetch(ctx) })
	g.Go(func() error { return s.Reviews.Fetch(ctx) })
	return g.Wait()
}

// UpdateItemQuantity patches the quantity and refetches the items.
func (s *Session) UpdateItemQuantity(ctx context.Context, id string, in model.QuantityUpdate) error {
	return s.Items.Mutate(ctx, "Failed to update item quantity!", func(ctx context.Context) error {
		_, err := s.src.UpdateQuantity(ctx, id, in)
		return err
	})
}

func (s *Session) Organization(ctx context.Context) (model.Organization, error) {
	org, err := s.src.Organization(ctx)
	if err != nil {
		return model.Organization{}, fmt.Errorf("failed to get organization: %w", err)
	}
	return org, nil
}

func (s *Session) Dashboard() model.DashboardSummary {
	return aggregation.Dashboard(
		s.Employees.Items(), s.Items.Items(), s.Orders.Items(),
		s.Customers.Items(), s.Vendors.Items(), DashboardTop)
}

// FindOrder looks an order up by document id or order code.
func (s *Session) FindOrder(id string) (model.Order, error) {
	for _, o := range s.Orders.Items() {
		if string(o.ID) == id || o.OrderID == id {
			return o, nil
		}
	}
	return model.Order{}, fmt.Errorf("order %s: %w", id, store.ErrNotFound)
}

func (s *Session) FindCustomer(id string) (model.Customer, error) {
	for _, c := range s.Customers.Items() {
		if string(c.ID) == id || c.CustomerID == id {
			return c, nil
		}
	}
	return model.Customer{}, fmt.Errorf("customer %s: %w", id, store.ErrNotFound)
}

func (s *Session) CustomerInsight(id string, now time.Time) (model.CustomerInsight, error) {
	c, err := s.FindCustomer(id)
	if err != nil {
		return model.CustomerInsight{}, err
	}
	in := aggregation.CustomerInsight(c, now)
	in.RecentOrders = history.SortNewestFirst(in.RecentOrders, func(o model.CustomerOrder) string { return o.OrderDate })
	return in, nil
}

func (s *Session) FindItem(id string) (model.Item, error) {
	for _, it := range s.Items.Items() {
		if string(it.ID) == id || it.ItemID == id {
			return it, nil
		}
	}
	return model.Item{}, fmt.Errorf("item %s: %w", id, store.ErrNotFound)
}

// ItemHistory は品目の数量変動履歴を新しい順に返します。
func (s *Session) ItemHistory(id string) (model.ItemHistory, error) {
	it, err := s.FindItem(id)
	if err != nil {
		return model.ItemHistory{}, err
	}
	return model.ItemHistory{
		ItemID:         it.ItemID,
		Entries:        history.UpdatesNewestFirst(it),
		Replenishments: history.Replenishments(it),
		Total:          history.ItemHistoryTotal(it),
	}, nil
}

// EmployeeReviews returns the employee's reviews, newest first.
func (s *Session) EmployeeReviews(id string) ([]model.PerformanceReview, error) {
	for _, e := range s.Employees.Items() {
		if string(e.ID) == id || e.EmployeeID == id {
			return history.ReviewsNewestFirst(e), nil
		}
	}
	return nil, fmt.Errorf("employee %s: %w", id, store.ErrNotFound)
}

// Reviews are stored on the employee, so every review mutation refetches the
// employees too.
func (s *Session) AddReview(ctx context.Context, in model.ReviewInput) (model.PerformanceReview, error) {
	rev, err := s.Reviews.Create(ctx, in)
	if err != nil {
		return rev, err
	}
	return rev, s.Employees.Fetch(ctx)
}

func (s *Session) UpdateReview(ctx context.Context, id string, in model.ReviewInput) (model.PerformanceReview, error) {
	rev, err := s.Reviews.Update(ctx, id, in)
	if err != nil {
		return rev, err
	}
	return rev, s.Employees.Fetch(ctx)
}

func (s *Session) DeleteReview(ctx context.Context, id string) error {
	if err := s.Reviews.Delete(ctx, id); err != nil {
		return err
	}
	return s.Employees.Fetch(ctx)
}

// ReviewsGiven returns the reviews in the store, newest first.
func (s *Session) ReviewsGiven() []model.PerformanceReview {
	return history.SortNewestFirst(s.Reviews.Items(), func(r model.PerformanceReview) string { return r.ReviewDate })
}

// CurrentUser asks the backend who is logged in and remembers the answer.
func (s *Session) CurrentUser(ctx context.Context) (*model.Employee, error) {
	if s.src.CurrentUser == nil {
		return s.User, nil
	}
	u, err := s.src.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if u != nil {
		s.User = u
	}
	return u, nil
}

// ChangePassword は現在のユーザーのパスワードを変更します。
func (s *Session) ChangePassword(ctx context.Context, password string) error {
	if s.src.ChangePassword == nil {
		return errors.New("password change is not supported")
	}
	if err := s.src.ChangePassword(ctx, password); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}
	if s.User != nil {
		s.User.MustChangePassword = false
	}
	return nil
}

// Close はログアウト処理です。ストアと保存済みスナップショットを消去します。
func (s *Session) Close(ctx context.Context) error {
	s.EmployeeView.Close()
	s.ItemView.Close()
	s.OrderView.Close()
	s.CustomerView.Close()
	s.VendorView.Close()

	errs := []error{
		s.Employees.Reset(ctx),
		s.Items.Reset(ctx),
		s.Orders.Reset(ctx),
		s.Customers.Reset(ctx),
		s.Vendors.Reset(ctx),
		s.Reviews.Reset(ctx),
	}
	if s.cache != nil {
		errs = append(errs, s.cache.ClearAll(ctx))
	}
	if s.src.Logout != nil {
		if err := s.src.Logout(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to log out: %w", err))
		}
	}
	s.User = nil
	return errors.Join(errs...)
}
