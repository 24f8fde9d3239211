package mock

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"nightshift/model"
	"nightshift/store"
)

// Reviews exposes the reviews stored inside each employee's performance list
// as a collection of their own.
type Reviews struct {
	b *Backend
}

func (b *Backend) Reviews() *Reviews { return &Reviews{b: b} }

func (r *Reviews) List(ctx context.Context) ([]model.PerformanceReview, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	emps := r.b.Employees
	emps.mu.RLock()
	defer emps.mu.RUnlock()
	out := []model.PerformanceReview{}
	for _, e := range emps.rows {
		for _, rev := range e.Performance {
			rev.EmployeeID = e.EmployeeID
			out = append(out, rev)
		}
	}
	return out, nil
}

// locate returns the employee index and review index of id. Caller holds the lock.
func (r *Reviews) locate(id string) (int, int) {
	rows := r.b.Employees.rows
	for i := range rows {
		for j := range rows[i].Performance {
			if string(rows[i].Performance[j].ID) == id {
				return i, j
			}
		}
	}
	return -1, -1
}

func (r *Reviews) Get(ctx context.Context, id string) (model.PerformanceReview, error) {
	if err := ctx.Err(); err != nil {
		return model.PerformanceReview{}, err
	}
	emps := r.b.Employees
	emps.mu.RLock()
	defer emps.mu.RUnlock()
	i, j := r.locate(id)
	if i < 0 {
		return model.PerformanceReview{}, fmt.Errorf("review %s: %w", id, store.ErrNotFound)
	}
	rev := emps.rows[i].Performance[j]
	rev.EmployeeID = emps.rows[i].EmployeeID
	return rev, nil
}

// Create appends the review to the reviewed employee, signed by the current user.
func (r *Reviews) Create(ctx context.Context, payload any) (model.PerformanceReview, error) {
	if err := ctx.Err(); err != nil {
		return model.PerformanceReview{}, err
	}
	var in model.ReviewInput
	if err := apply(&in, payload); err != nil {
		return model.PerformanceReview{}, err
	}
	if in.EmployeeID == "" || !in.Rating.Valid() {
		return model.PerformanceReview{}, errors.New("employeeId and a rating from 1 to 5 are required")
	}
	rev := model.PerformanceReview{
		ID:         model.ID(uuid.NewString()),
		EmployeeID: in.EmployeeID,
		Rating:     in.Rating,
		Comments:   in.Comments,
		ReviewDate: r.b.stamp(),
	}
	if u, err := r.b.CurrentUser(ctx); err == nil && u != nil {
		rev.ReviewerID = u.EmployeeID
	}
	err := r.b.Employees.modify(in.EmployeeID, func(e *model.Employee) error {
		rev.EmployeeID = e.EmployeeID
		e.Performance = append(e.Performance, rev)
		return nil
	})
	if err != nil {
		return model.PerformanceReview{}, err
	}
	return rev, nil
}

// Update only overwrites a rating or comment the payload actually carries.
func (r *Reviews) Update(ctx context.Context, id string, payload any) (model.PerformanceReview, error) {
	if err := ctx.Err(); err != nil {
		return model.PerformanceReview{}, err
	}
	var in model.ReviewInput
	if err := apply(&in, payload); err != nil {
		return model.PerformanceReview{}, err
	}
	emps := r.b.Employees
	emps.mu.Lock()
	defer emps.mu.Unlock()
	i, j := r.locate(id)
	if i < 0 {
		return model.PerformanceReview{}, fmt.Errorf("review %s: %w", id, store.ErrNotFound)
	}
	rev := &emps.rows[i].Performance[j]
	if in.Rating != 0 {
		rev.Rating = in.Rating
	}
	if in.Comments != "" {
		rev.Comments = in.Comments
	}
	out := *rev
	out.EmployeeID = emps.rows[i].EmployeeID
	return out, nil
}

func (r *Reviews) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	emps := r.b.Employees
	emps.mu.Lock()
	defer emps.mu.Unlock()
	i, j := r.locate(id)
	if i < 0 {
		return fmt.Errorf("review %s: %w", id, store.ErrNotFound)
	}
	perf := emps.rows[i].Performance
	emps.rows[i].Performance = append(perf[:j:j], perf[j+1:]...)
	return nil
}

// CurrentUser は最初の管理者を現在のユーザーとして返します。
func (b *Backend) CurrentUser(ctx context.Context) (*model.Employee, error) {
	emps, err := b.Employees.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range emps {
		if emps[i].Role == model.RoleAdmin {
			return &emps[i], nil
		}
	}
	if len(emps) == 0 {
		return nil, nil
	}
	return &emps[0], nil
}

// ChangePassword stores the password and clears the current user's
// mustChangePassword flag.
func (b *Backend) ChangePassword(ctx context.Context, password string) error {
	u, err := b.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if u == nil {
		return errors.New("not logged in")
	}
	b.password = password
	return b.Employees.modify(u.EmployeeID, func(e *model.Employee) error {
		e.MustChangePassword = false
		return nil
	})
}
