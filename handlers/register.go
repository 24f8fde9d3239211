package handlers

import "net/http"

// Register adds every JSON endpoint to mux.
func Register(mux *http.ServeMux, a *App) {
	Employees.Register(mux, a)
	Items.Register(mux, a)
	Orders.Register(mux, a)
	Customers.Register(mux, a)
	Vendors.Register(mux, a)

	mux.HandleFunc("POST /api/items/{id}/quantity", UpdateQuantityHandler(a))
	mux.HandleFunc("GET /api/items/{id}/history", ItemHistoryHandler(a))
	mux.HandleFunc("GET /api/employees/{id}/reviews", EmployeeReviewsHandler(a))
	mux.HandleFunc("GET /api/orders/{id}/invoice", InvoiceHandler(a))
	mux.HandleFunc("GET /api/customers/{id}/insight", CustomerInsightHandler(a))
	mux.HandleFunc("GET /api/reviews", ListReviewsHandler(a))
	mux.HandleFunc("POST /api/reviews", CreateReviewHandler(a))
	mux.HandleFunc("PUT /api/reviews/{id}", UpdateReviewHandler(a))
	mux.HandleFunc("DELETE /api/reviews/{id}", DeleteReviewHandler(a))
	mux.HandleFunc("GET /api/auth/me", CurrentUserHandler(a))
	mux.HandleFunc("POST /api/auth/change-password", ChangePasswordHandler(a))
	mux.HandleFunc("GET /api/dashboard", DashboardHandler(a))
	mux.HandleFunc("POST /api/refresh", RefreshHandler(a))
	mux.HandleFunc("POST /api/logout", LogoutHandler(a))
}
