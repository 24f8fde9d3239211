package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"nightshift/model"
	"nightshift/render"
	"nightshift/session"
)

// UpdateQuantityHandler は在庫数量の変更を処理します。
func UpdateQuantityHandler(a *App) http.HandlerFunc {
	return a.withSession(func(w http.ResponseWriter, r *http.Request, s *session.Session) {
		var in model.QuantityUpdate
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := s.UpdateItemQuantity(r.Context(), r.PathValue("id"), in); err != nil {
			writeError(w, err, "Failed to update item quantity!")
			return
		}
		writeJSON(w, http.StatusOK, s.ItemView.Result())
	})
}

func DashboardHandler(a *App) http.HandlerFunc {
	return a.withSession(func(w http.ResponseWriter, r *http.Request, s *session.Session) {
		writeJSON(w, http.StatusOK, s.Dashboard())
	})
}

func CustomerInsightHandler(a *App) http.HandlerFunc {
	return a.withSession(func(w http.ResponseWriter, r *http.Request, s *session.Session) {
		in, err := s.CustomerInsight(r.PathValue("id"), a.Now())
		if err != nil {
			writeError(w, err, "Failed to fetch the customer by ID!")
			return
		}
		writeJSON(w, http.StatusOK, in)
	})
}

func ItemHistoryHandler(a *App) http.HandlerFunc {
	return a.withSession(func(w http.ResponseWriter, r *http.Request, s *session.Session) {
		h, err := s.ItemHistory(r.PathValue("id"))
		if err != nil {
			writeError(w, err, "Failed to fetch the item by ID!")
			return
		}
		writeJSON(w, http.StatusOK, h)
	})
}

func EmployeeReviewsHandler(a *App) http.HandlerFunc {
	return a.withSession(func(w http.ResponseWriter, r *http.Request, s *session.Session) {
		reviews, err := s.EmployeeReviews(r.PathValue("id"))
		if err != nil {
			writeError(w, err, "Failed to fetch the employee with the given ID!")
			return
		}
		writeJSON(w, http.StatusOK, reviews)
	})
}

// RefreshHandler は全コレクションを再取得します。
func RefreshHandler(a *App) http.HandlerFunc {
	return a.withSession(func(w http.ResponseWriter, r *http.Request, s *session.Session) {
		if err := s.Refresh(r.Context()); err != nil {
			writeError(w, err, "Failed to refresh data!")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Data refreshed."})
	})
}

func LogoutHandler(a *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := a.Logout(r.Context()); err != nil {
			log.Printf("WARN: logout: %v", err)
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully."})
	}
}

// InvoiceHandler は注文の請求書PDFを返します。?format=html でHTMLを返します。
func InvoiceHandler(a *App) http.HandlerFunc {
	return a.withSession(func(w http.ResponseWriter, r *http.Request, s *session.Session) {
		order, err := s.FindOrder(r.PathValue("id"))
		if err != nil {
			writeError(w, err, "Failed to fetch order!")
			return
		}
		orgName := a.OrgName
		if orgName == "" {
			if org, err := s.Organization(r.Context()); err == nil {
				orgName = org.Name
			} else {
				log.Printf("WARN: %v", err)
			}
		}
		html, err := render.OrderInvoiceHTML(orgName, order)
		if err != nil {
			writeError(w, err, "Invoice generation failed")
			return
		}
		if r.URL.Query().Get("format") == "html" || a.Printer == nil {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte(html))
			return
		}
		pdf, err := a.Printer.PDF(r.Context(), html)
		if err != nil {
			writeError(w, err, "Invoice generation failed")
			return
		}
		filename := fmt.Sprintf("invoice-%s.pdf", order.OrderID)
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
		w.Write(pdf)
	})
}
