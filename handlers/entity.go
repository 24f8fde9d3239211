package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"nightshift/export"
	"nightshift/filter"
	"nightshift/model"
	"nightshift/session"
	"nightshift/store"
	"nightshift/view"
)

// Entity binds one collection of the session to its HTTP endpoints.
type Entity[T any, S any] struct {
	Name   string
	Store  func(*session.Session) *store.Store[T]
	View   func(*session.Session) *view.View[T, S]
	Filter filter.Config[T]
	Stats  func([]T) S
	Report func([]T, S) export.Report
	// NewInput returns a pointer to the create/update payload type.
	NewInput func() any
}

// CriteriaFromQuery reads status, category and search. Missing filters are "all".
func CriteriaFromQuery(q url.Values) model.Criteria {
	c := model.Criteria{Status: q.Get("status"), Category: q.Get("category"), Search: q.Get("search")}
	if c.Status == "" {
		c.Status = filter.All
	}
	if c.Category == "" {
		c.Category = filter.All
	}
	return c
}

// ListHandler は絞り込み済みの一覧と集計値を返します。
func (e Entity[T, S]) ListHandler(a *App) http.HandlerFunc {
	return a.withSession(func(w http.ResponseWriter, r *http.Request, s *session.Session) {
		writeJSON(w, http.StatusOK, e.View(s).Query(CriteriaFromQuery(r.URL.Query())))
	})
}

func (e Entity[T, S]) GetHandler(a *App) http.HandlerFunc {
	return a.withSession(func(w http.ResponseWriter, r *http.Request, s *session.Session) {
		st := e.Store(s)
		rec, err := st.FetchByID(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err, st.Snapshot().Error)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	})
}

func (e Entity[T, S]) decodeInput(r *http.Request) (any, error) {
	in := e.NewInput()
	if err := json.NewDecoder(r.Body).Decode(in); err != nil {
		return nil, err
	}
	return in, nil
}

func (e Entity[T, S]) CreateHandler(a *App) http.HandlerFunc {
	return a.withSession(func(w http.ResponseWriter, r *http.Request, s *session.Session) {
		in, err := e.decodeInput(r)
		if err != nil {
			WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		st := e.Store(s)
		rec, err := st.Create(r.Context(), in)
		if err != nil {
			writeError(w, err, st.Snapshot().Error)
			return
		}
		writeJSON(w, http.StatusCreated, rec)
	})
}

func (e Entity[T, S]) UpdateHandler(a *App) http.HandlerFunc {
	return a.withSession(func(w http.ResponseWriter, r *http.Request, s *session.Session) {
		in, err := e.decodeInput(r)
		if err != nil {
			WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		st := e.Store(s)
		rec, err := st.Update(r.Context(), r.PathValue("id"), in)
		if err != nil {
			writeError(w, err, st.Snapshot().Error)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	})
}

func (e Entity[T, S]) DeleteHandler(a *App) http.HandlerFunc {
	return a.withSession(func(w http.ResponseWriter, r *http.Request, s *session.Session) {
		st := e.Store(s)
		if err := st.Delete(r.Context(), r.PathValue("id")); err != nil {
			writeError(w, err, st.Snapshot().Error)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// Build filters the session's collection with c and returns the record
// count with its report.
func (e Entity[T, S]) Build(s *session.Session, c model.Criteria) (int, export.Report) {
	res := view.Compute(e.Store(s).Items(), e.Filter, e.Stats, c)
	return len(res.Records), e.Report(res.Records, res.Stats)
}

// ExportHandler は現在の絞り込み結果をxlsxまたはcsvで返します。
func (e Entity[T, S]) ExportHandler(a *App) http.HandlerFunc {
	return a.withSession(func(w http.ResponseWriter, r *http.Request, s *session.Session) {
		q := r.URL.Query()
		_, rep := e.Build(s, CriteriaFromQuery(q))

		var buf bytes.Buffer
		ext, contentType := "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		write := rep.WriteXLSX
		if strings.EqualFold(q.Get("format"), "csv") {
			ext, contentType = "csv", "text/csv; charset=utf-8"
			write = rep.WriteCSV
		}
		if err := write(&buf); err != nil {
			writeError(w, err, "Failed to export "+e.Name+"!")
			return
		}

		filename := fmt.Sprintf("%s_%s.%s", e.Name, a.Now().Format("20060102"), ext)
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
		w.Write(buf.Bytes())
	})
}

// Register adds the entity's routes under /api/{name}.
func (e Entity[T, S]) Register(mux *http.ServeMux, a *App) {
	base := "/api/" + e.Name
	mux.HandleFunc("GET "+base, e.ListHandler(a))
	mux.HandleFunc("POST "+base, e.CreateHandler(a))
	mux.HandleFunc("GET "+base+"/export", e.ExportHandler(a))
	mux.HandleFunc("GET "+base+"/{id}", e.GetHandler(a))
	mux.HandleFunc("PUT "+base+"/{id}", e.UpdateHandler(a))
	mux.HandleFunc("DELETE "+base+"/{id}", e.DeleteHandler(a))
}
