package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/JonMunkholm/gridtable/internal/core"
	"github.com/JonMunkholm/gridtable/internal/csvio"
	"github.com/JonMunkholm/gridtable/internal/grid"
	"github.com/JonMunkholm/gridtable/internal/web/templates"
)

// maxJSONBody caps JSON request bodies. CSV imports are capped by the
// service's import limit instead.
const maxJSONBody = 1 << 20

type createSheetRequest struct {
	Name    string  `json:"name"`
	Rows    int     `json:"rows"`
	Columns int     `json:"columns"`
	Cells   [][]any `json:"cells"`
	Cast    bool    `json:"cast"`
}

type insertRequest struct {
	At    int `json:"at"`
	Count int `json:"count"`
}

type growRequest struct {
	Direction string `json:"direction"`
	Count     int    `json:"count"`
}

type cellRequest struct {
	Value any `json:"value"`
}

type lineResponse struct {
	Axis   string   `json:"axis"`
	Index  int      `json:"index"`
	Values []string `json:"values"`
}

type cellResponse struct {
	Row    int    `json:"row"`
	Column int    `json:"column"`
	Value  string `json:"value"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"sheets":  len(s.service.List(r.Context())),
		"imports": s.service.Limiter().Status(),
	})
}

func (s *Server) handleListSheets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.List(r.Context()))
}

func (s *Server) handleCreateSheet(w http.ResponseWriter, r *http.Request) {
	var req createSheetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	var (
		snap core.Snapshot
		err  error
	)
	if req.Cells != nil {
		var opts []grid.ParseOption
		if req.Cast {
			opts = append(opts, grid.WithCast())
		}
		snap, err = s.service.CreateFromValues(r.Context(), req.Name, req.Cells, opts...)
	} else {
		snap, err = s.service.Create(r.Context(), req.Name, req.Rows, req.Columns)
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

func (s *Server) handleImportSheet(w http.ResponseWriter, r *http.Request) {
	snap, err := s.service.Import(r.Context(), r.URL.Query().Get("name"), r.Body)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

func (s *Server) handleGetSheet(w http.ResponseWriter, r *http.Request) {
	id, err := sheetID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	snap, err := s.service.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleDeleteSheet(w http.ResponseWriter, r *http.Request) {
	id, err := sheetID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.service.Remove(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRender writes the bordered table. Query: align=L|R|C, style=box|ascii.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	id, err := sheetID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	align, style, err := s.renderOptions(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	out, err := s.service.Render(r.Context(), id, align, style)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, out)
}

// handleCSV writes the sheet as CSV. The default is the minimal unquoted
// form; quoted=true returns RFC 4180 CSV that survives commas and newlines.
func (s *Server) handleCSV(w http.ResponseWriter, r *http.Request) {
	id, err := sheetID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var out string
	if quoted, _ := strconv.ParseBool(r.URL.Query().Get("quoted")); quoted {
		snap, err := s.service.Get(r.Context(), id)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		if out, err = csvio.Encode(snap.Cells); err != nil {
			s.respondError(w, r, err)
			return
		}
	} else if out, err = s.service.RenderCSV(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id.String()+".csv"))
	_, _ = io.WriteString(w, out)
}

func (s *Server) handleSheetPage(w http.ResponseWriter, r *http.Request) {
	id, err := sheetID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	align, _, err := s.renderOptions(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	snap, err := s.service.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.SheetPage(snap.Name, snap.Cells, align).Render(r.Context(), w); err != nil {
		s.respondError(w, r, err)
	}
}

func (s *Server) handleGrow(w http.ResponseWriter, r *http.Request) {
	var req growRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	dir, err := grid.ParseDirection(req.Direction)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.mutate(w, r, "grow", func(g *grid.Grid) error {
		return g.Add(dir, req.Count)
	})
}

func (s *Server) handleInsert(axis grid.Axis) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req insertRequest
		if err := decodeJSON(w, r, &req); err != nil {
			s.respondError(w, r, err)
			return
		}
		s.mutate(w, r, "insert_"+strings.ToLower(axis.String()), func(g *grid.Grid) error {
			if axis == grid.Column {
				return g.InsertColumns(req.At, req.Count)
			}
			return g.InsertRows(req.At, req.Count)
		})
	}
}

func (s *Server) handleDeleteLine(axis grid.Axis) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, err := intParam(r, "index")
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		s.mutate(w, r, "delete_"+strings.ToLower(axis.String()), func(g *grid.Grid) error {
			return g.Delete(axis, index)
		})
	}
}

func (s *Server) handleGetLine(axis grid.Axis) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sheetID(r)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		index, err := intParam(r, "index")
		if err != nil {
			s.respondError(w, r, err)
			return
		}

		var values []string
		err = s.service.View(r.Context(), id, func(g *grid.Grid) error {
			values, err = g.Line(axis, index)
			return err
		})
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, lineResponse{Axis: strings.ToLower(axis.String()), Index: index, Values: values})
	}
}

func (s *Server) handleGetCell(w http.ResponseWriter, r *http.Request) {
	id, row, col, err := cellParams(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var value string
	err = s.service.View(r.Context(), id, func(g *grid.Grid) error {
		value, err = g.Get(row, col)
		return err
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cellResponse{Row: row, Column: col, Value: value})
}

// handleSetCell stores a text value. Non-string JSON values are rejected.
func (s *Server) handleSetCell(w http.ResponseWriter, r *http.Request) {
	_, row, col, err := cellParams(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var req cellRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.mutate(w, r, "set_cell", func(g *grid.Grid) error {
		return g.SetValue(req.Value, row, col)
	})
}

// mutate applies fn to the sheet named in the URL and writes the result.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, op string, fn func(*grid.Grid) error) {
	id, err := sheetID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	snap, err := s.service.Mutate(r.Context(), id, op, fn)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// renderOptions reads align and style from the query, falling back to the
// configured defaults.
func (s *Server) renderOptions(r *http.Request) (grid.Alignment, grid.Style, error) {
	align, style := s.align, s.style
	q := r.URL.Query()
	if v := q.Get("align"); v != "" {
		a, err := grid.ParseAlignment(v)
		if err != nil {
			return 0, 0, err
		}
		align = a
	}
	if v := q.Get("style"); v != "" {
		st, err := grid.ParseStyle(v)
		if err != nil {
			return 0, 0, err
		}
		style = st
	}
	return align, style, nil
}

func sheetID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", core.ErrSheetNotFound, raw)
	}
	return id, nil
}

func intParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badRequest("%s must be an integer, got %q", name, raw)
	}
	return n, nil
}

func cellParams(r *http.Request) (uuid.UUID, int, int, error) {
	id, err := sheetID(r)
	if err != nil {
		return uuid.Nil, 0, 0, err
	}
	row, err := intParam(r, "row")
	if err != nil {
		return uuid.Nil, 0, 0, err
	}
	col, err := intParam(r, "col")
	if err != nil {
		return uuid.Nil, 0, 0, err
	}
	return id, row, col, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(v); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return fmt.Errorf("%w: request body over %d bytes", csvio.ErrFileTooLarge, maxJSONBody)
		}
		return badRequest("invalid request body: %v", err)
	}
	return nil
}
