package core

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/gridtable/internal/config"
	"github.com/JonMunkholm/gridtable/internal/csvio"
	"github.com/JonMunkholm/gridtable/internal/grid"
	"github.com/JonMunkholm/gridtable/internal/logging"
	"github.com/JonMunkholm/gridtable/internal/store"
)

var (
	// ErrSheetNotFound is returned for an unknown or removed sheet ID.
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrStoreUnavailable wraps failures from the backing store.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Store is the persistence the Service writes through to. *store.Store
// satisfies it.
type Store interface {
	Save(ctx context.Context, rec store.Record) error
	Load(ctx context.Context, id uuid.UUID) (store.Record, error)
	List(ctx context.Context) ([]store.Record, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Snapshot is a copy of a sheet taken under its lock.
type Snapshot struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Rows      int        `json:"rows"`
	Columns   int        `json:"columns"`
	Cells     [][]string `json:"cells"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Summary describes a sheet without its cells.
type Summary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Rows      int       `json:"rows"`
	Columns   int       `json:"columns"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Service owns the set of named sheets.
//
// A Grid is not safe for concurrent use, so every sheet carries its own
// mutex and all access goes through it. Mutations run against a clone that
// replaces the live grid only after the function and the store both succeed.
type Service struct {
	store         Store
	limiter       *ImportLimiter
	maxImportSize int64
	maxCells      int

	mu     sync.RWMutex
	sheets map[uuid.UUID]*sheet
}

type sheet struct {
	mu      sync.Mutex
	id      uuid.UUID
	name    string
	grid    *grid.Grid
	created time.Time
	updated time.Time
	removed bool
}

// NewService returns an empty Service. st may be nil, in which case sheets
// live only in memory.
func NewService(st Store, cfg config.ImportConfig) *Service {
	return &Service{
		store:         st,
		limiter:       NewImportLimiter(cfg.MaxConcurrent, cfg.MaxWaitTime),
		maxImportSize: cfg.MaxFileSize,
		maxCells:      cellCap(cfg.MaxCells),
		sheets:        make(map[uuid.UUID]*sheet),
	}
}

func cellCap(n int) int {
	if n <= 0 || n > grid.MaxCells {
		return grid.MaxCells
	}
	return n
}

// Limiter exposes the import limiter so shutdown can wait for it to drain.
func (s *Service) Limiter() *ImportLimiter {
	return s.limiter
}

// Create adds a blank sheet of rows x cols empty cells.
func (s *Service) Create(ctx context.Context, name string, rows, cols int) (Snapshot, error) {
	if rows > 0 && cols > 0 {
		if err := s.checkCells(rows, cols); err != nil {
			return Snapshot{}, err
		}
	}
	g, err := grid.Create(rows, cols)
	if err != nil {
		return Snapshot{}, err
	}
	return s.add(ctx, name, g)
}

// CreateFromCells adds a sheet holding a copy of cells.
func (s *Service) CreateFromCells(ctx context.Context, name string, cells [][]string) (Snapshot, error) {
	g, err := grid.Parse(cells)
	if err != nil {
		return Snapshot{}, err
	}
	return s.add(ctx, name, g)
}

// CreateFromValues adds a sheet from arbitrary values, as decoded from JSON.
// Non-string cells are rejected unless opts include grid.WithCast.
func (s *Service) CreateFromValues(ctx context.Context, name string, values [][]any, opts ...grid.ParseOption) (Snapshot, error) {
	g, err := grid.ParseValues(values, opts...)
	if err != nil {
		return Snapshot{}, err
	}
	return s.add(ctx, name, g)
}

// Import parses CSV from r into a new sheet. Imports are bounded by the
// import limiter and the configured maximum size.
func (s *Service) Import(ctx context.Context, name string, r io.Reader) (Snapshot, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return Snapshot{}, err
	}
	defer s.limiter.Release()

	if s.maxImportSize > 0 {
		r = csvio.LimitReader(r, s.maxImportSize)
	}
	cells, err := csvio.Read(r)
	if err != nil {
		return Snapshot{}, fmt.Errorf("import %q: %w", name, err)
	}
	g, err := grid.Parse(cells)
	if err != nil {
		return Snapshot{}, fmt.Errorf("import %q: %w", name, err)
	}
	return s.add(ctx, name, g)
}

func (s *Service) add(ctx context.Context, name string, g *grid.Grid) (Snapshot, error) {
	if err := s.checkCells(g.RowCount(), g.ColumnCount()); err != nil {
		return Snapshot{}, err
	}
	g.SetMaxCells(s.maxCells)

	now := time.Now().UTC()
	sh := &sheet{
		id:      uuid.New(),
		name:    sheetName(name),
		grid:    g,
		created: now,
		updated: now,
	}

	if err := s.persist(ctx, sh, g, now); err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	s.sheets[sh.id] = sh
	s.mu.Unlock()

	logging.WithFields(ctx, "sheet_id", sh.id, "name", sh.name).
		Info("sheet created", "rows", g.RowCount(), "columns", g.ColumnCount())
	return sh.snapshot(), nil
}

// checkCells rejects sheets larger than the configured cap. Both dimensions
// are positive.
func (s *Service) checkCells(rows, cols int) error {
	if rows > s.maxCells/cols {
		return fmt.Errorf("%w: a %d x %d sheet exceeds the limit of %d cells",
			grid.ErrInvalidArgument, rows, cols, s.maxCells)
	}
	return nil
}

func sheetName(name string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return "untitled"
}

// Get returns a snapshot of the sheet.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Snapshot, error) {
	sh, err := s.lookup(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}

	sh.mu.Lock()
	defer sh.mu.Unlock()
	if sh.removed {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrSheetNotFound, id)
	}
	return sh.snapshot(), nil
}

// List summarizes every sheet, ordered by name.
func (s *Service) List(ctx context.Context) []Summary {
	s.mu.RLock()
	sheets := make([]*sheet, 0, len(s.sheets))
	for _, sh := range s.sheets {
		sheets = append(sheets, sh)
	}
	s.mu.RUnlock()

	out := make([]Summary, 0, len(sheets))
	for _, sh := range sheets {
		sh.mu.Lock()
		if !sh.removed {
			out = append(out, Summary{
				ID:        sh.id,
				Name:      sh.name,
				Rows:      sh.grid.RowCount(),
				Columns:   sh.grid.ColumnCount(),
				UpdatedAt: sh.updated,
			})
		}
		sh.mu.Unlock()
	}

	slices.SortFunc(out, func(a, b Summary) int {
		return cmp.Or(strings.Compare(a.Name, b.Name), strings.Compare(a.ID.String(), b.ID.String()))
	})
	return out
}

// Remove deletes the sheet from the service and the store.
func (s *Service) Remove(ctx context.Context, id uuid.UUID) error {
	sh, err := s.lookup(ctx, id)
	if err != nil {
		return err
	}

	sh.mu.Lock()
	defer sh.mu.Unlock()
	if sh.removed {
		return fmt.Errorf("%w: %s", ErrSheetNotFound, id)
	}
	if s.store != nil {
		if err := s.store.Delete(ctx, id); err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
	}
	sh.removed = true

	s.mu.Lock()
	delete(s.sheets, id)
	s.mu.Unlock()

	logging.FromContext(ctx).Info("sheet removed", "sheet_id", id)
	return nil
}

// View runs fn against the live grid under the sheet lock. fn must not keep
// the grid or modify it.
func (s *Service) View(ctx context.Context, id uuid.UUID, fn func(*grid.Grid) error) error {
	sh, err := s.lookup(ctx, id)
	if err != nil {
		return err
	}

	sh.mu.Lock()
	defer sh.mu.Unlock()
	if sh.removed {
		return fmt.Errorf("%w: %s", ErrSheetNotFound, id)
	}
	return fn(sh.grid)
}

// Mutate applies fn to a copy of the sheet and commits the copy once fn and
// the store accept it. On any error the sheet is left as it was.
func (s *Service) Mutate(ctx context.Context, id uuid.UUID, op string, fn func(*grid.Grid) error) (Snapshot, error) {
	sh, err := s.lookup(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}

	sh.mu.Lock()
	defer sh.mu.Unlock()
	if sh.removed {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrSheetNotFound, id)
	}

	logger := logging.WithFields(ctx, "sheet_id", id, "op", op)

	next := sh.grid.Clone()
	if err := fn(next); err != nil {
		logger.Debug("mutation rejected", "error", err)
		return Snapshot{}, err
	}

	now := time.Now().UTC()
	if err := s.persist(ctx, sh, next, now); err != nil {
		logger.Warn("mutation not persisted", "error", err)
		return Snapshot{}, err
	}
	sh.grid = next
	sh.updated = now

	logger.Debug("sheet mutated", "rows", next.RowCount(), "columns", next.ColumnCount())
	return sh.snapshot(), nil
}

// Render draws the sheet as a bordered text table.
func (s *Service) Render(ctx context.Context, id uuid.UUID, align grid.Alignment, style grid.Style) (string, error) {
	var out string
	err := s.View(ctx, id, func(g *grid.Grid) error {
		var err error
		out, err = g.RenderBordered(align, grid.WithStyle(style))
		return err
	})
	return out, err
}

// RenderCSV returns the sheet's minimal, unquoted CSV form.
func (s *Service) RenderCSV(ctx context.Context, id uuid.UUID) (string, error) {
	var out string
	err := s.View(ctx, id, func(g *grid.Grid) error {
		var err error
		out, err = g.RenderCSV()
		return err
	})
	return out, err
}

// Load fills the service from the store and returns the number of sheets
// loaded. Stored sheets that no longer form a valid grid are skipped.
func (s *Service) Load(ctx context.Context) (int, error) {
	if s.store == nil {
		return 0, nil
	}
	recs, err := s.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	loaded := 0
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range recs {
		sh, err := s.fromRecord(rec)
		if err != nil {
			slog.Warn("skipping stored sheet", "sheet_id", rec.ID, "error", err)
			continue
		}
		s.sheets[rec.ID] = sh
		loaded++
	}
	return loaded, nil
}

// lookup finds a sheet in memory, then in the store for sheets written by
// another server sharing the database.
func (s *Service) lookup(ctx context.Context, id uuid.UUID) (*sheet, error) {
	s.mu.RLock()
	sh, ok := s.sheets[id]
	s.mu.RUnlock()
	if ok {
		return sh, nil
	}
	if s.store == nil {
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, id)
	}

	rec, err := s.store.Load(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	loaded, err := s.fromRecord(rec)
	if err != nil {
		logging.FromContext(ctx).Warn("stored sheet is not a valid grid", "sheet_id", id, "error", err)
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sh, ok := s.sheets[id]; ok {
		return sh, nil
	}
	s.sheets[id] = loaded
	return loaded, nil
}

func (s *Service) fromRecord(rec store.Record) (*sheet, error) {
	g, err := grid.Parse(rec.Cells)
	if err != nil {
		return nil, err
	}
	g.SetMaxCells(s.maxCells)
	return &sheet{
		id:      rec.ID,
		name:    rec.Name,
		grid:    g,
		created: rec.CreatedAt,
		updated: rec.UpdatedAt,
	}, nil
}

// persist writes g as sh's contents. Caller holds sh.mu or owns sh.
func (s *Service) persist(ctx context.Context, sh *sheet, g *grid.Grid, updated time.Time) error {
	if s.store == nil {
		return nil
	}
	rec := store.Record{
		ID:        sh.id,
		Name:      sh.name,
		Cells:     g.Rows(),
		CreatedAt: sh.created,
		UpdatedAt: updated,
	}
	if err := s.store.Save(ctx, rec); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// snapshot copies sh. Caller holds sh.mu or owns sh.
func (sh *sheet) snapshot() Snapshot {
	return Snapshot{
		ID:        sh.id,
		Name:      sh.name,
		Rows:      sh.grid.RowCount(),
		Columns:   sh.grid.ColumnCount(),
		Cells:     sh.grid.Rows(),
		CreatedAt: sh.created,
		UpdatedAt: sh.updated,
	}
}
