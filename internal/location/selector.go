// Package location implements the province -> regency -> district selector shared by every
// identity form. Selections are area names (that is what the API stores on a user); option
// lists are fetched on demand from a Lookup.
package location

import (
	"context"
	"sync"

	"dealerpro/internal/domain"
)

type Lookup interface {
	Provinces(ctx context.Context) ([]domain.Area, error)
	Regencies(ctx context.Context, provinceID string) ([]domain.Area, error)
	Districts(ctx context.Context, regencyID string) ([]domain.Area, error)
}

type Level string

const (
	LevelProvince Level = "province"
	LevelRegency  Level = "regency"
	LevelDistrict Level = "district"
)

// ErrorFunc receives reference fetch failures. They are never shown to the user.
type ErrorFunc func(level Level, parentID string, err error)

type Selection struct {
	Province string `json:"provinsi"`
	Regency  string `json:"kabupaten"`
	District string `json:"kecamatan"`
}

type Options struct {
	Provinces []domain.Area
	Regencies []domain.Area
	Districts []domain.Area
}

// Selector is safe for concurrent use. A dependent fetch only lands if no newer change to
// its parent happened meanwhile; the superseded request's context is cancelled.
type Selector struct {
	lookup  Lookup
	onError ErrorFunc

	mu       sync.Mutex
	sel      Selection
	opts     Options
	loaded   bool
	regency  inflight
	district inflight
}

func New(l Lookup, onError ErrorFunc) *Selector {
	if onError == nil {
		onError = func(Level, string, error) {}
	}
	return &Selector{lookup: l, onError: onError}
}

func (s *Selector) Selection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel
}

func (s *Selector) Options() Options {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Options{
		Provinces: append([]domain.Area(nil), s.opts.Provinces...),
		Regencies: append([]domain.Area(nil), s.opts.Regencies...),
		Districts: append([]domain.Area(nil), s.opts.Districts...),
	}
}

// Load fetches the province options. On failure the current list is kept.
func (s *Selector) Load(ctx context.Context) {
	areas, err := s.lookup.Provinces(ctx)
	if err != nil {
		s.onError(LevelProvince, "", err)
		return
	}
	s.mu.Lock()
	s.opts.Provinces = areas
	s.loaded = true
	s.mu.Unlock()
}

// SetProvince selects a province, clears regency and district, and refreshes the regency
// options. An empty or unknown province empties the dependent lists without a fetch.
func (s *Selector) SetProvince(ctx context.Context, name string) {
	s.mu.Lock()
	s.sel = Selection{Province: name}
	s.opts.Districts = nil
	s.district.invalidate()
	parent, ok := find(s.opts.Provinces, name)
	if !ok {
		s.regency.invalidate()
		s.opts.Regencies = nil
		s.mu.Unlock()
		return
	}
	fctx, gen := s.regency.begin(ctx)
	s.mu.Unlock()

	s.await(fctx, gen, &s.regency, LevelRegency, parent.ID, s.lookup.Regencies, func(a []domain.Area) {
		s.opts.Regencies = a
	})
}

// SetRegency selects a regency, clears the district, and refreshes the district options.
func (s *Selector) SetRegency(ctx context.Context, name string) {
	s.mu.Lock()
	s.sel.Regency = name
	s.sel.District = ""
	parent, ok := find(s.opts.Regencies, name)
	if !ok {
		s.district.invalidate()
		s.opts.Districts = nil
		s.mu.Unlock()
		return
	}
	fctx, gen := s.district.begin(ctx)
	s.mu.Unlock()

	s.await(fctx, gen, &s.district, LevelDistrict, parent.ID, s.lookup.Districts, func(a []domain.Area) {
		s.opts.Districts = a
	})
}

func (s *Selector) SetDistrict(name string) {
	s.mu.Lock()
	s.sel.District = name
	s.mu.Unlock()
}

// Restore pre-populates an editor from a stored record: it loads the option chain for sel
// and keeps every level as given.
func (s *Selector) Restore(ctx context.Context, sel Selection) {
	s.Apply(ctx, sel, sel)
}

// Apply moves the selector from the previously rendered selection prev to the posted one.
// Only the highest changed level is applied: a changed province drops the posted regency and
// district, a changed regency drops the posted district. Unchanged levels are restored with
// their option lists. It reports whether a posted child value was dropped.
func (s *Selector) Apply(ctx context.Context, prev, next Selection) (dropped bool) {
	s.mu.Lock()
	loaded := s.loaded
	s.mu.Unlock()
	if !loaded {
		s.Load(ctx)
	}

	if next.Province != prev.Province {
		s.SetProvince(ctx, next.Province)
		return next.Regency != "" || next.District != ""
	}
	s.SetProvince(ctx, prev.Province)

	if next.Regency != prev.Regency {
		s.SetRegency(ctx, next.Regency)
		return next.District != ""
	}
	if prev.Regency == "" {
		return next.District != ""
	}
	s.SetRegency(ctx, prev.Regency)
	s.SetDistrict(next.District)
	return false
}

// await runs a fetch begun under the lock and applies its result if gen is still current.
func (s *Selector) await(fctx context.Context, gen uint64, f *inflight, level Level, parentID string,
	get func(context.Context, string) ([]domain.Area, error), apply func([]domain.Area)) {

	areas, err := get(fctx, parentID)

	s.mu.Lock()
	if !f.finish(gen) {
		// superseded: a newer parent value owns the option list now
		s.mu.Unlock()
		return
	}
	if err == nil {
		apply(areas)
	}
	s.mu.Unlock()

	if err != nil {
		s.onError(level, parentID, err)
	}
}

// inflight tracks the latest fetch for one level. Guarded by Selector.mu.
type inflight struct {
	gen    uint64
	cancel context.CancelFunc
}

func (f *inflight) begin(ctx context.Context) (context.Context, uint64) {
	f.invalidate()
	fctx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	return fctx, f.gen
}

// invalidate makes any outstanding fetch stale and cancels it.
func (f *inflight) invalidate() {
	f.gen++
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

// finish reports whether gen is still current and releases its context if so.
func (f *inflight) finish(gen uint64) bool {
	if gen != f.gen {
		return false
	}
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	return true
}

// Unlisted returns the levels of sel whose value is missing from its option list, so an
// editor can still show a stored name the lookup did not return.
func (o Options) Unlisted(sel Selection) Selection {
	var u Selection
	if _, ok := find(o.Provinces, sel.Province); !ok {
		u.Province = sel.Province
	}
	if _, ok := find(o.Regencies, sel.Regency); !ok {
		u.Regency = sel.Regency
	}
	if _, ok := find(o.Districts, sel.District); !ok {
		u.District = sel.District
	}
	return u
}

func find(areas []domain.Area, name string) (domain.Area, bool) {
	if name == "" {
		return domain.Area{}, false
	}
	for _, a := range areas {
		if a.Name == name {
			return a, true
		}
	}
	return domain.Area{}, false
}
