package solver

import (
	"errors"
	"log/slog"
	"math"

	"github.com/latticeforge/tessera/internal/bitset"
	"github.com/latticeforge/tessera/internal/ruleset"
	"github.com/latticeforge/tessera/internal/wfcerr"
)

// ErrAlreadyRun is returned by a second call to Run on the same Model.
// It is deliberately not a wfcerr.Error: it signals caller misuse, not a
// solving outcome.
var ErrAlreadyRun = errors.New("solver: Run already called on this Model")

// Model is the stateful solver core. Construct one with NewModel and
// call Run exactly once; a Model has no reuse guarantee beyond that.
//
// Not thread-safe: a Model must not be accessed from more than one
// goroutine at a time. Distinct Models sharing a read-only
// *ruleset.RuleSet may run concurrently.
type Model struct {
	rs     *ruleset.RuleSet
	width  int
	height int

	cells     []cellState
	remaining int
	rng       *stream
	work      *worklist

	ran    bool
	logger *slog.Logger
}

// Option configures a Model at construction time.
type Option func(*Model)

// WithLogger attaches a structured logger; observe/collapse/propagate
// steps are logged at Debug, run start/success/contradiction at
// Info/Error. Without a logger, logging calls are skipped entirely (the
// zero-value *Model.logger is treated as "no logging").
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) { m.logger = logger }
}

// NewModel constructs a Model for a width x height grid over rs. seed
// may be nil, in which case the RNG stream is seeded from OS entropy.
//
// Fails with InvalidDimensions if either dimension is zero, or with
// NoTilesDefined if rs has no tiles.
func NewModel(width, height int, rs *ruleset.RuleSet, seed *uint64, opts ...Option) (*Model, error) {
	if width <= 0 || height <= 0 {
		return nil, wfcerr.InvalidDimensions(width, height)
	}
	if rs == nil || rs.TileCount() == 0 {
		return nil, wfcerr.NoTilesDefined()
	}

	n := width * height
	cells := make([]cellState, n)
	full := rs.FullPossibilitySet()
	sumW, sumWLogW := fullEntropySums(rs)
	for i := range cells {
		cells[i] = cellState{possibilities: full.Clone(), sumW: sumW, sumWLogW: sumWLogW}
	}

	m := &Model{
		rs:        rs,
		width:     width,
		height:    height,
		cells:     cells,
		remaining: n,
		rng:       newStream(seed),
		work:      newWorklist(n),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

func fullEntropySums(rs *ruleset.RuleSet) (sumW, sumWLogW float64) {
	for i := 0; i < rs.TileCount(); i++ {
		w := float64(rs.WeightAt(i))
		sumW += w
		if w > 0 {
			sumWLogW += w * math.Log2(w)
		}
	}
	return sumW, sumWLogW
}

func (m *Model) logDebug(msg string, args ...any) {
	if m.logger != nil {
		m.logger.Debug(msg, args...)
	}
}

// Run executes the observe/collapse/propagate loop to completion. May be
// called at most once per Model; a second call returns ErrAlreadyRun
// because the Model's state has already been consumed.
func (m *Model) Run() (Grid, error) {
	if m.ran {
		return Grid{}, ErrAlreadyRun
	}
	m.ran = true

	if m.logger != nil {
		m.logger.Info("solver run starting", "width", m.width, "height", m.height, "tiles", m.rs.TileCount())
	}

	for m.remaining > 0 {
		idx, ok := m.observe()
		if !ok {
			break
		}
		m.logDebug("observe", "cell_index", idx, "remaining_cells", m.remaining)
		m.collapse(idx)
		if err := m.propagate(idx); err != nil {
			if m.logger != nil {
				cellIdx, _ := wfcerr.AsContradiction(err)
				m.logger.Error("solver run contradiction", "cell_index", cellIdx)
			}
			return Grid{}, err
		}
	}

	grid := m.grid()
	if m.logger != nil {
		m.logger.Info("solver run succeeded", "width", m.width, "height", m.height)
	}
	return grid, nil
}

// observe selects the uncollapsed cell with the lowest entropy, breaking
// ties with a per-cell random jitter drawn from the model's RNG stream.
// Jitter is drawn for every uncollapsed cell, in ascending index order,
// before the collapse step draws its own sample - this fixed draw order
// is what makes Run deterministic given a seed.
func (m *Model) observe() (idx int, ok bool) {
	best := -1
	bestKey := 0.0
	for i := range m.cells {
		if m.cells[i].collapsed {
			continue
		}
		key := m.cells[i].entropy() + m.rng.jitter()
		if best == -1 || key < bestKey {
			best = i
			bestKey = key
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

// collapse weighted-samples one tile from cell idx's possibilities
// (probability proportional to weight), reducing it to that singleton.
func (m *Model) collapse(idx int) {
	cell := &m.cells[idx]

	var candidates []int
	var weights []int
	cell.possibilities.Each(func(t int) {
		candidates = append(candidates, t)
		weights = append(weights, int(m.rs.WeightAt(t)))
	})

	chosen := candidates[m.rng.weightedIndex(weights)]

	m.logDebug("collapse", "cell_index", idx, "tile", string(m.rs.IDAt(chosen)))

	cell.possibilities = bitset.Singleton(cell.possibilities.Len(), chosen)
	w := float64(m.rs.WeightAt(chosen))
	cell.sumW = w
	cell.sumWLogW = w * math.Log2(w)
	if !cell.collapsed {
		cell.collapsed = true
		m.remaining--
	}
	m.work.push(idx)
}

// propagate drains the worklist starting from the just-collapsed cell
// seed, reducing each in-bounds neighbor's possibilities to those
// compatible with the source cell's remaining possibilities.
func (m *Model) propagate(seed int) error {
	m.work.push(seed)

	for {
		i, ok := m.work.pop()
		if !ok {
			return nil
		}

		x, y := i%m.width, i/m.width
		for _, d := range ruleset.Directions() {
			j, ok := neighborIndex(x, y, m.width, m.height, d)
			if !ok {
				continue
			}

			allowed := m.allowedMask(i, d)

			oldSet := m.cells[j].possibilities
			newSet := oldSet.Clone()
			changed := newSet.IntersectInPlace(allowed)
			if !changed {
				continue
			}
			if newSet.IsEmpty() {
				return wfcerr.Contradiction(j)
			}

			removed := oldSet.AndNot(newSet)
			removed.Each(func(t int) {
				m.cells[j].removeTile(float64(m.rs.WeightAt(t)))
			})
			m.cells[j].possibilities = newSet
			m.logDebug("propagate", "cell_index", j, "possibilities", newSet.Count())

			if newSet.Count() == 1 && !m.cells[j].collapsed {
				m.cells[j].collapsed = true
				m.remaining--
			}
			m.work.push(j)
		}
	}
}

// allowedMask computes the union, over every tile still possible in
// cell i, of the allowed-neighbor mask in direction d - the propagation
// inner loop. If cell i has no remaining possibilities (already
// contradictory), the union is empty, which correctly propagates the
// contradiction downstream.
func (m *Model) allowedMask(i int, d ruleset.Direction) bitset.Set {
	union := bitset.New(m.rs.TileCount())
	m.cells[i].possibilities.Each(func(t int) {
		union.UnionInPlace(m.rs.AllowedMaskAt(t, d))
	})
	return union
}

func (m *Model) grid() Grid {
	tiles := make([]ruleset.TileID, len(m.cells))
	for i, c := range m.cells {
		tiles[i] = m.rs.IDAt(c.possibilities.Only())
	}
	return Grid{Width: m.width, Height: m.height, Tiles: tiles}
}
