package progress

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/springbar/internal/dynamo"
	"github.com/san-kum/springbar/internal/logger"
	"github.com/san-kum/springbar/internal/viz"
)

// Group coordinates named bars. Iteration follows insertion order.
type Group struct {
	bars  map[string]*Bar
	order []string
	log   logger.Logger
}

// GroupOption configures a Group.
type GroupOption func(*Group)

// WithLogger reports member tick failures to l.
func WithLogger(l logger.Logger) GroupOption {
	return func(g *Group) {
		if l != nil {
			g.log = l
		}
	}
}

func NewGroup(opts ...GroupOption) *Group {
	g := &Group{
		bars: make(map[string]*Bar),
		log:  logger.Noop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Add registers bar under name. An existing name yields a
// *dynamo.DuplicateNameError and leaves the group unchanged.
func (g *Group) Add(name string, bar *Bar) error {
	if bar == nil {
		return dynamo.InvalidArgument("progress.Group.Add", "bar", nil, "must not be nil")
	}
	if _, ok := g.bars[name]; ok {
		return &dynamo.DuplicateNameError{Name: name}
	}
	g.bars[name] = bar
	g.order = append(g.order, name)
	return nil
}

// Remove drops name and reports whether it was present.
func (g *Group) Remove(name string) bool {
	if _, ok := g.bars[name]; !ok {
		return false
	}
	delete(g.bars, name)
	for i, n := range g.order {
		if n == name {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	return true
}

func (g *Group) Get(name string) (*Bar, bool) {
	b, ok := g.bars[name]
	return b, ok
}

// Names returns member names in insertion order.
func (g *Group) Names() []string {
	return append([]string(nil), g.order...)
}

func (g *Group) Len() int { return len(g.order) }

// TickReport lists which members ticked and which failed.
type TickReport struct {
	Ticked []string
	Failed map[string]error
}

// TickError carries every member failure from one TickAll.
type TickError struct {
	Failed map[string]error
}

func (e *TickError) Error() string {
	names := make([]string, 0, len(e.Failed))
	for name := range e.Failed {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s: %v", name, e.Failed[name])
	}
	return fmt.Sprintf("progress: %d bar(s) failed to tick: %s", len(names), strings.Join(parts, "; "))
}

func (e *TickError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failed))
	for _, err := range e.Failed {
		errs = append(errs, err)
	}
	return errs
}

// TickAll ticks every member in insertion order. A failing member, panics
// included, does not stop the others; failures come back in the report and
// as a *TickError.
func (g *Group) TickAll(dt float64) (TickReport, error) {
	report := TickReport{Failed: make(map[string]error)}
	for _, name := range g.order {
		if err := tickOne(g.bars[name], dt); err != nil {
			report.Failed[name] = err
			g.log.Error("tick %s: %v", name, err)
			continue
		}
		report.Ticked = append(report.Ticked, name)
	}
	if len(report.Failed) == 0 {
		return report, nil
	}
	return report, &TickError{Failed: report.Failed}
}

// ErrPanic marks a member whose tick panicked.
var ErrPanic = errors.New("progress: bar panicked")

func tickOne(b *Bar, dt float64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return b.Tick(dt)
}

// Rendered is one member's line.
type Rendered struct {
	Name string
	Line viz.Line
}

// RenderAll renders every member in insertion order, cancelled ones
// included.
func (g *Group) RenderAll() []Rendered {
	out := make([]Rendered, len(g.order))
	for i, name := range g.order {
		out[i] = Rendered{Name: name, Line: g.bars[name].Render()}
	}
	return out
}

// IsAnyAnimating reports whether at least one member is Animating.
func (g *Group) IsAnyAnimating() bool {
	for _, b := range g.bars {
		if b.IsAnimating() {
			return true
		}
	}
	return false
}

// IsAllComplete reports whether every member is Completed. An empty group
// is complete.
func (g *Group) IsAllComplete() bool {
	for _, b := range g.bars {
		if !b.IsComplete() {
			return false
		}
	}
	return true
}

func (g *Group) UpdateAll(v float64) {
	for _, name := range g.order {
		g.bars[name].Update(v)
	}
}

func (g *Group) ResetAll() {
	for _, name := range g.order {
		g.bars[name].Reset()
	}
}

func (g *Group) CancelAll() {
	for _, name := range g.order {
		g.bars[name].Cancel()
	}
}

// Save captures every member in insertion order.
func (g *Group) Save() GroupSnapshot {
	gs := GroupSnapshot{Bars: make([]NamedSnapshot, len(g.order))}
	for i, name := range g.order {
		gs.Bars[i] = NamedSnapshot{Name: name, Snapshot: Save(g.bars[name])}
	}
	return gs
}

// RestoreGroup rebuilds a group, asking styleFor for each member's style.
func RestoreGroup(gs GroupSnapshot, styleFor func(name string) viz.Style, opts ...GroupOption) (*Group, error) {
	g := NewGroup(opts...)
	for _, ns := range gs.Bars {
		b, err := Restore(ns.Snapshot, styleFor(ns.Name))
		if err != nil {
			return nil, fmt.Errorf("restore %q: %w", ns.Name, err)
		}
		if err := g.Add(ns.Name, b); err != nil {
			return nil, err
		}
	}
	return g, nil
}
