package panel

import (
	"errors"
	"fmt"
	"math"

	"galaxygenerator/core"
)

// ErrUnknownField is returned for edits naming no binding
var ErrUnknownField = errors.New("unknown field")

// ChangeFunc observes intermediate edits, before they are committed
type ChangeFunc func(field string, params core.ParameterSet)

// CommitFunc observes committed parameter sets
type CommitFunc func(params core.ParameterSet)

// Panel holds the edited parameter set and notifies observers. Values are
// snapped to their binding's step and clamped into range as they are set,
// so committed sets always pass CheckDomain.
type Panel struct {
	params core.ParameterSet
	dirty  bool

	onChange []ChangeFunc
	onCommit []CommitFunc
}

// New creates a panel showing initial, clamped into range
func New(initial core.ParameterSet) *Panel {
	return &Panel{params: initial.Clamp()}
}

// Params returns the current, possibly uncommitted, values
func (p *Panel) Params() core.ParameterSet {
	return p.params
}

// Dirty reports edits not yet committed
func (p *Panel) Dirty() bool {
	return p.dirty
}

// OnChange subscribes to intermediate edits
func (p *Panel) OnChange(fn ChangeFunc) {
	p.onChange = append(p.onChange, fn)
}

// OnCommit subscribes to committed parameter sets
func (p *Panel) OnCommit(fn CommitFunc) {
	p.onCommit = append(p.onCommit, fn)
}

// SetNumber edits a slider field and returns the stored value
func (p *Panel) SetNumber(field string, v float64) (float64, error) {
	d, ok := core.DomainOf(field)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	if math.IsNaN(v) {
		return 0, &core.InvalidParameterError{Field: field, Value: v, Reason: "not a finite number"}
	}
	v = d.Snap(v)
	if cur, _ := p.params.Number(field); cur == v {
		return v, nil
	}
	p.params, _ = p.params.WithNumber(field, v)
	p.changed(field)
	return v, nil
}

// SetColor edits a color field
func (p *Panel) SetColor(field string, c core.RGB) error {
	cur, ok := p.params.Color(field)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	if cur == c {
		return nil
	}
	p.params, _ = p.params.WithColor(field, c)
	p.changed(field)
	return nil
}

// Replace swaps in a whole parameter set, clamped into range
func (p *Panel) Replace(params core.ParameterSet) {
	p.params = params.Clamp()
	p.dirty = true
}

// Reset restores the default galaxy
func (p *Panel) Reset() {
	p.Replace(core.DefaultParameters())
}

// Commit notifies commit observers if anything changed since the last
// commit and reports whether it did
func (p *Panel) Commit() bool {
	if !p.dirty {
		return false
	}
	p.dirty = false
	snapshot := p.params
	for _, fn := range p.onCommit {
		fn(snapshot)
	}
	return true
}

func (p *Panel) changed(field string) {
	p.dirty = true
	for _, fn := range p.onChange {
		fn(field, p.params)
	}
}
