package panel

import "galaxygenerator/core"

// Edit is one panel operation coming from outside the render thread
type Edit struct {
	Field  string
	Number float64
	Color  *core.RGB
	Params *core.ParameterSet // replaces everything when set
	Reset  bool
	Commit bool
}

// Apply performs the edit against p. A committing edit commits even when
// its own change failed, so earlier pending changes still land.
func (e Edit) Apply(p *Panel) error {
	var err error
	switch {
	case e.Reset:
		p.Reset()
	case e.Params != nil:
		p.Replace(*e.Params)
	case e.Color != nil:
		err = p.SetColor(e.Field, *e.Color)
	case e.Field != "":
		_, err = p.SetNumber(e.Field, e.Number)
	}
	if e.Commit {
		p.Commit()
	}
	return err
}

// Queue hands edits from other goroutines to the render thread
type Queue struct {
	edits chan Edit
}

// NewQueue creates a queue holding up to size pending edits
func NewQueue(size int) *Queue {
	return &Queue{edits: make(chan Edit, size)}
}

// Submit enqueues e without blocking and reports whether it fit
func (q *Queue) Submit(e Edit) bool {
	select {
	case q.edits <- e:
		return true
	default:
		return false
	}
}

// Drain applies every pending edit to p and returns how many ran.
// onErr, if non-nil, sees each failed edit.
func (q *Queue) Drain(p *Panel, onErr func(Edit, error)) int {
	n := 0
	for {
		select {
		case e := <-q.edits:
			n++
			if err := e.Apply(p); err != nil && onErr != nil {
				onErr(e, err)
			}
		default:
			return n
		}
	}
}
