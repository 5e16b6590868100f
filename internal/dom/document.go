// Package dom keeps an in-memory model of the dashboard page so every
// mutation can be applied server side and replayed to browsers as patches.
package dom

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNoElement is returned when an op targets an id the document lacks.
var ErrNoElement = errors.New("no such element")

// Element is the mutable state of one identified page element.
type Element struct {
	ID       string
	Tag      string
	Text     string
	Value    string
	Disabled bool
	Children []Node
}

// Document is safe for concurrent use.
type Document struct {
	mu       sync.RWMutex
	order    []string
	elements map[string]*Element
}

// NewDocument builds a document holding the given elements in order.
func NewDocument(elements ...Element) *Document {
	d := &Document{elements: make(map[string]*Element, len(elements))}
	for _, e := range elements {
		el := e
		d.order = append(d.order, el.ID)
		d.elements[el.ID] = &el
	}
	return d
}

// Element returns a copy of the element with id.
func (d *Document) Element(id string) (Element, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	el, ok := d.elements[id]
	if !ok {
		return Element{}, false
	}
	cp := *el
	cp.Children = append([]Node(nil), el.Children...)
	return cp, true
}

// Apply runs every op of p in order. Ops addressed to missing elements are
// skipped and reported; the remaining ops still apply.
func (d *Document) Apply(p Patch) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var errs []error
	for _, op := range p.Ops {
		if err := d.apply(op); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (d *Document) apply(op Op) error {
	el, ok := d.elements[op.ID]
	if !ok {
		return fmt.Errorf("%s op on #%s: %w", op.Kind, op.ID, ErrNoElement)
	}
	switch op.Kind {
	case OpText:
		el.Text = op.Text
	case OpValue:
		el.Value = op.Value
	case OpDisable:
		el.Disabled = true
	case OpEnable:
		el.Disabled = false
	case OpChildren:
		el.Children = append(el.Children[:0:0], op.Children...)
	case OpCanvas:
		el.Value = op.Value
	default:
		return fmt.Errorf("op %q on #%s not applicable to the document", op.Kind, op.ID)
	}
	return nil
}

// Snapshot returns a patch that rebuilds the current document state from a
// freshly loaded page.
func (d *Document) Snapshot() Patch {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var p Patch
	for _, id := range d.order {
		el := d.elements[id]
		switch el.Tag {
		case "canvas":
			p.Append(Canvas(id, el.Value))
			continue
		case "input":
			p.Append(Value(id, el.Value))
		case "div":
			p.Append(Children(id, append([]Node(nil), el.Children...)))
		case "span":
			p.Append(Text(id, el.Text))
		}
		if el.Disabled {
			p.Append(Disable(id))
		} else {
			p.Append(Enable(id))
		}
	}
	return p
}
