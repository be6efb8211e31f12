// Package listedit edits a slice of structs as a set of cards, one per
// element, with an add chooser over a catalog of element kinds.
package listedit

import (
	"errors"
	"fmt"

	"github.com/silogen/rulebloom/pkg/form"
	"github.com/silogen/rulebloom/pkg/locale"
	log "github.com/sirupsen/logrus"
)

var (
	ErrState       = errors.New("operation not allowed in current state")
	ErrUnknownKind = errors.New("unknown kind")
	ErrIndex       = errors.New("index out of range")
)

type State int

const (
	Collapsed State = iota
	Editing
	Choosing
)

func (s State) String() string {
	switch s {
	case Collapsed:
		return "collapsed"
	case Editing:
		return "editing"
	case Choosing:
		return "choosing"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Kind is one entry of the add chooser. New returns the element appended
// when the kind is chosen.
type Kind[T any] struct {
	Key    string
	Hidden bool
	New    func() T
}

// Card is the editable view of one element. Its controls are bound to the
// element in place.
type Card[T any] struct {
	Index    int
	TitleKey string
	Title    string
	Item     *T
	Rows     []*form.Category
	Controls []*form.Control
}

// Refresh re-evaluates the card's controls and returns how many changed.
func (c *Card[T]) Refresh() int {
	n := 0
	for _, ctl := range c.Controls {
		if _, ok := ctl.Refresh(); ok {
			n++
		}
	}
	return n
}

// Control returns the card control bound to key, or nil.
func (c *Card[T]) Control(key string) *form.Control {
	for _, ctl := range c.Controls {
		if ctl.Key() == key {
			return ctl
		}
	}
	return nil
}

// Valid reports whether no control on the card holds invalid input.
func (c *Card[T]) Valid() bool {
	for _, ctl := range c.Controls {
		if ctl.State().Invalid {
			return false
		}
	}
	return true
}

// Config wires an Editor to its list.
type Config[T any] struct {
	Bundle  locale.Bundle
	Options form.Options
	Catalog []Kind[T]
	// Title returns the localization key shown in a card header.
	Title func(T) string
	// Declare binds the fields of one element.
	Declare func(b *form.Builder, item *T)
}

// Editor drives the collapsed, editing and choosing states of a list editor.
type Editor[T any] struct {
	list      *[]T
	cfg       Config[T]
	state     State
	cards     []*Card[T]
	listeners []func()
}

// New returns a collapsed editor over list.
func New[T any](list *[]T, cfg Config[T]) *Editor[T] {
	return &Editor[T]{list: list, cfg: cfg}
}

func (e *Editor[T]) State() State { return e.state }

func (e *Editor[T]) Len() int { return len(*e.list) }

// OnChange registers fn to run after every membership change.
func (e *Editor[T]) OnChange(fn func()) {
	e.listeners = append(e.listeners, fn)
}

// Open shows the cards.
func (e *Editor[T]) Open() error {
	if e.state != Collapsed {
		return fmt.Errorf("open while %s: %w", e.state, ErrState)
	}
	e.state = Editing
	e.rebuild()
	return nil
}

// Close returns to Collapsed from any state. An open chooser is discarded.
func (e *Editor[T]) Close() {
	e.state = Collapsed
	e.cards = nil
}

// BeginAdd opens the kind chooser.
func (e *Editor[T]) BeginAdd() error {
	if e.state != Editing {
		return fmt.Errorf("add while %s: %w", e.state, ErrState)
	}
	e.state = Choosing
	return nil
}

// CancelAdd closes the chooser without touching the list.
func (e *Editor[T]) CancelAdd() error {
	if e.state != Choosing {
		return fmt.Errorf("cancel while %s: %w", e.state, ErrState)
	}
	e.state = Editing
	return nil
}

// Choose appends a new element of the kind keyed by key.
func (e *Editor[T]) Choose(key string) error {
	if e.state != Choosing {
		return fmt.Errorf("choose while %s: %w", e.state, ErrState)
	}
	for _, k := range e.cfg.Catalog {
		if k.Key == key && !k.Hidden {
			*e.list = append(*e.list, k.New())
			e.state = Editing
			log.Debugf("List entry added: %s (%d entries)", key, len(*e.list))
			e.changed()
			return nil
		}
	}
	return fmt.Errorf("%q: %w", key, ErrUnknownKind)
}

// Remove deletes the element at i.
func (e *Editor[T]) Remove(i int) error {
	if e.state == Collapsed {
		return fmt.Errorf("remove while %s: %w", e.state, ErrState)
	}
	if i < 0 || i >= len(*e.list) {
		return fmt.Errorf("remove %d of %d: %w", i, len(*e.list), ErrIndex)
	}
	l := *e.list
	*e.list = append(l[:i:i], l[i+1:]...)
	log.Debugf("List entry removed at %d (%d entries)", i, len(*e.list))
	e.changed()
	return nil
}

// Kinds lists the catalog entries the chooser offers.
func (e *Editor[T]) Kinds() []Kind[T] {
	var out []Kind[T]
	for _, k := range e.cfg.Catalog {
		if !k.Hidden {
			out = append(out, k)
		}
	}
	return out
}

// Cards returns one card per element while the editor is not collapsed.
func (e *Editor[T]) Cards() []*Card[T] { return e.cards }

// Refresh re-evaluates every card and returns how many controls changed.
func (e *Editor[T]) Refresh() int {
	n := 0
	for _, c := range e.cards {
		n += c.Refresh()
	}
	return n
}

// Cards hold pointers into the slice, so they are rebuilt after every
// append or delete.
func (e *Editor[T]) changed() {
	e.rebuild()
	for _, fn := range e.listeners {
		fn()
	}
}

func (e *Editor[T]) rebuild() {
	e.cards = nil
	l := *e.list
	for i := range l {
		item := &l[i]
		b := form.NewBuilder(e.cfg.Bundle, "", e.cfg.Options)
		e.cfg.Declare(b, item)
		card := &Card[T]{
			Index:    i,
			Item:     item,
			Rows:     b.Categories(),
			Controls: b.Controls(),
		}
		if e.cfg.Title != nil {
			card.TitleKey = e.cfg.Title(*item)
			card.Title = b.Index().Label(card.TitleKey)
		}
		e.cards = append(e.cards, card)
	}
}

// Columns is the number of cards that fit side by side in width.
func Columns(width, cardWidth int) int {
	if cardWidth <= 0 {
		return 1
	}
	return max(1, width/cardWidth)
}

// Rows packs n card indexes into rows of cols.
func Rows(n, cols int) [][]int {
	cols = max(1, cols)
	var out [][]int
	for i := 0; i < n; i += cols {
		row := make([]int, 0, cols)
		for j := i; j < n && j < i+cols; j++ {
			row = append(row, j)
		}
		out = append(out, row)
	}
	return out
}
