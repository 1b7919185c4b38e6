package argv

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ArgumentHolder is an ordered collection of uniquely named Arguments.
// Once an optional Argument is added no later Argument may be required, and
// at most one Argument may be multi-valued.
type ArgumentHolder struct {
	args       *orderedmap.OrderedMap[string, *Argument]
	multiIndex int // position of the multi-valued argument, -1 if none
}

func newArgumentHolder() ArgumentHolder {
	return ArgumentHolder{
		args:       orderedmap.New[string, *Argument](),
		multiIndex: -1,
	}
}

// Add appends a copy of arg. The holder keeps its own copy so the caller
// may keep mutating arg without affecting the holder.
func (h *ArgumentHolder) Add(arg *Argument) error {
	if arg == nil || arg.name == "" {
		return ErrEmptyName
	}
	if h.args == nil {
		*h = newArgumentHolder()
	}
	if _, exists := h.args.Get(arg.name); exists {
		return fmt.Errorf("%w: argument %q", ErrDuplicateName, arg.name)
	}
	if arg.required {
		if last := h.args.Newest(); last != nil && !last.Value.required {
			return fmt.Errorf("%w: %q follows optional %q", ErrRequiredAfterOptional, arg.name, last.Value.name)
		}
	}
	if arg.multiValue && h.multiIndex >= 0 {
		return fmt.Errorf("%w: %q", ErrMultipleMultiValue, arg.name)
	}
	if arg.multiValue {
		h.multiIndex = h.args.Len()
	}
	h.args.Set(arg.name, arg.clone())
	return nil
}

// Len returns the number of arguments
func (h *ArgumentHolder) Len() int {
	if h.args == nil {
		return 0
	}
	return h.args.Len()
}

// Get returns the argument with the given name
func (h *ArgumentHolder) Get(name string) (*Argument, bool) {
	if h.args == nil {
		return nil, false
	}
	return h.args.Get(name)
}

// List returns the arguments in declaration order
func (h *ArgumentHolder) List() []*Argument {
	list := make([]*Argument, 0, h.Len())
	if h.args == nil {
		return list
	}
	for pair := h.args.Oldest(); pair != nil; pair = pair.Next() {
		list = append(list, pair.Value)
	}
	return list
}

// MultiValueIndex returns the position of the multi-valued argument, or -1
func (h *ArgumentHolder) MultiValueIndex() int {
	if h.args == nil {
		return -1
	}
	return h.multiIndex
}

// RequiredCount returns the number of required arguments
func (h *ArgumentHolder) RequiredCount() int {
	n := 0
	for _, a := range h.List() {
		if a.required {
			n++
		}
	}
	return n
}

// clone returns a deep copy of the holder
func (h *ArgumentHolder) clone() ArgumentHolder {
	c := newArgumentHolder()
	c.multiIndex = h.MultiValueIndex()
	for _, a := range h.List() {
		c.args.Set(a.name, a.clone())
	}
	return c
}
