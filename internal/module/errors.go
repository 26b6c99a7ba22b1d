package module

import (
	"errors"
	"fmt"
)

// ErrNotFound matches every lookup miss originated by this package.
var ErrNotFound = errors.New("not found")

// EntryKind names what a lookup was searching for.
type EntryKind int

const (
	EntryVariable EntryKind = iota
	EntryFunction
	EntryModule
)

func (k EntryKind) String() string {
	switch k {
	case EntryVariable:
		return "variable"
	case EntryFunction:
		return "function"
	case EntryModule:
		return "module"
	}
	return fmt.Sprintf("EntryKind(%d)", int(k))
}

// NotFoundError reports a qualified lookup miss. The registry only knows the
// hash; callers fill in the name they tried.
type NotFoundError struct {
	Kind EntryKind
	Name string
	Hash uint64
}

func (e *NotFoundError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s not found: %s", e.Kind, e.Name)
	}
	return fmt.Sprintf("%s not found (hash %#x)", e.Kind, e.Hash)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// WithName returns a copy of e carrying the attempted name.
func (e *NotFoundError) WithName(name string) *NotFoundError {
	c := *e
	c.Name = name
	return &c
}
