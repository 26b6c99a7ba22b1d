package module

import (
	"iter"

	"github.com/funvibe/modcore/internal/value"
)

// IteratorFn turns a value of some concrete type into a lazy sequence, so
// foreign types can drive iteration-style control flow.
type IteratorFn func(obj value.Dynamic) iter.Seq[value.Dynamic]

func (m *Module) ContainsIter(typ value.TypeID) bool {
	_, ok := m.iterators[typ]
	return ok
}

// ContainsQualifiedIter looks only in the flattened table.
func (m *Module) ContainsQualifiedIter(typ value.TypeID) bool {
	_, ok := m.allIterators[typ]
	return ok
}

// SetIter registers the iterator for values of type typ.
func (m *Module) SetIter(typ value.TypeID, fn IteratorFn) *Module {
	m.iterators[typ] = fn
	m.invalidate()
	return m
}

func (m *Module) GetIter(typ value.TypeID) (IteratorFn, bool) {
	fn, ok := m.iterators[typ]
	return fn, ok
}

// GetQualifiedIter looks only in the flattened table.
func (m *Module) GetQualifiedIter(typ value.TypeID) (IteratorFn, bool) {
	fn, ok := m.allIterators[typ]
	return fn, ok
}

// SetIterable registers an iterator over the elements of slice type T.
func SetIterable[T ~[]E, E any](m *Module) *Module {
	return m.SetIter(value.TypeOf[T](), func(obj value.Dynamic) iter.Seq[value.Dynamic] {
		items := value.Cast[T](obj)
		return func(yield func(value.Dynamic) bool) {
			for _, item := range items {
				if !yield(value.From(item)) {
					return
				}
			}
		}
	})
}

// SetIterator registers an iterator for T, which is itself a sequence.
func SetIterator[T ~func(func(E) bool), E any](m *Module) *Module {
	return m.SetIter(value.TypeOf[T](), func(obj value.Dynamic) iter.Seq[value.Dynamic] {
		seq := value.Cast[T](obj)
		return func(yield func(value.Dynamic) bool) {
			for item := range seq {
				if !yield(value.From(item)) {
					return
				}
			}
		}
	})
}

// IterIterators enumerates the directly registered iterators. Order is not
// significant.
func (m *Module) IterIterators() iter.Seq2[value.TypeID, IteratorFn] {
	return func(yield func(value.TypeID, IteratorFn) bool) {
		for typ, fn := range m.iterators {
			if !yield(typ, fn) {
				return
			}
		}
	}
}
