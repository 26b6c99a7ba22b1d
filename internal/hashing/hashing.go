// Package hashing computes the 64-bit signature hashes that key functions
// and variables in module lookup tables.
//
// Hashes are deterministic across runs for identical inputs and never zero;
// zero is reserved to mean "absent".
package hashing

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/funvibe/modcore/internal/value"
)

// zeroSubstitute replaces a natural hash output of zero.
const zeroSubstitute uint64 = 0x9e3779b97f4a7c15

// Family tags keep script-style and native-style inputs from aliasing.
const (
	tagScript  byte = 's'
	tagNative  byte = 'n'
	tagCombine byte = 'c'
)

type hasher struct {
	d   *xxhash.Digest
	buf [8]byte
}

func newHasher(tag byte) *hasher {
	h := &hasher{d: xxhash.New()}
	h.d.Write([]byte{tag})
	return h
}

func (h *hasher) uint(v uint64) {
	binary.LittleEndian.PutUint64(h.buf[:], v)
	h.d.Write(h.buf[:])
}

// str is length-prefixed so ("ab","c") and ("a","bc") differ.
func (h *hasher) str(s string) {
	h.uint(uint64(len(s)))
	h.d.WriteString(s)
}

func (h *hasher) sum() uint64 {
	return nonZero(h.d.Sum64())
}

func nonZero(v uint64) uint64 {
	if v == 0 {
		return zeroSubstitute
	}
	return v
}

// HashScript hashes qualifiers + name + arity. This keys script functions,
// namespace-addressed native functions (before combining with their
// argument hash) and variables (arity 0).
//
// The first qualifier names the module being searched, so only its presence
// counts: [root, m] and [alias, m] hash the same.
func HashScript(qualifiers []string, name string, arity int) uint64 {
	h := newHasher(tagScript)
	for i, q := range qualifiers {
		if i == 0 {
			continue
		}
		h.str(q)
	}
	h.uint(uint64(len(qualifiers)))
	h.str(name)
	h.uint(uint64(arity))
	return h.sum()
}

// HashVar hashes a qualified variable name.
func HashVar(qualifiers []string, name string) uint64 {
	return HashScript(qualifiers, name, 0)
}

// HashNativeArgs hashes a native function name with its concrete argument
// types, distinguishing overloads of the same name and arity. Types are
// identified by value.TypeKey, which stays unique for distinct types that
// share a rendered name.
func HashNativeArgs(name string, argTypes []value.TypeID) uint64 {
	h := newHasher(tagNative)
	h.str(name)
	h.uint(uint64(len(argTypes)))
	for _, t := range argTypes {
		h.str(value.TypeKey(t))
	}
	return h.sum()
}

// Combine folds h2 into h1. It is not commutative.
func Combine(h1, h2 uint64) uint64 {
	h := newHasher(tagCombine)
	h.uint(h1)
	h.uint(h2)
	return h.sum()
}

// HashQualifiedNative is the key a public native function is flattened under
// when addressed through a namespace path.
func HashQualifiedNative(qualifiers []string, name string, argTypes []value.TypeID) uint64 {
	return Combine(HashScript(qualifiers, name, len(argTypes)), HashNativeArgs(name, argTypes))
}
