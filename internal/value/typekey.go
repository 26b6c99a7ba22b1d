package value

import (
	"strconv"
	"sync"
)

var (
	typeKeysMu sync.RWMutex
	// typeKeys lists, per rendered name, the distinct types seen with it in
	// order of first use.
	typeKeys = map[string][]TypeID{}
)

// TypeKey is the identity of t used for signature hashing. It is TypeName(t)
// for the first type rendered with that name. Distinct types that render the
// same, such as function-local types declared with one name in different
// functions, get "#2", "#3"... appended in order of first use, so their keys
// are unique within a process. Keys of such types depend on registration
// order and are not stable across programs.
func TypeKey(t TypeID) string {
	name := TypeName(t)

	typeKeysMu.RLock()
	key, ok := lookupTypeKey(name, t)
	typeKeysMu.RUnlock()
	if ok {
		return key
	}

	typeKeysMu.Lock()
	defer typeKeysMu.Unlock()
	if key, ok := lookupTypeKey(name, t); ok {
		return key
	}
	typeKeys[name] = append(typeKeys[name], t)
	return keyAt(name, len(typeKeys[name])-1)
}

func lookupTypeKey(name string, t TypeID) (string, bool) {
	for i, seen := range typeKeys[name] {
		if seen == t {
			return keyAt(name, i), true
		}
	}
	return "", false
}

func keyAt(name string, i int) string {
	if i == 0 {
		return name
	}
	return name + "#" + strconv.Itoa(i+1)
}
