package module

// FnNamespace controls whether a function is reachable without qualification.
type FnNamespace int

const (
	// Internal functions are reachable only through their qualified path.
	Internal FnNamespace = iota
	// Global functions are also flattened under their unqualified hash.
	Global
)

func (n FnNamespace) IsGlobal() bool   { return n == Global }
func (n FnNamespace) IsInternal() bool { return n == Internal }

func (n FnNamespace) String() string {
	if n == Global {
		return "global"
	}
	return "internal"
}

// FnAccess is the visibility of a function outside its module.
type FnAccess int

const (
	Public FnAccess = iota
	Private
)

func (a FnAccess) IsPublic() bool  { return a == Public }
func (a FnAccess) IsPrivate() bool { return a == Private }

func (a FnAccess) String() string {
	if a == Private {
		return "private"
	}
	return "public"
}
