package stdlib

import (
	"github.com/google/uuid"

	"github.com/funvibe/modcore/internal/module"
)

func buildUUID() *module.Module {
	m := module.New()
	m.SetVar("namespace_dns", uuid.NameSpaceDNS).
		SetVar("namespace_url", uuid.NameSpaceURL).
		SetVar("namespace_oid", uuid.NameSpaceOID).
		SetVar("nil", uuid.Nil)

	h := module.SetFn0(m, "new", func() (uuid.UUID, error) { return uuid.NewRandom() })
	m.UpdateFnMetadata(h, "Uuid")
	h = module.SetFn0(m, "v7", func() (uuid.UUID, error) { return uuid.NewV7() })
	m.UpdateFnMetadata(h, "Uuid")
	h = module.SetFn2(m, "v5", func(ns uuid.UUID, name string) (uuid.UUID, error) {
		return uuid.NewSHA1(ns, []byte(name)), nil
	})
	m.UpdateFnMetadata(h, "ns: Uuid", "name: String", "Uuid")

	h = module.SetFn1(m, "parse", uuid.Parse)
	m.UpdateFnMetadata(h, "s: String", "Uuid")
	h = module.SetFn1(m, "to_string", func(u uuid.UUID) (string, error) { return u.String(), nil })
	m.UpdateFnMetadata(h, "u: Uuid", "String")
	h = module.SetFn1(m, "urn", func(u uuid.UUID) (string, error) { return u.URN(), nil })
	m.UpdateFnMetadata(h, "u: Uuid", "String")

	module.SetGetterFn(m, "version", func(u *uuid.UUID) (int64, error) { return int64(u.Version()), nil })
	module.SetGetterFn(m, "is_nil", func(u *uuid.UUID) (bool, error) { return *u == uuid.Nil, nil })
	return m
}
