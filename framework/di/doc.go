// Package di builds binding descriptors for a dependency-injection container.
//
// A Descriptor is a closure a container calls to obtain an instance:
//
//	type Descriptor func(r di.Resolver, extra ...any) (any, error)
//
// Three factories produce them:
//
//	// New instance per resolution, "db" injected, slot 1 left empty.
//	repo, err := di.Dedication(NewRepo, []string{"db", ""})
//
//	// One pre-built value, returned as is.
//	cfg := di.Singleton(myConfig)
//
//	// Built on first resolution, cached afterwards.
//	cache, err := di.LazySingleton(NewCache, []string{"config"})
//
// Constructors receive an ordered argument list: the injected values (nil
// for empty inject entries) followed by the caller's extra arguments. A
// constructor may be a di.Constructor, a func(di.Args) any, a
// func(...any) any, or any other Go function, which is then called through
// reflection:
//
//	func NewRepo(db *sql.DB, opts *RepoOptions, name string) *Repo
//
//	d := di.Must(di.Dedication(NewRepo, []string{"db", ""}))
//	r, err := d(c, "users")   // NewRepo(db, nil, "users")
//
// Bad constructors and injects fail with a ValidationError when the
// descriptor is created. A named inject the resolver does not have fails
// with a MissingDependencyError when the descriptor is called.
package di
