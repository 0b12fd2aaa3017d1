// Package syringe provides a token-based dependency injection registry and resolver.
//
// # Overview
//
// A Container maps tokens to providers. Resolving a token produces an
// instance, resolving the constructor dependencies of that instance
// recursively. The library provides:
//   - Type, name and symbol tokens
//   - Value, alias, class and factory providers
//   - Singleton caching per registration
//   - Parent/child containers with registry fallback
//   - Per-token scopes holding private registrations
//   - Auto-constructors that mix explicit arguments with resolved ones
//   - Modules for grouping registrations
//   - Cycle detection at resolution time and through Validate
//
// # Basic Usage
//
// Record constructor metadata, register providers and resolve:
//
//	c := syringe.New()
//
//	c.Injectable(NewUserService)
//	c.RegisterInstance(syringe.Named("dsn"), "postgres://localhost/app")
//	c.RegisterSingleton(syringe.TypeOf[*Database]())
//
//	svc, err := syringe.ResolveType[*UserService](c)
//
// # Tokens
//
// A Token is a type identity, a name or a unique symbol:
//
//	syringe.TypeOf[*Database]()   // type token
//	syringe.Named("dsn")          // name token
//	syringe.NewSymbol("clock")    // equal only to itself
//
// Unregistered type tokens are constructed from their metadata. Structs and
// pointers to structs without metadata are zero-allocated. Named tokens and
// interface types must be registered.
//
// # Constructor Metadata
//
// Constructors are plain functions returning T or (T, error). Each
// parameter is resolved by the token of its type unless overridden:
//
//	func NewMailer(log *slog.Logger, host string) *Mailer { ... }
//
//	c.Injectable(NewMailer, syringe.Inject(1, syringe.Named("smtp-host")))
//
// Metadata lives in a TypeTable. Containers share DefaultTypes unless
// created with WithTypes.
//
// # Providers
//
//	c.Register(syringe.Named("config"), syringe.UseValue(cfg))
//	c.Register(syringe.TypeOf[Store](), syringe.UseClass[*SQLStore](), syringe.AsSingleton())
//	c.Register(syringe.Named("store"), syringe.UseToken(syringe.TypeOf[Store]()))
//	c.Register(syringe.Named("now"), syringe.UseFactory(func(c *syringe.Container) (any, error) {
//	    return time.Now(), nil
//	}))
//
// Value and factory providers cannot be singletons.
//
// # Scopes
//
// A scope holds registrations that are visible only while resolving one
// token. The scope is a child of the container that owns it:
//
//	c.Register(syringe.TypeOf[*Report](), syringe.UseClass[*Report](),
//	    syringe.WithScope(
//	        syringe.Provide(syringe.Named("title"), syringe.UseValue("Q3")),
//	    ),
//	)
//
// Registrations inside a scope are not reported by IsRegistered on the owner.
//
// # Default Container
//
// The package-level Injectable, Singleton, AutoInjectable and Registry
// functions operate on Default. Use SetDefault to replace it.
//
// # Thread Safety
//
// Containers and type tables are safe for concurrent use. Singletons are
// built outside any lock; when two goroutines race, the first stored
// instance is returned to both.
package syringe
