package syringe_test

import (
	"fmt"
	"testing"

	"github.com/junioryono/syringe"
)

type BenchDep1 struct{ Value int }
type BenchDep2 struct{ Value int }
type BenchDep3 struct{ Value int }

type BenchServiceWith3Deps struct {
	Dep1 *BenchDep1
	Dep2 *BenchDep2
	Dep3 *BenchDep3
}

func NewBenchDep1() *BenchDep1 { return &BenchDep1{Value: 1} }
func NewBenchDep2() *BenchDep2 { return &BenchDep2{Value: 2} }
func NewBenchDep3() *BenchDep3 { return &BenchDep3{Value: 3} }

func NewBenchServiceWith3Deps(dep1 *BenchDep1, dep2 *BenchDep2, dep3 *BenchDep3) *BenchServiceWith3Deps {
	return &BenchServiceWith3Deps{Dep1: dep1, Dep2: dep2, Dep3: dep3}
}

// setupBenchContainer defines the bench types and optionally caches them.
func setupBenchContainer(b *testing.B, singleton bool) *syringe.Container {
	b.Helper()

	c := syringe.New(syringe.WithTypes(syringe.NewTypeTable()))
	for _, ctor := range []any{NewBenchDep1, NewBenchDep2, NewBenchDep3, NewBenchServiceWith3Deps} {
		var err error
		if singleton {
			_, err = c.Singleton(ctor)
		} else {
			_, err = c.Injectable(ctor)
		}
		if err != nil {
			b.Fatal(err)
		}
	}

	return c
}

func BenchmarkResolution(b *testing.B) {
	token := syringe.TypeOf[*BenchServiceWith3Deps]()

	for _, singleton := range []bool{true, false} {
		b.Run(fmt.Sprintf("singleton=%t", singleton), func(b *testing.B) {
			c := setupBenchContainer(b, singleton)
			if _, err := c.Resolve(token); err != nil {
				b.Fatal(err)
			}

			b.ReportAllocs()
			for b.Loop() {
				if _, err := c.Resolve(token); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkConcurrentResolution(b *testing.B) {
	c := setupBenchContainer(b, true)
	token := syringe.TypeOf[*BenchServiceWith3Deps]()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := c.Resolve(token); err != nil {
				b.Error(err)
				return
			}
		}
	})
}

func BenchmarkAliasChain(b *testing.B) {
	c := syringe.New(syringe.WithTypes(syringe.NewTypeTable()))
	c.RegisterInstance(syringe.Named("0"), 42)
	for i := 1; i <= 8; i++ {
		c.RegisterType(syringe.Named(fmt.Sprint(i)), syringe.Named(fmt.Sprint(i-1)))
	}

	b.ReportAllocs()
	for b.Loop() {
		_ = syringe.MustResolve[int](c, syringe.Named("8"))
	}
}

func BenchmarkChildContainerLookup(b *testing.B) {
	root := setupBenchContainer(b, true)
	leaf := root
	for range 5 {
		leaf = leaf.CreateChildContainer()
	}

	b.ReportAllocs()
	for b.Loop() {
		_ = syringe.MustResolve[*BenchServiceWith3Deps](leaf, syringe.TypeOf[*BenchServiceWith3Deps]())
	}
}

func BenchmarkScopeWithResolution(b *testing.B) {
	c := setupBenchContainer(b, false)
	_, err := c.RegisterScope(syringe.TypeOf[*BenchServiceWith3Deps](),
		syringe.Provide(syringe.TypeOf[*BenchDep1](), syringe.UseValue(&BenchDep1{Value: 10})),
	)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	for b.Loop() {
		_ = syringe.MustResolve[*BenchServiceWith3Deps](c, syringe.TypeOf[*BenchServiceWith3Deps]())
	}
}

func BenchmarkFactory(b *testing.B) {
	c := syringe.New(syringe.WithTypes(syringe.NewTypeTable()))
	c.Register(syringe.Named("dep"), syringe.UseFactory(func(*syringe.Container) (any, error) {
		return NewBenchDep1(), nil
	}))

	b.ReportAllocs()
	for b.Loop() {
		_ = syringe.MustResolve[*BenchDep1](c, syringe.Named("dep"))
	}
}

func BenchmarkAutoConstructor(b *testing.B) {
	c := setupBenchContainer(b, true)
	auto, err := c.AutoInjectable(NewBenchServiceWith3Deps)
	if err != nil {
		b.Fatal(err)
	}

	explicit := &BenchDep1{Value: 10}

	b.ReportAllocs()
	for b.Loop() {
		if _, err := auto.New(explicit); err != nil {
			b.Fatal(err)
		}
	}
}
