package syringe_test

import (
	"errors"
	"testing"

	"github.com/junioryono/syringe"
	"github.com/junioryono/syringe/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModule(t *testing.T) {
	t.Run("registers all builders", func(t *testing.T) {
		t.Parallel()

		module := syringe.NewModule("storage",
			syringe.Value(testutil.DSNToken, "postgres://"),
			syringe.Define(testutil.NewTestDatabase, syringe.Inject(0, testutil.DSNToken)),
			syringe.Class(syringe.Named("db"), syringe.TypeOf[*testutil.TestDatabase]().Type(), syringe.AsSingleton()),
			syringe.Alias(syringe.Named("database"), syringe.Named("db")),
			syringe.Factory(syringe.Named("dsn-length"), func(c *syringe.Container) (any, error) {
				dsn, err := syringe.Resolve[string](c, testutil.DSNToken)
				return len(dsn), err
			}),
			syringe.Provides(syringe.Provide(testutil.FooToken, syringe.UseClass[*testutil.AmbientFoo]())),
		)

		c := testutil.NewContainer(t)
		require.NoError(t, c.AddModules(module))

		db := testutil.AssertResolvable[*testutil.TestDatabase](t, c, syringe.Named("database"))
		assert.Equal(t, "postgres://", db.DSN)
		assert.Same(t, db, testutil.AssertResolvable[*testutil.TestDatabase](t, c, syringe.Named("db")))
		assert.Equal(t, len("postgres://"), testutil.AssertResolvable[int](t, c, syringe.Named("dsn-length")))
		assert.True(t, c.IsRegistered(testutil.FooToken))
	})

	t.Run("nested modules and nil builders", func(t *testing.T) {
		t.Parallel()

		inner := syringe.NewModule("inner", syringe.Value(testutil.DSNToken, "inner"), nil)
		outer := syringe.NewModule("outer", inner, nil, syringe.Value(testutil.FooToken, "foo"))

		c := testutil.NewContainer(t)
		require.NoError(t, c.AddModules(outer, nil))

		assert.True(t, c.IsRegistered(testutil.DSNToken))
		assert.True(t, c.IsRegistered(testutil.FooToken))
	})

	t.Run("errors name the module", func(t *testing.T) {
		t.Parallel()

		inner := syringe.NewModule("inner",
			syringe.Alias(testutil.FooToken, syringe.Token{}),
		)
		outer := syringe.NewModule("outer", inner)

		c := testutil.NewContainer(t)
		err := c.AddModules(outer)

		var modErr syringe.ModuleError
		require.True(t, errors.As(err, &modErr))
		assert.Equal(t, "outer", modErr.Module)
		assert.ErrorIs(t, err, syringe.ErrTokenZero)
		assert.Contains(t, err.Error(), `module "inner"`)
	})

	t.Run("stops at the first error", func(t *testing.T) {
		t.Parallel()

		module := syringe.NewModule("broken",
			syringe.Value(syringe.Token{}, 1),
			syringe.Value(testutil.DSNToken, "never"),
		)

		c := testutil.NewContainer(t)
		require.Error(t, c.AddModules(module))
		assert.False(t, c.IsRegistered(testutil.DSNToken))
	})
}
