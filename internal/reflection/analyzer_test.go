package reflection_test

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/junioryono/syringe/internal/reflection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test types
type Database struct {
	ConnectionString string
}

type Logger interface {
	Log(msg string)
}

type UserService struct {
	DB     *Database
	Logger Logger
}

// Test constructors
func NewDatabase() *Database {
	return &Database{ConnectionString: "memory"}
}

func NewUserService(db *Database, logger Logger) *UserService {
	return &UserService{DB: db, Logger: logger}
}

func NewUserServiceWithError(db *Database) (*UserService, error) {
	if db == nil {
		return nil, errors.New("database is required")
	}
	return &UserService{DB: db}, nil
}

func TestAnalyzer_Analyze(t *testing.T) {
	t.Run("no parameters", func(t *testing.T) {
		a := reflection.New()

		info, err := a.Analyze(NewDatabase)
		require.NoError(t, err)

		assert.Empty(t, info.Parameters)
		assert.Equal(t, reflect.TypeOf(&Database{}), info.Result)
		assert.False(t, info.HasErrorReturn)
	})

	t.Run("positional parameters", func(t *testing.T) {
		a := reflection.New()

		info, err := a.Analyze(NewUserService)
		require.NoError(t, err)

		require.Len(t, info.Parameters, 2)
		assert.Equal(t, reflect.TypeOf(&Database{}), info.Parameters[0].Type)
		assert.Equal(t, 0, info.Parameters[0].Index)
		assert.Equal(t, reflect.TypeOf((*Logger)(nil)).Elem(), info.Parameters[1].Type)
		assert.Equal(t, 1, info.Parameters[1].Index)
		assert.Equal(t, reflect.TypeOf(&UserService{}), info.Result)
	})

	t.Run("error return", func(t *testing.T) {
		a := reflection.New()

		info, err := a.Analyze(NewUserServiceWithError)
		require.NoError(t, err)

		assert.True(t, info.HasErrorReturn)
		assert.Equal(t, reflect.TypeOf(&UserService{}), info.Result)
	})
}

func TestAnalyzer_InvalidConstructors(t *testing.T) {
	var nilFunc func() *Database

	tests := []struct {
		name        string
		constructor any
		expected    error
	}{
		{"nil", nil, reflection.ErrConstructorNil},
		{"typed nil", nilFunc, reflection.ErrConstructorNil},
		{"not a function", &Database{}, reflection.ErrConstructorNotFunction},
		{"variadic", func(...int) *Database { return nil }, reflection.ErrConstructorVariadic},
		{"no return", func() {}, reflection.ErrConstructorNoReturn},
		{"too many returns", func() (*Database, *Database, error) { return nil, nil, nil }, reflection.ErrConstructorTooManyReturns},
		{"second return not error", func() (*Database, int) { return nil, 0 }, reflection.ErrConstructorInvalidSecondReturn},
		{"only error", func() error { return nil }, reflection.ErrConstructorReturnsError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := reflection.New()

			_, err := a.Analyze(tt.constructor)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestAnalyzer_Cache(t *testing.T) {
	a := reflection.New()

	first, err := a.Analyze(NewUserService)
	require.NoError(t, err)

	second, err := a.Analyze(NewUserService)
	require.NoError(t, err)

	assert.Equal(t, first.Parameters, second.Parameters)
	assert.Equal(t, first.Result, second.Result)
	assert.Equal(t, 1, a.CacheSize())

	_, err = a.Analyze(NewDatabase)
	require.NoError(t, err)
	assert.Equal(t, 2, a.CacheSize())

	a.Clear()
	assert.Equal(t, 0, a.CacheSize())
}

func TestAnalyzer_ClosuresKeepTheirValue(t *testing.T) {
	a := reflection.New()

	newConst := func(n int) func() int {
		return func() int { return n }
	}

	one, err := a.Analyze(newConst(1))
	require.NoError(t, err)

	two, err := a.Analyze(newConst(2))
	require.NoError(t, err)

	assert.Equal(t, 1, a.CacheSize())
	assert.Equal(t, 1, one.Value.Call(nil)[0].Interface())
	assert.Equal(t, 2, two.Value.Call(nil)[0].Interface())
}

func TestAnalyzer_ConcurrentAccess(t *testing.T) {
	a := reflection.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := a.Analyze(NewUserService)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, a.CacheSize())
}

func TestZeroConstruction(t *testing.T) {
	tests := []struct {
		name          string
		typ           reflect.Type
		constructible bool
	}{
		{"struct", reflect.TypeOf(Database{}), true},
		{"pointer to struct", reflect.TypeOf(&Database{}), true},
		{"interface", reflect.TypeOf((*Logger)(nil)).Elem(), false},
		{"int", reflect.TypeOf(0), false},
		{"pointer to int", reflect.TypeOf(new(int)), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.constructible, reflection.IsZeroConstructible(tt.typ))
		})
	}

	t.Run("pointer allocates element", func(t *testing.T) {
		v := reflection.NewZero(reflect.TypeOf(&Database{}))
		db, ok := v.Interface().(*Database)
		require.True(t, ok)
		require.NotNil(t, db)
		assert.Empty(t, db.ConnectionString)
	})

	t.Run("struct value", func(t *testing.T) {
		v := reflection.NewZero(reflect.TypeOf(Database{}))
		assert.Equal(t, Database{}, v.Interface())
	})
}
