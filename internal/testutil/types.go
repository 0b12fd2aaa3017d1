package testutil

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Common test errors
var (
	ErrTest        = errors.New("test error")
	ErrConstructor = errors.New("constructor error")
)

// TestService is a basic test service with no dependencies.
type TestService struct {
	ID   string
	Data string
}

// NewTestService creates a new test service with a unique ID.
func NewTestService() *TestService {
	return &TestService{
		ID:   uuid.NewString(),
		Data: "test",
	}
}

// TestLogger is a test logger interface
type TestLogger interface {
	Log(msg string)
	GetLogs() []string
}

// TestLoggerImpl implements TestLogger
type TestLoggerImpl struct {
	logs []string
	mu   sync.Mutex
}

func NewTestLogger() TestLogger {
	return &TestLoggerImpl{}
}

func (l *TestLoggerImpl) Log(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logs = append(l.logs, msg)
}

func (l *TestLoggerImpl) GetLogs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	result := make([]string, len(l.logs))
	copy(result, l.logs)
	return result
}

// TestDatabase is a test database handle.
type TestDatabase struct {
	DSN string
}

// NewTestDatabase creates a database handle for dsn.
func NewTestDatabase(dsn string) *TestDatabase {
	return &TestDatabase{DSN: dsn}
}

// TestRepository depends on a logger and a database.
type TestRepository struct {
	Logger TestLogger
	DB     *TestDatabase
}

func NewTestRepository(logger TestLogger, db *TestDatabase) *TestRepository {
	return &TestRepository{Logger: logger, DB: db}
}

// Foo is the interface of the scope precedence fixtures.
type Foo interface {
	Name() string
}

// AmbientFoo is the default Foo implementation.
type AmbientFoo struct{}

func (*AmbientFoo) Name() string { return "ambient" }

// ChildFoo is the Foo implementation registered in child containers.
type ChildFoo struct{}

func (*ChildFoo) Name() string { return "child" }

// FooConsumer depends on the named Foo token.
type FooConsumer struct {
	Foo Foo
}

func NewFooConsumer(foo Foo) *FooConsumer {
	return &FooConsumer{Foo: foo}
}

// CountingService counts how many times its constructor ran.
type CountingService struct {
	N int64
}

// Counter returns a constructor that increments calls on every invocation.
func Counter(calls *atomic.Int64) func() *CountingService {
	return func() *CountingService {
		return &CountingService{N: calls.Add(1)}
	}
}

// CycleA and CycleB depend on each other.
type CycleA struct{ B *CycleB }

type CycleB struct{ A *CycleA }

func NewCycleA(b *CycleB) *CycleA { return &CycleA{B: b} }

func NewCycleB(a *CycleA) *CycleB { return &CycleB{A: a} }

// FailingService has a constructor that always fails.
type FailingService struct{}

func NewFailingService() (*FailingService, error) {
	return nil, ErrConstructor
}

// PanickingService has a constructor that always panics.
type PanickingService struct{}

func NewPanickingService() *PanickingService {
	panic("constructor panic")
}
