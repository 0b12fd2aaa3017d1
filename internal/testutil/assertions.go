package testutil

import (
	"errors"

	"github.com/junioryono/syringe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestingT is the part of testing.TB the assertions need. *rapid.T satisfies it.
type TestingT interface {
	require.TestingT
	Helper()
}

// AssertResolvable checks that token resolves to a non-nil T.
func AssertResolvable[T any](t TestingT, c *syringe.Container, token syringe.Token) T {
	t.Helper()
	instance, err := syringe.Resolve[T](c, token)
	require.NoError(t, err, "failed to resolve %s", token)
	require.NotNil(t, instance, "resolved %s is nil", token)
	return instance
}

// AssertUnregistered checks that resolving token fails with ErrUnregisteredToken.
func AssertUnregistered(t TestingT, c *syringe.Container, token syringe.Token) {
	t.Helper()
	_, err := c.Resolve(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, syringe.ErrUnregisteredToken)
}

// AssertRegistrationError checks err is a RegistrationError wrapping cause.
func AssertRegistrationError(t TestingT, err error, cause error) syringe.RegistrationError {
	t.Helper()
	require.Error(t, err)

	var regErr syringe.RegistrationError
	require.True(t, errors.As(err, &regErr), "expected RegistrationError, got %T: %v", err, err)
	assert.ErrorIs(t, err, cause)
	return regErr
}

// AssertCycle checks err is a circular dependency error and returns it.
func AssertCycle(t TestingT, err error) syringe.CircularDependencyError {
	t.Helper()
	require.Error(t, err)

	var cycleErr syringe.CircularDependencyError
	require.True(t, errors.As(err, &cycleErr), "expected CircularDependencyError, got %T: %v", err, err)
	assert.ErrorIs(t, err, syringe.ErrCircularDependency)
	return cycleErr
}
