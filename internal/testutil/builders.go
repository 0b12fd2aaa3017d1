package testutil

import (
	"reflect"
	"testing"

	"github.com/junioryono/syringe"
	"github.com/stretchr/testify/require"
)

// ContainerBuilder provides a fluent interface for building test containers
type ContainerBuilder struct {
	t         *testing.T
	container *syringe.Container
}

// NewContainerBuilder creates a builder around NewContainer.
func NewContainerBuilder(t *testing.T, opts ...syringe.Option) *ContainerBuilder {
	return &ContainerBuilder{
		t:         t,
		container: NewContainer(t, opts...),
	}
}

// WithConstructor records constructor metadata
func (b *ContainerBuilder) WithConstructor(constructor any, opts ...syringe.InjectableOption) *ContainerBuilder {
	_, err := b.container.Injectable(constructor, opts...)
	require.NoError(b.t, err)
	return b
}

// WithValue registers a fixed instance
func (b *ContainerBuilder) WithValue(token syringe.Token, v any) *ContainerBuilder {
	require.NoError(b.t, b.container.RegisterInstance(token, v))
	return b
}

// WithClass registers class under token
func (b *ContainerBuilder) WithClass(token syringe.Token, class reflect.Type, opts ...syringe.RegisterOption) *ContainerBuilder {
	require.NoError(b.t, b.container.Register(token, syringe.UseClassOf(class), opts...))
	return b
}

// WithAlias registers from as an alias of to
func (b *ContainerBuilder) WithAlias(from, to syringe.Token, opts ...syringe.RegisterOption) *ContainerBuilder {
	require.NoError(b.t, b.container.Register(from, syringe.UseToken(to), opts...))
	return b
}

// Build returns the container
func (b *ContainerBuilder) Build() *syringe.Container {
	return b.container
}
