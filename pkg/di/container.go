// Package di provides dependency injection container
package di

import (
	"net/http"

	"github.com/vanir-db/vanir/pkg/api" //nolint:depguard
	"github.com/vanir-db/vanir/pkg/store"
)

// StoreFactory opens a state store from its configuration.
type StoreFactory func(config store.Config) (*store.StateStore, error)

// RouterFactory builds the HTTP route tree over a store.
type RouterFactory func(s api.Store, config api.ServerConfig) http.Handler

// Container holds all the dependencies for the application
type Container struct {
	storeFactory  StoreFactory
	routerFactory RouterFactory
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		storeFactory:  store.Open,
		routerFactory: api.NewRouter,
	}
}

// GetStoreFactory returns the store factory
func (c *Container) GetStoreFactory() StoreFactory {
	return c.storeFactory
}

// GetRouterFactory returns the router factory
func (c *Container) GetRouterFactory() RouterFactory {
	return c.routerFactory
}

// SetStoreFactory allows overriding the store factory (for testing)
func (c *Container) SetStoreFactory(factory StoreFactory) {
	c.storeFactory = factory
}

// SetRouterFactory allows overriding the router factory (for testing)
func (c *Container) SetRouterFactory(factory RouterFactory) {
	c.routerFactory = factory
}
