// Router selects a Provider by name. tripgen configures exactly one active
// provider per process (LLM_PROVIDER); the router keeps the rest registered
// so health checks and tests can address them by key.
package llm

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// ErrProviderNotRegistered is returned by Route when the key has no provider.
var ErrProviderNotRegistered = errors.New("llm router: provider not registered")

// Router selects a Provider for each request.
type Router struct {
	providers       map[string]Provider
	defaultProvider string
}

// NewRouter creates a Router with an initial set of providers and a default key.
func NewRouter(providers map[string]Provider, defaultProvider string) *Router {
	ps := make(map[string]Provider, len(providers))
	for k, v := range providers {
		ps[k] = v
	}
	return &Router{providers: ps, defaultProvider: defaultProvider}
}

// Register adds (or replaces) a provider under the given key.
func (r *Router) Register(key string, p Provider) {
	r.providers[key] = p
}

// Route returns the default provider.
func (r *Router) Route(_ context.Context) (Provider, error) {
	return r.Get(r.defaultProvider)
}

// Get returns the provider registered under key.
func (r *Router) Get(key string) (Provider, error) {
	p, ok := r.providers[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrProviderNotRegistered, key, r.Keys())
	}
	return p, nil
}

// Keys returns the registered provider names, sorted.
func (r *Router) Keys() []string {
	out := make([]string, 0, len(r.providers))
	for k := range r.providers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
