package agent

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/hupe1980/tripmesh/model"
)

// ErrUnknownAgentType is returned for keys that were never registered.
var ErrUnknownAgentType = errors.New("unknown agent type")

// Registration binds a string key to an agent configuration plus display
// metadata. Registrations are immutable once stored; registering the same key
// again replaces the previous entry (last write wins).
type Registration struct {
	Key         string
	DisplayName string
	Description string
	Config      Config
}

// Description is the metadata returned by Factory.Describe.
type Description struct {
	Key         string `json:"key"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
}

// Factory maps string keys to agent configurations so multiple specialized
// assistants can share the loop implementation. Safe for concurrent use.
type Factory struct {
	mu   sync.RWMutex
	regs map[string]Registration
}

// NewFactory constructs an empty factory.
func NewFactory() *Factory {
	return &Factory{regs: make(map[string]Registration)}
}

// Register validates and stores a registration. Configs failing the required
// capability set are rejected with ErrInvalidAgentConfig.
func (f *Factory) Register(reg Registration) error {
	if reg.Key == "" {
		return errors.Join(ErrInvalidAgentConfig, errors.New("registration key is empty"))
	}
	if err := validateConfig(reg.Config); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.regs[reg.Key] = reg
	return nil
}

// Create builds an agent instance for a registered key, applying any option
// overrides to the loop configuration.
func (f *Factory) Create(key string, provider model.Provider, optFns ...func(o *Options)) (*Agent, error) {
	f.mu.RLock()
	reg, ok := f.regs[key]
	f.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownAgentType, key, f.List())
	}

	return New(reg.DisplayName, provider, reg.Config, optFns...)
}

// List returns all registered keys, sorted.
func (f *Factory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	keys := make([]string, 0, len(f.regs))
	for k := range f.regs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Describe returns the display metadata for a registered key.
func (f *Factory) Describe(key string) (Description, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	reg, ok := f.regs[key]
	if !ok {
		return Description{}, fmt.Errorf("%w: %s", ErrUnknownAgentType, key)
	}

	return Description{Key: reg.Key, DisplayName: reg.DisplayName, Description: reg.Description}, nil
}

// Remove deletes a registration, reporting whether it existed. There is no
// richer deregistration primitive.
func (f *Factory) Remove(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.regs[key]
	delete(f.regs, key)
	return ok
}
