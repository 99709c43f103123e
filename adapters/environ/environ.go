// Package environ abstracts the TEE session environment as an injected
// key-value lookup, so configuration resolution is a pure function of its
// provider and testable without process-wide environment mutation.
package environ

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/abhissng/precompute/utils/helpers"
)

// Provider looks up a named session variable. An empty value is reported as
// absent: the session protocol never distinguishes empty from unset.
type Provider interface {
	Lookup(name string) (string, bool)
}

// Viper is the process-environment Provider, backed by an isolated viper
// instance with automatic environment binding.
type Viper struct {
	v *viper.Viper
}

// NewViper creates the environment-backed provider.
func NewViper() *Viper {
	v := viper.New()
	v.AutomaticEnv()
	return &Viper{v: v}
}

// Lookup implements Provider.
func (p *Viper) Lookup(name string) (string, bool) {
	value := p.v.GetString(name)
	if helpers.IsEmpty(value) {
		return "", false
	}
	return strings.TrimSpace(value), true
}

// Map is an in-memory Provider for tests and embedded callers.
type Map map[string]string

// Lookup implements Provider.
func (m Map) Lookup(name string) (string, bool) {
	value, ok := m[name]
	if !ok || helpers.IsEmpty(value) {
		return "", false
	}
	return strings.TrimSpace(value), true
}
