package optim

import (
	"sort"

	"github.com/samber/lo"
)

// registry is the fixed table of updater constructors. It is built once at
// process start; lookup is a pure function of the table and the name.
var registry = map[string]func(Config) Updater{
	"sgd":     func(cfg Config) Updater { return NewSGD(cfg) },
	"adagrad": func(cfg Config) Updater { return NewAdaGrad(cfg) },
}

// Create instantiates the named updater, or returns nil for an unknown or
// empty name. Callers must check before use.
func Create(name string, cfg Config) Updater {
	ctor, ok := registry[name]
	if !ok {
		return nil
	}
	return ctor(cfg)
}

// Names returns the registered updater names, sorted.
func Names() []string {
	names := lo.Keys(registry)
	sort.Strings(names)
	return names
}
