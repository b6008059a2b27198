// Package registry assembles the full set of configured source
// adapters and looks them up by name.
package registry

import (
	"fmt"
	"sort"

	"github.com/jonesrussell/newsharvest/internal/fetch"
	"github.com/jonesrussell/newsharvest/internal/logger"
	"github.com/jonesrussell/newsharvest/internal/sources"
	"github.com/jonesrussell/newsharvest/internal/sources/moneycontrol"
	"github.com/jonesrussell/newsharvest/internal/sources/theedge"
)

// Registry holds the configured source adapters keyed by name.
type Registry struct {
	sources map[string]sources.Source
}

// New builds the full adapter set.
func New(client *fetch.Client, log logger.Interface) (*Registry, error) {
	adapters := []sources.Source{
		theedge.NewChinese(client, log),
		theedge.NewEnglish(client, log),
	}

	for _, lang := range []string{
		moneycontrol.LangEnglish,
		moneycontrol.LangHindi,
		moneycontrol.LangGujarati,
	} {
		adapter, err := moneycontrol.New(client, log, lang)
		if err != nil {
			return nil, fmt.Errorf("configure moneycontrol %s: %w", lang, err)
		}
		adapters = append(adapters, adapter)
	}

	reg := &Registry{sources: make(map[string]sources.Source, len(adapters))}
	for _, src := range adapters {
		reg.sources[src.Name()] = src
	}
	return reg, nil
}

// Get returns the named source.
func (r *Registry) Get(name string) (sources.Source, error) {
	src, ok := r.sources[name]
	if !ok {
		return nil, fmt.Errorf("unknown source: %q", name)
	}
	return src, nil
}

// Names returns all configured source names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every configured source in name order.
func (r *Registry) All() []sources.Source {
	all := make([]sources.Source, 0, len(r.sources))
	for _, name := range r.Names() {
		all = append(all, r.sources[name])
	}
	return all
}
