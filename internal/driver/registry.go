package driver

import (
	"strings"
	"sync"

	"github.com/simonhull/constgen/internal/errors"
)

// Registry maps domain keys to drivers. Drivers are created on first use
// and reused for the registry's lifetime.
type Registry struct {
	deps  Deps
	opts  Options
	order []string
	descs map[string]Descriptor

	mu      sync.Mutex
	drivers map[string]*Driver
}

// NewRegistry creates a registry over descs, kept in the given order.
func NewRegistry(descs []Descriptor, deps Deps, opts Options) (*Registry, error) {
	r := &Registry{
		deps:    deps,
		opts:    opts,
		descs:   make(map[string]Descriptor, len(descs)),
		drivers: make(map[string]*Driver, len(descs)),
	}
	for _, d := range descs {
		if d.Key == "" {
			return nil, errors.New("descriptor without key")
		}
		if _, dup := r.descs[d.Key]; dup {
			return nil, errors.Newf("domain %q registered twice", d.Key)
		}
		r.descs[d.Key] = d
		r.order = append(r.order, d.Key)
	}
	return r, nil
}

// Keys returns the registered domain keys in registration order.
func (r *Registry) Keys() []string {
	return append([]string(nil), r.order...)
}

// Driver returns the driver for key, creating it on first use.
func (r *Registry) Driver(key string) (*Driver, error) {
	desc, ok := r.descs[key]
	if !ok {
		return nil, errors.WithHintf(errors.Newf("unknown domain %q", key),
			"known domains: %s", strings.Join(r.order, ", "))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.drivers[key]; ok {
		return d, nil
	}
	d := New(desc, r.deps, r.opts)
	r.drivers[key] = d
	return d, nil
}

// Op is one cycle entry point of a driver.
type Op func(*Driver) (Result, error)

// Cycle entry points for Run.
var (
	OpLoad          Op = (*Driver).Load
	OpGenerate      Op = (*Driver).Generate
	OpForceGenerate Op = (*Driver).ForceGenerate
)

// Run applies op to each domain in keys, in order. Failures stay with their
// domain; every key gets an entry.
func (r *Registry) Run(keys []string, op Op) Report {
	report := Report{Entries: make([]Entry, 0, len(keys))}
	for _, key := range keys {
		d, err := r.Driver(key)
		if err != nil {
			report.Entries = append(report.Entries, Entry{Result: Result{Domain: key, Action: ActionNone}, Err: err})
			continue
		}
		res, err := op(d)
		report.Entries = append(report.Entries, Entry{Result: res, Err: err})
	}
	return report
}

// LoadAll runs the reload cycle for every domain.
func (r *Registry) LoadAll() Report { return r.Run(r.order, OpLoad) }

// GenerateAll generates every domain.
func (r *Registry) GenerateAll() Report { return r.Run(r.order, OpGenerate) }

// ForceGenerateAll force-generates every domain.
func (r *Registry) ForceGenerateAll() Report { return r.Run(r.order, OpForceGenerate) }
