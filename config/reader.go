package config

import (
	"fmt"
	"os"

	"github.com/knadh/koanf/v2"
)

// PartialSet maps option names to values supplied by exactly one source.
// A missing entry means the source did not supply a value, which is distinct
// from an explicitly-set empty or false one. A malformed present value is
// recorded as a deferred error so that precedence resolution can skip it
// when a higher-precedence source already resolved the option.
type PartialSet struct {
	entries map[string]entry
}

type entry struct {
	value any
	err   error
}

func newPartialSet() PartialSet {
	return PartialSet{entries: make(map[string]entry, len(descriptors))}
}

func (s PartialSet) lookup(name string) (entry, bool) {
	e, ok := s.entries[name]
	return e, ok
}

// Len returns the number of options this source supplied.
func (s PartialSet) Len() int {
	return len(s.entries)
}

// EnvironmentSet reads each descriptor's environment variable. A nil lookup
// uses the process environment. Absent variables produce no entry; present
// but malformed values are deferred to resolution.
func EnvironmentSet(lookup func(string) (string, bool)) PartialSet {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	set := newPartialSet()
	for _, d := range descriptors {
		raw, ok := lookup(d.EnvVar)
		if !ok {
			continue
		}
		v, err := d.Parse(raw)
		if err != nil {
			set.entries[d.Name] = entry{err: fmt.Errorf("environment variable %s: %w", d.EnvVar, err)}
			continue
		}
		set.entries[d.Name] = entry{value: v}
	}
	return set
}

// StructuredSet reads each descriptor's key from a koanf store. The store is
// opaque to this reader; it may itself be layered from files, command-line
// flags, or environment. A nil store supplies nothing.
func StructuredSet(k *koanf.Koanf) PartialSet {
	set := newPartialSet()
	if k == nil {
		return set
	}
	for _, d := range descriptors {
		if !k.Exists(d.Key) {
			continue
		}
		v, err := d.Parse(k.String(d.Key))
		if err != nil {
			set.entries[d.Name] = entry{err: fmt.Errorf("configuration key %s: %w", d.Key, err)}
			continue
		}
		set.entries[d.Name] = entry{value: v}
	}
	return set
}

// ExplicitSet converts caller-supplied options into a partial set. Values
// are already typed, so no parsing occurs.
func ExplicitSet(opts Options) PartialSet {
	set := newPartialSet()
	for _, d := range descriptors {
		if v, ok := d.explicit(opts); ok {
			set.entries[d.Name] = entry{value: v}
		}
	}
	return set
}
