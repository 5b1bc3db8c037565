package factory

import (
	"errors"
	"fmt"
	"maps"
	"strings"
)

var (
	// ErrUnknownPrefix is returned when a prefixed name uses an unregistered prefix.
	ErrUnknownPrefix = errors.New("unknown prefix")

	// ErrUnresolvedIRI is returned when no registered namespace covers an IRI.
	ErrUnresolvedIRI = errors.New("no prefixed name for IRI")
)

// IRIResolver maps between full IRIs and prefixed names. It is not safe
// for concurrent mutation; configure it before sharing.
type IRIResolver struct {
	prefixes map[string]string // prefix -> namespace
}

// NewIRIResolver creates a resolver with the standard rdf, rdfs, owl, xsd,
// swrl and swrlb prefixes registered.
func NewIRIResolver() *IRIResolver {
	return &IRIResolver{prefixes: maps.Clone(defaultPrefixes)}
}

// SetPrefix registers or replaces a prefix. The empty prefix names the
// default namespace (":local").
func (r *IRIResolver) SetPrefix(prefix, namespace string) {
	r.prefixes[prefix] = namespace
}

// Prefixes returns a copy of the registered prefix map.
func (r *IRIResolver) Prefixes() map[string]string {
	return maps.Clone(r.prefixes)
}

// PrefixedNameOf returns the prefixed form of iri using the longest
// matching namespace. Equal-length namespaces resolve to the smaller prefix
// so the result does not depend on map order.
func (r *IRIResolver) PrefixedNameOf(iri string) (string, bool) {
	bestPrefix, bestNS := "", ""
	found := false
	for prefix, ns := range r.prefixes {
		if ns == "" || !strings.HasPrefix(iri, ns) {
			continue
		}
		if !found || len(ns) > len(bestNS) || (len(ns) == len(bestNS) && prefix < bestPrefix) {
			bestPrefix, bestNS, found = prefix, ns, true
		}
	}
	if !found {
		return "", false
	}
	return bestPrefix + ":" + strings.TrimPrefix(iri, bestNS), true
}

// Expand turns a prefixed name into a full IRI. Names that already look
// like full IRIs ("scheme://...") are returned unchanged.
func (r *IRIResolver) Expand(name string) (string, error) {
	if IsFullIRI(name) {
		return name, nil
	}
	prefix, local, ok := strings.Cut(name, ":")
	if !ok {
		return "", fmt.Errorf("%w: %q is not a prefixed name", ErrUnknownPrefix, name)
	}
	ns, ok := r.prefixes[prefix]
	if !ok {
		return "", fmt.Errorf("%w: %q in %q", ErrUnknownPrefix, prefix, name)
	}
	return ns + local, nil
}

// IsFullIRI reports whether s is written as an absolute IRI.
func IsFullIRI(s string) bool {
	return strings.Contains(s, "://")
}
