// internal/core/domain/artifact.go
package domain

import "sort"

// StringSet es un conjunto de strings distintos.
type StringSet map[string]struct{}

// NewStringSet crea un set con los valores dados.
func NewStringSet(values ...string) StringSet {
	s := make(StringSet, len(values))
	s.AddAll(values...)
	return s
}

// Add añade v al set. Retorna true si no existía.
func (s StringSet) Add(v string) bool {
	if _, ok := s[v]; ok {
		return false
	}
	s[v] = struct{}{}
	return true
}

// AddAll añade todos los valores.
func (s StringSet) AddAll(values ...string) {
	for _, v := range values {
		s[v] = struct{}{}
	}
}

// Has reports membership.
func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Len retorna el número de elementos.
func (s StringSet) Len() int {
	return len(s)
}

// Sorted retorna los valores ordenados.
func (s StringSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// ArtifactBuckets agrupa artefactos por tipo. Siempre contiene los cinco tipos.
type ArtifactBuckets map[EventType]StringSet

// NewArtifactBuckets crea buckets vacíos para todos los tipos de artefacto.
func NewArtifactBuckets() ArtifactBuckets {
	b := make(ArtifactBuckets, len(artifactKinds))
	for _, k := range artifactKinds {
		b[k] = NewStringSet()
	}
	return b
}

// Total cuenta todos los valores en todos los buckets.
func (b ArtifactBuckets) Total() int {
	n := 0
	for _, s := range b {
		n += s.Len()
	}
	return n
}
