/*
	Package labels supports images whose pixels are discrete identifiers rather than
	measurements.  Identifiers are never blended: a lower-resolution label is always
	chosen from the identifiers present in the input by a weighted plurality vote.
*/
package labels

import (
	"fmt"
	"sort"
	"strings"

	"github.com/janelia-flyem/downsample/datatype/common/downres"
)

// Set is a set of label identifiers.
type Set[T downres.Number] map[T]struct{}

// NewSet returns the set of identifiers found in data.
func NewSet[T downres.Number](data []T) Set[T] {
	s := make(Set[T])
	for _, v := range data {
		s[v] = struct{}{}
	}
	return s
}

// Contains returns true if the label is in the set.
func (s Set[T]) Contains(label T) bool {
	_, found := s[label]
	return found
}

// SubsetOf returns true if every label of s is in s2.
func (s Set[T]) SubsetOf(s2 Set[T]) bool {
	for label := range s {
		if !s2.Contains(label) {
			return false
		}
	}
	return true
}

func (s Set[T]) String() string {
	labels := make([]T, 0, len(s))
	for label := range s {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	parts := make([]string, len(labels))
	for i, label := range labels {
		parts[i] = fmt.Sprintf("%v", label)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// votes accumulates weight per label and tracks the running leader.  The first
// label whose accumulated weight strictly exceeds the current maximum becomes the
// leader, so ties keep the earlier leader.
type votes[T downres.Number] struct {
	labels  []T
	weights []float64
	winner  T
	best    float64
}

func (v *votes[T]) reset() {
	v.labels = v.labels[:0]
	v.weights = v.weights[:0]
	var zero T
	v.winner = zero
	v.best = 0
}

func (v *votes[T]) add(label T, w float64) {
	i := 0
	for ; i < len(v.labels); i++ {
		if v.labels[i] == label {
			break
		}
	}
	if i == len(v.labels) {
		v.labels = append(v.labels, label)
		v.weights = append(v.weights, 0)
	}
	v.weights[i] += w
	if v.weights[i] > v.best {
		v.best = v.weights[i]
		v.winner = label
	}
}
