package labels

import (
	"testing"
)

func TestSet(t *testing.T) {
	s := NewSet([]uint64{4, 1, 4, 9})
	if len(s) != 3 {
		t.Fatalf("expected 3 labels, got %d", len(s))
	}
	if !s.Contains(9) || s.Contains(2) {
		t.Errorf("bad membership in %s", s)
	}
	if s.String() != "[1 4 9]" {
		t.Errorf("expected sorted string, got %s", s)
	}
	if !NewSet([]uint64{1, 9}).SubsetOf(s) {
		t.Errorf("expected [1 9] to be a subset of %s", s)
	}
	if s.SubsetOf(NewSet([]uint64{1, 4})) {
		t.Errorf("%s should not be a subset of [1 4]", s)
	}
}

func TestVotes(t *testing.T) {
	var v votes[uint16]
	v.add(3, 0.25)
	v.add(8, 0.5)
	v.add(3, 0.25)
	if v.winner != 8 {
		t.Errorf("expected 8 to keep the lead on a tie, got %d", v.winner)
	}
	v.add(3, 0.01)
	if v.winner != 3 {
		t.Errorf("expected 3 to take the lead, got %d", v.winner)
	}

	v.reset()
	if v.winner != 0 || len(v.labels) != 0 {
		t.Errorf("reset left winner %d and %d labels", v.winner, len(v.labels))
	}
	v.add(0, 0)
	if v.winner != 0 {
		t.Errorf("zero weight should not change the winner")
	}
}
