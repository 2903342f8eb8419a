package beliefbase

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"

	"github.com/agm-labs/abr/formula"
)

func TestAddRejectsDuplicateText(t *testing.T) {
	bb := New()
	assert.True(t, bb.Add("A", formula.NewAtom("A")))
	assert.False(t, bb.Add("A", formula.NewAtom("A")))
	assert.Equal(t, 1, bb.Len())
}

func TestListPreservesInsertionOrder(t *testing.T) {
	bb := New()
	bb.Add("B", formula.NewAtom("B"))
	bb.Add("A", formula.NewAtom("A"))
	bb.Add("C", formula.NewAtom("C"))

	if diff := cmp.Diff([]string{"B", "A", "C"}, bb.List()); diff != "" {
		t.Errorf("List() order mismatch (-want +got):\n%s", diff)
	}
}

func TestRemoveIsSilentOnAbsentText(t *testing.T) {
	bb := New()
	bb.Add("A", formula.NewAtom("A"))
	bb.Remove("B") // no panic, no effect
	assert.Equal(t, []string{"A"}, bb.List())
}

func TestDefaultPriorityRanksEarlierInsertionsHigher(t *testing.T) {
	bb := New()
	bb.Add("first", formula.NewAtom("first"))
	bb.Add("second", formula.NewAtom("second"))
	bb.Add("third", formula.NewAtom("third"))

	assert.Greater(t, bb.Priority("first"), bb.Priority("second"))
	assert.Greater(t, bb.Priority("second"), bb.Priority("third"))
}

func TestExplicitPriorityOverridesDefault(t *testing.T) {
	bb := New()
	bb.Add("A", formula.NewAtom("A"))
	bb.Add("B", formula.NewAtom("B"))
	bb.SetPriorities(map[string]int{"B": 100})

	assert.Equal(t, 100, bb.Priority("B"))
	assert.Greater(t, bb.Priority("B"), bb.Priority("A"))
}

func TestCloneIsIndependent(t *testing.T) {
	bb := New()
	bb.Add("A", formula.NewAtom("A"))
	clone := bb.Clone()

	clone.Add("B", formula.NewAtom("B"))
	bb.Remove("A")

	assert.Equal(t, []string{"A", "B"}, clone.List())
	assert.Empty(t, bb.List())
}

func TestClearEmptiesBaseAndPriorities(t *testing.T) {
	bb := New()
	bb.Add("A", formula.NewAtom("A"))
	bb.SetPriorities(map[string]int{"A": 7})
	bb.Clear()

	assert.Equal(t, 0, bb.Len())
	_, ok := bb.ExplicitPriority("A")
	assert.False(t, ok)
}

// TestBeliefsUnorderedEquality checks set-equality between two bases'
// texts regardless of insertion order, the shape contraction's
// remainder comparisons need.
func TestBeliefsUnorderedEquality(t *testing.T) {
	left := New()
	left.Add("A", formula.NewAtom("A"))
	left.Add("B", formula.NewAtom("B"))

	right := New()
	right.Add("B", formula.NewAtom("B"))
	right.Add("A", formula.NewAtom("A"))

	sortStrings := cmpopts.SortSlices(func(a, b string) bool { return a < b })
	if diff := cmp.Diff(left.List(), right.List(), sortStrings); diff != "" {
		t.Errorf("unordered text sets differ (-left +right):\n%s", diff)
	}
}
