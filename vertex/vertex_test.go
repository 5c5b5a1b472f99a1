package vertex

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bmander/skilift/street"
)

func TestDistinctVariantsNeverCompareEqual(t *testing.T) {
	var a Vertex = AtStop{StopID: "s1", Time: 0}
	var b Vertex = StreetNode{NodeID: 0, Time: 0}
	assert.NotEqual(t, a, b)
}

func TestSameVariantSameFieldsCompareEqual(t *testing.T) {
	var a Vertex = AtStop{StopID: "s1", Time: 100}
	var b Vertex = AtStop{StopID: "s1", Time: 100}
	assert.Equal(t, a, b)
}

func TestNewMidstreetQuantizesOffset(t *testing.T) {
	seg := street.SegmentRef{WayID: 1, Index: 0}
	a := NewMidstreet(seg, 0.500001, 10)
	b := NewMidstreet(seg, 0.499999, 10)
	assert.Equal(t, a, b)
}

func TestKindDistinguishesVariants(t *testing.T) {
	assert.Equal(t, "AtStop", AtStop{}.Kind())
	assert.Equal(t, "Departure", Departure{}.Kind())
	assert.Equal(t, "Arrival", Arrival{}.Kind())
	assert.Equal(t, "Midstreet", Midstreet{}.Kind())
	assert.Equal(t, "StreetNode", StreetNode{}.Kind())
	assert.Equal(t, "OnEarthSurface", OnEarthSurface{}.Kind())
}
