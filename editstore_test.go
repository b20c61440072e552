package zome

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditStoreClone(t *testing.T) {
	st := NewEditStore()
	st.ConnectorOverrides[3] = ConnectorOverride{CylDiameterMm: 160}
	st.BeamOverrides[5] = BeamOverride{BeamWidthMm: 120}
	st.ExtraBeams = append(st.ExtraBeams, ExtraBeam{A: LatticeCoord{K: 3, I: 0}, B: LatticeCoord{K: 3, I: 1}, Kind: EdgeDiagH})
	st.IntersectionFaces["3:0"] = true
	st.DeletedEdges["a|b"] = true

	c := st.Clone()
	require.Equal(t, st.ConnectorOverrides, c.ConnectorOverrides)
	require.Equal(t, st.ExtraBeams, c.ExtraBeams)

	// Mutating the clone leaves the original untouched.
	c.DeletedEdges["c|d"] = true
	c.ConnectorOverrides[4] = ConnectorOverride{CylDepthMm: 99}
	assert.Len(t, st.DeletedEdges, 1)
	assert.Len(t, st.ConnectorOverrides, 1)
}

func TestAddExtraDeduplicates(t *testing.T) {
	d := NewDesign(NewParams(7, 5, 35))
	a := LatticeCoord{K: 3, I: 0}
	b := LatticeCoord{K: 3, I: 1}
	d.AddExtra(a, b, EdgeDiagH)
	d.AddExtra(a, b, EdgeDiagH)
	d.AddExtra(b, a, EdgeDiagH) // reversed endpoints, same edge
	assert.Len(t, d.Edits.ExtraBeams, 1)

	// Self edges are rejected.
	d.AddExtra(a, a, EdgeExtra)
	assert.Len(t, d.Edits.ExtraBeams, 1)

	// Pole coordinates collapse: (0, 2) and (0, 5) are the same vertex.
	d.AddExtra(LatticeCoord{K: 0, I: 2}, LatticeCoord{K: 0, I: 5}, EdgeExtra)
	assert.Len(t, d.Edits.ExtraBeams, 1)
}

func TestAddExtraClearsDeletion(t *testing.T) {
	d := NewDesign(NewParams(7, 5, 35))
	a := LatticeCoord{K: 3, I: 0}
	b := LatticeCoord{K: 3, I: 1}
	key := EdgeKeyOf(VertexKey(3, 0, 7), VertexKey(3, 1, 7))
	d.DeleteEdge(key)
	require.True(t, d.Edits.DeletedEdges[key])
	d.AddExtra(a, b, EdgeDiagH)
	assert.False(t, d.Edits.DeletedEdges[key], "re-adding must lift the deletion")
}

func TestClearExtras(t *testing.T) {
	d := NewDesign(NewParams(7, 5, 35))
	d.AddExtra(LatticeCoord{K: 3, I: 0}, LatticeCoord{K: 3, I: 1}, EdgeDiagH)
	d.MarkIntersection(3, 0)
	d.DeleteEdge("a|b")
	d.SetBeamOverride(5, BeamOverride{BeamWidthMm: 120})

	d.ClearExtras()
	assert.Empty(t, d.Edits.ExtraBeams)
	assert.Empty(t, d.Edits.IntersectionFaces)
	assert.True(t, d.Edits.DeletedEdges["a|b"], "deletions survive ClearExtras")
	assert.Contains(t, d.Edits.BeamOverrides, 5, "overrides survive ClearExtras")
}

func TestEdgeKindJSON(t *testing.T) {
	for kind, name := range map[EdgeKind]string{
		EdgeLattice: `"edge"`,
		EdgeDiagH:   `"diagH"`,
		EdgeDiagV:   `"diagV"`,
		EdgeExtra:   `"extra"`,
	} {
		b, err := json.Marshal(kind)
		require.NoError(t, err)
		assert.Equal(t, name, string(b))

		var back EdgeKind
		require.NoError(t, json.Unmarshal(b, &back))
		assert.Equal(t, kind, back)
	}
	var k EdgeKind
	assert.Error(t, json.Unmarshal([]byte(`"bogus"`), &k))
}
