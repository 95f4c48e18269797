package disclosure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vc/pkg/lattice"
	"vc/pkg/path"
)

func mustLattice(t *testing.T, top, bottom []string) lattice.Lattice[path.Path] {
	t.Helper()
	topPaths := make([]path.Path, len(top))
	for i, s := range top {
		topPaths[i] = path.MustParse(s)
	}
	bottomPaths := make([]path.Path, len(bottom))
	for i, s := range bottom {
		bottomPaths[i] = path.MustParse(s)
	}
	l, err := lattice.New(topPaths, bottomPaths)
	require.NoError(t, err)
	return l
}

func pp(ss ...string) []path.Path {
	out := make([]path.Path, len(ss))
	for i, s := range ss {
		out[i] = path.MustParse(s)
	}
	return out
}

func TestComputeOptimalDisclosure_Satisfied(t *testing.T) {
	l := mustLattice(t, []string{"/iss", "/type", "/A", "/B", "/C"}, []string{"/iss", "/type"})
	res := ComputeOptimalDisclosure(l, pp("/A"), pp("/B"), nil, nil)
	assert.True(t, res.Satisfies)
	assert.ElementsMatch(t, pp("/iss", "/type", "/A"), res.SelectedPaths)
}

func TestComputeOptimalDisclosure_Conflict(t *testing.T) {
	// Scenario 4 from spec.md §8: Top = {A,B,C,iss,type}, Bottom = {iss,type}
	// verifier-requested = {B}, user-excluded = {B}.
	l := mustLattice(t, []string{"/A", "/B", "/C", "/iss", "/type"}, []string{"/iss", "/type"})
	res := ComputeOptimalDisclosure(l, pp("/B"), pp("/B"), nil, nil)
	assert.False(t, res.Satisfies)
	assert.ElementsMatch(t, pp("/iss", "/type"), res.SelectedPaths)
	assert.ElementsMatch(t, pp("/B"), res.Conflicts)
}

func TestComputeMaximumDisclosure_DropsBottomExclusions(t *testing.T) {
	l := mustLattice(t, []string{"/A", "/B", "/iss"}, []string{"/iss"})
	max := ComputeMaximumDisclosure(l, pp("/iss", "/A"))
	assert.ElementsMatch(t, pp("/iss", "/B"), max)
}

func TestValidateDisclosure(t *testing.T) {
	l := mustLattice(t, []string{"/A", "/B", "/iss"}, []string{"/iss"})
	assert.True(t, ValidateDisclosure(l, pp("/A"), pp("/iss", "/A")))
	assert.False(t, ValidateDisclosure(l, pp("/A"), pp("/A"))) // missing mandatory /iss
}

func TestSelectCredentialsGreedyDeterministic(t *testing.T) {
	l1 := mustLattice(t, []string{"/A", "/B"}, nil)
	l2 := mustLattice(t, []string{"/B", "/C"}, nil)
	creds := []Credential[string]{
		{Value: "cred1", Lattice: l1},
		{Value: "cred2", Lattice: l2},
	}
	result := SelectCredentials(creds, pp("/A", "/B", "/C"))
	require.True(t, result.Satisfied)
	require.Len(t, result.Chosen, 2)
	assert.Equal(t, "cred1", result.Chosen[0].Value)
	assert.Equal(t, "cred2", result.Chosen[1].Value)
}

func TestSelectCredentialsNoProgressTerminates(t *testing.T) {
	l1 := mustLattice(t, []string{"/A"}, nil)
	creds := []Credential[string]{{Value: "cred1", Lattice: l1}}
	result := SelectCredentials(creds, pp("/A", "/Z"))
	assert.False(t, result.Satisfied)
	assert.Len(t, result.Chosen, 1)
}
