package disclosure

import (
	"crypto/sha256"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vc/pkg/model"
	"vc/pkg/path"
)

func strVal(s string) model.Value { return model.Value{Kind: model.KindString, String: s} }

func TestPathOfPropertyAndArrayElement(t *testing.T) {
	prop := NewProperty("salt1", "given_name", strVal("Erika"))
	assert.Equal(t, "/given_name", PathOf(prop, 0).String())

	elem := NewArrayElement("salt2", strVal("US"))
	assert.Equal(t, "/[3]", PathOf(elem, 3).String())
}

func TestSelectFiltersByPath(t *testing.T) {
	d1 := NewProperty("s1", "given_name", strVal("Erika"))
	d2 := NewProperty("s2", "family_name", strVal("Mustermann"))
	all := []Triple{d1, d2}

	selected := Select(all, []path.Path{path.MustParse("/given_name")})
	require.Len(t, selected, 1)
	assert.Equal(t, "given_name", selected[0].ClaimName)
}

func encodeCanonical(d Triple) []byte {
	var arr []any
	if d.HasName {
		arr = []any{d.Salt, d.ClaimName, d.Value.ToAny()}
	} else {
		arr = []any{d.Salt, d.Value.ToAny()}
	}
	b, _ := json.Marshal(arr)
	return b
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return string(sum[:])
}

func TestValidateDigestsDetectsMissing(t *testing.T) {
	d1 := NewProperty("s1", "given_name", strVal("Erika"))
	d2 := NewProperty("s2", "family_name", strVal("Mustermann"))
	all := []Triple{d1, d2}

	expected := map[string]struct{}{
		sha256Hex(encodeCanonical(d1)): {},
	}
	missing := ValidateDigests(all, expected, encodeCanonical, sha256Hex)
	require.Len(t, missing, 1)
	assert.Equal(t, "family_name", missing[0].ClaimName)
}

func TestSelectOptimalDelegatesToC3(t *testing.T) {
	d1 := NewProperty("s1", "given_name", strVal("Erika"))
	d2 := NewProperty("s2", "family_name", strVal("Mustermann"))
	all := []Triple{d1, d2}

	res := SelectOptimal(all, []path.Path{path.MustParse("/given_name")}, nil, nil)
	assert.True(t, res.Satisfies)
	require.Len(t, res.Filtered, 1)
	assert.Equal(t, "given_name", res.Filtered[0].ClaimName)
}
