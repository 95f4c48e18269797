package sdcwt

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vc/pkg/path"
)

func fixedSaltFactory() func() string {
	n := 0
	return func() string {
		n++
		return string([]byte{byte(n), byte(n), byte(n), byte(n)})
	}
}

func TestRedact_PropertyDisclosure(t *testing.T) {
	raw := map[int64]any{
		1:   "https://issuer.example",
		2:   "https://device.example",
		6:   int64(1725244200),
		500: true,
		501: "ABCD-123456",
	}
	payload, err := canonicalEncMode.Marshal(raw)
	require.NoError(t, err)

	disclosable := []path.Path{path.MustParse("/501")}

	out, triples, err := Redact(payload, disclosable, fixedSaltFactory(), SHA256)
	require.NoError(t, err)
	require.Len(t, triples, 1)
	assert.Equal(t, "501", triples[0].ClaimName)
	assert.Equal(t, "ABCD-123456", triples[0].Value.String)

	tree, err := ParseClaims(out)
	require.NoError(t, err)

	_, has501 := tree["501"]
	assert.False(t, has501)
	assert.Equal(t, 4, len(tree)-1) // 1,2,6,500 remain, plus sdTreeKey

	sd := tree[sdTreeKey]
	require.Equal(t, 1, len(sd.Array))
	assert.NotEmpty(t, sd.Array[0].Bytes)
}

func TestCodecRoundTripsSimpleValue(t *testing.T) {
	var decoded map[any]any
	raw := map[any]any{cbor.SimpleValue(59): [][]byte{{1, 2, 3}}, int64(1): "iss"}
	b, err := canonicalEncMode.Marshal(raw)
	require.NoError(t, err)
	require.NoError(t, cbor.Unmarshal(b, &decoded))

	tree, err := ParseClaims(b)
	require.NoError(t, err)
	assert.Contains(t, tree, sdTreeKey)
	assert.Equal(t, "iss", tree["1"].String)
}
