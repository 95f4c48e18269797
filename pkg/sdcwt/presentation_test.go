package sdcwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vc/pkg/disclosure"
	"vc/pkg/model"
	"vc/pkg/path"
)

func TestPresentation_FiltersToSelectedPaths(t *testing.T) {
	all := []disclosure.Triple{
		disclosure.NewProperty("salt1", "501", model.Value{Kind: model.KindString, String: "ABCD-123456"}),
		disclosure.NewProperty("salt2", "502", model.Value{Kind: model.KindString, String: "secret"}),
	}

	tok := Presentation([]byte("cose-sign1-bytes"), all, []path.Path{path.MustParse("/501")})
	assert.Equal(t, []byte("cose-sign1-bytes"), tok.COSESign1)
	require.Len(t, tok.Disclosures, 1)
	assert.Equal(t, "501", tok.Disclosures[0].ClaimName)
}

func TestMultibaseRoundTrip(t *testing.T) {
	original := []byte{0xd8, 0x61, 0x01, 0x02, 0x03}
	encoded, err := EncodeMultibase(original)
	require.NoError(t, err)
	assert.NotEmpty(t, encoded)

	decoded, err := DecodeMultibase(encoded)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}
