package sdjwt

import (
	"encoding/base64"
	"encoding/json"
)

func rawURLBase64(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

func rawURLBase64Decode(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}

func unmarshalJSONArray(b []byte, out *[]any) error {
	return json.Unmarshal(b, out)
}
