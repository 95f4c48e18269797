// Package disclosure implements the selective-disclosure algorithms (C3,
// SPEC_FULL §4.3) and the format-neutral disclosure<->lattice mapping (C8,
// §4.7). It is grounded on the teacher's pkg/sdjwt disclosure handling
// (DisclosuresV2, ArrayHashes) and pkg/vc20/crypto/ecdsa-sd/selection.go,
// generalized to be format-agnostic (SD-JWT string digests and SD-CWT
// byte-string digests both reduce to the same path-set algebra).
package disclosure

import "vc/pkg/model"

// Triple is a disclosure: (salt, claim_name?, claim_value). ClaimName is
// absent (HasName=false) for array-element disclosures.
type Triple struct {
	Salt      string
	HasName   bool
	ClaimName string
	Value     model.Value
}

// NewProperty builds a property disclosure triple.
func NewProperty(salt, name string, value model.Value) Triple {
	return Triple{Salt: salt, HasName: true, ClaimName: name, Value: value}
}

// NewArrayElement builds an array-element disclosure triple (no claim name).
func NewArrayElement(salt string, value model.Value) Triple {
	return Triple{Salt: salt, HasName: false, Value: value}
}
