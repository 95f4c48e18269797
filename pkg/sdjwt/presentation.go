package sdjwt

import (
	"vc/pkg/disclosure"
	"vc/pkg/envelope"
	"vc/pkg/path"
)

// Presentation assembles the compact wire form a holder sends a verifier:
// the issuer-signed JWS plus the subset of disclosures a DisclosurePlan
// decision selected, and an optional key-binding JWT (spec §4.6
// supplemented feature; grounded on teacher's PresentationFlat, which held
// these same three pieces but left selection to the caller).
func Presentation(issuerSignedJWS []byte, allDisclosures []disclosure.Triple, selectedPaths []path.Path, kb *envelope.KeyBindingJWT) (Token, error) {
	selected := disclosure.Select(allDisclosures, selectedPaths)
	return Token{IssuerSignedJWS: issuerSignedJWS, Disclosures: selected, KeyBinding: kb}, nil
}
