package sdcwt

import (
	"vc/pkg/disclosure"
	"vc/pkg/path"
)

// Presentation assembles the compact SD-CWT wire form a holder forwards to
// a verifier: the issuer-signed COSE_Sign1 plus the subset of disclosures a
// DisclosurePlan decision selected (spec §4.6 supplemented feature,
// mirroring sdjwt.Presentation).
func Presentation(coseSign1 []byte, allDisclosures []disclosure.Triple, selectedPaths []path.Path) Token {
	selected := disclosure.Select(allDisclosures, selectedPaths)
	return Token{COSESign1: coseSign1, Disclosures: selected}
}
