package sdcwt

import (
	"crypto/sha256"
	"crypto/sha512"

	"vc/pkg/disclosure"
	"vc/pkg/model"
	"vc/pkg/path"
	"vc/pkg/redact"
	"vc/pkg/vcerr"
)

// HashAlgorithm names a spec §6 IANA hash-algorithm identifier.
type HashAlgorithm string

const (
	SHA256 HashAlgorithm = "sha-256"
	SHA384 HashAlgorithm = "sha-384"
	SHA512 HashAlgorithm = "sha-512"
)

func (h HashAlgorithm) sum(b []byte) ([]byte, error) {
	switch h {
	case SHA256:
		s := sha256.Sum256(b)
		return s[:], nil
	case SHA384:
		s := sha512.Sum384(b)
		return s[:], nil
	case SHA512:
		s := sha512.Sum512(b)
		return s[:], nil
	default:
		return nil, vcerr.ErrMalformedDisclosure
	}
}

// Redact implements the C5 contract for SD-CWT: parse payload into an
// integer-keyed claim tree, pull disclosable leaves into disclosures,
// hash each encoded disclosure into a raw byte digest, place the digest
// array under sdTreeKey at each parent (written as the `simple(59)` key
// only at the root; nested parents keep the plain string key), and
// re-encode canonically (spec §4.4, §4.5).
func Redact(payload []byte, disclosablePaths []path.Path, saltFactory disclosure.SaltFactory, alg HashAlgorithm) ([]byte, []disclosure.Triple, error) {
	tree, err := ParseClaims(payload)
	if err != nil {
		return nil, nil, err
	}

	groups, err := redact.GroupByParent(disclosablePaths, leafValidator)
	if err != nil {
		return nil, nil, err
	}

	var triples []disclosure.Triple
	digestsByParent := make(map[path.Path][]model.Value)

	for _, parent := range groups.SortedParents() {
		container, err := redact.NavigateToParent(tree, parent)
		if err != nil {
			return nil, nil, err
		}
		for _, leaf := range groups[parent] {
			value, ok := container[leaf]
			if !ok {
				return nil, nil, vcerr.ErrPathNotResolvable
			}
			salt := saltFactory()
			triple := disclosure.NewProperty(salt, leaf, value)
			encoded, err := EncodeDisclosure([]byte(salt), true, leaf, value)
			if err != nil {
				return nil, nil, err
			}
			digest, err := alg.sum(encoded)
			if err != nil {
				return nil, nil, err
			}

			delete(container, leaf)
			triples = append(triples, triple)
			digestsByParent[parent] = append(digestsByParent[parent], model.Value{Kind: model.KindBytes, Bytes: digest})
		}
	}

	if len(digestsByParent) > 0 {
		if err := redact.PlaceDigests(tree, digestsByParent, sdTreeKey, redact.LessBytes); err != nil {
			return nil, nil, err
		}
	}

	out, err := SerializeClaims(tree)
	if err != nil {
		return nil, nil, err
	}
	return out, triples, nil
}
