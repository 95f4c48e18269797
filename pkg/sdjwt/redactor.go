package sdjwt

import (
	"strconv"

	"vc/pkg/disclosure"
	"vc/pkg/model"
	"vc/pkg/path"
	"vc/pkg/redact"
	"vc/pkg/verification"
	"vc/pkg/vcerr"
)

// leafValidator accepts any segment as a property name — SD-JWT has no
// format restriction on claim names (unlike SD-CWT's integer-like keys).
func leafValidator(string) error { return nil }

// Redact implements the C5 contract for SD-JWT: parse payload into a claim
// tree, pull out every disclosable leaf into a disclosure triple, hash and
// place the digests under each parent's "_sd" array, write "_sd_alg" at
// root once any placement occurred, and re-serialize.
//
// A disclosable path whose parent resolves to a JSON array (rather than an
// object) is an array-element disclosure (spec §3 "claim_name absent for
// array-element disclosures"): its element is replaced in place with the
// single-key marker object {"...": digest} instead of being grouped into a
// parent's "_sd" array, mirroring the splice convention
// verification.ArrayMarkerKey already expects on the verify side.
//
// Determinism: saltFactory is the only source of non-determinism (spec
// §4.5); given the same salts two calls with the same inputs produce
// byte-identical output because SerializeClaims sorts keys.
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
		container, err := redact.NavigateToContainer(tree, parent)
		if err != nil {
			return nil, nil, err
		}
		switch container.Kind {
		case model.KindArray:
			for _, leaf := range groups[parent] {
				idx, err := strconv.Atoi(leaf)
				if err != nil || idx < 0 || idx >= len(container.Array) {
					return nil, nil, vcerr.ErrPathNotResolvable
				}
				value := container.Array[idx]
				salt := saltFactory()
				triple := disclosure.NewArrayElement(salt, value)
				encoded, err := EncodeDisclosure(salt, false, "", value)
				if err != nil {
					return nil, nil, err
				}
				digest, err := DigestString(alg, CompactDisclosure(encoded))
				if err != nil {
					return nil, nil, err
				}

				container.Array[idx] = model.Value{
					Kind: model.KindMap,
					Map:  map[string]model.Value{verification.ArrayMarkerKey: {Kind: model.KindString, String: digest}},
				}
				triples = append(triples, triple)
			}
		case model.KindMap:
			for _, leaf := range groups[parent] {
				value, ok := container.Map[leaf]
				if !ok {
					return nil, nil, vcerr.ErrPathNotResolvable
				}
				salt := saltFactory()
				triple := disclosure.NewProperty(salt, leaf, value)
				encoded, err := EncodeDisclosure(salt, true, leaf, value)
				if err != nil {
					return nil, nil, err
				}
				compact := CompactDisclosure(encoded)
				digest, err := DigestString(alg, compact)
				if err != nil {
					return nil, nil, err
				}

				delete(container.Map, leaf)
				triples = append(triples, triple)
				digestsByParent[parent] = append(digestsByParent[parent], model.Value{Kind: model.KindString, String: digest})
			}
		default:
			return nil, nil, vcerr.ErrPathNotResolvable
		}
	}

	if len(digestsByParent) > 0 {
		if err := redact.PlaceDigests(tree, digestsByParent, "_sd", redact.LessString); err != nil {
			return nil, nil, err
		}
	}
	if len(triples) > 0 {
		tree["_sd_alg"] = model.Value{Kind: model.KindString, String: string(alg)}
	}

	out, err := SerializeClaims(tree)
	if err != nil {
		return nil, nil, err
	}
	return out, triples, nil
}
