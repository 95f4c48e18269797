package envelope

import "strings"

// KeyBindingJWT is the optional trailing JWT in an SD-JWT presentation
// that proves holder control over a key bound to the credential
// (GLOSSARY). The distilled spec names it but gives it no operations; this
// is the supplemented type/operations pair (SPEC_FULL §4), grounded on the
// teacher's PresentationJWSWithKeyBinding field that carried the string
// but never parsed or attached it.
type KeyBindingJWT struct {
	Raw []byte
}

// ParseKeyBinding extracts the optional key-binding JWT from the final
// segment of a compact SD-JWT presentation (the segment after the last
// '~', present only when the presentation ends without a trailing '~').
func ParseKeyBinding(compact string) (*KeyBindingJWT, string, bool) {
	if !strings.HasSuffix(compact, "~") && strings.Count(compact, "~") > 0 {
		idx := strings.LastIndex(compact, "~")
		kb := compact[idx+1:]
		if kb != "" {
			return &KeyBindingJWT{Raw: []byte(kb)}, compact[:idx+1], true
		}
	}
	return nil, compact, false
}

// AttachKeyBinding appends kb to a compact presentation that already ends
// with a trailing '~' after its last disclosure.
func AttachKeyBinding(compactWithTrailingTilde string, kb *KeyBindingJWT) string {
	if kb == nil {
		return compactWithTrailingTilde
	}
	return compactWithTrailingTilde + string(kb.Raw)
}
