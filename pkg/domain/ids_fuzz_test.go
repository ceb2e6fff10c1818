//go:build go1.18

package domain

import (
	"testing"
)

// FuzzParsePrincipal checks that parsing never panics and accepted principals
// round-trip unchanged.
func FuzzParsePrincipal(f *testing.F) {
	f.Add("")
	f.Add("ST1TEST")
	f.Add(string(NullPrincipal))
	f.Add("'; DROP TABLE contributions;--")
	f.Add(string([]byte{0x00, 0x01, 0x02}))
	f.Add("ST1TEST\x00suffix")

	f.Fuzz(func(t *testing.T, input string) {
		p, err := ParsePrincipal(input)
		if err != nil {
			return
		}
		again, err := ParsePrincipal(p.String())
		if err != nil {
			t.Errorf("accepted principal failed round-trip: %v", err)
		}
		if again != p {
			t.Error("round-trip changed principal")
		}
	})
}

// FuzzDecodeHex checks that decoding arbitrary input never panics and that
// decoded fingerprints re-encode to the same bytes.
func FuzzDecodeHex(f *testing.F) {
	f.Add("")
	f.Add("0x00")
	f.Add("0101010101010101010101010101010101010101010101010101010101010101")
	f.Add("not-hex")

	f.Fuzz(func(t *testing.T, input string) {
		b, err := DecodeHex(input)
		if err != nil {
			return
		}
		if h, ok := DataHashFromBytes(b); ok {
			again, err := DecodeHex(h.String())
			if err != nil || string(again) != string(b) {
				t.Errorf("hash failed round-trip")
			}
		}
	})
}
