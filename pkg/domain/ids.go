package domain

import (
	"encoding/hex"
	"strconv"
	"strings"
	"unicode"

	dErrors "github.com/chiboi241-boop/EduScience/pkg/domain-errors"
)

// Principal is an opaque, equality-comparable account identity.
type Principal string

// NullPrincipal is the reserved burn address. It can never hold a role.
const NullPrincipal Principal = "SP000000000000000000002Q6VF78"

const maxPrincipalLength = 128

func (p Principal) String() string { return string(p) }

// IsNull reports whether p is the burn address.
func (p Principal) IsNull() bool { return p == NullPrincipal }

// ParsePrincipal validates an identity taken from a trust boundary.
func ParsePrincipal(s string) (Principal, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "principal is required")
	}
	if len(s) > maxPrincipalLength {
		return "", dErrors.New(dErrors.CodeInvalidInput, "principal is too long")
	}
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return "", dErrors.New(dErrors.CodeInvalidInput, "principal contains invalid characters")
		}
	}
	return Principal(s), nil
}

// Height is the ledger's logical clock. It is supplied by callers and never
// derived from wall-clock time.
type Height uint64

// ParseHeight parses a decimal block height.
func ParseHeight(s string) (Height, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "block height is required")
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "block height must be a non-negative integer")
	}
	return Height(v), nil
}

// ContributionID is the dense, zero-based key assigned at submission.
type ContributionID uint64

func (id ContributionID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseContributionID parses a decimal contribution id.
func ParseContributionID(s string) (ContributionID, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid contribution id")
	}
	return ContributionID(v), nil
}

// DataHashLength is the size of a content fingerprint in bytes.
const DataHashLength = 32

// DataHash is a 32-byte content fingerprint.
type DataHash [DataHashLength]byte

func (h DataHash) String() string {
	return hex.EncodeToString(h[:])
}

// DataHashFromBytes copies b into a DataHash. It reports false when b is not
// exactly DataHashLength bytes.
func DataHashFromBytes(b []byte) (DataHash, bool) {
	var h DataHash
	if len(b) != DataHashLength {
		return h, false
	}
	copy(h[:], b)
	return h, true
}

// DecodeHex decodes a hex fingerprint, tolerating a 0x prefix. Length is not
// checked here so callers can apply their own precedence rules.
func DecodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "data hash must be hex encoded")
	}
	return b, nil
}
