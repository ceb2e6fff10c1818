package models

import (
	"errors"
	"fmt"

	dErrors "github.com/chiboi241-boop/EduScience/pkg/domain-errors"
)

// Reason identifies why a registry operation failed. Values 100-120 match the
// ledger's numeric error codes; 121 and up cover kinds the ledger folded together.
type Reason uint32

const (
	ReasonNotAuthorized        Reason = 100
	ReasonInvalidHash          Reason = 101
	ReasonInvalidMetadata      Reason = 102
	ReasonInvalidCategory      Reason = 103
	ReasonAlreadyExists        Reason = 105
	ReasonNotFound             Reason = 106
	ReasonInvalidStatus        Reason = 107
	ReasonCapacityExceeded     Reason = 108
	ReasonInvalidDescription   Reason = 110
	ReasonInvalidLocation      Reason = 111
	ReasonInvalidDataType      Reason = 112
	ReasonInvalidThreshold     Reason = 113
	ReasonAuthorityNotVerified Reason = 114
	ReasonInvalidUpdateParam   Reason = 115
	ReasonUpdateNotAllowed     Reason = 116
	ReasonInvalidFee           Reason = 117
	ReasonInvalidRate          Reason = 118
	ReasonInvalidExpiry        Reason = 119
	ReasonInvalidPoints        Reason = 120
	ReasonAlreadyConfigured    Reason = 121
	ReasonInvalidAuthority     Reason = 122
	ReasonPaymentFailed        Reason = 123
)

var reasonNames = map[Reason]string{
	ReasonNotAuthorized:        "not_authorized",
	ReasonInvalidHash:          "invalid_hash",
	ReasonInvalidMetadata:      "invalid_metadata",
	ReasonInvalidCategory:      "invalid_category",
	ReasonAlreadyExists:        "already_exists",
	ReasonNotFound:             "not_found",
	ReasonInvalidStatus:        "invalid_status",
	ReasonCapacityExceeded:     "capacity_exceeded",
	ReasonInvalidDescription:   "invalid_description",
	ReasonInvalidLocation:      "invalid_location",
	ReasonInvalidDataType:      "invalid_data_type",
	ReasonInvalidThreshold:     "invalid_threshold",
	ReasonAuthorityNotVerified: "authority_not_verified",
	ReasonInvalidUpdateParam:   "invalid_update_param",
	ReasonUpdateNotAllowed:     "update_not_allowed",
	ReasonInvalidFee:           "invalid_fee",
	ReasonInvalidRate:          "invalid_rate",
	ReasonInvalidExpiry:        "invalid_expiry",
	ReasonInvalidPoints:        "invalid_points",
	ReasonAlreadyConfigured:    "already_configured",
	ReasonInvalidAuthority:     "invalid_authority",
	ReasonPaymentFailed:        "payment_failed",
}

var reasonCodes = map[Reason]dErrors.Code{
	ReasonNotAuthorized:        dErrors.CodeForbidden,
	ReasonAlreadyExists:        dErrors.CodeConflict,
	ReasonNotFound:             dErrors.CodeNotFound,
	ReasonInvalidStatus:        dErrors.CodeConflict,
	ReasonCapacityExceeded:     dErrors.CodeConflict,
	ReasonAuthorityNotVerified: dErrors.CodePreconditionFailed,
	ReasonUpdateNotAllowed:     dErrors.CodeConflict,
	ReasonAlreadyConfigured:    dErrors.CodeConflict,
	ReasonPaymentFailed:        dErrors.CodePaymentRequired,
}

func (r Reason) String() string {
	if name, ok := reasonNames[r]; ok {
		return name
	}
	return fmt.Sprintf("reason_%d", uint32(r))
}

func (r Reason) Error() string {
	return r.String()
}

// Code returns the transport-level classification for r. Anything not listed
// explicitly is a structural validation failure.
func (r Reason) Code() dErrors.Code {
	if code, ok := reasonCodes[r]; ok {
		return code
	}
	return dErrors.CodeValidation
}

// Fail wraps r in a coded domain error. errors.Is(err, r) holds for the result.
func Fail(r Reason, msg string) error {
	return dErrors.Wrap(r, r.Code(), msg)
}

// ReasonOf extracts the registry reason from err's chain.
func ReasonOf(err error) (Reason, bool) {
	var r Reason
	if errors.As(err, &r) {
		return r, true
	}
	return 0, false
}

// ReasonCode and ReasonName let transport layers render the reason without
// importing this package.
func (r Reason) ReasonCode() uint32 { return uint32(r) }

func (r Reason) ReasonName() string { return r.String() }
