package canister

import "errors"

// Canister error codes surfaced in RPC error responses
const (
	CodeAlreadySold          = -201 // NFT already has a buyer
	CodeInsufficientEscrow   = -202 // Escrow balance lower than requested amount
	CodeAlreadyRewarded      = -203 // Critique rewarded flag already set
	CodeArtworkNotFound      = -204 // Unknown artwork id
	CodeUnauthorizedCaller   = -205 // Caller not permitted for this operation
	CodeInvalidAuthorization = -206 // Direct transfer authorization rejected
)

// RemoteError explicit error result returned by the canister. The reason
// string is surfaced to users verbatim.
type RemoteError struct {
	Code   int
	Reason string
}

func (e *RemoteError) Error() string {
	return e.Reason
}

// IsAlreadySold report whether the error is an already-sold rejection
func IsAlreadySold(err error) bool {
	var remote *RemoteError
	return errors.As(err, &remote) && remote.Code == CodeAlreadySold
}

// IsRemoteRejection report whether the error is an explicit canister rejection
// (as opposed to the canister being unreachable)
func IsRemoteRejection(err error) bool {
	var remote *RemoteError
	return errors.As(err, &remote)
}
