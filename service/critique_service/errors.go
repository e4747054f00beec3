package critique_service

import "errors"

var (
	// ErrNotConnected no connected wallet session
	ErrNotConnected = errors.New("wallet session not connected")

	// ErrNotAuthor only the artwork author can reward critiques
	ErrNotAuthor = errors.New("only the artwork author can reward critiques")

	// ErrCritiqueNotFound critique not found under the artwork
	ErrCritiqueNotFound = errors.New("critique not found")

	// ErrAlreadyRewarded critique has already been rewarded
	ErrAlreadyRewarded = errors.New("critique has already been rewarded")

	// ErrNotForSale artwork is not listed as a purchasable NFT
	ErrNotForSale = errors.New("artwork is not for sale")

	// ErrAlreadySold artwork already has a recorded buyer
	ErrAlreadySold = errors.New("artwork has already been sold")

	// ErrOwnArtwork authors cannot buy their own artwork
	ErrOwnArtwork = errors.New("cannot purchase your own artwork")

	// ErrEmptyBody critique body must not be empty
	ErrEmptyBody = errors.New("critique body must not be empty")

	// ErrApprovalRequired direct transfers need a wallet approval signature
	ErrApprovalRequired = errors.New("wallet approval required for direct transfer")
)
