package domain

import "github.com/ethereum/go-ethereum/crypto"

// Access control roles granted by the deploy tasks
const (
	RoleOwnerAuction     = "OWNER_AUCTION_ROLE"
	RoleOwnerMarketplace = "OWNER_MARKETPLACE_ROLE"
)

// RoleID returns keccak256(name) as 0x-prefixed hex, the bytes32 used by
// OpenZeppelin AccessControl
func RoleID(name string) string {
	return crypto.Keccak256Hash([]byte(name)).Hex()
}
