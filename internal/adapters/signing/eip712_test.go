package signing

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/nftops/internal/domain"
)

const testKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

var testDomain = domain.SigningDomain{
	Name:              "ERC721WithSignature",
	Version:           "1",
	ChainID:           31337,
	VerifyingContract: "0x5FbDB2315678afecb367f032d93F642f64180aa3",
}

func word(n *big.Int) []byte {
	return common.LeftPadBytes(n.Bytes(), 32)
}

// expectedDigest hashes an erc721 SignData message by hand
func expectedDigest(d domain.SigningDomain, nonce int64, creator, uri string) []byte {
	domainTypeHash := crypto.Keccak256([]byte("EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)"))
	separator := crypto.Keccak256(
		domainTypeHash,
		crypto.Keccak256([]byte(d.Name)),
		crypto.Keccak256([]byte(d.Version)),
		word(new(big.Int).SetUint64(d.ChainID)),
		common.LeftPadBytes(common.HexToAddress(d.VerifyingContract).Bytes(), 32),
	)

	typeHash := crypto.Keccak256([]byte("SignData(uint256 nonce,address creator,string uri)"))
	structHash := crypto.Keccak256(
		typeHash,
		word(big.NewInt(nonce)),
		common.LeftPadBytes(common.HexToAddress(creator).Bytes(), 32),
		crypto.Keccak256([]byte(uri)),
	)

	return crypto.Keccak256([]byte{0x19, 0x01}, separator, structHash)
}

func TestSignMatchesHandEncodedDigest(t *testing.T) {
	key, err := crypto.HexToECDSA(testKey)
	require.NoError(t, err)
	schema, err := domain.LookupSigningSchema("erc721")
	require.NoError(t, err)

	creator := "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
	msg := map[string]string{"nonce": "7", "creator": creator, "uri": "ipfs://token/7"}

	sig, err := NewTypedDataSigner().Sign(key, testDomain, schema, msg)
	require.NoError(t, err)

	assert.Equal(t, hexutil.Encode(expectedDigest(testDomain, 7, creator, "ipfs://token/7")), sig.Digest)
	assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", sig.Signer)
	assert.Contains(t, []uint8{27, 28}, sig.V)
	assert.Len(t, hexutil.MustDecode(sig.Bytes), 65)
	assert.Equal(t, sig.R, hexutil.Encode(hexutil.MustDecode(sig.Bytes)[:32]))
	assert.Equal(t, sig.S, hexutil.Encode(hexutil.MustDecode(sig.Bytes)[32:64]))
}

func TestSignRecoverRoundTrip(t *testing.T) {
	key, err := crypto.HexToECDSA(testKey)
	require.NoError(t, err)
	signer := NewTypedDataSigner()

	tests := []struct {
		schema string
		msg    map[string]string
	}{
		{"collections", map[string]string{
			"tokens":         "1,2,3",
			"implementation": "0x5FbDB2315678afecb367f032d93F642f64180aa3",
			"creator":        "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
		}},
		{"marketplace", map[string]string{
			"tokenId": "1", "quantity": "1", "price": "1000000000000000000", "nonce": "0",
			"token":     "0x5FbDB2315678afecb367f032d93F642f64180aa3",
			"saleToken": "0x0000000000000000000000000000000000000000",
			"buyer":     "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
			"tokenType": "true",
		}},
		{"erc721-fee", map[string]string{
			"nonce": "1", "fee": "250", "creator": "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", "uri": "ipfs://x",
		}},
		{"erc1155", map[string]string{
			"supply": "100", "nonce": "1", "fee": "500", "uri": "ipfs://y", "creator": "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.schema, func(t *testing.T) {
			schema, err := domain.LookupSigningSchema(tt.schema)
			require.NoError(t, err)

			sig, err := signer.Sign(key, testDomain, schema, tt.msg)
			require.NoError(t, err)

			recovered, err := signer.Recover(testDomain, schema, tt.msg, sig.Bytes)
			require.NoError(t, err)
			assert.Equal(t, sig.Signer, recovered)

			// a different domain recovers a different address
			other := testDomain
			other.ChainID = 1
			recovered, err = signer.Recover(other, schema, tt.msg, sig.Bytes)
			require.NoError(t, err)
			assert.NotEqual(t, sig.Signer, recovered)
		})
	}
}

func TestTypedDataErrors(t *testing.T) {
	schema, err := domain.LookupSigningSchema("erc721")
	require.NoError(t, err)

	_, err = TypedData(testDomain, schema, map[string]string{"nonce": "1", "creator": "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"})
	assert.ErrorIs(t, err, domain.ErrMissingParam)

	_, err = TypedData(testDomain, schema, map[string]string{"nonce": "x", "creator": "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", "uri": ""})
	assert.ErrorContains(t, err, "invalid integer")

	_, err = TypedData(testDomain, schema, map[string]string{"nonce": "1", "creator": "nope", "uri": ""})
	assert.ErrorIs(t, err, domain.ErrInvalidAddress)

	bad := testDomain
	bad.VerifyingContract = ""
	_, err = TypedData(bad, schema, map[string]string{"nonce": "1", "creator": "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", "uri": ""})
	assert.ErrorIs(t, err, domain.ErrInvalidAddress)
}

func TestMessageValueLists(t *testing.T) {
	v, err := messageValue("uint256[]", "[1, 2]")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"1", "2"}, v)

	v, err = messageValue("uint256[]", "")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{}, v)

	v, err = messageValue("bool", "false")
	require.NoError(t, err)
	assert.Equal(t, false, v)
}

func TestMessageValueKeepsStrings(t *testing.T) {
	v, err := messageValue("string", " ipfs://uri ")
	require.NoError(t, err)
	assert.Equal(t, " ipfs://uri ", v)

	v, err = messageValue("uint256", " 7 ")
	require.NoError(t, err)
	assert.Equal(t, "7", v)

	v, err = messageValue("address[]", "[0x70997970C51812dc3A010C7d01b50e0d17dc79C8, 0x5FbDB2315678afecb367f032d93F642f64180aa3]")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"0x70997970C51812dc3A010C7d01b50e0d17dc79C8", "0x5FbDB2315678afecb367f032d93F642f64180aa3"}, v)
}
