package chain

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/nftops/internal/domain"
)

func mustType(t *testing.T, s string) abi.Type {
	t.Helper()
	typ, err := abi.NewType(s, "", nil)
	require.NoError(t, err)
	return typ
}

func TestCoerce(t *testing.T) {
	addr := "0x5FbDB2315678afecb367f032d93F642f64180aa3"

	tests := []struct {
		name string
		typ  string
		raw  string
		want interface{}
	}{
		{"address", "address", addr, common.HexToAddress(addr)},
		{"uint256 decimal", "uint256", "1000", big.NewInt(1000)},
		{"uint256 hex", "uint256", "0x10", big.NewInt(16)},
		{"uint96", "uint96", "250", big.NewInt(250)},
		{"uint8", "uint8", "7", uint8(7)},
		{"uint64", "uint64", "42", uint64(42)},
		{"int32", "int32", "-5", int32(-5)},
		{"int8 min", "int8", "-128", int8(-128)},
		{"bool", "bool", "true", true},
		{"string", "string", "Collections", "Collections"},
		{"string keeps spaces", "string", " My Market ", " My Market "},
		{"padded address", "address", " " + addr + " ", common.HexToAddress(addr)},
		{"padded uint", "uint256", " 12\n", big.NewInt(12)},
		{"bytes", "bytes", "0xdeadbeef", []byte{0xde, 0xad, 0xbe, 0xef}},
		{"address slice", "address[]", addr + ", " + addr, []common.Address{common.HexToAddress(addr), common.HexToAddress(addr)}},
		{"bracketed slice", "uint256[]", "[1,2]", []*big.Int{big.NewInt(1), big.NewInt(2)}},
		{"empty slice", "address[]", "", []common.Address{}},
		{"fixed array", "uint8[2]", "1,2", [2]uint8{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := coerce(mustType(t, tt.typ), tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerceFixedBytes(t *testing.T) {
	role := domain.RoleID(domain.RoleOwnerAuction)
	got, err := coerce(mustType(t, "bytes32"), role)
	require.NoError(t, err)
	assert.Equal(t, [32]byte(common.HexToHash(role)), got)
}

func TestCoerceErrors(t *testing.T) {
	tests := []struct {
		typ string
		raw string
	}{
		{"address", "0x1234"},
		{"uint256", "abc"},
		{"uint256", "-1"},
		{"uint8", "256"},
		{"int8", "128"},
		{"bool", "maybe"},
		{"bytes", "zz"},
		{"bytes4", "0x0102030405"},
		{"uint8[2]", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.typ+"/"+tt.raw, func(t *testing.T) {
			_, err := coerce(mustType(t, tt.typ), tt.raw)
			assert.Error(t, err)
		})
	}
}

func TestCoerceArgsCount(t *testing.T) {
	inputs := abi.Arguments{{Name: "name", Type: mustType(t, "string")}}
	_, err := CoerceArgs(inputs, []string{"a", "b"})
	assert.ErrorContains(t, err, "expected 1 arguments, got 2")
}
