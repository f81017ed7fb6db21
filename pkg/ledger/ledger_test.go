package ledger

import (
	"path/filepath"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallylabs/tally-go/pkg/ledger/storage"
	"github.com/tallylabs/tally-go/pkg/util"
)

var (
	gasToken = util.Uint160{0xde, 0xad}
	alice    = util.Uint160{0x01}
	bob      = util.Uint160{0x02}
)

func newTestLedger(t *testing.T) *Ledger {
	s := storage.NewMemoryStore()
	t.Cleanup(func() { _ = s.Close() })
	return New(s, nil)
}

func amount(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}

func TestMint(t *testing.T) {
	l := newTestLedger(t)

	require.True(t, l.BalanceOf(gasToken, alice).IsZero())

	r, err := l.Mint(gasToken, alice, amount(100))
	require.NoError(t, err)
	assert.Equal(t, "mint", r.Op)
	assert.Equal(t, amount(100), r.Amount)

	// Post-mint balance increases by exactly the minted amount.
	assert.Equal(t, amount(100), l.BalanceOf(gasToken, alice))
	assert.Equal(t, amount(100), l.TotalSupply(gasToken))

	r2, err := l.Mint(gasToken, alice, amount(50))
	require.NoError(t, err)
	assert.NotEqual(t, r.ID, r2.ID)
	assert.Equal(t, amount(150), l.BalanceOf(gasToken, alice))
	assert.Equal(t, amount(150), l.TotalSupply(gasToken))
}

func TestMintErrors(t *testing.T) {
	l := newTestLedger(t)

	_, err := l.Mint(gasToken, alice, nil)
	require.ErrorIs(t, err, ErrZeroAmount)

	_, err = l.Mint(gasToken, alice, uint256.NewInt(0))
	require.ErrorIs(t, err, ErrZeroAmount)

	max := new(uint256.Int).Not(uint256.NewInt(0))
	_, err = l.Mint(gasToken, alice, max)
	require.NoError(t, err)
	_, err = l.Mint(gasToken, alice, amount(1))
	require.ErrorIs(t, err, ErrAmountTooBig)
	assert.Equal(t, max, l.BalanceOf(gasToken, alice))
}

func TestBurn(t *testing.T) {
	l := newTestLedger(t)

	_, err := l.Mint(gasToken, alice, amount(100))
	require.NoError(t, err)

	r, err := l.Burn(gasToken, alice, amount(30))
	require.NoError(t, err)
	assert.Equal(t, "burn", r.Op)

	// Post-burn balance decreases by exactly the burned amount.
	assert.Equal(t, amount(70), l.BalanceOf(gasToken, alice))
	assert.Equal(t, amount(70), l.TotalSupply(gasToken))

	_, err = l.Burn(gasToken, alice, amount(71))
	require.ErrorIs(t, err, ErrInsufficientFunds)

	_, err = l.Burn(gasToken, alice, amount(0))
	require.ErrorIs(t, err, ErrZeroAmount)

	_, err = l.Burn(gasToken, alice, amount(70))
	require.NoError(t, err)
	assert.True(t, l.BalanceOf(gasToken, alice).IsZero())
	assert.True(t, l.TotalSupply(gasToken).IsZero())
}

func TestForceTransfer(t *testing.T) {
	l := newTestLedger(t)

	_, err := l.Mint(gasToken, alice, amount(100))
	require.NoError(t, err)

	r, err := l.ForceTransfer(gasToken, amount(40), alice, bob)
	require.NoError(t, err)
	assert.Equal(t, "transfer", r.Op)
	assert.Equal(t, alice, r.From)
	assert.Equal(t, bob, r.To)

	// The exact amount moves between the two balances.
	assert.Equal(t, amount(60), l.BalanceOf(gasToken, alice))
	assert.Equal(t, amount(40), l.BalanceOf(gasToken, bob))
	// Transfers do not touch the supply.
	assert.Equal(t, amount(100), l.TotalSupply(gasToken))

	_, err = l.ForceTransfer(gasToken, amount(61), alice, bob)
	require.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestForceTransferSelf(t *testing.T) {
	l := newTestLedger(t)

	_, err := l.Mint(gasToken, alice, amount(100))
	require.NoError(t, err)

	r, err := l.ForceTransfer(gasToken, amount(40), alice, alice)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, amount(100), l.BalanceOf(gasToken, alice))

	// Still requires a sufficient balance.
	_, err = l.ForceTransfer(gasToken, amount(101), alice, alice)
	require.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestTokensAreIndependent(t *testing.T) {
	l := newTestLedger(t)
	otherToken := util.Uint160{0xbe, 0xef}

	_, err := l.Mint(gasToken, alice, amount(100))
	require.NoError(t, err)
	_, err = l.Mint(otherToken, alice, amount(7))
	require.NoError(t, err)

	assert.Equal(t, amount(100), l.BalanceOf(gasToken, alice))
	assert.Equal(t, amount(7), l.BalanceOf(otherToken, alice))
	assert.Equal(t, amount(100), l.TotalSupply(gasToken))
	assert.Equal(t, amount(7), l.TotalSupply(otherToken))
}

func TestBalances(t *testing.T) {
	l := newTestLedger(t)

	_, err := l.Mint(gasToken, bob, amount(2))
	require.NoError(t, err)
	_, err = l.Mint(gasToken, alice, amount(1))
	require.NoError(t, err)

	bs := l.Balances(gasToken)
	require.Len(t, bs, 2)
	// Ascending owner order.
	assert.Equal(t, alice, bs[0].Owner)
	assert.Equal(t, amount(1), bs[0].Amount)
	assert.Equal(t, bob, bs[1].Owner)
	assert.Equal(t, amount(2), bs[1].Amount)

	// Burned-to-zero accounts are not reported.
	_, err = l.Burn(gasToken, alice, amount(1))
	require.NoError(t, err)
	bs = l.Balances(gasToken)
	require.Len(t, bs, 1)
	assert.Equal(t, bob, bs[0].Owner)
}

func TestLedgerOnBoltDB(t *testing.T) {
	s, err := storage.NewBoltDBStore(storage.BoltDBOptions{
		FilePath: filepath.Join(t.TempDir(), "ledger.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	l := New(s, nil)
	_, err = l.Mint(gasToken, alice, amount(100))
	require.NoError(t, err)
	_, err = l.ForceTransfer(gasToken, amount(25), alice, bob)
	require.NoError(t, err)

	assert.Equal(t, amount(75), l.BalanceOf(gasToken, alice))
	assert.Equal(t, amount(25), l.BalanceOf(gasToken, bob))
}
