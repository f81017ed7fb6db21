// Package ledger implements the token accounting surface used by the
// contract test scripts: mint, burn, forced transfers and balance
// queries over a pluggable KV store.
package ledger

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/holiman/uint256"
	"github.com/tallylabs/tally-go/pkg/ledger/storage"
	"github.com/tallylabs/tally-go/pkg/util"
	"go.uber.org/zap"
)

// Errors returned by ledger operations.
var (
	// ErrZeroAmount is returned on an attempt to mint, burn or transfer
	// a nil or zero amount.
	ErrZeroAmount = errors.New("zero amount")
	// ErrInsufficientFunds is returned when a burn or transfer exceeds
	// the source balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrAmountTooBig is returned when a mint or transfer would overflow
	// the 256-bit balance or supply of the receiver.
	ErrAmountTooBig = errors.New("amount out of range")
)

// Receipt describes one applied state-changing operation.
type Receipt struct {
	// ID is a unique identifier of the operation.
	ID uuid.UUID `json:"id"`
	// Op is the operation name ("mint", "burn" or "transfer").
	Op string `json:"op"`
	// Token is the token the operation applies to.
	Token util.Uint160 `json:"token"`
	// From is the debited account, zero for mints.
	From util.Uint160 `json:"from"`
	// To is the credited account, zero for burns.
	To util.Uint160 `json:"to"`
	// Amount is the exact amount moved.
	Amount *uint256.Int `json:"amount"`
}

// AccountBalance is a single (owner, amount) entry of a token.
type AccountBalance struct {
	Owner  util.Uint160 `json:"owner"`
	Amount *uint256.Int `json:"amount"`
}

// Ledger keeps per-token balances and total supplies in the given
// store. All state-changing operations are serialized and atomic with
// respect to each other.
type Ledger struct {
	mut   sync.Mutex
	store storage.Store
	log   *zap.Logger
}

// New returns a new Ledger using the given store. A nil logger is
// replaced with a no-op one.
func New(store storage.Store, log *zap.Logger) *Ledger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Ledger{store: store, log: log}
}

func balanceKey(token, owner util.Uint160) []byte {
	return storage.AppendPrefix(storage.STBalance, token.Bytes(), owner.Bytes())
}

func supplyKey(token util.Uint160) []byte {
	return storage.AppendPrefix(storage.STSupply, token.Bytes())
}

func (l *Ledger) get(key []byte) *uint256.Int {
	val, err := l.store.Get(key)
	if err != nil {
		return uint256.NewInt(0)
	}
	return new(uint256.Int).SetBytes(val)
}

func (l *Ledger) put(key []byte, amount *uint256.Int) error {
	b := amount.Bytes32()
	return l.store.Put(key, b[:])
}

func checkAmount(amount *uint256.Int) error {
	if amount == nil || amount.IsZero() {
		return ErrZeroAmount
	}
	return nil
}

// BalanceOf returns the current balance of the owner for the given
// token. Unknown accounts have a zero balance.
func (l *Ledger) BalanceOf(token, owner util.Uint160) *uint256.Int {
	l.mut.Lock()
	defer l.mut.Unlock()
	return l.get(balanceKey(token, owner))
}

// TotalSupply returns the sum of all minted and not yet burned amounts
// of the given token.
func (l *Ledger) TotalSupply(token util.Uint160) *uint256.Int {
	l.mut.Lock()
	defer l.mut.Unlock()
	return l.get(supplyKey(token))
}

// Mint credits the given account with exactly amount tokens increasing
// the token's total supply by the same value.
func (l *Ledger) Mint(token, to util.Uint160, amount *uint256.Int) (*Receipt, error) {
	if err := checkAmount(amount); err != nil {
		return nil, err
	}
	l.mut.Lock()
	defer l.mut.Unlock()

	balance := l.get(balanceKey(token, to))
	if _, overflow := balance.AddOverflow(balance, amount); overflow {
		return nil, fmt.Errorf("%w: balance overflow", ErrAmountTooBig)
	}
	supply := l.get(supplyKey(token))
	if _, overflow := supply.AddOverflow(supply, amount); overflow {
		return nil, fmt.Errorf("%w: supply overflow", ErrAmountTooBig)
	}
	if err := l.put(balanceKey(token, to), balance); err != nil {
		return nil, err
	}
	if err := l.put(supplyKey(token), supply); err != nil {
		return nil, err
	}

	r := &Receipt{
		ID:     uuid.New(),
		Op:     "mint",
		Token:  token,
		To:     to,
		Amount: new(uint256.Int).Set(amount),
	}
	l.log.Info("tokens minted",
		zap.String("token", token.String()),
		zap.String("to", to.String()),
		zap.String("amount", amount.Dec()),
		zap.String("id", r.ID.String()))
	return r, nil
}

// Burn debits the given account by exactly amount tokens decreasing the
// token's total supply by the same value.
func (l *Ledger) Burn(token, from util.Uint160, amount *uint256.Int) (*Receipt, error) {
	if err := checkAmount(amount); err != nil {
		return nil, err
	}
	l.mut.Lock()
	defer l.mut.Unlock()

	balance := l.get(balanceKey(token, from))
	if balance.Lt(amount) {
		return nil, ErrInsufficientFunds
	}
	balance.Sub(balance, amount)
	supply := l.get(supplyKey(token))
	if supply.Lt(amount) {
		return nil, fmt.Errorf("supply lower than balance for %s", token)
	}
	supply.Sub(supply, amount)
	if err := l.put(balanceKey(token, from), balance); err != nil {
		return nil, err
	}
	if err := l.put(supplyKey(token), supply); err != nil {
		return nil, err
	}

	r := &Receipt{
		ID:     uuid.New(),
		Op:     "burn",
		Token:  token,
		From:   from,
		Amount: new(uint256.Int).Set(amount),
	}
	l.log.Info("tokens burned",
		zap.String("token", token.String()),
		zap.String("from", from.String()),
		zap.String("amount", amount.Dec()),
		zap.String("id", r.ID.String()))
	return r, nil
}

// ForceTransfer moves exactly amount tokens from one account to another
// without any authorization checks. A transfer to the same account
// leaves the balance unchanged.
func (l *Ledger) ForceTransfer(token util.Uint160, amount *uint256.Int, from, to util.Uint160) (*Receipt, error) {
	if err := checkAmount(amount); err != nil {
		return nil, err
	}
	l.mut.Lock()
	defer l.mut.Unlock()

	fromBalance := l.get(balanceKey(token, from))
	if fromBalance.Lt(amount) {
		return nil, ErrInsufficientFunds
	}
	if !from.Equals(to) {
		toBalance := l.get(balanceKey(token, to))
		if _, overflow := toBalance.AddOverflow(toBalance, amount); overflow {
			return nil, fmt.Errorf("%w: balance overflow", ErrAmountTooBig)
		}
		fromBalance.Sub(fromBalance, amount)
		if err := l.put(balanceKey(token, from), fromBalance); err != nil {
			return nil, err
		}
		if err := l.put(balanceKey(token, to), toBalance); err != nil {
			return nil, err
		}
	}

	r := &Receipt{
		ID:     uuid.New(),
		Op:     "transfer",
		Token:  token,
		From:   from,
		To:     to,
		Amount: new(uint256.Int).Set(amount),
	}
	l.log.Info("tokens transferred",
		zap.String("token", token.String()),
		zap.String("from", from.String()),
		zap.String("to", to.String()),
		zap.String("amount", amount.Dec()),
		zap.String("id", r.ID.String()))
	return r, nil
}

// Balances returns all non-zero balance entries of the given token in
// ascending owner order.
func (l *Ledger) Balances(token util.Uint160) []AccountBalance {
	l.mut.Lock()
	defer l.mut.Unlock()

	prefix := storage.AppendPrefix(storage.STBalance, token.Bytes())
	var res []AccountBalance
	l.store.Seek(prefix, func(k, v []byte) bool {
		owner, err := util.Uint160DecodeBytes(k[len(prefix):])
		if err != nil {
			return true
		}
		amount := new(uint256.Int).SetBytes(v)
		if !amount.IsZero() {
			res = append(res, AccountBalance{Owner: owner, Amount: amount})
		}
		return true
	})
	return res
}
