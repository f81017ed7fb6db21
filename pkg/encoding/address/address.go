// Package address implements conversion of script hashes to and from
// their base58check address form.
package address

import (
	"errors"

	"github.com/tallylabs/tally-go/pkg/encoding/base58"
	"github.com/tallylabs/tally-go/pkg/util"
)

// Prefix is the byte used to prepend to addresses when encoding them.
const Prefix = 0x35

// Uint160ToString returns the "Tally address" from the given Uint160.
func Uint160ToString(u util.Uint160) string {
	// Prepend the address version before converting to base58check.
	b := append([]byte{Prefix}, u.Bytes()...)
	return base58.CheckEncode(b)
}

// StringToUint160 attempts to decode the given address string
// into a Uint160.
func StringToUint160(s string) (u util.Uint160, err error) {
	b, err := base58.CheckDecode(s)
	if err != nil {
		return u, err
	}
	if b[0] != Prefix {
		return u, errors.New("wrong address prefix")
	}
	return util.Uint160DecodeBytes(b[1:21])
}
