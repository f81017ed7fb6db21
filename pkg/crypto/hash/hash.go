// Package hash contains wrappers for the hashing functions used throughout
// the project (sha256 and ripemd160 combinations).
package hash

import (
	"crypto/sha256"

	"github.com/tallylabs/tally-go/pkg/util"
	"golang.org/x/crypto/ripemd160"
)

// Sha256 hashes the incoming byte slice using the sha256 algorithm.
func Sha256(data []byte) util.Uint256 {
	return util.Uint256(sha256.Sum256(data))
}

// DoubleSha256 performs sha256 twice on the given data.
func DoubleSha256(data []byte) util.Uint256 {
	h1 := sha256.Sum256(data)
	return util.Uint256(sha256.Sum256(h1[:]))
}

// RipeMD160 performs the RIPEMD160 hash algorithm on the given data.
func RipeMD160(data []byte) util.Uint160 {
	var hash util.Uint160
	hasher := ripemd160.New()
	_, _ = hasher.Write(data)
	copy(hash[:], hasher.Sum(nil))
	return hash
}

// Hash160 performs sha256 and then ripemd160 on the given data.
func Hash160(data []byte) util.Uint160 {
	h := sha256.Sum256(data)
	return RipeMD160(h[:])
}

// Checksum returns the checksum for a given piece of data using
// DoubleSha256 as the hash algorithm. It returns the first 4 bytes of the
// resulting slice.
func Checksum(data []byte) []byte {
	hash := DoubleSha256(data)
	return hash[:4]
}
