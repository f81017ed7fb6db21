// Package base58 implements base58 encoding/decoding with and without
// a 4-byte double-sha256 checksum suffix.
package base58

import (
	"bytes"
	"errors"

	"github.com/mr-tron/base58"
	"github.com/tallylabs/tally-go/pkg/crypto/hash"
)

// Encode encodes a byte slice to be base58 encoded.
func Encode(bytes []byte) string {
	return base58.Encode(bytes)
}

// Decode decodes a base58 encoded string.
func Decode(s string) ([]byte, error) {
	return base58.Decode(s)
}

// CheckDecode decodes the given string and checks the embedded checksum.
func CheckDecode(s string) (b []byte, err error) {
	b, err = Decode(s)
	if err != nil {
		return nil, err
	}

	if len(b) < 5 {
		return nil, errors.New("invalid base-58 check string: missing checksum")
	}

	if !bytes.Equal(hash.Checksum(b[:len(b)-4]), b[len(b)-4:]) {
		return nil, errors.New("invalid base-58 check string: invalid checksum")
	}

	// Strip the 4 byte long hash.
	b = b[:len(b)-4]

	return b, nil
}

// CheckEncode encodes the given byte slice appending a 4-byte checksum.
func CheckEncode(b []byte) string {
	b = append(b, hash.Checksum(b)...)
	return Encode(b)
}
