// Copyright (c) 2026 Planora. All rights reserved.

package sec

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// base62Alphabet is the character set for opaque, URL-safe codes.
const base62Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// RandomCode generates an opaque random base62 string of the given length
// using crypto/rand.
//
// At 10 characters the code space is 62^10 (~8.4e17), which makes blind
// guessing and accidental collision negligible for invite-code volumes.
func RandomCode(length int) (string, error) {
	alphabetSize := big.NewInt(int64(len(base62Alphabet)))
	code := make([]byte, length)

	for i := range code {
		index, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("sec: failed to generate random code: %w", err)
		}
		code[i] = base62Alphabet[index.Int64()]
	}

	return string(code), nil
}
