package internal

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	idSuffixLength   = 6
	idSuffixAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// NewNivoraID generates a public account identifier of the shape
// NV-####-XXXXXX: four decimal digits (first digit never zero) and six
// base-36 uppercase characters, all from crypto/rand. Uniqueness relies on
// randomness alone; there is exactly one account per installation, so no
// collision check is performed.
func NewNivoraID() (string, error) {
	num, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	digits := 1000 + num.Int64()

	var b strings.Builder
	b.Grow(idSuffixLength)

	alphabetSize := big.NewInt(int64(len(idSuffixAlphabet)))
	for i := 0; i < idSuffixLength; i++ {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", err
		}
		b.WriteByte(idSuffixAlphabet[n.Int64()])
	}

	return fmt.Sprintf("NV-%04d-%s", digits, b.String()), nil
}
