package words

import (
	"crypto/rand"
	"math/big"
)

// Rand is the uniform random source used for word and hint selection.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	// IntN returns a uniform value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// CryptoRand draws from crypto/rand. The zero value is ready to use.
type CryptoRand struct{}

// IntN returns a cryptographically random value in [0, n).
func (CryptoRand) IntN(n int) int {
	if n <= 0 {
		panic("words: invalid argument to IntN")
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is gone.
		panic(err)
	}
	return int(v.Int64())
}
