// Package gameid generates identifiers for game records. An ID is a random
// UUID written as 26 characters of Crockford's base32.
package gameid

import (
	"fmt"
	"io"
	"math/big"
	rand "math/rand/v2"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/lox/battleline/internal/randutil"
)

// Length of an encoded ID.
const Length = 26

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Generator hands out IDs. The zero value and a nil *Generator both draw
// from crypto/rand.
type Generator struct {
	mu     sync.Mutex
	random io.Reader
}

// NewGenerator reads UUID bytes from r. A nil reader uses crypto/rand.
func NewGenerator(r io.Reader) *Generator {
	return &Generator{random: r}
}

// Seeded returns a generator whose IDs are reproducible from seed, so a
// replayed game keeps its ID.
func Seeded(seed int64) *Generator {
	rng := randutil.New(seed)
	var key [32]byte
	for i := 0; i < len(key); i += 8 {
		v := rng.Uint64()
		for j := range 8 {
			key[i+j] = byte(v >> (8 * j))
		}
	}
	return NewGenerator(rand.NewChaCha8(key))
}

// New returns an ID from crypto/rand.
func New() string {
	return Encode(uuid.New())
}

// Next returns the generator's next ID.
func (g *Generator) Next() string {
	if g == nil || g.random == nil {
		return New()
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	id, err := uuid.NewRandomFromReader(g.random)
	if err != nil {
		return New()
	}
	return Encode(id)
}

// Encode writes u as a 26 character base32 string. The 128 bits are padded
// to 130 at the top, so the first character is always 0-7.
func Encode(u uuid.UUID) string {
	v := new(big.Int).SetBytes(u[:])
	out := make([]byte, Length)
	mask := big.NewInt(31)
	digit := new(big.Int)
	for i := Length - 1; i >= 0; i-- {
		out[i] = alphabet[digit.And(v, mask).Int64()]
		v.Rsh(v, 5)
	}
	return string(out)
}

// Parse decodes an ID produced by Encode.
func Parse(id string) (uuid.UUID, error) {
	if err := Validate(id); err != nil {
		return uuid.Nil, err
	}
	v := new(big.Int)
	for i := range len(id) {
		v.Lsh(v, 5)
		v.Or(v, big.NewInt(int64(strings.IndexByte(alphabet, id[i]))))
	}
	var u uuid.UUID
	v.FillBytes(u[:])
	return u, nil
}

// Validate checks that id has the length and alphabet of an encoded ID.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("game ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("game ID first character must be 0-7, got %c", id[0])
	}
	for i := range len(id) {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %q at position %d", id[i], i)
		}
	}
	return nil
}
