// Package pow holds the proof-of-work digest primitive shared by the miner
// and the validator.
package pow

import (
	"fmt"
	"sort"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Hasher is a cryptographic digest with fixed width output.
type Hasher interface {
	Name() string
	Sum(data []byte) []byte
}

type hasherFunc struct {
	name string
	sum  func([]byte) []byte
}

func (h hasherFunc) Name() string           { return h.name }
func (h hasherFunc) Sum(data []byte) []byte { return h.sum(data) }

const (
	SHA256  = "sha256"
	SHA256D = "sha256d"
	Blake2b = "blake2b"
	SHA3    = "sha3"
)

var hashers = map[string]Hasher{
	SHA256:  hasherFunc{name: SHA256, sum: chainhash.HashB},
	SHA256D: hasherFunc{name: SHA256D, sum: chainhash.DoubleHashB},
	Blake2b: hasherFunc{name: Blake2b, sum: func(b []byte) []byte {
		h := blake2b.Sum256(b)
		return h[:]
	}},
	SHA3: hasherFunc{name: SHA3, sum: func(b []byte) []byte {
		h := sha3.Sum256(b)
		return h[:]
	}},
}

// HasherByName returns a registered hasher.
func HasherByName(name string) (Hasher, error) {
	h, ok := hashers[name]
	if !ok {
		return nil, fmt.Errorf("unknown hasher %q (available: %v)", name, HasherNames())
	}
	return h, nil
}

// HasherNames lists registered hashers in sorted order.
func HasherNames() []string {
	names := make([]string, 0, len(hashers))
	for name := range hashers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
