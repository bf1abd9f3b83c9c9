package pow

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/goodnatureofminers/rewardledger-backend/internal/model"
)

const separator = '|'

// NonceDigest hashes one prepared block for varying nonces.
type NonceDigest interface {
	Digest(nonce uint64) string
}

// Digester computes block digests over index, previous hash, the block's own
// timestamp, data and nonce. The result depends on nothing else.
type Digester struct {
	hasher Hasher
}

// NewDigester returns a Digester using h.
func NewDigester(h Hasher) *Digester {
	return &Digester{hasher: h}
}

// Hasher returns the underlying hash primitive.
func (d *Digester) Hasher() Hasher {
	return d.hasher
}

// Prepare encodes the nonce independent part of b once.
func (d *Digester) Prepare(b model.Block) (NonceDigest, error) {
	data, err := json.Marshal(b.Data)
	if err != nil {
		return nil, fmt.Errorf("encode block %d data: %w", b.Index, err)
	}

	prefix := make([]byte, 0, 64+len(b.PreviousHash)+len(data))
	prefix = strconv.AppendUint(prefix, b.Index, 10)
	prefix = append(prefix, separator)
	prefix = append(prefix, b.PreviousHash...)
	prefix = append(prefix, separator)
	prefix = strconv.AppendInt(prefix, b.Timestamp.UnixMilli(), 10)
	prefix = append(prefix, separator)
	prefix = append(prefix, data...)
	prefix = append(prefix, separator)

	return &preimage{prefix: prefix, hasher: d.hasher}, nil
}

// Digest returns the hex digest of b with nonce.
func (d *Digester) Digest(b model.Block, nonce uint64) (string, error) {
	p, err := d.Prepare(b)
	if err != nil {
		return "", err
	}
	return p.Digest(nonce), nil
}

type preimage struct {
	prefix []byte
	hasher Hasher
}

func (p *preimage) Digest(nonce uint64) string {
	buf := make([]byte, len(p.prefix), len(p.prefix)+20)
	copy(buf, p.prefix)
	buf = strconv.AppendUint(buf, nonce, 10)
	return hex.EncodeToString(p.hasher.Sum(buf))
}

// TargetPrefix is the digest prefix a block of the given difficulty must carry.
func TargetPrefix(difficulty int) string {
	if difficulty < 1 {
		return ""
	}
	return strings.Repeat("0", difficulty)
}

// LeadingZeros counts leading '0' characters of a hex digest.
func LeadingZeros(hash string) int {
	n := 0
	for n < len(hash) && hash[n] == '0' {
		n++
	}
	return n
}

// MeetsDifficulty reports whether hash has at least difficulty leading zeros.
// A difficulty below one is never met.
func MeetsDifficulty(hash string, difficulty int) bool {
	return difficulty >= 1 && LeadingZeros(hash) >= difficulty
}
