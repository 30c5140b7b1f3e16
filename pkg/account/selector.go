package account

import (
	"encoding/binary"

	"github.com/zeebo/blake3"
)

// MessageSelector derives the 64-bit selector for a fully-qualified message
// name, taken as the first eight bytes of the name's BLAKE3 hash in
// little-endian order. Selectors are stable across processes and releases.
func MessageSelector(name string) uint64 {
	sum := blake3.Sum256([]byte(name))
	return binary.LittleEndian.Uint64(sum[:8])
}

// Selectors for the built-in account lifecycle messages.
var (
	CreateSelector       = MessageSelector("vanir.account.v1.create")
	SelfDestructSelector = MessageSelector("vanir.account.v1.self_destruct")
)
