package scopez

import (
	"encoding/binary"
	"encoding/hex"
)

// ToLowerHex formats id as 16 lowercase hex characters, zero padded.
func ToLowerHex(id uint64) string {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], id)
	return hex.EncodeToString(buf[:])
}

// toLowerHex128 formats a 128-bit id as 32 lowercase hex characters.
func toLowerHex128(high, low uint64) string {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], high)
	binary.BigEndian.PutUint64(buf[8:], low)
	return hex.EncodeToString(buf[:])
}
