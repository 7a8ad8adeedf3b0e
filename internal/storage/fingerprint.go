package storage

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// fingerprintKey is the BLAKE3 key for sheet fingerprints: the ASCII of
// "settle.sheet.rows" zero-padded to 32 bytes. Changing it invalidates every
// archived fingerprint.
var fingerprintKey = [32]byte{
	's', 'e', 't', 't', 'l', 'e', '.', 's', 'h', 'e', 'e', 't', '.', 'r', 'o', 'w', 's',
}

// Fingerprint returns a hex BLAKE3 digest of a sheet's rows. Every cell is
// length-prefixed, so moving text between cells or rows changes the digest.
func Fingerprint(rows [][]string) string {
	hasher, err := blake3.NewKeyed(fingerprintKey[:])
	if err != nil {
		// Only returned for a key that is not 32 bytes.
		panic("storage: BLAKE3 keyed hash initialization failed: " + err.Error())
	}

	var n [binary.MaxVarintLen64]byte
	for _, row := range rows {
		hasher.Write(n[:binary.PutUvarint(n[:], uint64(len(row)))])
		for _, cell := range row {
			hasher.Write(n[:binary.PutUvarint(n[:], uint64(len(cell)))])
			hasher.Write([]byte(cell))
		}
	}
	return hex.EncodeToString(hasher.Sum(nil))
}
