package common

import (
	"hash"
	"sync"

	"github.com/NilFoundation/suiflow/common/check"
	"golang.org/x/crypto/blake2b"
)

var blake2bPool = sync.Pool{
	New: func() any {
		h, err := blake2b.New256(nil)
		check.PanicIfErr(err)
		return h
	},
}

func GetBlake2b256() hash.Hash {
	h := blake2bPool.Get().(hash.Hash)
	h.Reset()
	return h
}

func ReturnBlake2b256(h hash.Hash) { blake2bPool.Put(h) }

// Blake2b256 hashes the concatenation of parts.
func Blake2b256(parts ...[]byte) [32]byte {
	h := GetBlake2b256()
	defer ReturnBlake2b256(h)

	for _, p := range parts {
		_, _ = h.Write(p)
	}

	var out [32]byte
	h.Sum(out[:0])
	return out
}
