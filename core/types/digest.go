package types

import (
	"fmt"

	"github.com/NilFoundation/suiflow/common"
	"github.com/mr-tron/base58"
)

const DigestSize = 32

// Digest is a 32-byte content hash shown in base58.
type Digest [DigestSize]byte

var EmptyDigest = Digest{}

func BytesToDigest(b []byte) (Digest, error) {
	var d Digest
	if len(b) != DigestSize {
		return d, fmt.Errorf("%w: digest must be %d bytes, got %d", ErrInvalidInput, DigestSize, len(b))
	}
	copy(d[:], b)
	return d, nil
}

func ParseDigest(s string) (Digest, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return Digest{}, fmt.Errorf("%w: digest %q: %w", ErrInvalidInput, s, err)
	}
	return BytesToDigest(b)
}

func (d Digest) Bytes() []byte { return d[:] }

func (d Digest) String() string {
	return base58.Encode(d[:])
}

func (d Digest) IsEmpty() bool {
	return d == EmptyDigest
}

func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Digest) UnmarshalText(input []byte) error {
	parsed, err := ParseDigest(string(input))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

const transactionDigestSalt = "TransactionData::"

// TransactionDigest is the ledger-visible identifier of serialized transaction data.
func TransactionDigest(txBytes []byte) Digest {
	return common.Blake2b256([]byte(transactionDigestSalt), txBytes)
}
