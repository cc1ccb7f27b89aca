package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/NilFoundation/suiflow/common"
	"github.com/NilFoundation/suiflow/core/types"
	"github.com/btcsuite/btcd/btcutil/bech32"
)

// SchemeEd25519 is the flag byte of ed25519 keys, signatures and addresses.
const SchemeEd25519 byte = 0x00

const (
	// PrivateKeyPrefix is the bech32 human readable part of exported keys.
	PrivateKeyPrefix = "suiprivkey"

	SeedSize      = ed25519.SeedSize
	PublicKeySize = ed25519.PublicKeySize
	SignatureSize = 1 + ed25519.SignatureSize + ed25519.PublicKeySize

	flaggedKeySize = 1 + SeedSize
)

var ErrVerificationFailed = errors.New("signature verification failed")

type PublicKey [PublicKeySize]byte

// Address derives the account address: blake2b-256(flag || pubkey).
func (p PublicKey) Address() types.Address {
	return common.Blake2b256([]byte{SchemeEd25519}, p[:])
}

func (p PublicKey) Bytes() []byte { return p[:] }

// Base64 encodes flag || public key, the form wallets display.
func (p PublicKey) Base64() string {
	return base64.StdEncoding.EncodeToString(append([]byte{SchemeEd25519}, p[:]...))
}

type PrivateKey struct {
	key ed25519.PrivateKey
	pub PublicKey
}

func NewPrivateKeyFromSeed(seed []byte) (*PrivateKey, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("%w: ed25519 seed must be %d bytes, got %d", types.ErrInvalidInput, SeedSize, len(seed))
	}
	key := ed25519.NewKeyFromSeed(seed)
	k := &PrivateKey{key: key}
	copy(k.pub[:], key.Public().(ed25519.PublicKey))
	return k, nil
}

// GenerateKey generates a new private key.
func GenerateKey() (*PrivateKey, error) {
	seed := make([]byte, SeedSize)
	if _, err := rand.Read(seed); err != nil {
		return nil, err
	}
	return NewPrivateKeyFromSeed(seed)
}

// DecodePrivateKey accepts "suiprivkey1..." or base64 of flag || seed.
// The decoded blob must be exactly 33 bytes with the ed25519 flag.
func DecodePrivateKey(s string) (*PrivateKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty private key", types.ErrInvalidInput)
	}

	var blob []byte
	if strings.HasPrefix(strings.ToLower(s), PrivateKeyPrefix+"1") {
		hrp, data, err := bech32.DecodeToBase256(s)
		if err != nil {
			return nil, fmt.Errorf("%w: bech32 private key: %w", types.ErrInvalidInput, err)
		}
		if hrp != PrivateKeyPrefix {
			return nil, fmt.Errorf("%w: unexpected key prefix %q", types.ErrInvalidInput, hrp)
		}
		blob = data
	} else {
		data, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("%w: private key is neither %s nor base64: %w", types.ErrInvalidInput, PrivateKeyPrefix, err)
		}
		blob = data
	}

	if len(blob) != flaggedKeySize {
		return nil, fmt.Errorf("%w: private key must decode to %d bytes, got %d", types.ErrInvalidInput, flaggedKeySize, len(blob))
	}
	if blob[0] != SchemeEd25519 {
		return nil, fmt.Errorf("%w: unsupported key scheme 0x%02x", types.ErrInvalidInput, blob[0])
	}
	return NewPrivateKeyFromSeed(blob[1:])
}

// Encode exports the key in the bech32 form DecodePrivateKey accepts.
func (k *PrivateKey) Encode() string {
	blob := make([]byte, 0, flaggedKeySize)
	blob = append(blob, SchemeEd25519)
	blob = append(blob, k.key.Seed()...)
	s, err := bech32.EncodeFromBase256(PrivateKeyPrefix, blob)
	if err != nil {
		// the prefix and payload sizes are fixed
		panic(err)
	}
	return s
}

func (k *PrivateKey) PublicKey() PublicKey {
	return k.pub
}

func (k *PrivateKey) Address() types.Address {
	return k.pub.Address()
}

// SignMessage signs the intent message over payload.
func (k *PrivateKey) SignMessage(intent types.Intent, payload []byte) Signature {
	digest := intent.SigningDigest(payload)
	var sig Signature
	sig[0] = SchemeEd25519
	copy(sig[1:], ed25519.Sign(k.key, digest[:]))
	copy(sig[1+ed25519.SignatureSize:], k.pub[:])
	return sig
}

// Signature is flag || ed25519 signature || public key.
type Signature [SignatureSize]byte

func ParseSignature(s string) (Signature, error) {
	var sig Signature
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return sig, fmt.Errorf("%w: signature: %w", types.ErrInvalidInput, err)
	}
	if len(b) != SignatureSize {
		return sig, fmt.Errorf("%w: signature must be %d bytes, got %d", types.ErrInvalidInput, SignatureSize, len(b))
	}
	copy(sig[:], b)
	return sig, nil
}

func (s Signature) Bytes() []byte { return s[:] }

func (s Signature) Base64() string {
	return base64.StdEncoding.EncodeToString(s[:])
}

func (s Signature) String() string {
	return s.Base64()
}

func (s Signature) MarshalText() ([]byte, error) {
	return []byte(s.Base64()), nil
}

func (s Signature) PublicKey() PublicKey {
	var p PublicKey
	copy(p[:], s[1+ed25519.SignatureSize:])
	return p
}

// Verify checks s against the intent message over payload and the signer address.
func (s Signature) Verify(intent types.Intent, payload []byte, signer types.Address) error {
	if s[0] != SchemeEd25519 {
		return fmt.Errorf("%w: unsupported signature scheme 0x%02x", ErrVerificationFailed, s[0])
	}
	pub := s.PublicKey()
	if pub.Address() != signer {
		return fmt.Errorf("%w: public key belongs to %s, expected %s", ErrVerificationFailed, pub.Address(), signer)
	}
	digest := intent.SigningDigest(payload)
	if !ed25519.Verify(pub[:], digest[:], s[1:1+ed25519.SignatureSize]) {
		return ErrVerificationFailed
	}
	return nil
}
