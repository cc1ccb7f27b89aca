package crypto

import (
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/NilFoundation/suiflow/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// RFC 8032 test vector 1.
var (
	testSeedHex   = "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"
	testPubkeyHex = "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a"
	testBech32    = "suiprivkey1qzwkrvvaal745c96s390fyhv9nzygjw9d9any6gewqa6cqcu4elkqqfr3zg"
	testBase64    = "AJ1hsZ3v/VpguoRK9JLsLMREScVpezJpGXA7rAMcrn9g"
	testAddress   = "0x304af458e90e97c841685b8cbbc59b909f3e2cf150df590ada4c81452c29737d"
)

func testKey(t require.TestingT) *PrivateKey {
	seed, err := hex.DecodeString(testSeedHex)
	require.NoError(t, err)
	key, err := NewPrivateKeyFromSeed(seed)
	require.NoError(t, err)
	return key
}

func TestDecodePrivateKey(t *testing.T) {
	t.Parallel()

	for _, encoded := range []string{testBech32, testBase64, "  " + testBech32 + "\n"} {
		key, err := DecodePrivateKey(encoded)
		require.NoError(t, err, encoded)

		pub := key.PublicKey()
		assert.Equal(t, testPubkeyHex, hex.EncodeToString(pub.Bytes()))
		assert.Equal(t, testAddress, key.Address().Hex())
	}
}

func TestEncodePrivateKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, testBech32, testKey(t).Encode())

	generated, err := GenerateKey()
	require.NoError(t, err)
	decoded, err := DecodePrivateKey(generated.Encode())
	require.NoError(t, err)
	assert.Equal(t, generated.Address(), decoded.Address())
}

func TestDecodePrivateKeyRejects(t *testing.T) {
	t.Parallel()

	seed, err := hex.DecodeString(testSeedHex)
	require.NoError(t, err)

	flagged := append([]byte{0x01}, seed...)
	short := append([]byte{0x00}, seed[:31]...)

	for name, input := range map[string]string{
		"Empty":           "",
		"NonZeroFlag":     base64.StdEncoding.EncodeToString(flagged),
		"Short":           base64.StdEncoding.EncodeToString(short),
		"RawSeed":         base64.StdEncoding.EncodeToString(seed),
		"NotBase64":       "not a key!",
		"BadChecksum":     testBech32[:len(testBech32)-1] + "q",
		"TruncatedBech32": "suiprivkey1qqqq",
	} {
		_, err := DecodePrivateKey(input)
		require.ErrorIs(t, err, types.ErrInvalidInput, name)
	}
}

func TestSignVerify(t *testing.T) {
	t.Parallel()

	key := testKey(t)
	payload := []byte("transaction bytes")

	sig := key.SignMessage(types.IntentTransactionData, payload)
	assert.Equal(t, SchemeEd25519, sig[0])
	assert.Equal(t, key.PublicKey(), sig.PublicKey())
	require.NoError(t, sig.Verify(types.IntentTransactionData, payload, key.Address()))

	parsed, err := ParseSignature(sig.Base64())
	require.NoError(t, err)
	assert.Equal(t, sig, parsed)

	other, err := GenerateKey()
	require.NoError(t, err)
	require.ErrorIs(t, sig.Verify(types.IntentTransactionData, payload, other.Address()), ErrVerificationFailed)
	require.ErrorIs(t, sig.Verify(types.Intent{1, 0, 0}, payload, key.Address()), ErrVerificationFailed)

	_, err = ParseSignature(base64.StdEncoding.EncodeToString(sig[:10]))
	require.ErrorIs(t, err, types.ErrInvalidInput)
}

func TestTamperedMessageFails(t *testing.T) {
	t.Parallel()

	key := testKey(t)
	rapid.Check(t, func(t *rapid.T) {
		payload := rapid.SliceOfN(rapid.Byte(), 1, 256).Draw(t, "payload")
		sig := key.SignMessage(types.IntentTransactionData, payload)
		require.NoError(t, sig.Verify(types.IntentTransactionData, payload, key.Address()))

		tampered := append([]byte{}, payload...)
		i := rapid.IntRange(0, len(tampered)-1).Draw(t, "index")
		tampered[i] ^= byte(rapid.IntRange(1, 255).Draw(t, "mask"))
		require.ErrorIs(t, sig.Verify(types.IntentTransactionData, tampered, key.Address()), ErrVerificationFailed)
	})
}
