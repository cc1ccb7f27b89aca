package types

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func filled(b byte) (out [32]byte) {
	for i := range out {
		out[i] = b
	}
	return
}

func transferTx() *TransactionData {
	sender := Address(filled(0x11))
	recipient := Address(filled(0x22))
	amount := binary.LittleEndian.AppendUint64(nil, 100)

	return &TransactionData{
		Kind: ProgrammableTransaction{
			Inputs: []CallArg{PureArg(amount), PureArg(recipient.Bytes())},
			Commands: []Command{
				NewSplitCoins(GasCoin(), []Argument{Input(0)}),
				NewTransferObjects([]Argument{Result(0)}, Input(1)),
			},
		},
		Sender: sender,
		Gas: GasData{
			Payment: []ObjectRef{{ObjectId: filled(0x33), Version: 7, Digest: filled(0x44)}},
			Owner:   sender,
			Price:   1000,
			Budget:  5_000_000,
		},
	}
}

func TestTransactionDataBCS(t *testing.T) {
	t.Parallel()

	tx := transferTx()
	require.NoError(t, tx.Kind.Validate())

	data, err := tx.Bytes()
	require.NoError(t, err)

	expected, err := hex.DecodeString(
		"00000200086400000000000000002022222222222222222222222222222222222222222222222222222222222222220202" +
			"0001010000010102000001010011111111111111111111111111111111111111111111111111111111111111110133333333" +
			"333333333333333333333333333333333333333333333333333333330700000000000000204444444444444444444444444444" +
			"4444444444444444444444444444444444441111111111111111111111111111111111111111111111111111111111111111e8" +
			"03000000000000404b4c000000000000")
	require.NoError(t, err)
	assert.Equal(t, expected, data)

	digest, err := tx.Digest()
	require.NoError(t, err)
	assert.Equal(t, TransactionDigest(data), digest)
}

func TestExpirationEncoding(t *testing.T) {
	t.Parallel()

	tx := transferTx()
	noExpiry, err := tx.Bytes()
	require.NoError(t, err)

	tx.ExpireAtEpoch = 9
	withExpiry, err := tx.Bytes()
	require.NoError(t, err)

	assert.Equal(t, noExpiry[:len(noExpiry)-1], withExpiry[:len(noExpiry)-1])
	assert.Equal(t, []byte{1, 9, 0, 0, 0, 0, 0, 0, 0}, withExpiry[len(noExpiry)-1:])
}

func TestSharedInputEncoding(t *testing.T) {
	t.Parallel()

	data, err := ObjectArg(SharedInput(ClockObjectId, 1, false)).MarshalBCS()
	require.NoError(t, err)

	var expected bytes.Buffer
	expected.Write([]byte{1, 1})
	expected.Write(ClockObjectId.Bytes())
	expected.Write([]byte{1, 0, 0, 0, 0, 0, 0, 0})
	expected.WriteByte(0)
	assert.Equal(t, expected.Bytes(), data)
}

func TestMoveCallEncoding(t *testing.T) {
	t.Parallel()

	cmd := NewMoveCall(MoveCall{
		Package:       FrameworkAddress,
		Module:        "coin",
		Function:      "zero",
		TypeArguments: []TypeTag{SuiCoinType},
	})
	data, err := cmd.MarshalBCS()
	require.NoError(t, err)

	var expected bytes.Buffer
	expected.WriteByte(0)
	expected.Write(FrameworkAddress.Bytes())
	expected.Write([]byte{4, 'c', 'o', 'i', 'n', 4, 'z', 'e', 'r', 'o'})
	expected.Write([]byte{1, 7})
	expected.Write(FrameworkAddress.Bytes())
	expected.Write([]byte{3, 's', 'u', 'i', 3, 'S', 'U', 'I', 0})
	expected.WriteByte(0)
	assert.Equal(t, expected.Bytes(), data)
}

func TestValidateRejectsForwardReferences(t *testing.T) {
	t.Parallel()

	pt := ProgrammableTransaction{
		Inputs: []CallArg{PureArg([]byte{1})},
		Commands: []Command{
			NewSplitCoins(GasCoin(), []Argument{Input(0)}),
			NewTransferObjects([]Argument{Result(1)}, Input(0)),
		},
	}
	require.ErrorIs(t, pt.Validate(), ErrInvalidReference)
	require.ErrorIs(t, pt.Validate(), ErrInvalidInput)

	pt.Commands[1] = NewTransferObjects([]Argument{NestedResult(0, 0)}, Input(1))
	require.ErrorIs(t, pt.Validate(), ErrInvalidReference)

	pt.Commands[1] = NewTransferObjects([]Argument{NestedResult(0, 0)}, Input(0))
	require.NoError(t, pt.Validate())

	require.ErrorIs(t, (&ProgrammableTransaction{}).Validate(), ErrInvalidInput)
}

func TestValidateReferenceProperty(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		numCommands := rapid.IntRange(1, 8).Draw(t, "numCommands")
		pt := ProgrammableTransaction{Inputs: []CallArg{PureArg([]byte{0})}}
		forward := false
		for i := range numCommands {
			ref := uint16(rapid.IntRange(0, numCommands).Draw(t, "ref"))
			arg := Input(0)
			if i > 0 || ref > 0 {
				arg = Result(ref)
				if int(ref) >= i {
					forward = true
				}
			}
			pt.Commands = append(pt.Commands, NewMergeCoins(GasCoin(), []Argument{arg}))
		}

		err := pt.Validate()
		if forward {
			require.ErrorIs(t, err, ErrInvalidReference)
		} else {
			require.NoError(t, err)
		}
	})
}

func TestObjectInfoRequire(t *testing.T) {
	t.Parallel()

	info := ObjectInfo{ObjectId: ClockObjectId, Present: MaskRef}
	require.NoError(t, info.Require(MaskRef))

	err := info.Require(MaskShared)
	require.ErrorIs(t, err, ErrIncompleteResponse)
	assert.Contains(t, err.Error(), "owner")
	assert.Equal(t, []string{"object_id", "version", "owner"}, MaskShared.Paths())
}

func TestOwnerSharedVersion(t *testing.T) {
	t.Parallel()

	v, ok := Owner{Kind: OwnerShared, Version: 1}.SharedVersion()
	assert.True(t, ok)
	assert.Equal(t, uint64(1), v)

	_, ok = Owner{Kind: OwnerAddress, Version: 5}.SharedVersion()
	assert.False(t, ok)
}

func TestParseReadMask(t *testing.T) {
	t.Parallel()

	m, err := ParseReadMask([]string{"ref", " owner", "json"})
	require.NoError(t, err)
	assert.Equal(t, MaskRef|FieldOwner|FieldContents, m)
	assert.Equal(t, "object_id,version,digest,owner,json", m.String())

	m, err = ParseReadMask([]string{"all"})
	require.NoError(t, err)
	assert.Equal(t, MaskAll, m)

	_, err = ParseReadMask([]string{"previous_transaction"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestArgumentAndTypeTagEncoding(t *testing.T) {
	t.Parallel()

	cmd := NewMergeCoins(NestedResult(2, 1), []Argument{GasCoin(), Result(0x0102)})
	data, err := cmd.MarshalBCS()
	require.NoError(t, err)
	assert.Equal(t, []byte{3, 3, 2, 0, 1, 0, 2, 0, 2, 2, 1}, data)

	vec, err := MustParseTypeTag("vector<u16>").MarshalBCS()
	require.NoError(t, err)
	assert.Equal(t, []byte{6, 8}, vec)

	_, err = NewMergeCoins(Argument{Kind: 9}, []Argument{GasCoin()}).MarshalBCS()
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestReceivingAndOwnedInputs(t *testing.T) {
	t.Parallel()

	ref := ObjectRef{ObjectId: filled(0x01), Version: 2, Digest: filled(0x03)}
	owned, err := ObjectArg(OwnedInput(ref)).MarshalBCS()
	require.NoError(t, err)
	receiving, err := ObjectArg(ReceivingInput(ref)).MarshalBCS()
	require.NoError(t, err)

	assert.Equal(t, []byte{1, 0}, owned[:2])
	assert.Equal(t, []byte{1, 2}, receiving[:2])
	assert.Equal(t, owned[2:], receiving[2:])
	assert.Len(t, owned, 2+32+8+1+32)

	pure, err := PureArg(nil).MarshalBCS()
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0}, pure)
}

func TestNewU128(t *testing.T) {
	t.Parallel()

	v, err := NewU128(uint256.MustFromDecimal("79226673515401279992447579055"))
	require.NoError(t, err)
	assert.Equal(t, U128{Lo: 0x35bb7f32a81b33af, Hi: 0xfffec4b1}, v)

	_, err = NewU128(new(uint256.Int).Lsh(uint256.NewInt(1), 128))
	require.ErrorIs(t, err, ErrInvalidInput)
}
