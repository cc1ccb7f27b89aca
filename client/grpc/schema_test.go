package grpc

import (
	"testing"

	"github.com/NilFoundation/suiflow/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
)

func TestSchemaMessages(t *testing.T) {
	t.Parallel()

	for _, name := range []string{
		"Object", "Owner", "Bcs", "Epoch", "UserSignature",
		"GetObjectRequest", "GetObjectResponse", "GetEpochRequest", "GetEpochResponse",
		"ListOwnedObjectsRequest", "ListOwnedObjectsResponse",
		"ExecuteTransactionRequest", "ExecuteTransactionResponse",
		"ExecutedTransaction", "TransactionEffects", "ExecutionStatus", "ExecutionError",
	} {
		assert.NotPanics(t, func() { newMessage(name) }, name)
	}
	assert.Panics(t, func() { newMessage("NoSuchMessage") })
}

func TestObjectWireRoundTrip(t *testing.T) {
	t.Parallel()

	info := &types.ObjectInfo{
		ObjectId:   types.MustParseAddress("0x5"),
		Version:    42,
		Digest:     types.TransactionDigest([]byte("x")),
		Owner:      types.Owner{Kind: types.OwnerAddress, Address: types.MustParseAddress("0xa11ce")},
		ObjectType: "0x2::coin::Coin<0x2::sui::SUI>",
		Balance:    1_000,
		Contents:   map[string]any{"balance": "1000"},
		Present:    types.MaskAll,
	}
	msg := newObjectMsg()
	require.NoError(t, msg.PackProtoMessage(info))

	b, err := proto.Marshal(msg.proto())
	require.NoError(t, err)
	decoded := newObjectMsg()
	require.NoError(t, proto.Unmarshal(b, decoded.proto()))

	got, err := decoded.UnpackProtoMessage()
	require.NoError(t, err)
	assert.Equal(t, info, got)
}

func TestObjectPresenceFollowsFields(t *testing.T) {
	t.Parallel()

	msg := newObjectMsg()
	msg.setString("object_id", types.MustParseAddress("0x5").Hex())
	msg.setUint("version", 0)

	got, err := msg.UnpackProtoMessage()
	require.NoError(t, err)
	assert.Equal(t, types.FieldObjectId|types.FieldVersion, got.Present)
	assert.Zero(t, got.Version)
}

func TestOwnerKindOutOfRange(t *testing.T) {
	t.Parallel()

	owner := newMessage("Owner")
	owner.setUint("kind", 9)
	_, err := ownerMsg{owner}.UnpackProtoMessage()
	require.ErrorIs(t, err, types.ErrInvalidInput)
}
