package client

import (
	"context"

	"github.com/NilFoundation/suiflow/core/crypto"
	"github.com/NilFoundation/suiflow/core/types"
)

// Client is the ledger access used by the workflow. Implementations exist for
// the gRPC API (client/grpc) and the JSON-RPC API (client/rpc).
//
// GetObject returns types.ErrNotFound when the object does not exist.
// ExecuteTransaction returns an *ExecutionError when the ledger rejects the
// transaction and wraps ErrTransport for everything else.
type Client interface {
	GetObject(ctx context.Context, id types.ObjectId, mask types.ReadMask) (*types.ObjectInfo, error)
	ListOwnedObjects(ctx context.Context, req *ListOwnedRequest) (*ObjectPage, error)
	ReferenceGasPrice(ctx context.Context) (uint64, error)
	ExecuteTransaction(ctx context.Context, txBytes []byte, signatures []crypto.Signature) (*ExecutionResult, error)
	Close() error
}

type ListOwnedRequest struct {
	Owner types.Address
	// ObjectType filters by full object type, e.g. 0x2::coin::Coin<0x2::sui::SUI>.
	ObjectType string
	PageToken  string
	PageSize   uint32
	Mask       types.ReadMask
}

type ObjectPage struct {
	Objects       []*types.ObjectInfo
	NextPageToken string
}

type ExecutionResult struct {
	Digest        types.Digest `yaml:"digest"`
	EffectsDigest types.Digest `yaml:"effectsDigest,omitempty"`
}

// Transport names the wire protocol of an endpoint.
type Transport string

const (
	TransportGrpc    Transport = "grpc"
	TransportJsonRpc Transport = "jsonrpc"
)

// Headers carries optional request metadata, such as an API key.
type Headers map[string]string

const HeaderApiKey = "x-api-key"
