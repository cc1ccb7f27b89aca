package grpc

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"

	"github.com/NilFoundation/suiflow/client"
	"github.com/NilFoundation/suiflow/common/logging"
	"github.com/NilFoundation/suiflow/core/crypto"
	"github.com/NilFoundation/suiflow/core/types"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	MethodGetObject          = "/sui.rpc.v2.LedgerService/GetObject"
	MethodGetEpoch           = "/sui.rpc.v2.LedgerService/GetEpoch"
	MethodListOwnedObjects   = "/sui.rpc.v2.StateService/ListOwnedObjects"
	MethodExecuteTransaction = "/sui.rpc.v2.TransactionExecutionService/ExecuteTransaction"
)

type Client struct {
	conn    *grpc.ClientConn
	headers client.Headers
	logger  zerolog.Logger
}

var _ client.Client = (*Client)(nil)

// NewClient connects lazily to endpoint. "https://host:port" uses TLS,
// "http://host:port" and a bare "host:port" use plaintext.
func NewClient(endpoint string, logger zerolog.Logger, headers client.Headers, opts ...grpc.DialOption) (*Client, error) {
	target, creds := parseEndpoint(endpoint)
	dialOpts := append([]grpc.DialOption{grpc.WithTransportCredentials(creds)}, opts...)
	conn, err := grpc.NewClient(target, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", client.ErrTransport, err)
	}
	return &Client{
		conn:    conn,
		headers: headers,
		logger:  logger,
	}, nil
}

func parseEndpoint(endpoint string) (string, credentials.TransportCredentials) {
	if rest, ok := strings.CutPrefix(endpoint, "https://"); ok {
		rest = strings.TrimSuffix(rest, "/")
		if !strings.Contains(rest, ":") {
			rest += ":443"
		}
		return rest, credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})
	}
	return strings.TrimSuffix(strings.TrimPrefix(endpoint, "http://"), "/"), insecure.NewCredentials()
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) invoke(ctx context.Context, method string, req, resp message) error {
	if len(c.headers) > 0 {
		kv := make([]string, 0, 2*len(c.headers))
		for k, v := range c.headers {
			kv = append(kv, k, v)
		}
		ctx = metadata.AppendToOutgoingContext(ctx, kv...)
	}

	c.logger.Trace().Str(logging.FieldRpcMethod, method).Msg("grpc request")
	err := c.conn.Invoke(ctx, method, req.proto(), resp.proto())
	if err != nil {
		c.logger.Debug().Err(err).Str(logging.FieldRpcMethod, method).Msg("grpc request failed")
	}
	return err
}

func transportError(err error) error {
	return fmt.Errorf("%w: %w", client.ErrTransport, err)
}

func (c *Client) GetObject(ctx context.Context, id types.ObjectId, mask types.ReadMask) (*types.ObjectInfo, error) {
	req := newGetObjectRequest()
	if err := req.PackProtoMessage(id, mask); err != nil {
		return nil, err
	}
	resp := newMessage("GetObjectResponse")
	if err := c.invoke(ctx, MethodGetObject, req.message, resp); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%w: %s", types.ErrNotFound, id)
		}
		return nil, transportError(err)
	}
	obj, ok := resp.getMessage("object")
	if !ok {
		return nil, fmt.Errorf("%w: no object in response for %s", types.ErrIncompleteResponse, id)
	}
	return objectMsg{obj}.UnpackProtoMessage()
}

func (c *Client) ListOwnedObjects(ctx context.Context, req *client.ListOwnedRequest) (*client.ObjectPage, error) {
	pbReq := newListOwnedObjectsRequest()
	if err := pbReq.PackProtoMessage(req); err != nil {
		return nil, err
	}
	resp := newListOwnedObjectsResponse()
	if err := c.invoke(ctx, MethodListOwnedObjects, pbReq.message, resp.message); err != nil {
		return nil, transportError(err)
	}
	return resp.UnpackProtoMessage()
}

func (c *Client) ReferenceGasPrice(ctx context.Context) (uint64, error) {
	req := newGetEpochRequest()
	if err := req.PackProtoMessage(); err != nil {
		return 0, err
	}
	resp := newMessage("GetEpochResponse")
	if err := c.invoke(ctx, MethodGetEpoch, req.message, resp); err != nil {
		return 0, transportError(err)
	}
	epoch, ok := resp.getMessage("epoch")
	if !ok {
		return 0, fmt.Errorf("%w: no epoch in response", types.ErrIncompleteResponse)
	}
	price, ok := epoch.getUint("reference_gas_price")
	if !ok {
		return 0, fmt.Errorf("%w: epoch without reference gas price", types.ErrIncompleteResponse)
	}
	return price, nil
}

func (c *Client) ExecuteTransaction(
	ctx context.Context, txBytes []byte, signatures []crypto.Signature,
) (*client.ExecutionResult, error) {
	req := newExecuteTransactionRequest()
	if err := req.PackProtoMessage(txBytes, signatures); err != nil {
		return nil, err
	}
	resp := newExecuteTransactionResponse()
	if err := c.invoke(ctx, MethodExecuteTransaction, req.message, resp.message); err != nil {
		if st, ok := status.FromError(err); ok && isRejection(st.Code()) {
			return nil, &client.ExecutionError{Reason: st.Message()}
		}
		return nil, transportError(err)
	}
	result, err := resp.UnpackProtoMessage()
	var execErr *client.ExecutionError
	if errors.As(err, &execErr) {
		c.logger.Debug().Stringer(logging.FieldTxDigest, execErr.Digest).Str(logging.FieldError, execErr.Reason).
			Msg("transaction failed on chain")
	}
	return result, err
}

// isRejection reports codes the ledger uses for transactions it refused to run.
func isRejection(code codes.Code) bool {
	switch code {
	case codes.InvalidArgument, codes.FailedPrecondition, codes.Aborted:
		return true
	default:
		return false
	}
}
