package grpc

import (
	"context"
	"net"
	"sync"
	"testing"

	"github.com/NilFoundation/suiflow/client"
	"github.com/NilFoundation/suiflow/common/logging"
	"github.com/NilFoundation/suiflow/core/crypto"
	"github.com/NilFoundation/suiflow/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeLedger serves the ledger API over the compiled schema.
type fakeLedger struct {
	mu        sync.Mutex
	objects   map[string]*types.ObjectInfo
	owned     []*types.ObjectInfo
	gasPrice  uint64
	execute   func(req message) (message, error)
	lastMD    metadata.MD
	lastMasks [][]string
	lastList  message
}

func (f *fakeLedger) record(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastMD, _ = metadata.FromIncomingContext(ctx)
}

func handler(name string, serve func(ctx context.Context, req message) (message, error)) grpc.MethodHandler {
	return func(_ any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
		req := newMessage(name)
		if err := dec(req.proto()); err != nil {
			return nil, err
		}
		resp, err := serve(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.proto(), nil
	}
}

func (f *fakeLedger) register(s *grpc.Server) {
	s.RegisterService(&grpc.ServiceDesc{
		ServiceName: "sui.rpc.v2.LedgerService",
		HandlerType: (*any)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetObject",
				Handler: handler("GetObjectRequest", func(ctx context.Context, req message) (message, error) {
					f.record(ctx)
					mask, err := req.getFieldMask("read_mask")
					if err != nil {
						return message{}, err
					}
					f.mu.Lock()
					f.lastMasks = append(f.lastMasks, mask)
					f.mu.Unlock()
					id, _ := req.getString("object_id")
					info, ok := f.objects[id]
					if !ok {
						return message{}, status.Error(codes.NotFound, "object not found")
					}
					resp := newMessage("GetObjectResponse")
					return resp, objectMsg{resp.mutable("object")}.PackProtoMessage(info)
				}),
			},
			{
				MethodName: "GetEpoch",
				Handler: handler("GetEpochRequest", func(ctx context.Context, _ message) (message, error) {
					f.record(ctx)
					resp := newMessage("GetEpochResponse")
					epoch := resp.mutable("epoch")
					epoch.setUint("epoch", 800)
					epoch.setUint("reference_gas_price", f.gasPrice)
					return resp, nil
				}),
			},
		},
	}, f)
	s.RegisterService(&grpc.ServiceDesc{
		ServiceName: "sui.rpc.v2.StateService",
		HandlerType: (*any)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "ListOwnedObjects",
				Handler: handler("ListOwnedObjectsRequest", func(ctx context.Context, req message) (message, error) {
					f.record(ctx)
					f.mu.Lock()
					f.lastList = req
					f.mu.Unlock()
					resp := newListOwnedObjectsResponse()
					if len(req.getBytes("page_token")) == 0 {
						return resp.message, resp.PackProtoMessage(f.owned[:1], []byte{0xca, 0xfe})
					}
					return resp.message, resp.PackProtoMessage(f.owned[1:], nil)
				}),
			},
		},
	}, f)
	s.RegisterService(&grpc.ServiceDesc{
		ServiceName: "sui.rpc.v2.TransactionExecutionService",
		HandlerType: (*any)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "ExecuteTransaction",
				Handler: handler("ExecuteTransactionRequest", func(ctx context.Context, req message) (message, error) {
					f.record(ctx)
					return f.execute(req)
				}),
			},
		},
	}, f)
}

// executed builds an ExecuteTransactionResponse with the given status.
func executed(txDigest, effectsDigest types.Digest, success bool, description string) message {
	resp := newMessage("ExecuteTransactionResponse")
	tx := resp.mutable("transaction")
	tx.setString("digest", txDigest.String())
	effects := tx.mutable("effects")
	if effectsDigest != (types.Digest{}) {
		effects.setString("digest", effectsDigest.String())
	}
	st := effects.mutable("status")
	st.setBool("success", success)
	if description != "" {
		st.mutable("error").setString("description", description)
	}
	return resp
}

type ClientTestSuite struct {
	suite.Suite

	ledger *fakeLedger
	server *grpc.Server
	client *Client
}

func TestClient(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ClientTestSuite))
}

var (
	sharedId = types.MustParseAddress("0x455cf8d2ac91e7cb883f515874af750ed3cd18195c970b7a2d46235ac2b0c388")
	coinId   = types.MustParseAddress("0xc01")
	digest   = types.TransactionDigest([]byte("object"))
)

func (s *ClientTestSuite) SetupTest() {
	s.ledger = &fakeLedger{
		objects: map[string]*types.ObjectInfo{
			sharedId.Hex(): {
				ObjectId:   sharedId,
				Version:    712_000_000,
				Digest:     digest,
				Owner:      types.Owner{Kind: types.OwnerShared, Version: 373_000},
				ObjectType: "0x70285592::pool::Pool",
				Contents:   map[string]any{"liquidity": "1000"},
				Present:    types.MaskSummary | types.FieldContents,
			},
		},
		owned: []*types.ObjectInfo{
			{ObjectId: coinId, Version: 3, Digest: digest, Balance: 5, Present: types.MaskCoin},
			{ObjectId: sharedId, Version: 4, Digest: digest, Balance: 7, Present: types.MaskCoin},
		},
		gasPrice: 750,
	}

	listener := bufconn.Listen(1 << 20)
	s.server = grpc.NewServer()
	s.ledger.register(s.server)
	go func() {
		_ = s.server.Serve(listener)
	}()

	var err error
	s.client, err = NewClient("passthrough:///bufnet", logging.NewLogger("grpc_client_test"),
		client.Headers{client.HeaderApiKey: "secret"},
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)
}

func (s *ClientTestSuite) TearDownTest() {
	s.Require().NoError(s.client.Close())
	s.server.Stop()
}

func (s *ClientTestSuite) TestGetSharedObject() {
	info, err := s.client.GetObject(s.T().Context(), sharedId, types.MaskAll)
	s.Require().NoError(err)

	s.Equal(sharedId, info.ObjectId)
	s.Equal(uint64(712_000_000), info.Version)
	s.Equal(digest, info.Digest)
	s.Equal(types.OwnerShared, info.Owner.Kind)
	s.Equal(uint64(373_000), info.Owner.Version)
	s.Equal("1000", info.Contents["liquidity"])
	s.Require().NoError(info.Require(types.MaskSummary | types.FieldContents))
	s.Require().ErrorIs(info.Require(types.FieldBalance), types.ErrIncompleteResponse)

	s.Equal([][]string{types.MaskAll.Paths()}, s.ledger.lastMasks)
	s.Equal([]string{"secret"}, s.ledger.lastMD.Get(client.HeaderApiKey))
}

func (s *ClientTestSuite) TestGetObjectNotFound() {
	_, err := s.client.GetObject(s.T().Context(), types.MustParseAddress("0xdead"), types.MaskRef)
	s.Require().ErrorIs(err, types.ErrNotFound)
}

func (s *ClientTestSuite) TestReferenceGasPrice() {
	price, err := s.client.ReferenceGasPrice(s.T().Context())
	s.Require().NoError(err)
	s.Equal(uint64(750), price)
}

func (s *ClientTestSuite) TestListOwnedObjectsPages() {
	owner := types.MustParseAddress("0xabc")
	req := &client.ListOwnedRequest{
		Owner:      owner,
		ObjectType: types.CoinObjectType(types.SuiCoinType),
		PageSize:   1,
		Mask:       types.MaskCoin,
	}
	page, err := s.client.ListOwnedObjects(s.T().Context(), req)
	s.Require().NoError(err)
	s.Require().Len(page.Objects, 1)
	s.Equal(coinId, page.Objects[0].ObjectId)
	s.Equal(uint64(5), page.Objects[0].Balance)
	s.NotEmpty(page.NextPageToken)
	listedOwner, _ := s.ledger.lastList.getString("owner")
	s.Equal(owner.Hex(), listedOwner)
	listedType, _ := s.ledger.lastList.getString("object_type")
	s.Equal("0x2::coin::Coin<0x2::sui::SUI>", listedType)
	pageSize, _ := s.ledger.lastList.getUint("page_size")
	s.Equal(uint64(1), pageSize)

	req.PageToken = page.NextPageToken
	page, err = s.client.ListOwnedObjects(s.T().Context(), req)
	s.Require().NoError(err)
	s.Require().Len(page.Objects, 1)
	s.Empty(page.NextPageToken)
	s.Equal([]byte{0xca, 0xfe}, s.ledger.lastList.getBytes("page_token"))
}

func (s *ClientTestSuite) TestExecuteTransaction() {
	key, err := crypto.GenerateKey()
	s.Require().NoError(err)
	txBytes := []byte{1, 2, 3}
	sig := key.SignMessage(types.IntentTransactionData, txBytes)
	txDigest := types.TransactionDigest(txBytes)

	var received message
	s.ledger.execute = func(req message) (message, error) {
		received = req
		return executed(txDigest, digest, true, ""), nil
	}

	result, err := s.client.ExecuteTransaction(s.T().Context(), txBytes, []crypto.Signature{sig})
	s.Require().NoError(err)
	s.Equal(txDigest, result.Digest)
	s.Equal(digest, result.EffectsDigest)

	s.Require().NotNil(received.pb)
	tx, ok := received.getMessage("transaction")
	s.Require().True(ok)
	bcs, ok := tx.getMessage("bcs")
	s.Require().True(ok)
	s.Equal(txBytes, bcs.getBytes("value"))
	sigs := received.list("signatures")
	s.Require().Len(sigs, 1)
	sigBcs, ok := sigs[0].getMessage("bcs")
	s.Require().True(ok)
	s.Equal(sig.Bytes(), sigBcs.getBytes("value"))
}

func (s *ClientTestSuite) TestExecuteTransactionFailedOnChain() {
	txDigest := types.TransactionDigest([]byte{9})
	s.ledger.execute = func(message) (message, error) {
		return executed(txDigest, types.Digest{}, false, "InsufficientGas"), nil
	}

	_, err := s.client.ExecuteTransaction(s.T().Context(), []byte{9}, nil)
	s.Require().ErrorIs(err, client.ErrExecutionRejected)

	var execErr *client.ExecutionError
	s.Require().ErrorAs(err, &execErr)
	s.Equal(txDigest, execErr.Digest)
	s.Equal("InsufficientGas", execErr.Reason)
}

func (s *ClientTestSuite) TestExecuteTransactionRejected() {
	s.ledger.execute = func(message) (message, error) {
		return message{}, status.Error(codes.InvalidArgument, "signature is not valid")
	}

	_, err := s.client.ExecuteTransaction(s.T().Context(), []byte{1}, nil)
	s.Require().ErrorIs(err, client.ErrExecutionRejected)
	s.Contains(err.Error(), "signature is not valid")
}

func (s *ClientTestSuite) TestExecuteTransactionTransportError() {
	s.ledger.execute = func(message) (message, error) {
		return message{}, status.Error(codes.Unavailable, "overloaded")
	}

	_, err := s.client.ExecuteTransaction(s.T().Context(), []byte{1}, nil)
	s.Require().ErrorIs(err, client.ErrTransport)
	s.Require().NotErrorIs(err, client.ErrExecutionRejected)
}

func TestParseEndpoint(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		endpoint string
		target   string
		tls      bool
	}{
		{"https://fullnode.mainnet.sui.io", "fullnode.mainnet.sui.io:443", true},
		{"https://fullnode.mainnet.sui.io/", "fullnode.mainnet.sui.io:443", true},
		{"https://node.local:9000/", "node.local:9000", true},
		{"http://localhost:9000/", "localhost:9000", false},
		{"localhost:9000", "localhost:9000", false},
	} {
		target, creds := parseEndpoint(tc.endpoint)
		assert.Equal(t, tc.target, target, tc.endpoint)
		assert.Equal(t, tc.tls, creds.Info().SecurityProtocol == "tls", tc.endpoint)
	}
}
