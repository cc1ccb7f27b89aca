package rpc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/NilFoundation/suiflow/client"
	"github.com/NilFoundation/suiflow/common/logging"
	"github.com/NilFoundation/suiflow/core/types"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
)

var (
	ErrFailedToMarshalRequest    = errors.New("failed to marshal request")
	ErrFailedToSendRequest       = errors.New("failed to send request")
	ErrUnexpectedStatusCode      = errors.New("unexpected status code")
	ErrFailedToReadResponse      = errors.New("failed to read response")
	ErrFailedToUnmarshalResponse = errors.New("failed to unmarshal response")
	ErrRPCError                  = errors.New("rpc error")
)

const (
	Sui_getObject                = "sui_getObject"
	Sui_executeTransactionBlock  = "sui_executeTransactionBlock"
	Suix_getOwnedObjects         = "suix_getOwnedObjects"
	Suix_getReferenceGasPrice    = "suix_getReferenceGasPrice"
	executeWaitForLocalExecution = "WaitForLocalExecution"
)

type Client struct {
	endpoint string
	seqno    atomic.Uint64
	client   http.Client
	headers  client.Headers
	logger   zerolog.Logger
}

type Request struct {
	Version string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	Id      uint64 `json:"id"`
}

func NewRequest(id uint64, method string, params []any) *Request {
	return &Request{
		Version: "2.0",
		Method:  method,
		Id:      id,
		Params:  params,
	}
}

// RPCError is the error object of a JSON-RPC response.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("%s: %d: %s", ErrRPCError, e.Code, e.Message)
}

func (e *RPCError) Unwrap() error {
	return ErrRPCError
}

var _ client.Client = (*Client)(nil)

func NewClient(endpoint string, logger zerolog.Logger) (*Client, error) {
	return NewClientWithDefaultHeaders(endpoint, logger, nil)
}

// NewClientWithDefaultHeaders accepts http(s)://, tcp://host:port and
// unix:///path/to/socket endpoints.
func NewClientWithDefaultHeaders(endpoint string, logger zerolog.Logger, headers client.Headers) (*Client, error) {
	c := &Client{
		endpoint: endpoint,
		logger:   logger,
		headers:  headers,
	}

	switch {
	case strings.HasPrefix(endpoint, "unix://"):
		socketPath := strings.TrimPrefix(endpoint, "unix://")
		if socketPath == "" {
			return nil, fmt.Errorf("%w: unix endpoint without socket path", types.ErrInvalidInput)
		}
		c.endpoint = "http://unix"
		c.client = http.Client{
			Transport: &http.Transport{
				DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
					var d net.Dialer
					return d.DialContext(ctx, "unix", socketPath)
				},
			},
		}
	case strings.HasPrefix(endpoint, "tcp://"):
		host := strings.TrimPrefix(endpoint, "tcp://")
		if host == "" {
			return nil, fmt.Errorf("%w: tcp endpoint without host", types.ErrInvalidInput)
		}
		c.endpoint = "http://" + host
	case strings.HasPrefix(endpoint, "http://"), strings.HasPrefix(endpoint, "https://"):
	default:
		return nil, fmt.Errorf("%w: endpoint %q must start with http://, https://, tcp:// or unix://",
			types.ErrInvalidInput, endpoint)
	}
	return c, nil
}

func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

func (c *Client) getNextId() uint64 {
	return c.seqno.Add(1)
}

func (c *Client) call(ctx context.Context, method string, params ...any) (jsoniter.RawMessage, error) {
	request := NewRequest(c.getNextId(), method, params)
	return c.performRequest(ctx, request)
}

func (c *Client) performRequest(ctx context.Context, request *Request) (jsoniter.RawMessage, error) {
	requestBody, err := jsoniter.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToMarshalRequest, err)
	}

	body, err := c.plainTextCall(ctx, requestBody)
	if err != nil {
		return nil, err
	}

	var rpcResponse struct {
		Result jsoniter.RawMessage `json:"result"`
		Error  *RPCError           `json:"error"`
	}
	if err := jsoniter.Unmarshal(body, &rpcResponse); err != nil {
		c.logger.Debug().Str("response", string(body)).Msg("failed to unmarshal response")
		return nil, fmt.Errorf("%w: %w: %w", client.ErrTransport, ErrFailedToUnmarshalResponse, err)
	}
	c.logger.Trace().Str(logging.FieldRpcMethod, request.Method).RawJSON("response", body).Send()

	if rpcResponse.Error != nil {
		return nil, rpcResponse.Error
	}
	return rpcResponse.Result, nil
}

// plainTextCall sends request as is and returns raw output.
func (c *Client) plainTextCall(ctx context.Context, requestBody []byte) (jsoniter.RawMessage, error) {
	c.logger.Trace().RawJSON("request", requestBody).Send()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", client.ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", client.ErrTransport, ErrFailedToSendRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", client.ErrTransport, ErrFailedToReadResponse, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %w: %d: %s", client.ErrTransport, ErrUnexpectedStatusCode, resp.StatusCode, body)
	}
	return body, nil
}

// asTransportError tags remote errors that are not otherwise classified.
func asTransportError(err error) error {
	if errors.Is(err, client.ErrTransport) {
		return err
	}
	return fmt.Errorf("%w: %w", client.ErrTransport, err)
}
