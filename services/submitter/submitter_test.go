package submitter

import (
	"context"
	"errors"
	"testing"

	"github.com/NilFoundation/suiflow/client"
	"github.com/NilFoundation/suiflow/common/logging"
	"github.com/NilFoundation/suiflow/core/crypto"
	"github.com/NilFoundation/suiflow/core/types"
	"github.com/NilFoundation/suiflow/services/signer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var signed = &signer.SignedTransaction{
	TxBytes: []byte{1, 2, 3},
	Digest:  types.TransactionDigest([]byte{1, 2, 3}),
}

func TestSubmitOnce(t *testing.T) {
	t.Parallel()

	mock := &client.ClientMock{
		ExecuteTransactionFunc: func(_ context.Context, txBytes []byte, sigs []crypto.Signature) (*client.ExecutionResult, error) {
			assert.Equal(t, signed.TxBytes, txBytes)
			assert.Equal(t, []crypto.Signature{signed.Signature}, sigs)
			return &client.ExecutionResult{Digest: signed.Digest}, nil
		},
	}
	s := NewSubmitter(mock, logging.NewLogger("submitter_test"))

	res, err := s.Submit(t.Context(), signed)
	require.NoError(t, err)
	assert.Equal(t, signed.Digest, res.Digest)
	assert.Len(t, mock.ExecuteTransactionCalls(), 1)
}

func TestSubmitRejected(t *testing.T) {
	t.Parallel()

	mock := &client.ClientMock{
		ExecuteTransactionFunc: func(context.Context, []byte, []crypto.Signature) (*client.ExecutionResult, error) {
			return nil, &client.ExecutionError{Reason: "InsufficientGas"}
		},
	}
	s := NewSubmitter(mock, logging.NewLogger("submitter_test"))

	_, err := s.Submit(t.Context(), signed)
	require.ErrorIs(t, err, client.ErrExecutionRejected)

	var execErr *client.ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, signed.Digest, execErr.Digest)
	assert.Len(t, mock.ExecuteTransactionCalls(), 1, "no retry")
}

func TestSubmitTransportError(t *testing.T) {
	t.Parallel()

	mock := &client.ClientMock{
		ExecuteTransactionFunc: func(context.Context, []byte, []crypto.Signature) (*client.ExecutionResult, error) {
			return nil, errors.New("connection reset")
		},
	}
	s := NewSubmitter(mock, logging.NewLogger("submitter_test"))

	_, err := s.Submit(t.Context(), signed)
	require.ErrorIs(t, err, client.ErrTransport)
	assert.NotErrorIs(t, err, client.ErrExecutionRejected)
	assert.Len(t, mock.ExecuteTransactionCalls(), 1, "no retry")
}

func TestSubmitCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	mock := &client.ClientMock{
		ExecuteTransactionFunc: func(ctx context.Context, _ []byte, _ []crypto.Signature) (*client.ExecutionResult, error) {
			return nil, ctx.Err()
		},
	}
	s := NewSubmitter(mock, logging.NewLogger("submitter_test"))

	_, err := s.Submit(ctx, signed)
	require.ErrorIs(t, err, context.Canceled)
}
