package submitter

import (
	"context"
	"errors"
	"fmt"

	"github.com/NilFoundation/suiflow/client"
	"github.com/NilFoundation/suiflow/common/logging"
	"github.com/NilFoundation/suiflow/core/crypto"
	"github.com/NilFoundation/suiflow/services/signer"
	"github.com/rs/zerolog"
)

// Submitter sends signed transactions. Every call makes exactly one execute
// request and reports its outcome as is.
type Submitter struct {
	client client.Client
	logger zerolog.Logger
}

func NewSubmitter(c client.Client, logger zerolog.Logger) *Submitter {
	return &Submitter{client: c, logger: logger}
}

func (s *Submitter) Submit(ctx context.Context, signed *signer.SignedTransaction) (*client.ExecutionResult, error) {
	res, err := s.client.ExecuteTransaction(ctx, signed.TxBytes, []crypto.Signature{signed.Signature})
	if err != nil {
		var execErr *client.ExecutionError
		if errors.As(err, &execErr) {
			if execErr.Digest.IsEmpty() {
				execErr.Digest = signed.Digest
			}
			s.logger.Error().Err(err).Stringer(logging.FieldTxDigest, execErr.Digest).Msg("Transaction rejected")
			return nil, err
		}
		if !errors.Is(err, client.ErrTransport) && !errors.Is(err, context.Canceled) &&
			!errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %w", client.ErrTransport, err)
		}
		s.logger.Error().Err(err).Stringer(logging.FieldTxDigest, signed.Digest).Msg("Failed to submit transaction")
		return nil, err
	}

	if res.Digest != signed.Digest {
		s.logger.Warn().
			Stringer(logging.FieldTxDigest, signed.Digest).
			Stringer("remoteDigest", res.Digest).
			Msg("Ledger reported a different transaction digest")
	}
	s.logger.Info().Stringer(logging.FieldTxDigest, res.Digest).Msg("Transaction executed")
	return res, nil
}
