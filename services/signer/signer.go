package signer

import (
	"fmt"

	"github.com/NilFoundation/suiflow/common/logging"
	"github.com/NilFoundation/suiflow/core/crypto"
	"github.com/NilFoundation/suiflow/core/types"
	"github.com/NilFoundation/suiflow/services/ptb"
	"github.com/rs/zerolog"
)

// SignedTransaction is everything the ledger needs to execute a transaction.
type SignedTransaction struct {
	TxBytes   []byte           `yaml:"-"`
	Signature crypto.Signature `yaml:"signature"`
	Digest    types.Digest     `yaml:"digest"`
}

type Signer struct {
	key    *crypto.PrivateKey
	logger zerolog.Logger

	signMessage func(types.Intent, []byte) crypto.Signature
}

func NewSigner(key *crypto.PrivateKey, logger zerolog.Logger) *Signer {
	return &Signer{
		key:         key,
		logger:      logger,
		signMessage: key.SignMessage,
	}
}

func (s *Signer) Address() types.Address {
	return s.key.Address()
}

// Sign signs the transaction data intent message and checks the signature
// against the same bytes before returning it.
func (s *Signer) Sign(plan *ptb.Plan) (*SignedTransaction, error) {
	if plan.Sender() != s.key.Address() {
		return nil, fmt.Errorf("%w: plan sender %s does not match key address %s",
			types.ErrInvalidInput, plan.Sender(), s.key.Address())
	}
	if owner := plan.Gas().Owner; owner != s.key.Address() {
		return nil, fmt.Errorf("%w: gas owner %s needs its own signature", types.ErrInvalidInput, owner)
	}

	txBytes := plan.Bytes()
	sig := s.signMessage(types.IntentTransactionData, txBytes)
	if err := sig.Verify(types.IntentTransactionData, txBytes, s.key.Address()); err != nil {
		return nil, err
	}

	signed := &SignedTransaction{
		TxBytes:   txBytes,
		Signature: sig,
		Digest:    types.TransactionDigest(txBytes),
	}
	s.logger.Debug().
		Stringer(logging.FieldTxDigest, signed.Digest).
		Stringer(logging.FieldSender, plan.Sender()).
		Int("txBytes", len(txBytes)).
		Msg("Transaction signed")
	return signed, nil
}
