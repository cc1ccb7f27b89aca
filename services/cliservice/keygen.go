package cliservice

import (
	"github.com/NilFoundation/suiflow/core/crypto"
	"github.com/NilFoundation/suiflow/core/types"
)

type KeyInfo struct {
	PrivateKey string        `yaml:"privateKey"`
	PublicKey  string        `yaml:"publicKey"`
	Address    types.Address `yaml:"address"`
}

func describeKey(key *crypto.PrivateKey) *KeyInfo {
	return &KeyInfo{
		PrivateKey: key.Encode(),
		PublicKey:  key.PublicKey().Base64(),
		Address:    key.Address(),
	}
}

// GenerateKey creates a new ed25519 key.
func GenerateKey() (*KeyInfo, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	return describeKey(key), nil
}

// KeyFromString decodes a suiprivkey or base64 key.
func KeyFromString(s string) (*KeyInfo, error) {
	key, err := crypto.DecodePrivateKey(s)
	if err != nil {
		return nil, err
	}
	return describeKey(key), nil
}

// Key describes the configured key.
func (s *Service) Key() (*KeyInfo, error) {
	if s.key == nil {
		return nil, ErrNoKey
	}
	return describeKey(s.key), nil
}
