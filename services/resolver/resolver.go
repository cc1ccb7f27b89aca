package resolver

import (
	"context"
	"fmt"

	"github.com/NilFoundation/suiflow/client"
	"github.com/NilFoundation/suiflow/common/logging"
	"github.com/NilFoundation/suiflow/core/types"
	"github.com/rs/zerolog"
)

// Resolver turns object ids into transaction inputs using live ledger state.
type Resolver struct {
	client client.Client
	cache  *Cache
	logger zerolog.Logger
}

// NewResolver creates a resolver. A nil cache disables caching of shared versions.
func NewResolver(c client.Client, cache *Cache, logger zerolog.Logger) *Resolver {
	return &Resolver{
		client: c,
		cache:  cache,
		logger: logger,
	}
}

// GetObject fetches the object and checks that every field of mask was returned.
func (r *Resolver) GetObject(ctx context.Context, id types.ObjectId, mask types.ReadMask) (*types.ObjectInfo, error) {
	info, err := r.client.GetObject(ctx, id, mask)
	if err != nil {
		return nil, err
	}
	if err := info.Require(mask); err != nil {
		return nil, err
	}
	return info, nil
}

// OwnedRef fetches the current version and digest of an owned or immutable object.
// It never uses a cache: refs are invalidated by every transaction touching the object.
func (r *Resolver) OwnedRef(ctx context.Context, id types.ObjectId) (types.ObjectRef, error) {
	info, err := r.GetObject(ctx, id, types.MaskRef|types.FieldOwner)
	if err != nil {
		return types.ObjectRef{}, err
	}
	if _, shared := info.Owner.SharedVersion(); shared {
		return types.ObjectRef{}, fmt.Errorf("%w: object %s is %s and cannot be used as an owned input",
			types.ErrInvalidInput, id, info.Owner)
	}

	ref := info.Ref()
	r.logger.Debug().
		Stringer(logging.FieldObjectId, id).
		Uint64(logging.FieldObjectVersion, ref.Version).
		Stringer(logging.FieldObjectDigest, ref.Digest).
		Stringer(logging.FieldOwnerKind, info.Owner.Kind).
		Msg("Resolved owned object")
	return ref, nil
}

func (r *Resolver) OwnedInput(ctx context.Context, id types.ObjectId) (types.ObjectInput, error) {
	ref, err := r.OwnedRef(ctx, id)
	if err != nil {
		return types.ObjectInput{}, err
	}
	return types.OwnedInput(ref), nil
}

// SharedInput builds a shared input from the initial shared version recorded in
// the owner metadata. The current object version is never used here.
func (r *Resolver) SharedInput(ctx context.Context, id types.ObjectId, mutable bool) (types.ObjectInput, error) {
	version, cached, err := r.initialSharedVersion(ctx, id)
	if err != nil {
		return types.ObjectInput{}, err
	}

	r.logger.Debug().
		Stringer(logging.FieldObjectId, id).
		Uint64(logging.FieldSharedVersion, version).
		Bool("mutable", mutable).
		Bool("cached", cached).
		Msg("Resolved shared object")
	return types.SharedInput(id, version, mutable), nil
}

func (r *Resolver) initialSharedVersion(ctx context.Context, id types.ObjectId) (uint64, bool, error) {
	load := func(ctx context.Context) (uint64, error) {
		info, err := r.GetObject(ctx, id, types.MaskShared)
		if err != nil {
			return 0, err
		}
		version, ok := info.Owner.SharedVersion()
		if !ok {
			return 0, fmt.Errorf("%w: object %s is %s, not shared", types.ErrInvalidInput, id, info.Owner)
		}
		return version, nil
	}

	if r.cache == nil {
		v, err := load(ctx)
		return v, false, err
	}
	return r.cache.getOrLoad(ctx, id, load)
}
