package rpc

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"

	"github.com/NilFoundation/suiflow/client"
	"github.com/NilFoundation/suiflow/core/crypto"
	"github.com/NilFoundation/suiflow/core/types"
	jsoniter "github.com/json-iterator/go"
)

// objectOptions selects which object fields the node returns.
type objectOptions struct {
	ShowType    bool `json:"showType"`
	ShowOwner   bool `json:"showOwner"`
	ShowContent bool `json:"showContent"`
}

func optionsFor(mask types.ReadMask) objectOptions {
	return objectOptions{
		ShowType:    mask.Has(types.FieldObjectType) || mask.Has(types.FieldBalance),
		ShowOwner:   mask.Has(types.FieldOwner),
		ShowContent: mask.Has(types.FieldBalance) || mask.Has(types.FieldContents),
	}
}

type objectResponse struct {
	Data  *objectData  `json:"data"`
	Error *objectError `json:"error"`
}

type objectError struct {
	Code     string `json:"code"`
	ObjectId string `json:"object_id"`
}

type objectData struct {
	ObjectId *string             `json:"objectId"`
	Version  *string             `json:"version"`
	Digest   *string             `json:"digest"`
	Type     *string             `json:"type"`
	Owner    jsoniter.RawMessage `json:"owner"`
	Content  *struct {
		Fields map[string]any `json:"fields"`
	} `json:"content"`
}

func (d *objectData) toObjectInfo(mask types.ReadMask) (*types.ObjectInfo, error) {
	info := &types.ObjectInfo{}
	if d.ObjectId != nil {
		id, err := types.ParseAddress(*d.ObjectId)
		if err != nil {
			return nil, err
		}
		info.ObjectId = id
		info.Present |= types.FieldObjectId
	}
	if d.Version != nil {
		v, err := strconv.ParseUint(*d.Version, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: version %q: %w", types.ErrInvalidInput, *d.Version, err)
		}
		info.Version = v
		info.Present |= types.FieldVersion
	}
	if d.Digest != nil {
		digest, err := types.ParseDigest(*d.Digest)
		if err != nil {
			return nil, err
		}
		info.Digest = digest
		info.Present |= types.FieldDigest
	}
	if d.Type != nil {
		info.ObjectType = *d.Type
		info.Present |= types.FieldObjectType
	}
	if len(d.Owner) > 0 && string(d.Owner) != "null" {
		owner, err := parseOwner(d.Owner)
		if err != nil {
			return nil, err
		}
		info.Owner = owner
		info.Present |= types.FieldOwner
	}
	if d.Content != nil {
		info.Contents = d.Content.Fields
		if mask.Has(types.FieldContents) {
			info.Present |= types.FieldContents
		}
		if balance, ok := d.Content.Fields["balance"].(string); ok {
			if _, isCoin := types.CoinType(info.ObjectType); isCoin {
				v, err := strconv.ParseUint(balance, 10, 64)
				if err != nil {
					return nil, fmt.Errorf("%w: balance %q: %w", types.ErrInvalidInput, balance, err)
				}
				info.Balance = v
				info.Present |= types.FieldBalance
			}
		}
	}
	return info, nil
}

// parseOwner reads the externally tagged owner enum:
// "Immutable", {"AddressOwner": "0x.."}, {"ObjectOwner": "0x.."},
// {"Shared": {"initial_shared_version": n}} or
// {"ConsensusAddressOwner": {"owner": "0x..", "start_version": n}}.
func parseOwner(raw jsoniter.RawMessage) (types.Owner, error) {
	var tag string
	if err := jsoniter.Unmarshal(raw, &tag); err == nil {
		if tag == "Immutable" {
			return types.Owner{Kind: types.OwnerImmutable}, nil
		}
		return types.Owner{}, fmt.Errorf("%w: owner %q", types.ErrInvalidInput, tag)
	}

	var tagged struct {
		AddressOwner *string `json:"AddressOwner"`
		ObjectOwner  *string `json:"ObjectOwner"`
		Shared       *struct {
			InitialSharedVersion uint64 `json:"initial_shared_version"`
		} `json:"Shared"`
		ConsensusAddressOwner *struct {
			Owner        string `json:"owner"`
			StartVersion uint64 `json:"start_version"`
		} `json:"ConsensusAddressOwner"`
	}
	if err := jsoniter.Unmarshal(raw, &tagged); err != nil {
		return types.Owner{}, fmt.Errorf("%w: owner: %w", types.ErrInvalidInput, err)
	}

	switch {
	case tagged.AddressOwner != nil:
		addr, err := types.ParseAddress(*tagged.AddressOwner)
		return types.Owner{Kind: types.OwnerAddress, Address: addr}, err
	case tagged.ObjectOwner != nil:
		addr, err := types.ParseAddress(*tagged.ObjectOwner)
		return types.Owner{Kind: types.OwnerObject, Address: addr}, err
	case tagged.Shared != nil:
		return types.Owner{Kind: types.OwnerShared, Version: tagged.Shared.InitialSharedVersion}, nil
	case tagged.ConsensusAddressOwner != nil:
		addr, err := types.ParseAddress(tagged.ConsensusAddressOwner.Owner)
		return types.Owner{
			Kind:    types.OwnerConsensusAddress,
			Address: addr,
			Version: tagged.ConsensusAddressOwner.StartVersion,
		}, err
	default:
		return types.Owner{}, fmt.Errorf("%w: unknown owner %s", types.ErrInvalidInput, raw)
	}
}

func (c *Client) GetObject(ctx context.Context, id types.ObjectId, mask types.ReadMask) (*types.ObjectInfo, error) {
	raw, err := c.call(ctx, Sui_getObject, id.Hex(), optionsFor(mask))
	if err != nil {
		return nil, asTransportError(err)
	}

	var resp objectResponse
	if err := jsoniter.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w: %w", client.ErrTransport, ErrFailedToUnmarshalResponse, err)
	}
	if resp.Error != nil {
		if resp.Error.Code == "notExists" || resp.Error.Code == "deleted" {
			return nil, fmt.Errorf("%w: %s (%s)", types.ErrNotFound, id, resp.Error.Code)
		}
		return nil, fmt.Errorf("%w: object %s: %s", client.ErrTransport, id, resp.Error.Code)
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("%w: no object data for %s", types.ErrIncompleteResponse, id)
	}
	return resp.Data.toObjectInfo(mask)
}

func (c *Client) ListOwnedObjects(ctx context.Context, req *client.ListOwnedRequest) (*client.ObjectPage, error) {
	query := map[string]any{"options": optionsFor(req.Mask)}
	if req.ObjectType != "" {
		query["filter"] = map[string]string{"StructType": req.ObjectType}
	}
	var cursor any
	if req.PageToken != "" {
		cursor = req.PageToken
	}
	var limit any
	if req.PageSize > 0 {
		limit = req.PageSize
	}

	raw, err := c.call(ctx, Suix_getOwnedObjects, req.Owner.Hex(), query, cursor, limit)
	if err != nil {
		return nil, asTransportError(err)
	}

	var resp struct {
		Data        []objectResponse `json:"data"`
		NextCursor  *string          `json:"nextCursor"`
		HasNextPage bool             `json:"hasNextPage"`
	}
	if err := jsoniter.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w: %w", client.ErrTransport, ErrFailedToUnmarshalResponse, err)
	}

	page := &client.ObjectPage{Objects: make([]*types.ObjectInfo, 0, len(resp.Data))}
	for _, item := range resp.Data {
		if item.Data == nil {
			continue
		}
		info, err := item.Data.toObjectInfo(req.Mask)
		if err != nil {
			return nil, err
		}
		page.Objects = append(page.Objects, info)
	}
	if resp.HasNextPage && resp.NextCursor != nil {
		page.NextPageToken = *resp.NextCursor
	}
	return page, nil
}

func (c *Client) ReferenceGasPrice(ctx context.Context) (uint64, error) {
	raw, err := c.call(ctx, Suix_getReferenceGasPrice)
	if err != nil {
		return 0, asTransportError(err)
	}
	return toUint64(raw)
}

func toUint64(raw jsoniter.RawMessage) (uint64, error) {
	var s string
	if err := jsoniter.Unmarshal(raw, &s); err != nil {
		var n uint64
		if err := jsoniter.Unmarshal(raw, &n); err != nil {
			return 0, fmt.Errorf("%w: %w: %w", client.ErrTransport, ErrFailedToUnmarshalResponse, err)
		}
		return n, nil
	}
	return strconv.ParseUint(s, 10, 64)
}

type executeOptions struct {
	ShowEffects bool `json:"showEffects"`
}

func (c *Client) ExecuteTransaction(
	ctx context.Context, txBytes []byte, signatures []crypto.Signature,
) (*client.ExecutionResult, error) {
	sigs := make([]string, len(signatures))
	for i, sig := range signatures {
		sigs[i] = sig.Base64()
	}

	raw, err := c.call(ctx, Sui_executeTransactionBlock,
		base64.StdEncoding.EncodeToString(txBytes), sigs, executeOptions{ShowEffects: true}, executeWaitForLocalExecution)
	if err != nil {
		var rpcErr *RPCError
		if errors.As(err, &rpcErr) {
			return nil, &client.ExecutionError{Reason: rpcErr.Message}
		}
		return nil, asTransportError(err)
	}

	var resp struct {
		Digest  string `json:"digest"`
		Effects *struct {
			Status struct {
				Status string `json:"status"`
				Error  string `json:"error"`
			} `json:"status"`
		} `json:"effects"`
	}
	if err := jsoniter.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w: %w", client.ErrTransport, ErrFailedToUnmarshalResponse, err)
	}
	digest, err := types.ParseDigest(resp.Digest)
	if err != nil {
		return nil, fmt.Errorf("%w: transaction digest: %w", types.ErrIncompleteResponse, err)
	}
	if resp.Effects != nil && resp.Effects.Status.Status == "failure" {
		return nil, &client.ExecutionError{Digest: digest, Reason: resp.Effects.Status.Error}
	}
	return &client.ExecutionResult{Digest: digest}, nil
}
