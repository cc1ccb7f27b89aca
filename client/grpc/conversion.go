package grpc

import (
	"encoding/base64"
	"fmt"

	"github.com/NilFoundation/suiflow/client"
	"github.com/NilFoundation/suiflow/core/crypto"
	"github.com/NilFoundation/suiflow/core/types"
	"google.golang.org/protobuf/types/known/fieldmaskpb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	transactionBcsName = "TransactionData"
	signatureBcsName   = "UserSignatureBytes"
)

type (
	objectMsg                  struct{ message }
	ownerMsg                   struct{ message }
	getObjectRequest           struct{ message }
	getEpochRequest            struct{ message }
	listOwnedObjectsRequest    struct{ message }
	listOwnedObjectsResponse   struct{ message }
	executeTransactionRequest  struct{ message }
	executeTransactionResponse struct{ message }
)

func newObjectMsg() objectMsg { return objectMsg{newMessage("Object")} }

func newGetObjectRequest() getObjectRequest { return getObjectRequest{newMessage("GetObjectRequest")} }

func newGetEpochRequest() getEpochRequest { return getEpochRequest{newMessage("GetEpochRequest")} }

func newListOwnedObjectsRequest() listOwnedObjectsRequest {
	return listOwnedObjectsRequest{newMessage("ListOwnedObjectsRequest")}
}

func newListOwnedObjectsResponse() listOwnedObjectsResponse {
	return listOwnedObjectsResponse{newMessage("ListOwnedObjectsResponse")}
}

func newExecuteTransactionRequest() executeTransactionRequest {
	return executeTransactionRequest{newMessage("ExecuteTransactionRequest")}
}

func newExecuteTransactionResponse() executeTransactionResponse {
	return executeTransactionResponse{newMessage("ExecuteTransactionResponse")}
}

func (m message) setFieldMask(name string, paths []string) error {
	return m.setProto(name, &fieldmaskpb.FieldMask{Paths: paths})
}

func (m message) getFieldMask(name string) ([]string, error) {
	mask := &fieldmaskpb.FieldMask{}
	if _, err := m.getProto(name, mask); err != nil {
		return nil, err
	}
	return mask.GetPaths(), nil
}

func (m getObjectRequest) PackProtoMessage(id types.ObjectId, mask types.ReadMask) error {
	m.setString("object_id", id.Hex())
	return m.setFieldMask("read_mask", mask.Paths())
}

func (m getEpochRequest) PackProtoMessage() error {
	return m.setFieldMask("read_mask", []string{"epoch", "reference_gas_price"})
}

func (m objectMsg) UnpackProtoMessage() (*types.ObjectInfo, error) {
	info := &types.ObjectInfo{}
	if s, ok := m.getString("object_id"); ok {
		id, err := types.ParseAddress(s)
		if err != nil {
			return nil, err
		}
		info.ObjectId = id
		info.Present |= types.FieldObjectId
	}
	if v, ok := m.getUint("version"); ok {
		info.Version = v
		info.Present |= types.FieldVersion
	}
	if s, ok := m.getString("digest"); ok {
		d, err := types.ParseDigest(s)
		if err != nil {
			return nil, err
		}
		info.Digest = d
		info.Present |= types.FieldDigest
	}
	if sub, ok := m.getMessage("owner"); ok {
		owner, err := ownerMsg{sub}.UnpackProtoMessage()
		if err != nil {
			return nil, err
		}
		info.Owner = owner
		info.Present |= types.FieldOwner
	}
	if s, ok := m.getString("object_type"); ok {
		info.ObjectType = s
		info.Present |= types.FieldObjectType
	}
	if v, ok := m.getUint("balance"); ok {
		info.Balance = v
		info.Present |= types.FieldBalance
	}
	json := &structpb.Value{}
	ok, err := m.getProto("json", json)
	if err != nil {
		return nil, err
	}
	if ok {
		if fields, isMap := json.AsInterface().(map[string]any); isMap {
			info.Contents = fields
		}
		info.Present |= types.FieldContents
	}
	return info, nil
}

func (m objectMsg) PackProtoMessage(info *types.ObjectInfo) error {
	if info.Present.Has(types.FieldObjectId) {
		m.setString("object_id", info.ObjectId.Hex())
	}
	if info.Present.Has(types.FieldVersion) {
		m.setUint("version", info.Version)
	}
	if info.Present.Has(types.FieldDigest) {
		m.setString("digest", info.Digest.String())
	}
	if info.Present.Has(types.FieldOwner) {
		ownerMsg{m.mutable("owner")}.PackProtoMessage(info.Owner)
	}
	if info.Present.Has(types.FieldObjectType) {
		m.setString("object_type", info.ObjectType)
	}
	if info.Present.Has(types.FieldBalance) {
		m.setUint("balance", info.Balance)
	}
	if info.Present.Has(types.FieldContents) {
		v, err := structpb.NewValue(info.Contents)
		if err != nil {
			return err
		}
		return m.setProto("json", v)
	}
	return nil
}

func (m ownerMsg) UnpackProtoMessage() (types.Owner, error) {
	var owner types.Owner
	if kind, ok := m.getUint("kind"); ok {
		if kind > uint64(types.OwnerConsensusAddress) {
			return owner, fmt.Errorf("%w: owner kind %d", types.ErrInvalidInput, kind)
		}
		owner.Kind = types.OwnerKind(kind)
	}
	if s, ok := m.getString("address"); ok {
		addr, err := types.ParseAddress(s)
		if err != nil {
			return owner, err
		}
		owner.Address = addr
	}
	if v, ok := m.getUint("version"); ok {
		owner.Version = v
	}
	return owner, nil
}

func (m ownerMsg) PackProtoMessage(owner types.Owner) {
	m.setUint("kind", uint64(owner.Kind))
	switch owner.Kind {
	case types.OwnerAddress, types.OwnerObject, types.OwnerConsensusAddress:
		m.setString("address", owner.Address.Hex())
	}
	if _, ok := owner.SharedVersion(); ok {
		m.setUint("version", owner.Version)
	}
}

func (m listOwnedObjectsRequest) PackProtoMessage(req *client.ListOwnedRequest) error {
	m.setString("owner", req.Owner.Hex())
	if req.PageSize > 0 {
		m.setUint("page_size", uint64(req.PageSize))
	}
	if req.PageToken != "" {
		token, err := base64.StdEncoding.DecodeString(req.PageToken)
		if err != nil {
			return fmt.Errorf("%w: page token: %w", types.ErrInvalidInput, err)
		}
		m.setBytes("page_token", token)
	}
	if req.ObjectType != "" {
		m.setString("object_type", req.ObjectType)
	}
	return m.setFieldMask("read_mask", req.Mask.Paths())
}

func (m listOwnedObjectsResponse) UnpackProtoMessage() (*client.ObjectPage, error) {
	objects := m.list("objects")
	page := &client.ObjectPage{Objects: make([]*types.ObjectInfo, 0, len(objects))}
	for _, o := range objects {
		info, err := objectMsg{o}.UnpackProtoMessage()
		if err != nil {
			return nil, err
		}
		page.Objects = append(page.Objects, info)
	}
	if token := m.getBytes("next_page_token"); len(token) > 0 {
		page.NextPageToken = base64.StdEncoding.EncodeToString(token)
	}
	return page, nil
}

func (m listOwnedObjectsResponse) PackProtoMessage(objects []*types.ObjectInfo, nextPageToken []byte) error {
	for _, info := range objects {
		if err := (objectMsg{m.appendMessage("objects")}).PackProtoMessage(info); err != nil {
			return err
		}
	}
	if len(nextPageToken) > 0 {
		m.setBytes("next_page_token", nextPageToken)
	}
	return nil
}

func (m executeTransactionRequest) PackProtoMessage(txBytes []byte, signatures []crypto.Signature) error {
	bcs := m.mutable("transaction").mutable("bcs")
	bcs.setString("name", transactionBcsName)
	bcs.setBytes("value", txBytes)
	for _, sig := range signatures {
		sigBcs := m.appendMessage("signatures").mutable("bcs")
		sigBcs.setString("name", signatureBcsName)
		sigBcs.setBytes("value", sig.Bytes())
	}
	return m.setFieldMask("read_mask", []string{"digest", "effects.digest", "effects.status"})
}

// UnpackProtoMessage turns a failed execution status into an *client.ExecutionError.
func (m executeTransactionResponse) UnpackProtoMessage() (*client.ExecutionResult, error) {
	tx, ok := m.getMessage("transaction")
	if !ok {
		return nil, fmt.Errorf("%w: execute response without transaction", types.ErrIncompleteResponse)
	}
	s, ok := tx.getString("digest")
	if !ok {
		return nil, fmt.Errorf("%w: execute response without transaction digest", types.ErrIncompleteResponse)
	}
	digest, err := types.ParseDigest(s)
	if err != nil {
		return nil, err
	}
	result := &client.ExecutionResult{Digest: digest}

	effects, ok := tx.getMessage("effects")
	if !ok {
		return result, nil
	}
	if s, ok := effects.getString("digest"); ok {
		if result.EffectsDigest, err = types.ParseDigest(s); err != nil {
			return nil, err
		}
	}
	status, ok := effects.getMessage("status")
	if !ok {
		return result, nil
	}
	if success, ok := status.getBool("success"); ok && !success {
		reason := "execution failed"
		if execErr, ok := status.getMessage("error"); ok {
			if description, ok := execErr.getString("description"); ok {
				reason = description
			}
		}
		return nil, &client.ExecutionError{Digest: digest, Reason: reason}
	}
	return result, nil
}
