package types

import (
	"fmt"
	"strings"
)

// ObjectRef pins an owned object to one version. Refs go stale after every
// transaction touching the object, so they are fetched right before use.
type ObjectRef struct {
	ObjectId ObjectId `yaml:"objectId"`
	Version  uint64   `yaml:"version"`
	Digest   Digest   `yaml:"digest"`
}

func (r ObjectRef) String() string {
	return fmt.Sprintf("%s@%d", r.ObjectId.ShortHex(), r.Version)
}

type OwnerKind uint8

const (
	OwnerUnknown OwnerKind = iota
	OwnerAddress
	OwnerObject
	OwnerShared
	OwnerImmutable
	OwnerConsensusAddress
)

var ownerKindNames = map[OwnerKind]string{
	OwnerUnknown:          "Unknown",
	OwnerAddress:          "Address",
	OwnerObject:           "Object",
	OwnerShared:           "Shared",
	OwnerImmutable:        "Immutable",
	OwnerConsensusAddress: "ConsensusAddress",
}

func (k OwnerKind) String() string {
	if name, ok := ownerKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("OwnerKind(%d)", uint8(k))
}

func (k OwnerKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Owner classifies who may use an object. Version is the initial shared
// version for shared objects and the start version for consensus-address objects.
type Owner struct {
	Kind    OwnerKind `yaml:"kind"`
	Address Address   `yaml:"address,omitempty"`
	Version uint64    `yaml:"version,omitempty"`
}

// SharedVersion returns the version to put into a shared object input.
func (o Owner) SharedVersion() (uint64, bool) {
	switch o.Kind {
	case OwnerShared, OwnerConsensusAddress:
		return o.Version, true
	default:
		return 0, false
	}
}

func (o Owner) String() string {
	switch o.Kind {
	case OwnerAddress, OwnerObject:
		return fmt.Sprintf("%s(%s)", o.Kind, o.Address.ShortHex())
	case OwnerShared:
		return fmt.Sprintf("Shared(initial_shared_version=%d)", o.Version)
	case OwnerConsensusAddress:
		return fmt.Sprintf("ConsensusAddress(%s, start_version=%d)", o.Address.ShortHex(), o.Version)
	default:
		return o.Kind.String()
	}
}

// ReadMask is the set of object fields a caller needs from the remote.
type ReadMask uint16

const (
	FieldObjectId ReadMask = 1 << iota
	FieldVersion
	FieldDigest
	FieldOwner
	FieldObjectType
	FieldBalance
	FieldContents
)

const (
	// MaskRef covers what an owned input needs.
	MaskRef = FieldObjectId | FieldVersion | FieldDigest
	// MaskShared covers what a shared input needs.
	MaskShared  = FieldObjectId | FieldVersion | FieldOwner
	MaskSummary = MaskRef | FieldOwner | FieldObjectType
	MaskCoin    = MaskRef | FieldObjectType | FieldBalance
	MaskAll     = MaskSummary | FieldBalance | FieldContents
)

var readMaskPaths = []struct {
	field ReadMask
	path  string
}{
	{FieldObjectId, "object_id"},
	{FieldVersion, "version"},
	{FieldDigest, "digest"},
	{FieldOwner, "owner"},
	{FieldObjectType, "object_type"},
	{FieldBalance, "balance"},
	{FieldContents, "json"},
}

func (m ReadMask) Has(f ReadMask) bool {
	return m&f == f
}

// Paths lists the remote field names in the mask.
func (m ReadMask) Paths() []string {
	paths := make([]string, 0, len(readMaskPaths))
	for _, p := range readMaskPaths {
		if m.Has(p.field) {
			paths = append(paths, p.path)
		}
	}
	return paths
}

// ParseReadMask accepts remote field names, "ref", "summary" and "all".
func ParseReadMask(names []string) (ReadMask, error) {
	var m ReadMask
	for _, name := range names {
		switch name = strings.TrimSpace(name); name {
		case "ref":
			m |= MaskRef
		case "summary":
			m |= MaskSummary
		case "all":
			m |= MaskAll
		default:
			found := false
			for _, p := range readMaskPaths {
				if p.path == name {
					m |= p.field
					found = true
				}
			}
			if !found {
				return 0, fmt.Errorf("%w: unknown object field %q", ErrInvalidInput, name)
			}
		}
	}
	return m, nil
}

func (m ReadMask) String() string {
	return strings.Join(m.Paths(), ",")
}

// ObjectInfo is the resolved state of one object. Present records which
// fields the remote actually returned.
type ObjectInfo struct {
	ObjectId   ObjectId       `yaml:"objectId"`
	Version    uint64         `yaml:"version"`
	Digest     Digest         `yaml:"digest"`
	Owner      Owner          `yaml:"owner"`
	ObjectType string         `yaml:"type,omitempty"`
	Balance    uint64         `yaml:"balance,omitempty"`
	Contents   map[string]any `yaml:"contents,omitempty"`
	Present    ReadMask       `yaml:"-"`
}

// Require fails with ErrIncompleteResponse when a field of mask was not returned.
func (o *ObjectInfo) Require(mask ReadMask) error {
	missing := mask &^ o.Present
	if missing == 0 {
		return nil
	}
	return fmt.Errorf("%w: object %s lacks %s", ErrIncompleteResponse, o.ObjectId, missing)
}

func (o *ObjectInfo) Ref() ObjectRef {
	return ObjectRef{ObjectId: o.ObjectId, Version: o.Version, Digest: o.Digest}
}
