package types

import (
	"fmt"
	"strings"

	"github.com/NilFoundation/suiflow/common/check"
)

// TypeTagKind values are the BCS variant indices.
type TypeTagKind uint8

const (
	TagBool TypeTagKind = iota
	TagU8
	TagU64
	TagU128
	TagAddress
	TagSigner
	TagVector
	TagStruct
	TagU16
	TagU32
	TagU256
)

var primitiveTags = map[string]TypeTagKind{
	"bool":    TagBool,
	"u8":      TagU8,
	"u16":     TagU16,
	"u32":     TagU32,
	"u64":     TagU64,
	"u128":    TagU128,
	"u256":    TagU256,
	"address": TagAddress,
	"signer":  TagSigner,
}

// TypeTag is a Move type used as a type argument.
type TypeTag struct {
	Kind   TypeTagKind
	Elem   *TypeTag
	Struct *StructTag
}

type StructTag struct {
	Address    Address
	Module     string
	Name       string
	TypeParams []TypeTag
}

var (
	SuiCoinType = MustParseTypeTag("0x2::sui::SUI")
	coinStruct  = StructTag{Address: FrameworkAddress, Module: "coin", Name: "Coin"}
)

// IsValidIdentifier reports whether s is a Move identifier.
func IsValidIdentifier(s string) bool {
	if s == "" || s == "_" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// ParseTypeTag parses "u64", "vector<u8>" or "0x2::coin::Coin<0x2::sui::SUI>".
func ParseTypeTag(s string) (TypeTag, error) {
	s = strings.TrimSpace(s)
	if kind, ok := primitiveTags[s]; ok {
		return TypeTag{Kind: kind}, nil
	}
	if inner, ok := strings.CutPrefix(s, "vector<"); ok {
		if !strings.HasSuffix(inner, ">") {
			return TypeTag{}, fmt.Errorf("%w: unterminated vector type %q", ErrInvalidInput, s)
		}
		elem, err := ParseTypeTag(inner[:len(inner)-1])
		if err != nil {
			return TypeTag{}, err
		}
		return TypeTag{Kind: TagVector, Elem: &elem}, nil
	}
	st, err := ParseStructTag(s)
	if err != nil {
		return TypeTag{}, err
	}
	return TypeTag{Kind: TagStruct, Struct: &st}, nil
}

func MustParseTypeTag(s string) TypeTag {
	t, err := ParseTypeTag(s)
	check.PanicIfErr(err)
	return t
}

func ParseStructTag(s string) (StructTag, error) {
	s = strings.TrimSpace(s)
	head, params := s, ""
	if i := strings.IndexByte(s, '<'); i >= 0 {
		if !strings.HasSuffix(s, ">") {
			return StructTag{}, fmt.Errorf("%w: unterminated type parameters in %q", ErrInvalidInput, s)
		}
		head, params = s[:i], s[i+1:len(s)-1]
	}

	parts := strings.Split(head, "::")
	if len(parts) != 3 {
		return StructTag{}, fmt.Errorf("%w: struct type %q must be address::module::Name", ErrInvalidInput, s)
	}
	addr, err := ParseAddress(parts[0])
	if err != nil {
		return StructTag{}, err
	}
	if !IsValidIdentifier(parts[1]) || !IsValidIdentifier(parts[2]) {
		return StructTag{}, fmt.Errorf("%w: bad identifier in %q", ErrInvalidInput, s)
	}

	tag := StructTag{Address: addr, Module: parts[1], Name: parts[2]}
	if params == "" {
		return tag, nil
	}
	for _, p := range splitTopLevel(params) {
		param, err := ParseTypeTag(p)
		if err != nil {
			return StructTag{}, err
		}
		tag.TypeParams = append(tag.TypeParams, param)
	}
	return tag, nil
}

// splitTopLevel splits on commas that are not nested inside angle brackets.
func splitTopLevel(s string) []string {
	var out []string
	depth, start := 0, 0
	for i, c := range s {
		switch c {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	return append(out, s[start:])
}

func (t TypeTag) String() string {
	switch t.Kind {
	case TagVector:
		return "vector<" + t.Elem.String() + ">"
	case TagStruct:
		return t.Struct.String()
	}
	for name, kind := range primitiveTags {
		if kind == t.Kind {
			return name
		}
	}
	return fmt.Sprintf("TypeTag(%d)", uint8(t.Kind))
}

func (t TypeTag) Equal(other TypeTag) bool {
	return t.String() == other.String()
}

func (t TypeTag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TypeTag) UnmarshalText(input []byte) error {
	parsed, err := ParseTypeTag(string(input))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// String uses the short address form, as the ledger prints types.
func (s StructTag) String() string {
	var sb strings.Builder
	sb.WriteString(s.Address.ShortHex())
	sb.WriteString("::")
	sb.WriteString(s.Module)
	sb.WriteString("::")
	sb.WriteString(s.Name)
	if len(s.TypeParams) > 0 {
		sb.WriteByte('<')
		for i, p := range s.TypeParams {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.String())
		}
		sb.WriteByte('>')
	}
	return sb.String()
}

// CoinType extracts T from an object type 0x2::coin::Coin<T>.
func CoinType(objectType string) (TypeTag, bool) {
	st, err := ParseStructTag(objectType)
	if err != nil || len(st.TypeParams) != 1 {
		return TypeTag{}, false
	}
	if st.Address != coinStruct.Address || st.Module != coinStruct.Module || st.Name != coinStruct.Name {
		return TypeTag{}, false
	}
	return st.TypeParams[0], true
}

// CoinObjectType returns 0x2::coin::Coin<coinType>.
func CoinObjectType(coinType TypeTag) string {
	st := coinStruct
	st.TypeParams = []TypeTag{coinType}
	return st.String()
}
