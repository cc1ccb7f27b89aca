package types

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/NilFoundation/suiflow/common/check"
)

const AddrSize = 32

// Address is a 32-byte account address or object id.
type Address [AddrSize]byte

// ObjectId shares the address space.
type ObjectId = Address

var (
	EmptyAddress = Address{}

	MoveStdlibAddress = MustParseAddress("0x1")
	FrameworkAddress  = MustParseAddress("0x2")
	ClockObjectId     = MustParseAddress("0x6")
)

// BytesToAddress returns Address with value b.
// If b is larger than len(a), b will be cropped from the left.
func BytesToAddress(b []byte) Address {
	var a Address
	a.SetBytes(b)
	return a
}

// ParseAddress accepts a hex string with or without the 0x prefix.
// Short forms are left-padded with zeros, so "0x6" is the clock object.
func ParseAddress(s string) (Address, error) {
	raw := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if raw == "" || len(raw) > 2*AddrSize {
		return Address{}, fmt.Errorf("%w: address %q must have 1 to %d hex digits", ErrInvalidInput, s, 2*AddrSize)
	}
	if len(raw)%2 == 1 {
		raw = "0" + raw
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return Address{}, fmt.Errorf("%w: address %q: %w", ErrInvalidInput, s, err)
	}
	return BytesToAddress(b), nil
}

func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	check.PanicIfErr(err)
	return a
}

func (a Address) Bytes() []byte { return a[:] }

// Hex returns the full 0x-prefixed lowercase form.
func (a Address) Hex() string {
	var buf [len(a)*2 + 2]byte
	copy(buf[:2], "0x")
	hex.Encode(buf[2:], a[:])
	return string(buf[:])
}

// ShortHex trims leading zeros, the form used for framework addresses.
func (a Address) ShortHex() string {
	s := strings.TrimLeft(hex.EncodeToString(a[:]), "0")
	if s == "" {
		s = "0"
	}
	return "0x" + s
}

func (a Address) String() string {
	return a.Hex()
}

func (a Address) IsEmpty() bool {
	return a == EmptyAddress
}

// SetBytes sets the address to the value of b.
// If b is larger than len(a), b will be cropped from the left.
func (a *Address) SetBytes(b []byte) {
	if len(b) > len(a) {
		b = b[len(b)-AddrSize:]
	}
	*a = Address{}
	copy(a[AddrSize-len(b):], b)
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.Hex()), nil
}

func (a *Address) UnmarshalText(input []byte) error {
	parsed, err := ParseAddress(string(input))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Set implements pflag.Value.
func (a *Address) Set(s string) error {
	return a.UnmarshalText([]byte(s))
}

// Type implements pflag.Value.
func (a *Address) Type() string {
	return "Address"
}
