package input

import (
	"fmt"
	"strings"
)

// Kind identifies a key processor variant.
type Kind uint8

const (
	KindVi Kind = iota
	KindNormal
)

// String returns the configuration name of the kind.
func (k Kind) String() string {
	switch k {
	case KindVi:
		return "vi"
	case KindNormal:
		return "normal"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// ParseKind parses a processor name. The empty string selects vi.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "vi", "vim":
		return KindVi, nil
	case "normal", "plain":
		return KindNormal, nil
	}
	return KindVi, fmt.Errorf("unknown key processor %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
