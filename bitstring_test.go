package biovault

import (
	"encoding/json"
	"errors"
	"math/big"
	"testing"
)

func TestBitString_Encodings(t *testing.T) {
	b, err := ParseBitString("1011000001")
	if err != nil {
		t.Fatalf("ParseBitString() error = %v", err)
	}

	if b.Len() != 10 {
		t.Errorf("Len() = %d, want 10", b.Len())
	}
	if got := b.String(); got != "1011000001" {
		t.Errorf("String() = %s", got)
	}
	if got := b.Int(); got.Cmp(big.NewInt(0b1011000001)) != 0 {
		t.Errorf("Int() = %v, want %d", got, 0b1011000001)
	}
	if got := b.Bytes(); got[0] != 0xb0 || got[1] != 0x40 {
		t.Errorf("Bytes() = %x, want b040", got)
	}
	if !b.Bit(0) || b.Bit(1) || !b.Bit(9) {
		t.Error("Bit() disagrees with String()")
	}
}

func TestBitString_Base64RoundTrip(t *testing.T) {
	b, _ := ParseBitString("110010101111000011")

	got, err := BitStringFromBase64URL(b.Base64URL(), b.Len())
	if err != nil {
		t.Fatalf("BitStringFromBase64URL() error = %v", err)
	}
	if !got.Equal(b) {
		t.Errorf("round trip = %s, want %s", got, b)
	}

	if _, err := BitStringFromBase64URL(b.Base64URL(), 30); !errors.Is(err, ErrInvalidImportData) {
		t.Errorf("wrong length error = %v, want ErrInvalidImportData", err)
	}
	if _, err := BitStringFromBase64URL("_w", 4); !errors.Is(err, ErrInvalidImportData) {
		t.Errorf("nonzero padding error = %v, want ErrInvalidImportData", err)
	}
}

func TestBitString_IntRoundTrip(t *testing.T) {
	b, _ := ParseBitString("0001011")

	got, err := BitStringFromInt(b.Int(), 7)
	if err != nil {
		t.Fatalf("BitStringFromInt() error = %v", err)
	}
	if !got.Equal(b) {
		t.Errorf("round trip = %s, want %s", got, b)
	}

	if _, err := BitStringFromInt(big.NewInt(256), 8); !errors.Is(err, ErrInvalidImportData) {
		t.Errorf("overflow error = %v, want ErrInvalidImportData", err)
	}
	if _, err := BitStringFromInt(nil, 8); !errors.Is(err, ErrInvalidImportData) {
		t.Errorf("nil error = %v, want ErrInvalidImportData", err)
	}
}

func TestBitString_BitOutOfRange(t *testing.T) {
	b, _ := ParseBitString("101")
	for _, i := range []int{-1, 3, 8} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Bit(%d) did not panic", i)
				}
			}()
			b.Bit(i)
		}()
	}
}

func TestBitString_JSON(t *testing.T) {
	b, _ := ParseBitString("0110")
	data, err := json.Marshal(struct{ H BitString }{b})
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if string(data) != `{"H":"0110"}` {
		t.Errorf("json = %s", data)
	}

	var out struct{ H BitString }
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if !out.H.Equal(b) {
		t.Errorf("decoded %s, want %s", out.H, b)
	}
}

func TestParseBitString_Invalid(t *testing.T) {
	if _, err := ParseBitString("0102"); !errors.Is(err, ErrInvalidImportData) {
		t.Errorf("ParseBitString() error = %v, want ErrInvalidImportData", err)
	}
}

func TestHammingDistance(t *testing.T) {
	a, _ := ParseBitString("110011001")
	b, _ := ParseBitString("100011011")

	d, err := HammingDistance(a, b)
	if err != nil {
		t.Fatalf("HammingDistance() error = %v", err)
	}
	if d != 2 {
		t.Errorf("HammingDistance() = %d, want 2", d)
	}

	short, _ := ParseBitString("1100")
	if _, err := HammingDistance(a, short); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("HammingDistance() error = %v, want ErrLengthMismatch", err)
	}
}
