package register

import "testing"

func TestNewPowerUpState(t *testing.T) {
	f := New()
	cases := []struct {
		w    WordReg
		want uint16
	}{
		{AF, 0x01B0},
		{BC, 0x0013},
		{DE, 0x00D8},
		{HL, 0x014D},
		{SP, 0xFFFE},
		{PC, 0x0100},
	}
	for _, c := range cases {
		if got := f.ReadWord(c.w); got != c.want {
			t.Errorf("ReadWord(%v) = %#04x, want %#04x", c.w, got, c.want)
		}
	}
}

func TestWriteWordReadsBothHalves(t *testing.T) {
	f := New()
	f.WriteWord(BC, 0x1234)
	if got := f.ReadByte(B); got != 0x12 {
		t.Errorf("B = %#02x, want 0x12", got)
	}
	if got := f.ReadByte(C); got != 0x34 {
		t.Errorf("C = %#02x, want 0x34", got)
	}
}

func TestWriteByteUpdatesWord(t *testing.T) {
	f := New()
	f.WriteByte(B, 0xAB)
	f.WriteByte(C, 0xCD)
	if got := f.ReadWord(BC); got != 0xABCD {
		t.Errorf("ReadWord(BC) = %#04x, want 0xabcd", got)
	}
}

func TestFMasksLowNibble(t *testing.T) {
	f := New()
	f.WriteByte(F, 0xFF)
	if got := f.ReadByte(F); got != 0xF0 {
		t.Errorf("F = %#02x, want 0xf0", got)
	}
	f.WriteWord(AF, 0x0001)
	if got := f.ReadByte(F); got != 0x00 {
		t.Errorf("F = %#02x, want 0x00", got)
	}
}

func TestFlags(t *testing.T) {
	f := New()
	f.WriteByte(F, 0x00) // New's post-boot F=0xB0 has H set; start from clear flags
	f.SetFlag(FlagZ, true)
	f.SetFlag(FlagC, true)
	if !f.Flag(FlagZ) || !f.Flag(FlagC) {
		t.Fatalf("expected Z and C set")
	}
	if f.Flag(FlagN) || f.Flag(FlagH) {
		t.Fatalf("expected N and H clear")
	}
	f.SetFlag(FlagZ, false)
	if f.Flag(FlagZ) {
		t.Fatalf("expected Z cleared")
	}
}

func TestRegFromR(t *testing.T) {
	cases := []struct {
		bits uint8
		want ByteReg
	}{
		{0, B}, {1, C}, {2, D}, {3, E}, {4, UpperHL}, {5, LowerHL}, {7, A},
	}
	for _, c := range cases {
		if got := RegFromR(c.bits); got != c.want {
			t.Errorf("RegFromR(%d) = %v, want %v", c.bits, got, c.want)
		}
	}
}

func TestRegFromRPanicsOnSix(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for r-field value 6")
		}
	}()
	RegFromR(6)
}

func TestPairFromDDAndQQ(t *testing.T) {
	dd := []WordReg{BC, DE, HL, SP}
	for i, want := range dd {
		if got := PairFromDD(uint8(i)); got != want {
			t.Errorf("PairFromDD(%d) = %v, want %v", i, got, want)
		}
	}
	qq := []WordReg{BC, DE, HL, AF}
	for i, want := range qq {
		if got := PairFromQQ(uint8(i)); got != want {
			t.Errorf("PairFromQQ(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestCondition(t *testing.T) {
	f := New()
	f.WriteByte(F, 0x00)
	if !f.Test(CondNZ) || f.Test(CondZ) {
		t.Fatalf("expected NZ true, Z false with flags clear")
	}
	if !f.Test(CondNC) || f.Test(CondC) {
		t.Fatalf("expected NC true, C false with flags clear")
	}
	f.SetFlag(FlagZ, true)
	f.SetFlag(FlagC, true)
	if f.Test(CondNZ) || !f.Test(CondZ) {
		t.Fatalf("expected Z true, NZ false after setting Z")
	}
	if f.Test(CondNC) || !f.Test(CondC) {
		t.Fatalf("expected C true, NC false after setting C")
	}
}
