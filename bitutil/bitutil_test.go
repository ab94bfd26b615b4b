package bitutil

import "testing"

func TestGetSetResetBit(t *testing.T) {
	var v uint8 = 0
	v = SetBit(v, 3)
	if !GetBit(v, 3) {
		t.Fatalf("expected bit 3 set, got %08b", v)
	}
	v = ResetBit(v, 3)
	if GetBit(v, 3) {
		t.Fatalf("expected bit 3 clear, got %08b", v)
	}
}

func TestToggleBit(t *testing.T) {
	var v uint8 = 0
	v = ToggleBit(v, 0)
	if v != 1 {
		t.Fatalf("got %d, want 1", v)
	}
	v = ToggleBit(v, 0)
	if v != 0 {
		t.Fatalf("got %d, want 0", v)
	}
}

func TestWordBits(t *testing.T) {
	var v uint16 = 0
	v = SetBit16(v, 15)
	if !GetBit16(v, 15) {
		t.Fatalf("expected bit 15 set, got %016b", v)
	}
	v = ResetBit16(v, 15)
	if v != 0 {
		t.Fatalf("got %016b, want 0", v)
	}
}

func TestReverseByte(t *testing.T) {
	cases := []struct{ in, want uint8 }{
		{0x00, 0x00},
		{0xFF, 0xFF},
		{0x01, 0x80},
		{0x80, 0x01},
		{0b1000_0001, 0b1000_0001},
		{0b0000_1111, 0b1111_0000},
	}
	for _, c := range cases {
		if got := ReverseByte(c.in); got != c.want {
			t.Errorf("ReverseByte(%08b) = %08b, want %08b", c.in, got, c.want)
		}
	}
}

func TestInterleave(t *testing.T) {
	// lo=0b10000000, hi=0b10000000 -> pixel 0 has color id 3 (both bits set)
	got := Interleave(0x80, 0x80)
	want := uint16(0b11 << 14)
	if got != want {
		t.Fatalf("Interleave(0x80, 0x80) = %016b, want %016b", got, want)
	}

	got = Interleave(0xFF, 0x00)
	// every pixel should have color id 1 (lo bit set, hi bit clear)
	it := Crumbs(got)
	for i := 0; i < 8; i++ {
		c, ok := it.Next()
		if !ok {
			t.Fatalf("expected 8 crumbs, ran out at %d", i)
		}
		if c != 1 {
			t.Errorf("crumb %d = %d, want 1", i, c)
		}
	}
}

func TestCrumbsReversed(t *testing.T) {
	// bit7..bit0 pairs -> 0x03 0x02 0x01 0x00 ...
	v := uint16(0b11_10_01_00_00_00_00_00)
	crumbs := Crumbs(v).Reversed()
	want := []uint8{3, 2, 1, 0, 0, 0, 0, 0}
	if len(crumbs) != len(want) {
		t.Fatalf("got %d crumbs, want %d", len(crumbs), len(want))
	}
	for i := range want {
		if crumbs[i] != want[i] {
			t.Errorf("crumb %d = %d, want %d", i, crumbs[i], want[i])
		}
	}
}

func TestEdgeDetector(t *testing.T) {
	var e EdgeDetector
	if rising, falling := e.Update(false); rising || falling {
		t.Fatalf("unexpected edge on first update: rising=%v falling=%v", rising, falling)
	}
	rising, falling := e.Update(true)
	if !rising || falling {
		t.Fatalf("expected rising edge, got rising=%v falling=%v", rising, falling)
	}
	rising, falling = e.Update(false)
	if rising || !falling {
		t.Fatalf("expected falling edge, got rising=%v falling=%v", rising, falling)
	}
	if e.Value() {
		t.Fatalf("Value() = true, want false")
	}
}
