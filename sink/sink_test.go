package sink

import "testing"

func TestRGB555To8(t *testing.T) {
	cases := []struct {
		c    uint8
		want uint8
	}{
		{0, 0},
		{1, 0x0F},
		{0x1F, 0xFF},
	}
	for _, tc := range cases {
		if got := RGB555To8(tc.c); got != tc.want {
			t.Errorf("RGB555To8(%#x) = %#x, want %#x", tc.c, got, tc.want)
		}
	}
}

func TestSplitRGB555(t *testing.T) {
	// R=0x1F, G=0x0A, B=0x15 packed as bits 0-4, 5-9, 10-14.
	packed := uint16(0x1F) | uint16(0x0A)<<5 | uint16(0x15)<<10
	r, g, b := SplitRGB555(packed)
	if r != 0x1F || g != 0x0A || b != 0x15 {
		t.Fatalf("SplitRGB555(%#x) = (%#x, %#x, %#x), want (0x1f, 0x0a, 0x15)", packed, r, g, b)
	}
}
