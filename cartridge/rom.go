package cartridge

import "fmt"

// ROM holds a cartridge image already loaded into memory. Reading the image
// off disk is an external collaborator's job (spec.md §1 Out of scope);
// this core only needs the bytes and the parsed header.
type ROM struct {
	data   []byte
	header *Header
}

// New parses a raw cartridge image.
func New(data []byte) (*ROM, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, fmt.Errorf("cartridge: %w", err)
	}
	return &ROM{data: data, header: h}, nil
}

// Header returns the cartridge's parsed header.
func (r *ROM) Header() *Header { return r.header }

// Size returns the length of the raw image in bytes.
func (r *ROM) Size() int { return len(r.data) }

// ReadByte reads a single byte from the raw image, wrapping on an
// out-of-range offset the way a real ROM chip's address lines would (bank
// implementations are expected to pass already-validated offsets, but a
// defensive wrap keeps a malformed/truncated image from panicking the
// emulator — a programmer error elsewhere, not a hardware condition).
func (r *ROM) ReadByte(off int) uint8 {
	if len(r.data) == 0 {
		return 0xFF
	}
	return r.data[off%len(r.data)]
}
