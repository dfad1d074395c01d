// Package cartridge parses and serves DMG cartridge ROM images. Only
// unbanked 32 KiB carts ("ROM ONLY", cartridge type 0x00) are supported;
// the rest of the header is parsed and logged the way a real loader would
// before deciding whether to run a given image.
package cartridge

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"
)

const (
	sizeUnbanked = 0x8000

	entryPointAddr    = 0x0100
	titleAddr         = 0x0134
	titleLen          = 11
	cartTypeAddr      = 0x0147
	romSizeAddr       = 0x0148
	ramSizeAddr       = 0x0149
	headerChecksumAddr = 0x014D
)

// Cartridge holds the raw ROM image plus the metadata decoded from its
// header.
type Cartridge struct {
	data []byte

	Title          string
	Type           uint8
	ROMSizeCode    uint8
	RAMSizeCode    uint8
	HeaderChecksum uint8
	ChecksumValid  bool
}

// Empty returns a cartridge with no ROM loaded, useful for constructing a
// Bus before a ROM is available.
func Empty() *Cartridge {
	return &Cartridge{data: make([]byte, sizeUnbanked)}
}

// Load parses raw ROM bytes into a Cartridge. It returns an error if the
// image is smaller than 32 KiB, or if its type byte indicates a
// banked cartridge (out of scope — see spec Non-goals).
func Load(data []byte) (*Cartridge, error) {
	if len(data) < sizeUnbanked {
		return nil, fmt.Errorf("cartridge: image too small: got %d bytes, want at least %d", len(data), sizeUnbanked)
	}

	cartType := data[cartTypeAddr]
	if cartType != 0x00 {
		return nil, fmt.Errorf("cartridge: unsupported cartridge type 0x%02X (only ROM ONLY / 0x00 is supported)", cartType)
	}

	c := &Cartridge{
		data:           append([]byte(nil), data[:sizeUnbanked]...),
		Title:          cleanTitle(data[titleAddr : titleAddr+titleLen]),
		Type:           cartType,
		ROMSizeCode:    data[romSizeAddr],
		RAMSizeCode:    data[ramSizeAddr],
		HeaderChecksum: data[headerChecksumAddr],
	}
	c.ChecksumValid = c.verifyHeaderChecksum()

	if !c.ChecksumValid {
		slog.Warn("cartridge header checksum mismatch", "title", c.Title)
	}
	slog.Info("cartridge loaded", "title", c.Title, "type", fmt.Sprintf("0x%02X", c.Type))

	return c, nil
}

// verifyHeaderChecksum reimplements the standard DMG header checksum:
// x = 0; for each byte in 0x134..0x14C: x = x - byte - 1; checksum == low
// byte of x.
func (c *Cartridge) verifyHeaderChecksum() bool {
	var x uint8
	for i := 0x0134; i <= 0x014C; i++ {
		x = x - c.data[i] - 1
	}
	return x == c.HeaderChecksum
}

func cleanTitle(raw []byte) string {
	runes := make([]rune, 0, len(raw))
	for _, b := range raw {
		r := rune(b)
		switch {
		case r == 0:
			continue
		case !unicode.IsPrint(r):
			r = '?'
		}
		runes = append(runes, r)
	}
	title := strings.TrimSpace(string(runes))
	if title == "" {
		return "(untitled)"
	}
	return title
}

// Read returns the byte at the given ROM-relative address (0x0000-0x7FFF).
func (c *Cartridge) Read(address uint16) uint8 {
	if int(address) >= len(c.data) {
		return 0xFF
	}
	return c.data[address]
}

// Write is a no-op: unbanked carts have no mapped registers to write to.
func (c *Cartridge) Write(uint16, uint8) {}
