package pe

import "encoding/binary"

// ImageFileLargeAddressAware marks an image that can handle addresses above 2GB.
// It lives in the low byte of the little-endian Characteristics field.
const ImageFileLargeAddressAware byte = 0x20

// Characteristics holds the two on-disk bytes of the COFF Characteristics field.
type Characteristics [2]byte

// IsSet reports whether mask is set in the low byte.
func (c Characteristics) IsSet(mask byte) bool {
	return c[0]&mask != 0
}

// Toggle returns a copy with mask flipped in the low byte. The high byte is untouched.
func (c Characteristics) Toggle(mask byte) Characteristics {
	c[0] ^= mask
	return c
}

// LargeAddressAware reports whether IMAGE_FILE_LARGE_ADDRESS_AWARE is set.
func (c Characteristics) LargeAddressAware() bool {
	return c.IsSet(ImageFileLargeAddressAware)
}

// Uint16 decodes the field as a little-endian value.
func (c Characteristics) Uint16() uint16 {
	return binary.LittleEndian.Uint16(c[:])
}
