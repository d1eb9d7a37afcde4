// Package file implements the outer framing of a numpress stream: the fixed
// header, the chunk sequence, and the termination byte. The Compressor and
// Decompressor drive whole-file encoding and decoding on top of the chunk
// package.
package file

import (
	"fmt"

	"github.com/arloliu/numpress/errs"
	"github.com/arloliu/numpress/format"
	"github.com/arloliu/numpress/section"
)

// Config selects the chunk-wide coding options recorded in the file header.
type Config struct {
	// DeltaEncodingOrder is the finite-difference order applied before
	// range partitioning, in [0, format.MaxDeltaEncodingOrder]. Zero
	// disables delta encoding.
	DeltaEncodingOrder int

	// UseGCDs enables GCD factoring of prefix ranges. When off, no GCD
	// bits are spent anywhere in the file.
	UseGCDs bool

	// Compression is the byte-level codec applied to each chunk body after
	// bit-packing.
	Compression format.CompressionType

	// Checksum appends an xxHash64 of each stored chunk body.
	Checksum bool
}

// DefaultConfig returns the default coding options: no delta encoding, GCD
// factoring on, no body compression, no checksums.
func DefaultConfig() Config {
	return Config{
		UseGCDs:     true,
		Compression: format.CompressionNone,
	}
}

// Validate checks the config against the format limits.
func (c Config) Validate() error {
	_, err := c.flags()

	return err
}

func (c Config) flags() (section.Flags, error) {
	flags := section.NewFlags()
	if err := flags.SetDeltaEncodingOrder(c.DeltaEncodingOrder); err != nil {
		return section.Flags{}, err
	}
	if !c.UseGCDs {
		flags.WithoutGCDs()
	}
	flags.SetCompression(c.Compression)
	flags.SetChecksum(c.Checksum)

	if err := flags.Validate(); err != nil {
		return section.Flags{}, fmt.Errorf("%w: %w", errs.ErrInvalidArgument, err)
	}

	return flags, nil
}
