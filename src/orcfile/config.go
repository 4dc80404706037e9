// Package orcfile assembles the ORC container: magic header, the stripe
// loop, the file footer and the postscript. See spec §4.5.
package orcfile

import "github.com/kokes/orcwrite/src/compress"

// Magic is the 3-byte header every ORC file starts with.
const Magic = "ORC"

// Config carries the writer-wide settings fixed for the writer's lifetime
// (spec §9's "shared configuration" note: read-only, no global state).
type Config struct {
	Compression          compress.Kind
	CompressionBlockSize int
	StripeTargetSize     int64
	RowIndexStride       int
	WriterVersion        uint32
}

// DefaultConfig returns the documented defaults (spec §6's "Config options"):
// no compression, 64 KiB compression blocks, 64 MiB stripes, a 10,000-row
// index stride (though indexes themselves are never emitted by this core).
func DefaultConfig() Config {
	return Config{
		Compression:          compress.None,
		CompressionBlockSize: 64 * 1024,
		StripeTargetSize:     64 * 1024 * 1024,
		RowIndexStride:       10000,
		WriterVersion:        1,
	}
}
