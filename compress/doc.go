// Package compress wraps packed payloads in a compression container.
//
// Four codecs are available:
//
//   - gzip: self-describing container with header, CRC-32 and size trailer.
//   - deflate: headerless DEFLATE (RFC 1951). The stream carries no parameters,
//     so decoders must know out of band that it is raw and use a window of
//     DeflateWindowBits bits (zlib wbits=-15, pako inflateRaw).
//   - zstd: Zstandard frames.
//   - lz4: LZ4 frames.
//
// Detect identifies a payload by its magic bytes; anything unrecognised is
// assumed to be raw DEFLATE, since that format has no magic.
package compress
