// Package pack converts embedding vectors to and from their binary layouts.
//
// A record is a 4-byte little-endian length prefix followed by that many
// little-endian IEEE-754 floats at the chosen width:
//
//	uint32 length | float[length]
//
// A value run is the float sequence alone, without the prefix; chunk artifacts
// embed value runs and rely on the chunk's own framing for the length.
//
// There is no padding, alignment or checksum. Float16 conversion rounds to
// nearest, ties to even.
package pack
