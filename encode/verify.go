package encode

import (
	"fmt"

	"github.com/poiesic/vecpack/compress"
	"github.com/poiesic/vecpack/core"
	"github.com/poiesic/vecpack/storage"
)

// newVerifier returns a check for stored artifact bytes. The artifact must
// decompress to wantLen bytes whose digest matches the packed payload.
func newVerifier(codec compress.Codec, wantLen int, payload []byte) storage.VerifyFunc {
	want := core.Digest(payload)

	return func(stored []byte) error {
		got, err := codec.Decompress(stored)
		if err != nil {
			return err
		}
		if len(got) != wantLen {
			return fmt.Errorf("%w: got %d bytes, want %d", ErrLengthMismatch, len(got), wantLen)
		}
		if core.Digest(got) != want {
			return ErrDigestMismatch
		}
		return nil
	}
}
