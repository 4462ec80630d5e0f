package util

import (
	"bytes"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

// AvatarMaxEdge is the longest edge an avatar is stored at.
const AvatarMaxEdge = 512

// NormalizeAvatar decodes an uploaded image, downscales it so neither
// edge exceeds AvatarMaxEdge, and re-encodes it as JPEG. Images that
// are already small enough are still re-encoded to strip metadata.
func NormalizeAvatar(r io.Reader) (*bytes.Buffer, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode avatar image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > AvatarMaxEdge || bounds.Dy() > AvatarMaxEdge {
		img = imaging.Fit(img, AvatarMaxEdge, AvatarMaxEdge, imaging.Lanczos)
	}

	buf := &bytes.Buffer{}
	if err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("failed to encode avatar image: %w", err)
	}
	return buf, nil
}
