// Package pipeline - hosts the SSD decoder for a stream of frames carrying tensor metadata.
package pipeline

import (
	"time"

	"github.com/nvr-ai/go-ssd/analytics"
	"github.com/nvr-ai/go-ssd/tensors"
)

// Frame is a single frame of video as seen by the element. Only its
// metadata is touched; pixels never are.
type Frame struct {
	ID        int64
	Timestamp time.Time
	// Tensors is the tensor metadata attached upstream by inference.
	Tensors tensors.Set
	// Analytics receives the decoded detections. Process creates it when nil.
	Analytics *analytics.RelationMeta
}

// VideoInfo is the negotiated video geometry.
type VideoInfo struct {
	Width  int
	Height int
}
