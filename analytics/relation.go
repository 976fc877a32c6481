// Package analytics - per-frame relation metadata holding decoded object detections.
package analytics

import (
	"fmt"
	"image"
	"sync"

	"github.com/nvr-ai/go-ssd/detector"
	"github.com/nvr-ai/go-ssd/labels"
)

// DefaultCapacity is the number of records a RelationMeta holds when no
// capacity is given.
const DefaultCapacity = 1024

// ObjectDetection is one object detection record attached to a frame.
type ObjectDetection struct {
	ID     uint32
	Label  labels.Label
	Score  float32
	X, Y   int
	Width  int
	Height int
}

// Rect returns the record's box.
func (o ObjectDetection) Rect() image.Rectangle {
	return image.Rect(o.X, o.Y, o.X+o.Width, o.Y+o.Height)
}

func (o ObjectDetection) String() string {
	return fmt.Sprintf("#%d %s (%.2f) %dx%d at (%d, %d)",
		o.ID, o.Label, o.Score, o.Width, o.Height, o.X, o.Y)
}

// RelationMeta collects the analytics records of one frame. It is a
// detector.Sink.
type RelationMeta struct {
	mu       sync.RWMutex
	ids      *IDGenerator
	capacity int
	records  []ObjectDetection
}

// NewRelationMeta creates an empty relation meta.
//
// Arguments:
//   - capacity: Maximum number of records; DefaultCapacity when <= 0.
//
// Returns:
//   - *RelationMeta: The relation meta.
func NewRelationMeta(capacity int) *RelationMeta {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &RelationMeta{
		ids:      NewIDGenerator(),
		capacity: capacity,
	}
}

// Add records d as an object detection. It reports false once the meta is
// full.
func (m *RelationMeta) Add(d detector.Detection) bool {
	_, ok := m.AddObjectDetection(d)
	return ok
}

// AddObjectDetection records d and returns the stored record.
func (m *RelationMeta) AddObjectDetection(d detector.Detection) (ObjectDetection, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.records) >= m.capacity {
		return ObjectDetection{}, false
	}

	od := ObjectDetection{
		ID:     m.ids.GetNext(),
		Label:  d.Label,
		Score:  d.Score,
		X:      d.X,
		Y:      d.Y,
		Width:  d.Width,
		Height: d.Height,
	}
	m.records = append(m.records, od)
	return od, true
}

// Len returns the number of records.
func (m *RelationMeta) Len() int {
	if m == nil {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// Capacity returns the record limit.
func (m *RelationMeta) Capacity() int {
	return m.capacity
}

// Get returns the record with the given ID.
func (m *RelationMeta) Get(id uint32) (ObjectDetection, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, od := range m.records {
		if od.ID == id {
			return od, true
		}
	}
	return ObjectDetection{}, false
}

// ObjectDetections returns a copy of the records in insertion order.
func (m *RelationMeta) ObjectDetections() []ObjectDetection {
	if m == nil {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]ObjectDetection(nil), m.records...)
}
