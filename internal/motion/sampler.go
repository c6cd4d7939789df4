package motion

import (
	"math"
	"sync"
)

// SectionSpan is the fraction of the viewport height one section occupies when
// mapping scroll offset to a section index.
const SectionSpan = 0.8

// PointerSample is the cursor offset from the viewport center, both axes in [-1, 1]
// with Y pointing up.
type PointerSample struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NormalizePointer maps client coordinates to a PointerSample.
func NormalizePointer(clientX, clientY, width, height float64) PointerSample {
	return PointerSample{
		X: (clientX/width)*2 - 1,
		Y: -(clientY/height)*2 + 1,
	}
}

// SectionFromScroll returns round(scrollY / (viewportHeight * 0.8)). Overscroll
// above the top maps to section 0.
func SectionFromScroll(scrollY, viewportHeight float64) int {
	s := int(math.Round(scrollY / (viewportHeight * SectionSpan)))
	if s < 0 {
		return 0
	}
	return s
}

// Sampler keeps the latest pointer sample and section index. Events overwrite;
// nothing is queued or averaged.
type Sampler struct {
	mu      sync.Mutex
	pointer PointerSample
	section int
}

// OnPointerMove records a pointer position. Events with an empty viewport are dropped.
func (s *Sampler) OnPointerMove(clientX, clientY, width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	p := NormalizePointer(clientX, clientY, width, height)
	s.mu.Lock()
	s.pointer = p
	s.mu.Unlock()
}

// OnScroll records a scroll offset and recomputes the section index.
func (s *Sampler) OnScroll(scrollY, viewportHeight float64) {
	if viewportHeight <= 0 {
		return
	}
	section := SectionFromScroll(scrollY, viewportHeight)
	s.mu.Lock()
	s.section = section
	s.mu.Unlock()
}

// Snapshot returns the pointer sample and section index as of one instant.
func (s *Sampler) Snapshot() (PointerSample, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pointer, s.section
}
