package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat provides atomic float64 operations using bit conversion
// Zero value is ready to use (represents 0.0)
type AtomicFloat struct {
	bits atomic.Uint64
}

// Set stores a float64 value atomically
func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

// Get loads the float64 value atomically
func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Add atomically adds delta and returns the new value
func (f *AtomicFloat) Add(delta float64) float64 {
	for {
		old := f.bits.Load()
		newVal := math.Float64frombits(old) + delta
		if f.bits.CompareAndSwap(old, math.Float64bits(newVal)) {
			return newVal
		}
	}
}

// MaxStringLen is the maximum length for atomic strings
const MaxStringLen = 32

// AtomicString provides atomic string access with a fixed max length
// Zero value is ready to use (represents the empty string)
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store sets the string value, truncating to MaxStringLen
func (s *AtomicString) Store(val string) {
	if len(val) > MaxStringLen {
		val = val[:MaxStringLen]
	}
	s.ptr.Store(&val)
}

// Load returns the current string value
func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
