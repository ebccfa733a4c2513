package audio

import (
	"errors"
	"math/rand"
)

// ErrNoPlayableTrack indicates every candidate failed the accessibility probe.
var ErrNoPlayableTrack = errors.New("no playable track")

const maxHistory = 100

// History is a ring of recently played track indices.
type History struct {
	entries []int
	next    int
	filled  int
}

// HistorySize returns the recent-history window for a pool of count tracks:
// a third of the pool, at least one, at most 100.
func HistorySize(count int) int {
	size := count / 3
	if size < 1 {
		size = 1
	}
	if size > maxHistory {
		size = maxHistory
	}
	return size
}

// NewHistory creates a ring holding size entries.
func NewHistory(size int) *History {
	if size < 1 {
		size = 1
	}
	return &History{entries: make([]int, size)}
}

// Contains reports whether index was played within the window.
func (history *History) Contains(index int) bool {
	for position := 0; position < history.filled; position++ {
		if history.entries[position] == index {
			return true
		}
	}
	return false
}

// Push records index, overwriting the oldest entry once the ring is full.
func (history *History) Push(index int) {
	history.entries[history.next] = index
	history.next = (history.next + 1) % len(history.entries)
	if history.filled < len(history.entries) {
		history.filled++
	}
}

// Len returns the number of recorded entries.
func (history *History) Len() int {
	return history.filled
}

// SelectNext draws a uniform random index in [0, count) that is neither in
// history nor rejected by accessible. After maxAttempts draws it falls back
// to the first acceptable index, then to any accessible one, so a pool
// smaller than the window still plays. The result is pushed into history.
func SelectNext(rng *rand.Rand, count int, history *History, accessible func(int) bool, maxAttempts int) (int, error) {
	if count <= 0 {
		return -1, ErrNoPlayableTrack
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate := rng.Intn(count)
		if history.Contains(candidate) || !accessible(candidate) {
			continue
		}
		history.Push(candidate)
		return candidate, nil
	}

	fallback := -1
	for candidate := 0; candidate < count; candidate++ {
		if !accessible(candidate) {
			continue
		}
		if !history.Contains(candidate) {
			history.Push(candidate)
			return candidate, nil
		}
		if fallback < 0 {
			fallback = candidate
		}
	}
	if fallback < 0 {
		return -1, ErrNoPlayableTrack
	}
	history.Push(fallback)
	return fallback, nil
}
