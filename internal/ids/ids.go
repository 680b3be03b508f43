// Package ids hands out element identifiers for a single compilation.
package ids

import (
	"fmt"
	"strconv"
	"strings"

	mkerrors "github.com/pipe01/mukuro/errors"
)

// Allocator tracks every identifier used within one compilation. Generated and
// explicit identifiers share one namespace, but an explicit identifier is only
// checked against those already seen: an explicit "box_3" that is registered
// before the third box is reached isn't detected as a conflict. Reserve closes
// that gap for a set of prefixes.
type Allocator struct {
	counters map[string]int
	used     map[string]struct{}
	reserved map[string]struct{}
}

func New() *Allocator {
	return &Allocator{
		counters: make(map[string]int),
		used:     make(map[string]struct{}),
	}
}

// Reserve makes RegisterExplicit reject ids of the form prefix_N, leaving that
// space to Allocate.
func (a *Allocator) Reserve(prefixes ...string) {
	if a.reserved == nil {
		a.reserved = make(map[string]struct{}, len(prefixes))
	}

	for _, p := range prefixes {
		a.reserved[p] = struct{}{}
	}
}

// Allocate returns prefix_N where N counts up from 1 for each prefix.
func (a *Allocator) Allocate(prefix string) string {
	a.counters[prefix]++

	id := fmt.Sprintf("%s_%d", prefix, a.counters[prefix])
	a.used[id] = struct{}{}

	return id
}

func (a *Allocator) RegisterExplicit(id string) (string, error) {
	if _, ok := a.used[id]; ok {
		return "", &mkerrors.DuplicateIdentifierError{ID: id}
	}
	if a.isReserved(id) {
		return "", &mkerrors.DuplicateIdentifierError{ID: id, Reserved: true}
	}

	a.used[id] = struct{}{}
	return id, nil
}

func (a *Allocator) isReserved(id string) bool {
	if len(a.reserved) == 0 {
		return false
	}

	idx := strings.LastIndexByte(id, '_')
	if idx <= 0 || idx == len(id)-1 {
		return false
	}

	if _, ok := a.reserved[id[:idx]]; !ok {
		return false
	}

	_, err := strconv.ParseUint(id[idx+1:], 10, 64)
	return err == nil
}
