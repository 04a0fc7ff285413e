// Package records keeps namespaced collections on top of a flat
// key-value store: sequences and mappings encoded as JSON, counters,
// and membership sets.
//
// Reads never fail: an absent or undecodable value reads as the
// caller's empty default. Writes replace the whole value and return the
// backend error, if any.
package records

import (
	"fmt"
	"hobbyboard/internal/kvstore"
	"hobbyboard/internal/providers"
	"reflect"
	"slices"

	json "github.com/goccy/go-json"
)

// Storage keys. They match the keys the original browser page used, so
// an exported localStorage dump can be restored as is.
const (
	KeyVisitorCount    = "visitorCount"
	KeyHobbyComments   = "hobbyComments"
	KeyAttendance      = "hobbyAttendance"
	KeyGalleryComments = "galleryComments"
	KeyGalleryLikes    = "galleryLikes"
	KeyLikedImages     = "myLikedImages"
)

type RecordStore struct {
	kv     kvstore.Store
	logger providers.Logger
}

func NewRecordStore(kv kvstore.Store, logger providers.Logger) *RecordStore {
	return &RecordStore{kv: kv, logger: logger}
}

// Load decodes the value stored under key. empty is returned when the key
// is absent, unreadable, undecodable or decodes to a nil map/slice; pass a
// fresh value per call.
func Load[T any](s *RecordStore, key string, empty T) T {
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		s.logger.Warnf(providers.TypeStore, "Read %q failed, using empty value: %s", key, err)
		return empty
	}
	if !ok {
		return empty
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		s.logger.Warnf(providers.TypeStore, "Corrupt value under %q, using empty value: %s", key, err)
		return empty
	}
	if isNil(v) {
		return empty
	}
	return v
}

func isNil[T any](v T) bool {
	rv := reflect.ValueOf(&v).Elem()
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Save encodes value and replaces whatever was stored under key.
func Save[T any](s *RecordStore, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("records: encode %q: %w", key, err)
	}
	if err = s.kv.Set(key, string(data)); err != nil {
		s.logger.Errorf(providers.TypeStore, "Write %q failed: %s", key, err)
		return fmt.Errorf("records: save %q: %w", key, err)
	}
	return nil
}

// AppendRecord inserts record at the front of the sequence under key.
func AppendRecord[R any](s *RecordStore, key string, record R) error {
	list := Load(s, key, []R{})
	list = slices.Insert(list, 0, record)
	return Save(s, key, list)
}

// AppendRecordUnder inserts record at the front of the sequence stored
// under subKey inside the mapping under key.
func AppendRecordUnder[R any](s *RecordStore, key, subKey string, record R) error {
	m := Load(s, key, map[string][]R{})
	m[subKey] = slices.Insert(m[subKey], 0, record)
	return Save(s, key, m)
}

// LoadSequence returns the sequence under subKey inside the mapping under
// key, never nil.
func LoadSequence[R any](s *RecordStore, key, subKey string) []R {
	list := Load(s, key, map[string][]R{})[subKey]
	if list == nil {
		return []R{}
	}
	return list
}

// CountMatching returns how many entries of the sequence under key satisfy
// match.
func CountMatching[R any](s *RecordStore, key string, match func(R) bool) int {
	n := 0
	for _, r := range Load(s, key, []R{}) {
		if match(r) {
			n++
		}
	}
	return n
}

func (s *RecordStore) Counter(key string) int {
	return Load(s, key, 0)
}

func (s *RecordStore) IncrementCounter(key string) (int, error) {
	n := Load(s, key, 0) + 1
	if err := Save(s, key, n); err != nil {
		return 0, err
	}
	return n, nil
}

// ToggleMembership flips itemID in the set under setKey and reports
// whether it is a member afterwards.
func (s *RecordStore) ToggleMembership(setKey, itemID string) (bool, error) {
	set := Load(s, setKey, []string{})

	member := !slices.Contains(set, itemID)
	if member {
		set = append(set, itemID)
	} else {
		set = slices.DeleteFunc(set, func(id string) bool { return id == itemID })
	}

	if err := Save(s, setKey, set); err != nil {
		return !member, err
	}
	return member, nil
}

func (s *RecordStore) IsMember(setKey, itemID string) bool {
	return slices.Contains(Load(s, setKey, []string{}), itemID)
}

// AdjustCounterInMap adds delta to the counter for itemID, never going
// below floor, and returns the stored value.
func (s *RecordStore) AdjustCounterInMap(mapKey, itemID string, delta, floor int) (int, error) {
	m := Load(s, mapKey, map[string]int{})
	n := max(m[itemID]+delta, floor)
	m[itemID] = n
	if err := Save(s, mapKey, m); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *RecordStore) CounterIn(mapKey, itemID string) int {
	return Load(s, mapKey, map[string]int{})[itemID]
}

// CountEntries sums the lengths of all sequences in the mapping under
// mapKey.
func (s *RecordStore) CountEntries(mapKey string) int {
	total := 0
	for _, list := range Load(s, mapKey, map[string][]json.RawMessage{}) {
		total += len(list)
	}
	return total
}

func (s *RecordStore) CountAll(key string) int {
	return len(Load(s, key, []json.RawMessage{}))
}
