// internal/room/unique.go
//
// uniqueRecord is a string map that keeps its values unique: a Set fails
// when the value is already bound to another key. Rooms use it for the
// player-id ↔ nickname bijection.

package room

type uniqueRecord struct {
	byKey  map[string]string
	values map[string]struct{}
}

func newUniqueRecord() *uniqueRecord {
	return &uniqueRecord{
		byKey:  make(map[string]string),
		values: make(map[string]struct{}),
	}
}

// Set binds value to key, failing if value is already taken.
func (u *uniqueRecord) Set(key, value string) bool {
	if _, taken := u.values[value]; taken {
		return false
	}
	u.byKey[key] = value
	u.values[value] = struct{}{}
	return true
}

// Remove unbinds key, freeing its value for reuse.
func (u *uniqueRecord) Remove(key string) bool {
	value, ok := u.byKey[key]
	if !ok {
		return false
	}
	delete(u.byKey, key)
	delete(u.values, value)
	return true
}

// HasValue reports whether value is bound to any key.
func (u *uniqueRecord) HasValue(value string) bool {
	_, ok := u.values[value]
	return ok
}

// Get returns the value bound to key.
func (u *uniqueRecord) Get(key string) string {
	return u.byKey[key]
}

// Filter returns a new record keeping only keys that satisfy keep.
func (u *uniqueRecord) Filter(keep func(key string) bool) *uniqueRecord {
	result := newUniqueRecord()
	for key, value := range u.byKey {
		if keep(key) {
			result.Set(key, value)
		}
	}
	return result
}

// Record returns a copy of the key→value mapping.
func (u *uniqueRecord) Record() map[string]string {
	out := make(map[string]string, len(u.byKey))
	for k, v := range u.byKey {
		out[k] = v
	}
	return out
}
