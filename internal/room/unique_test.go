package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqueRecordSet(t *testing.T) {
	u := newUniqueRecord()
	assert.True(t, u.Set("p1", "alice"))
	assert.False(t, u.Set("p2", "alice"), "value already taken")
	assert.True(t, u.Set("p2", "bob"))
	assert.Equal(t, "alice", u.Get("p1"))
	assert.True(t, u.HasValue("bob"))
}

func TestUniqueRecordRemoveFreesValue(t *testing.T) {
	u := newUniqueRecord()
	u.Set("p1", "alice")
	assert.True(t, u.Remove("p1"))
	assert.False(t, u.Remove("p1"))
	assert.False(t, u.HasValue("alice"))
	assert.True(t, u.Set("p2", "alice"))
}

func TestUniqueRecordFilter(t *testing.T) {
	u := newUniqueRecord()
	u.Set("p1", "alice")
	u.Set("p2", "bob")
	kept := u.Filter(func(key string) bool { return key == "p2" })
	assert.False(t, kept.HasValue("alice"))
	assert.True(t, kept.HasValue("bob"))
	assert.Equal(t, map[string]string{"p2": "bob"}, kept.Record())
}
