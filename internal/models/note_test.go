package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategory_Shared(t *testing.T) {
	assert.True(t, CategoryRadar.Shared())
	assert.True(t, CategoryInfo.Shared())

	for _, c := range PrivateCategories {
		assert.False(t, c.Shared(), string(c))
	}
}

func TestNote_VisibleTo(t *testing.T) {
	private := &Note{Category: CategoryEmails, UserID: "u1"}

	assert.True(t, private.VisibleTo("u1", false), "owner sees own private note")
	assert.False(t, private.VisibleTo("u2", false), "others do not")
	assert.True(t, private.VisibleTo("u2", true), "supervisor sees everything")

	shared := &Note{Category: CategoryRadar, UserID: "u1"}
	assert.True(t, shared.VisibleTo("u2", false), "shared boards visible to all")

	deleted := &Note{Category: CategoryRadar, UserID: "u1"}
	deleted.Deleted = true
	assert.False(t, deleted.VisibleTo("u1", true), "deleted never listed")
}

func TestStringList_Contains(t *testing.T) {
	list := StringList{"cco1", "balanca1"}
	assert.True(t, list.Contains("cco1"))
	assert.False(t, list.Contains("chefe"))
	assert.False(t, StringList(nil).Contains("cco1"))
}
