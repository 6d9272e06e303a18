package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStandardList(t *testing.T) {
	list, ok := GetStandardList("preescolar")
	require.True(t, ok)
	assert.Equal(t, "preescolar", list.Type)
	assert.NotEmpty(t, list.Items)
	for _, item := range list.Items {
		assert.NotEmpty(t, item.Text)
		assert.GreaterOrEqual(t, item.Quantity, 1)
	}

	_, ok = GetStandardList("doctorado")
	assert.False(t, ok)
}

func TestListStandardListsOrder(t *testing.T) {
	lists := ListStandardLists()
	require.Len(t, lists, 4)

	types := make([]string, 0, len(lists))
	for _, l := range lists {
		types = append(types, l.Type)
	}
	assert.Equal(t, []string{"preescolar", "basica", "media", "universidad"}, types)
}
