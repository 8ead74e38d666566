package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitAndTrim(t *testing.T) {
	assert.Equal(t, []string{"React", "Node.js", "TypeScript"},
		SplitAndTrim("React, Node.js, TypeScript"))
	assert.Equal(t, []string{"Go"}, SplitAndTrim("  Go  "))
	assert.Empty(t, SplitAndTrim(" , , "))
	assert.Empty(t, SplitAndTrim(""))
}

func TestStringListFromArray(t *testing.T) {
	var l StringList
	require.NoError(t, json.Unmarshal([]byte(`["Go", " Redis ", ""]`), &l))
	assert.Equal(t, StringList{"Go", "Redis"}, l)
}

func TestStringListFromCommaString(t *testing.T) {
	var l StringList
	require.NoError(t, json.Unmarshal([]byte(`"React, Node.js, TypeScript"`), &l))
	assert.Equal(t, StringList{"React", "Node.js", "TypeScript"}, l)
}

func TestStringListRejectsOtherTypes(t *testing.T) {
	var l StringList
	assert.Error(t, json.Unmarshal([]byte(`42`), &l))
}
