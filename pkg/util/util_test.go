package util

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveDuplicateStrings(t *testing.T) {
	assert.Equal(t, []string{"ISL", "TWL"}, RemoveDuplicateStrings([]string{"ISL", "", "TWL", "ISL", "KTL"}, []string{"KTL"}))
}

func TestInPlaceFilter(t *testing.T) {
	values := []int{1, 2, 3, 4, 5}
	InPlaceFilter(&values, func(v int) bool { return v%2 == 1 })

	assert.Equal(t, []int{1, 3, 5}, values)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList("  "))
	assert.Equal(t, []string{"ISL", "TWL"}, SplitList("ISL| TWL ||"))
}

func TestGetDataDirectory(t *testing.T) {
	t.Setenv("HKMTR_DATA_DIR", "")
	assert.Equal(t, "data", GetDataDirectory())

	t.Setenv("HKMTR_DATA_DIR", "/srv/hkmtr")
	assert.Equal(t, "/srv/hkmtr", GetDataDirectory())
}

func TestWriteOutput(t *testing.T) {
	value := struct {
		Station string `json:"station"`
	}{Station: "ADM"}

	var buffer bytes.Buffer
	assert.NoError(t, WriteOutput(&buffer, value, false))
	assert.Equal(t, "{\n  \"station\": \"ADM\"\n}\n", buffer.String())

	buffer.Reset()
	assert.NoError(t, WriteOutput(&buffer, value, true))
	assert.Contains(t, buffer.String(), `Station:"ADM"`)
}
