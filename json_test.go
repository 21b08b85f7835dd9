package tabularstat_test

import (
	"encoding/json"
	"strings"
	"testing"

	tabularstat "github.com/ini-bdds/tabularstat"
	"github.com/stretchr/testify/assert"
)

func Test_MarshalExhaustive(t *testing.T) {
	td, err := tabularstat.Scan(strings.NewReader("id,color\n1,red\n2,blue\n3,red\n"), nil, nil)
	assert.NoError(t, err)

	raw, err := tabularstat.MarshalExhaustive(td)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &decoded))

	table := decoded["table"].(map[string]interface{})
	assert.Equal(t, float64(2), table["column_count"])
	columns := table["columns"].([]interface{})
	assert.Len(t, columns, 2)
}

func Test_MarshalAbridged_UsesLabelHashForCategorical(t *testing.T) {
	td, err := tabularstat.Scan(strings.NewReader("id,color\n1,red\n2,blue\n3,red\n"), nil, nil)
	assert.NoError(t, err)

	raw, err := tabularstat.MarshalAbridged(td)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &decoded))

	table := decoded["table"].(map[string]interface{})
	columns := table["columns"].([]interface{})
	colorCol := columns[1].(map[string]interface{})
	assert.Equal(t, "categorical", colorCol["class"])
	assert.Contains(t, colorCol, "label_set_hash")
	assert.NotContains(t, colorCol, "stats")
}

func Test_MarshalAbridged_TooManyLabelsUsesMagicSentinel(t *testing.T) {
	cfg := tabularstat.DefaultConfig()
	cfg.MaxCategoryCardinality = 2
	var sb strings.Builder
	sb.WriteString("id,word\n")
	words := []string{"a", "b", "c", "d", "e"}
	for i, w := range words {
		sb.WriteString(string(rune('1'+i)) + "," + w + "\n")
	}
	td, err := tabularstat.Scan(strings.NewReader(sb.String()), cfg, nil)
	assert.NoError(t, err)

	raw, err := tabularstat.MarshalAbridged(td)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &decoded))
	table := decoded["table"].(map[string]interface{})
	columns := table["columns"].([]interface{})
	wordCol := columns[1].(map[string]interface{})
	if wordCol["class"] == "categorical" {
		assert.Equal(t, float64(tabularstat.MagicTooManyLabels), wordCol["label_set_hash"])
	}
}
