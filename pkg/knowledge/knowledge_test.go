package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleKB = `{
  "Flu": {
    "symptoms": ["fever", "cough"],
    "questions": ["Since when?"],
    "ayurvedic": [{"medicine": "Tulsi", "dosage": "2x/day", "quantity": "10 tabs"}],
    "english": []
  },
  "migraine": {
    "symptoms": ["headache", "nausea"],
    "questions": ["Is the pain on one side?", "Does light bother you?"],
    "ayurvedic": [],
    "english": [{"medicine": "Paracetamol", "dosage": "500mg", "quantity": "10 tabs"}]
  }
}`

func TestParseNormalizesNames(t *testing.T) {
	kb, err := Parse([]byte(sampleKB))
	require.NoError(t, err)

	assert.Equal(t, 2, kb.Len())
	assert.Equal(t, []string{"flu", "migraine"}, kb.Names())

	for _, name := range []string{"flu", "FLU", "  Flu "} {
		c, ok := kb.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, "flu", c.Name)
		assert.Equal(t, []string{"fever", "cough"}, c.Symptoms)
		assert.Equal(t, "Tulsi", c.AyurvedicRemedies[0].Medicine)
		assert.Empty(t, c.EnglishRemedies)
	}

	_, ok := kb.Get("measles")
	assert.False(t, ok)
}

func TestNewRejectsInvalidConditions(t *testing.T) {
	tests := []struct {
		name       string
		conditions []Condition
	}{
		{
			name:       "empty name",
			conditions: []Condition{{Name: "  "}},
		},
		{
			name:       "duplicate after normalization",
			conditions: []Condition{{Name: "Flu"}, {Name: "flu "}},
		},
		{
			name: "remedy without medicine",
			conditions: []Condition{{
				Name:            "cold",
				EnglishRemedies: []Remedy{{Dosage: "1x/day"}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.conditions)
			assert.Error(t, err)
		})
	}
}

func TestEachVisitsInNameOrder(t *testing.T) {
	kb, err := New([]Condition{{Name: "zika"}, {Name: "Asthma"}, {Name: "cold"}})
	require.NoError(t, err)

	var seen []string
	kb.Each(func(c Condition) { seen = append(seen, c.Name) })
	assert.Equal(t, []string{"asthma", "cold", "zika"}, seen)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleKB), 0o644))

	kb, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, kb.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`{"flu": [}`))
	assert.Error(t, err)
}
