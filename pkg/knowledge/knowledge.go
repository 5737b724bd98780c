package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Remedy is a single medicine suggestion for a condition
type Remedy struct {
	Medicine string `json:"medicine" validate:"required"`
	Dosage   string `json:"dosage"`
	Quantity string `json:"quantity"`
}

// Condition holds everything the knowledge base knows about one condition.
// Question order matters: the first unasked question is asked next.
type Condition struct {
	Name              string   `json:"name"`
	Symptoms          []string `json:"symptoms"`
	Questions         []string `json:"questions"`
	AyurvedicRemedies []Remedy `json:"ayurvedic" validate:"dive"`
	EnglishRemedies   []Remedy `json:"english" validate:"dive"`
}

// Base is the immutable condition catalogue. It is safe for concurrent reads.
type Base struct {
	conditions map[string]*Condition
	names      []string
}

// Normalize is the single key normalization used for every lookup
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

var validate = validator.New()

// Load reads a knowledge base JSON file keyed by condition name
func Load(path string) (*Base, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}
	return Parse(raw)
}

// Parse decodes the knowledge base JSON document
func Parse(raw []byte) (*Base, error) {
	var doc map[string]Condition
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode knowledge base: %w", err)
	}

	conditions := make([]Condition, 0, len(doc))
	for name, cond := range doc {
		cond.Name = name
		conditions = append(conditions, cond)
	}
	return New(conditions)
}

// New builds a Base from already decoded conditions. Names are normalized
// and must stay unique after normalization.
func New(conditions []Condition) (*Base, error) {
	b := &Base{conditions: make(map[string]*Condition, len(conditions))}

	for _, c := range conditions {
		key := Normalize(c.Name)
		if key == "" {
			return nil, fmt.Errorf("knowledge base: condition with empty name")
		}
		if _, dup := b.conditions[key]; dup {
			return nil, fmt.Errorf("knowledge base: duplicate condition %q", key)
		}
		if err := validate.Struct(c); err != nil {
			return nil, fmt.Errorf("knowledge base: condition %q: %w", key, err)
		}

		cond := c
		cond.Name = key
		cond.Symptoms = append([]string(nil), c.Symptoms...)
		cond.Questions = append([]string(nil), c.Questions...)
		cond.AyurvedicRemedies = append([]Remedy(nil), c.AyurvedicRemedies...)
		cond.EnglishRemedies = append([]Remedy(nil), c.EnglishRemedies...)

		b.conditions[key] = &cond
		b.names = append(b.names, key)
	}

	sort.Strings(b.names)
	return b, nil
}

// Get looks up a condition by name. The name is normalized first.
// Slices in the returned value are shared with the base and must be treated
// as read-only.
func (b *Base) Get(name string) (Condition, bool) {
	c, ok := b.conditions[Normalize(name)]
	if !ok {
		return Condition{}, false
	}
	return *c, true
}

// Names returns the normalized condition names in sorted order
func (b *Base) Names() []string {
	return append([]string(nil), b.names...)
}

func (b *Base) Len() int {
	return len(b.names)
}

// Each visits every condition in name order
func (b *Base) Each(fn func(Condition)) {
	for _, name := range b.names {
		fn(*b.conditions[name])
	}
}
