package index

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLessID(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"cond_2", "cond_10", true},
		{"cond_10", "cond_2", false},
		{"cond_1", "cond_2", true},
		{"cond_1", "cond_1", false},
	}
	for _, tt := range tests {
		t.Run(tt.a+"<"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, LessID(tt.a, tt.b))
		})
	}
}

func TestLessHitSortsByDistanceThenID(t *testing.T) {
	hits := []Hit{
		{ID: "cond_11", Distance: 0.5},
		{ID: "cond_9", Distance: 0.5},
		{ID: "cond_100", Distance: 0.1},
	}
	sort.Slice(hits, func(i, j int) bool { return LessHit(hits[i], hits[j]) })

	assert.Equal(t, "cond_100", hits[0].ID)
	assert.Equal(t, "cond_9", hits[1].ID)
	assert.Equal(t, "cond_11", hits[2].ID)
}
