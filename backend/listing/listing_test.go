package listing

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type course struct {
	Title    string
	Subtitle string
	Status   string
	Category uint
}

func courseFields(c course) []string {
	return []string{c.Title, c.Subtitle}
}

func TestSearchMatchesCaseInsensitive(t *testing.T) {
	items := make([]course, 0, 50)
	for i := 0; i < 47; i++ {
		items = append(items, course{Title: fmt.Sprintf("Course %d", i), Subtitle: "General"})
	}
	items = append(items,
		course{Title: "Kubernetes Fundamentals", Subtitle: "Ops"},
		course{Title: "Advanced KUBERNETES", Subtitle: "Ops"},
		course{Title: "Cluster Ops", Subtitle: "a kubernetes deep dive"},
	)

	got := Search(items, "kUbErNeTeS", courseFields)

	assert.Len(t, got, 3)
	for _, c := range got {
		haystack := strings.ToLower(c.Title + " " + c.Subtitle)
		assert.Contains(t, haystack, "kubernetes")
	}
}

func TestSearchEmptyQueryReturnsEverything(t *testing.T) {
	items := []course{{Title: "One"}, {Title: "Two"}, {Title: "Three"}}

	assert.Equal(t, items, Search(items, "", courseFields))
	assert.Equal(t, items, Search(items, "   ", courseFields))
}

func TestSearchNoMatches(t *testing.T) {
	items := []course{{Title: "One"}, {Title: "Two"}}

	got := Search(items, "zzz", courseFields)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestApplyCombinesPredicatesWithAnd(t *testing.T) {
	items := []course{
		{Title: "A", Status: "PUBLISHED", Category: 1},
		{Title: "B", Status: "PUBLISHED", Category: 2},
		{Title: "C", Status: "DRAFT", Category: 1},
		{Title: "D", Status: "PUBLISHED", Category: 1},
	}

	published := func(c course) bool { return c.Status == "PUBLISHED" }
	categoryOne := func(c course) bool { return c.Category == 1 }

	got := Apply(items, published, categoryOne)

	assert.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Title)
	assert.Equal(t, "D", got[1].Title)
}

func TestApplyNoPredicates(t *testing.T) {
	items := []course{{Title: "A"}, {Title: "B"}}
	assert.Equal(t, items, Apply(items))
}
