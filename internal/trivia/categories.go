package trivia

import "math/rand"

// CategoryInfo names one Open Trivia DB category.
type CategoryInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// DefaultCategories is the built-in catalog offered to players.
var DefaultCategories = []CategoryInfo{
	{ID: 9, Name: "General Knowledge"},
	{ID: 10, Name: "Books"},
	{ID: 11, Name: "Film"},
	{ID: 12, Name: "Music"},
	{ID: 17, Name: "Nature"},
	{ID: 18, Name: "Computers"},
	{ID: 21, Name: "Sports"},
	{ID: 22, Name: "Geography"},
	{ID: 23, Name: "History"},
	{ID: 27, Name: "Animals"},
	{ID: 28, Name: "Vehicles"},
}

// DefaultCategoryIDs returns the ids of the built-in catalog.
func DefaultCategoryIDs() []int {
	ids := make([]int, len(DefaultCategories))
	for i, c := range DefaultCategories {
		ids[i] = c.ID
	}
	return ids
}

// PickCategories selects up to n distinct ids from pool in random
// order using rng. The pool itself is not modified.
func PickCategories(pool []int, n int, rng *rand.Rand) []int {
	shuffled := make([]int, len(pool))
	copy(shuffled, pool)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n < len(shuffled) {
		shuffled = shuffled[:n]
	}
	return shuffled
}
