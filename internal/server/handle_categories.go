package server

import (
	"net/http"
	"strconv"

	"github.com/schartrand77/trivia/internal/trivia"
)

// CategoryResponse describes the catalog entry plus family-mode
// context for the requesting player's age, if given.
type CategoryResponse struct {
	Categories    []trivia.CategoryInfo `json:"categories"`
	AgeGroupLabel string                `json:"ageGroupLabel,omitempty"`
}

// handleListCategories serves the built-in catalog. A ?age= query
// restricts the list to kid-friendly categories for family mode.
func handleListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := CategoryResponse{Categories: trivia.DefaultCategories}

		if raw := r.URL.Query().Get("age"); raw != "" {
			age, err := strconv.Atoi(raw)
			if err != nil || age < 0 {
				writeError(w, http.StatusBadRequest, "invalid age")
				return
			}
			allowed := make(map[int]bool)
			for _, id := range trivia.FilterCategoriesForAge(trivia.DefaultCategoryIDs(), age) {
				allowed[id] = true
			}
			filtered := make([]trivia.CategoryInfo, 0, len(trivia.DefaultCategories))
			for _, c := range trivia.DefaultCategories {
				if allowed[c.ID] {
					filtered = append(filtered, c)
				}
			}
			resp.Categories = filtered
			resp.AgeGroupLabel = trivia.AgeGroupLabel(age)
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
