package trivia

// kidFriendlyCategories are the Open Trivia DB category ids considered
// safe for child players in family mode.
var kidFriendlyCategories = map[int]bool{
	9:  true, // General Knowledge
	10: true, // Books
	11: true, // Film
	12: true, // Music
	13: true, // Musicals & Theatres
	14: true, // Television
	15: true, // Video Games
	17: true, // Nature
	18: true, // Computers
	21: true, // Sports
	22: true, // Geography
	23: true, // History
	27: true, // Animals
	30: true, // Gadgets
}

type ageRange struct {
	min, max   int
	difficulty Difficulty
	label      string
}

var ageRanges = []ageRange{
	{0, 7, DifficultyEasy, "Very Young (4-7 years) - Easy Questions"},
	{8, 12, DifficultyEasy, "Children (8-12 years) - Easy Questions"},
	{13, 17, DifficultyMedium, "Teens (13-17 years) - Medium Questions"},
	{18, 64, DifficultyAny, "Adults (18+ years) - All Difficulty Levels"},
	{65, 150, DifficultyAny, "Seniors (65+ years) - All Difficulty Levels"},
}

// DifficultyForAge maps a player's age to the difficulty family mode
// allows. Zero or negative ages mean no age is set and place no
// restriction.
func DifficultyForAge(age int) Difficulty {
	if age <= 0 {
		return DifficultyAny
	}
	for _, r := range ageRanges {
		if age >= r.min && age <= r.max {
			return r.difficulty
		}
	}
	return DifficultyAny
}

// AgeGroupLabel describes the age group and its difficulty setting.
func AgeGroupLabel(age int) string {
	if age <= 0 {
		return "No age set - Using all difficulty levels"
	}
	for _, r := range ageRanges {
		if age >= r.min && age <= r.max {
			return r.label
		}
	}
	return "Unknown age group - Using all difficulty levels"
}

// FamilyModeAge reports whether family mode applies: an age is set and
// the player is under 18.
func FamilyModeAge(age int) bool {
	return age > 0 && age < 18
}

// FilterCategoriesForAge restricts a child player to kid-friendly
// categories. Adult players keep the full list.
func FilterCategoriesForAge(ids []int, age int) []int {
	if !FamilyModeAge(age) {
		return ids
	}
	filtered := make([]int, 0, len(ids))
	for _, id := range ids {
		if kidFriendlyCategories[id] {
			filtered = append(filtered, id)
		}
	}
	return filtered
}
