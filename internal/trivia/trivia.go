// Package trivia defines the core domain types for the grid game.
package trivia

// PointsPerLevel is the point value of a level-1 clue; a clue at level
// n is worth n*PointsPerLevel.
const PointsPerLevel = 10

// Difficulty filters which questions are requested from the source.
type Difficulty string

const (
	DifficultyAny    Difficulty = "any"
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Rank returns the fixed ordering position of a concrete difficulty:
// easy < medium < hard. The second return is false for "any" or an
// unrecognized value.
func (d Difficulty) Rank() (int, bool) {
	switch d {
	case DifficultyEasy:
		return 1, true
	case DifficultyMedium:
		return 2, true
	case DifficultyHard:
		return 3, true
	}
	return 0, false
}

// Valid reports whether d is one of the accepted filter values.
func (d Difficulty) Valid() bool {
	if d == DifficultyAny {
		return true
	}
	_, ok := d.Rank()
	return ok
}

// Clue is one playable question cell. Clues are immutable after board
// assembly; the engine references them by ID.
type Clue struct {
	ID       string   `json:"id"`
	Level    int      `json:"level"`
	Value    int      `json:"value"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Options  []string `json:"options"`
}

// Category is a named column of clues sorted ascending by level.
type Category struct {
	Name  string `json:"name"`
	Clues []Clue `json:"clues"`
}

// Board is the full set of category columns for one game session.
type Board []Category

// TotalClues returns the number of playable cells on the board.
func (b Board) TotalClues() int {
	n := 0
	for _, c := range b {
		n += len(c.Clues)
	}
	return n
}

// FindClue looks up a clue by its identifier.
func (b Board) FindClue(id string) (Clue, bool) {
	for _, cat := range b {
		for _, c := range cat.Clues {
			if c.ID == id {
				return c, true
			}
		}
	}
	return Clue{}, false
}

// QuestionItem is one raw question record as returned by a question
// source, before entity decoding and shaping.
type QuestionItem struct {
	Question         string
	CorrectAnswer    string
	IncorrectAnswers []string
	Difficulty       string
}

// QuestionSet is a question source's response for one category.
type QuestionSet struct {
	CategoryName string
	Items        []QuestionItem
}
