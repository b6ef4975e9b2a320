// Package board assembles a playable game board from a question
// source: sequential, throttled category fetches, difficulty sorting,
// entity decoding, and partial-failure tolerance.
package board

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/schartrand77/trivia/internal/trivia"
)

// ErrNoCategories is returned when every requested category failed to
// produce usable questions.
var ErrNoCategories = errors.New("no categories could be loaded")

// Source fetches raw questions for one category.
type Source interface {
	FetchQuestions(ctx context.Context, categoryID, count int, difficulty trivia.Difficulty) (trivia.QuestionSet, error)
}

// Progress receives human-readable assembly progress messages.
type Progress func(message string)

// categoryPrefixes are source-specific display-name prefixes stripped
// from category names before presentation.
var categoryPrefixes = []string{"Entertainment: ", "Science: "}

type Assembler struct {
	source   Source
	interval time.Duration
	rng      *rand.Rand
	logger   *slog.Logger
}

// New builds an assembler. interval is the courtesy delay between
// requests to the source; rng drives option shuffling and may be
// seeded for deterministic tests.
func New(source Source, interval time.Duration, rng *rand.Rand, logger *slog.Logger) *Assembler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{source: source, interval: interval, rng: rng, logger: logger}
}

// Assemble fetches the requested categories in order, one request per
// category, separated by the courtesy interval. Categories that fail,
// return too few questions, or carry an unrecognized difficulty are
// skipped. The result contains only the categories that succeeded;
// if none did, ErrNoCategories is returned.
func (a *Assembler) Assemble(ctx context.Context, categoryIDs []int, levels int, difficulty trivia.Difficulty, progress Progress) (trivia.Board, error) {
	if levels <= 0 {
		return nil, fmt.Errorf("levels per category must be positive, got %d", levels)
	}
	if progress == nil {
		progress = func(string) {}
	}

	gate := NewGate(a.interval)
	var b trivia.Board

	for i, id := range categoryIDs {
		progress(fmt.Sprintf("Fetching category %d of %d...", i+1, len(categoryIDs)))

		if err := gate.Wait(ctx); err != nil {
			return nil, err
		}

		set, err := a.source.FetchQuestions(ctx, id, levels, difficulty)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			a.logger.Warn("skipping category", "category_id", id, "error", err)
			continue
		}

		cat, ok := a.buildCategory(set, levels)
		if !ok {
			a.logger.Warn("skipping category with unusable data", "category_id", id, "items", len(set.Items))
			continue
		}
		b = append(b, cat)
	}

	if len(b) == 0 {
		return nil, ErrNoCategories
	}
	return b, nil
}

// buildCategory shapes one source response into a column: questions
// sorted ascending by difficulty, level and value assigned from the
// sorted position, all text entity-decoded, options shuffled once.
func (a *Assembler) buildCategory(set trivia.QuestionSet, levels int) (trivia.Category, bool) {
	if len(set.Items) < levels {
		return trivia.Category{}, false
	}
	items := make([]trivia.QuestionItem, levels)
	copy(items, set.Items[:levels])

	for _, item := range items {
		if _, ok := trivia.Difficulty(item.Difficulty).Rank(); !ok {
			return trivia.Category{}, false
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		ri, _ := trivia.Difficulty(items[i].Difficulty).Rank()
		rj, _ := trivia.Difficulty(items[j].Difficulty).Rank()
		return ri < rj
	})

	clues := make([]trivia.Clue, len(items))
	for i, item := range items {
		options := make([]string, 0, len(item.IncorrectAnswers)+1)
		for _, o := range item.IncorrectAnswers {
			options = append(options, html.UnescapeString(o))
		}
		options = append(options, html.UnescapeString(item.CorrectAnswer))
		a.rng.Shuffle(len(options), func(x, y int) {
			options[x], options[y] = options[y], options[x]
		})

		clues[i] = trivia.Clue{
			ID:       uuid.NewString(),
			Level:    i + 1,
			Value:    (i + 1) * trivia.PointsPerLevel,
			Question: html.UnescapeString(item.Question),
			Answer:   html.UnescapeString(item.CorrectAnswer),
			Options:  options,
		}
	}

	return trivia.Category{
		Name:  displayName(set.CategoryName),
		Clues: clues,
	}, true
}

func displayName(raw string) string {
	name := html.UnescapeString(raw)
	for _, p := range categoryPrefixes {
		name = strings.TrimPrefix(name, p)
	}
	return name
}
