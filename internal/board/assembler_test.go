package board

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/schartrand77/trivia/internal/trivia"
)

type fakeSource struct {
	sets  map[int]trivia.QuestionSet
	errs  map[int]error
	calls []int
}

func (f *fakeSource) FetchQuestions(_ context.Context, categoryID, count int, _ trivia.Difficulty) (trivia.QuestionSet, error) {
	f.calls = append(f.calls, categoryID)
	if err, ok := f.errs[categoryID]; ok {
		return trivia.QuestionSet{}, err
	}
	set, ok := f.sets[categoryID]
	if !ok {
		return trivia.QuestionSet{}, fmt.Errorf("unknown category %d", categoryID)
	}
	return set, nil
}

func questionSet(name string, difficulties ...string) trivia.QuestionSet {
	set := trivia.QuestionSet{CategoryName: name}
	for i, d := range difficulties {
		set.Items = append(set.Items, trivia.QuestionItem{
			Question:         fmt.Sprintf("Question %d?", i+1),
			CorrectAnswer:    fmt.Sprintf("Answer %d", i+1),
			IncorrectAnswers: []string{"Wrong A", "Wrong B", "Wrong C"},
			Difficulty:       d,
		})
	}
	return set
}

func newTestAssembler(src Source, seed int64) *Assembler {
	return New(src, 0, rand.New(rand.NewSource(seed)), nil)
}

func TestAssemblePartialFailure(t *testing.T) {
	src := &fakeSource{
		sets: map[int]trivia.QuestionSet{
			9:  questionSet("General Knowledge", "easy", "easy", "medium", "medium", "hard"),
			23: questionSet("History", "easy", "medium", "medium", "hard", "hard"),
		},
		errs: map[int]error{11: errors.New("boom")},
	}

	b, err := newTestAssembler(src, 1).Assemble(context.Background(), []int{9, 11, 23}, 5, trivia.DifficultyAny, nil)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	if len(b) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(b))
	}
	for _, cat := range b {
		if len(cat.Clues) != 5 {
			t.Errorf("column %q has %d clues, want 5", cat.Name, len(cat.Clues))
		}
	}

	// Requests go out in order, one per category, failures included.
	want := []int{9, 11, 23}
	if len(src.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", src.calls, want)
	}
	for i := range want {
		if src.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", src.calls, want)
		}
	}
}

func TestAssembleAllFail(t *testing.T) {
	src := &fakeSource{errs: map[int]error{
		9:  errors.New("down"),
		11: errors.New("down"),
		23: errors.New("down"),
	}}

	_, err := newTestAssembler(src, 1).Assemble(context.Background(), []int{9, 11, 23}, 5, trivia.DifficultyAny, nil)
	if !errors.Is(err, ErrNoCategories) {
		t.Fatalf("expected ErrNoCategories, got %v", err)
	}
}

func TestAssembleLevelsAndValues(t *testing.T) {
	// Difficulties arrive out of order; levels must follow the sorted
	// easy<medium<hard positions, not arrival order.
	src := &fakeSource{sets: map[int]trivia.QuestionSet{
		9: questionSet("General Knowledge", "hard", "easy", "medium"),
	}}

	b, err := newTestAssembler(src, 1).Assemble(context.Background(), []int{9}, 3, trivia.DifficultyAny, nil)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	clues := b[0].Clues
	if len(clues) != 3 {
		t.Fatalf("expected 3 clues, got %d", len(clues))
	}
	for i, c := range clues {
		if c.Level != i+1 {
			t.Errorf("clue %d level = %d, want %d", i, c.Level, i+1)
		}
		if c.Value != (i+1)*trivia.PointsPerLevel {
			t.Errorf("clue %d value = %d, want %d", i, c.Value, (i+1)*trivia.PointsPerLevel)
		}
		if c.ID == "" {
			t.Errorf("clue %d has no id", i)
		}
	}

	// The easy question ("Answer 2" arrived second) lands at level 1.
	if clues[0].Answer != "Answer 2" {
		t.Errorf("level 1 answer = %q, want the easy question's answer", clues[0].Answer)
	}
	if clues[2].Answer != "Answer 1" {
		t.Errorf("level 3 answer = %q, want the hard question's answer", clues[2].Answer)
	}
}

func TestAssembleDecodesAndStripsPrefix(t *testing.T) {
	src := &fakeSource{sets: map[int]trivia.QuestionSet{
		18: {
			CategoryName: "Science: Computers",
			Items: []trivia.QuestionItem{{
				Question:         "Who founded Apple &amp; NeXT?",
				CorrectAnswer:    "Steve Jobs&#039; company",
				IncorrectAnswers: []string{"Bill Gates", "Linus Torvalds", "Grace Hopper"},
				Difficulty:       "easy",
			}},
		},
	}}

	b, err := newTestAssembler(src, 1).Assemble(context.Background(), []int{18}, 1, trivia.DifficultyAny, nil)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	if b[0].Name != "Computers" {
		t.Errorf("category name = %q, want %q", b[0].Name, "Computers")
	}
	clue := b[0].Clues[0]
	if clue.Question != "Who founded Apple & NeXT?" {
		t.Errorf("question not decoded: %q", clue.Question)
	}
	if clue.Answer != "Steve Jobs' company" {
		t.Errorf("answer not decoded: %q", clue.Answer)
	}
}

func TestAssembleOptionsContainAnswer(t *testing.T) {
	src := &fakeSource{sets: map[int]trivia.QuestionSet{
		9: questionSet("General Knowledge", "easy", "medium", "hard"),
	}}

	b, err := newTestAssembler(src, 7).Assemble(context.Background(), []int{9}, 3, trivia.DifficultyAny, nil)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	for _, clue := range b[0].Clues {
		if len(clue.Options) != 4 {
			t.Fatalf("clue has %d options, want 4", len(clue.Options))
		}
		matches := 0
		for _, o := range clue.Options {
			if trivia.AnswersMatch(o, clue.Answer) {
				matches++
			}
		}
		if matches != 1 {
			t.Errorf("clue %q: %d options match the answer, want exactly 1", clue.Question, matches)
		}
	}
}

func TestAssembleShuffleDeterministic(t *testing.T) {
	sets := map[int]trivia.QuestionSet{
		9: questionSet("General Knowledge", "easy", "medium", "hard"),
	}

	first, err := newTestAssembler(&fakeSource{sets: sets}, 42).Assemble(context.Background(), []int{9}, 3, trivia.DifficultyAny, nil)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	second, err := newTestAssembler(&fakeSource{sets: sets}, 42).Assemble(context.Background(), []int{9}, 3, trivia.DifficultyAny, nil)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	for i := range first[0].Clues {
		a, b := first[0].Clues[i].Options, second[0].Clues[i].Options
		for j := range a {
			if a[j] != b[j] {
				t.Fatalf("clue %d options differ with identical seed: %v vs %v", i, a, b)
			}
		}
	}
}

func TestAssembleSkipsUnusableCategories(t *testing.T) {
	src := &fakeSource{sets: map[int]trivia.QuestionSet{
		9:  questionSet("Short", "easy"),                     // too few questions
		10: questionSet("Weird", "easy", "easy", "mystery"),  // unknown difficulty
		11: questionSet("Good", "easy", "medium", "hard"),
	}}

	b, err := newTestAssembler(src, 1).Assemble(context.Background(), []int{9, 10, 11}, 3, trivia.DifficultyAny, nil)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if len(b) != 1 || b[0].Name != "Good" {
		t.Fatalf("expected only the usable category, got %+v", b)
	}
}

func TestAssembleReportsProgress(t *testing.T) {
	src := &fakeSource{sets: map[int]trivia.QuestionSet{
		9:  questionSet("A", "easy"),
		11: questionSet("B", "easy"),
	}}

	var messages []string
	_, err := newTestAssembler(src, 1).Assemble(context.Background(), []int{9, 11}, 1, trivia.DifficultyAny, func(msg string) {
		messages = append(messages, msg)
	})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	want := []string{"Fetching category 1 of 2...", "Fetching category 2 of 2..."}
	if len(messages) != len(want) {
		t.Fatalf("messages = %v, want %v", messages, want)
	}
	for i := range want {
		if messages[i] != want[i] {
			t.Fatalf("messages = %v, want %v", messages, want)
		}
	}
}

func TestAssembleCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &fakeSource{sets: map[int]trivia.QuestionSet{
		9: questionSet("A", "easy"),
	}}

	_, err := New(src, 0, rand.New(rand.NewSource(1)), nil).Assemble(ctx, []int{9}, 1, trivia.DifficultyAny, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
