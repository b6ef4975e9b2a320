// Package game owns the authoritative in-memory state of one game
// session and the transition rules governing it. All transitions are
// serialized behind a single mutex so tick-driven and user-driven
// mutations cannot race on the same clue.
package game

import (
	"context"
	"log/slog"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/schartrand77/trivia/internal/board"
	"github.com/schartrand77/trivia/internal/trivia"
)

// Feedback is the recorded outcome of the last answered clue.
type Feedback string

const (
	FeedbackNone      Feedback = ""
	FeedbackCorrect   Feedback = "correct"
	FeedbackIncorrect Feedback = "incorrect"
)

// Assembler builds a board from a sequence of category ids.
type Assembler interface {
	Assemble(ctx context.Context, categoryIDs []int, levels int, difficulty trivia.Difficulty, progress board.Progress) (trivia.Board, error)
}

// Recorder persists a finished game's counters.
type Recorder interface {
	RecordResult(ctx context.Context, playerID int64, correct, wrong int) error
}

// Config holds the session tuning knobs.
type Config struct {
	LevelsPerCategory int
	CategoryCount     int
	CountdownSeconds  int
	FeedbackDelay     time.Duration
	CompletionGrace   time.Duration
}

// DefaultConfig mirrors the classic game: 5 categories of 5 levels,
// a 15 second countdown, 1.5 s feedback display, 2 s completion grace.
func DefaultConfig() Config {
	return Config{
		LevelsPerCategory: 5,
		CategoryCount:     5,
		CountdownSeconds:  15,
		FeedbackDelay:     1500 * time.Millisecond,
		CompletionGrace:   2 * time.Second,
	}
}

// StartOptions parameterize one new game.
type StartOptions struct {
	// CategoryIDs, when non-empty, are fetched in the given order.
	// Otherwise CategoryCount categories are picked at random from the
	// default catalog.
	CategoryIDs   []int
	CategoryCount int
	Difficulty    trivia.Difficulty
	PlayerID      int64
	// PlayerAge, when positive, applies family mode: kid-safe
	// categories and an age-appropriate difficulty cap.
	PlayerAge int
}

// Snapshot is the externally observable session state.
type Snapshot struct {
	Board       trivia.Board `json:"board"`
	AnsweredIDs []string     `json:"answeredIds"`
	CurrentClue *trivia.Clue `json:"currentClue"`
	Feedback    Feedback     `json:"feedback"`
	Countdown   int          `json:"countdown"`
	Paused      bool         `json:"paused"`
	Loading     bool         `json:"loading"`
	Message     string       `json:"message"`
	Correct     int          `json:"correct"`
	Wrong       int          `json:"wrong"`
	Complete    bool         `json:"complete"`
}

type Engine struct {
	cfg       Config
	assembler Assembler
	recorder  Recorder
	notify    func(Event)
	logger    *slog.Logger
	rng       *rand.Rand

	mu             sync.Mutex
	generation     int
	cancelAssembly context.CancelFunc
	board          trivia.Board
	answered       map[string]bool
	current        *trivia.Clue
	feedback       Feedback
	correct        int
	wrong          int
	remaining      int
	paused         bool
	loading        bool
	message        string
	failed         bool
	playerID       int64
	recorded       bool
}

// New builds an engine. notify may be nil; rng may be nil for a
// time-seeded source.
func New(cfg Config, assembler Assembler, recorder Recorder, notify func(Event), logger *slog.Logger, rng *rand.Rand) *Engine {
	if notify == nil {
		notify = func(Event) {}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		cfg:       cfg,
		assembler: assembler,
		recorder:  recorder,
		notify:    notify,
		logger:    logger,
		rng:       rng,
		answered:  make(map[string]bool),
	}
}

// Run drives the one-second countdown tick until ctx is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			e.Tick()
		}
	}
}

// StartNewGame discards any prior session and launches board assembly
// in the background. An assembly still in flight for an older session
// is superseded: its results are discarded when they arrive.
func (e *Engine) StartNewGame(opts StartOptions) {
	e.mu.Lock()

	e.generation++
	gen := e.generation
	if e.cancelAssembly != nil {
		e.cancelAssembly()
	}

	e.board = nil
	e.answered = make(map[string]bool)
	e.current = nil
	e.feedback = FeedbackNone
	e.correct = 0
	e.wrong = 0
	e.remaining = 0
	e.paused = false
	e.loading = true
	e.message = "Loading questions..."
	e.failed = false
	e.playerID = opts.PlayerID
	e.recorded = false

	ids := opts.CategoryIDs
	if len(ids) == 0 {
		count := opts.CategoryCount
		if count <= 0 {
			count = e.cfg.CategoryCount
		}
		pool := trivia.FilterCategoriesForAge(trivia.DefaultCategoryIDs(), opts.PlayerAge)
		ids = trivia.PickCategories(pool, count, e.rng)
	} else {
		ids = trivia.FilterCategoriesForAge(ids, opts.PlayerAge)
		if len(ids) == 0 {
			ids = trivia.PickCategories(trivia.FilterCategoriesForAge(trivia.DefaultCategoryIDs(), opts.PlayerAge), e.cfg.CategoryCount, e.rng)
		}
	}

	difficulty := opts.Difficulty
	if difficulty == "" {
		difficulty = trivia.DifficultyAny
	}
	if fam := trivia.DifficultyForAge(opts.PlayerAge); fam != trivia.DifficultyAny {
		difficulty = fam
	}

	ctx, cancel := context.WithCancel(context.Background())
	e.cancelAssembly = cancel
	e.mu.Unlock()

	go e.assemble(ctx, gen, ids, difficulty)
}

func (e *Engine) assemble(ctx context.Context, gen int, ids []int, difficulty trivia.Difficulty) {
	progress := func(msg string) {
		e.mu.Lock()
		if e.generation == gen {
			e.message = msg
			e.notify(Event{Type: EventProgress, Message: msg})
		}
		e.mu.Unlock()
	}

	b, err := e.assembler.Assemble(ctx, ids, e.cfg.LevelsPerCategory, difficulty, progress)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.generation != gen {
		// A newer game superseded this assembly; drop the result.
		return
	}

	e.loading = false
	if err != nil {
		e.failed = true
		e.message = "Failed to load questions. Please try again."
		e.logger.Error("board assembly failed", "error", err)
		e.notify(Event{Type: EventFetchFailed, Message: e.message})
		return
	}

	e.board = b
	e.message = ""
	e.logger.Info("board ready", "categories", len(b), "clues", b.TotalClues())
	e.notify(Event{Type: EventBoardReady})
}

// SelectClue opens an unanswered clue and starts its countdown.
// Selecting an answered clue, selecting while another clue is open,
// or selecting before the board is ready are all no-ops.
func (e *Engine) SelectClue(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.loading || e.failed || e.paused || e.current != nil || e.answered[id] {
		return
	}
	clue, ok := e.board.FindClue(id)
	if !ok {
		return
	}

	e.current = &clue
	e.feedback = FeedbackNone
	e.remaining = e.cfg.CountdownSeconds
	e.notify(Event{Type: EventClueOpened, ClueID: clue.ID})
}

// SubmitAnswer scores the active clue against the submitted option.
// Exactly one answer is accepted per clue; submissions with no active
// clue, during feedback display, or while paused are ignored.
func (e *Engine) SubmitAnswer(option string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil || e.paused || e.feedback != FeedbackNone || e.answered[e.current.ID] {
		return
	}

	if trivia.AnswersMatch(option, e.current.Answer) {
		e.correct++
		e.feedback = FeedbackCorrect
	} else {
		e.wrong++
		e.feedback = FeedbackIncorrect
	}
	e.answered[e.current.ID] = true
	e.remaining = 0
	e.notify(Event{Type: EventAnswered, ClueID: e.current.ID, Feedback: string(e.feedback), Correct: e.correct, Wrong: e.wrong})

	e.scheduleCloseLocked()
	e.checkCompletionLocked()
}

// Tick advances the countdown by one unit. It is a no-op when no clue
// is active, the session is paused, or feedback is already showing.
// Reaching zero scores the clue as incorrect, identically to an
// explicit wrong submission.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil || e.paused || e.feedback != FeedbackNone {
		return
	}
	if e.remaining > 0 {
		e.remaining--
	}
	if e.remaining > 0 {
		return
	}

	e.wrong++
	e.feedback = FeedbackIncorrect
	e.answered[e.current.ID] = true
	e.notify(Event{Type: EventAnswered, ClueID: e.current.ID, Feedback: string(FeedbackIncorrect), Correct: e.correct, Wrong: e.wrong})

	e.scheduleCloseLocked()
	e.checkCompletionLocked()
}

// Pause freezes the countdown and disables answer submission.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.paused {
		return
	}
	e.paused = true
	e.notify(Event{Type: EventPaused})
}

// Resume continues from the exact remaining countdown value.
func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.paused {
		return
	}
	e.paused = false
	e.notify(Event{Type: EventResumed})
}

// EndGame records the session's counters (if anything was answered and
// the completion write has not already fired) and discards the session.
func (e *Engine) EndGame(ctx context.Context) {
	e.mu.Lock()
	record := !e.recorded && e.correct+e.wrong > 0
	if record {
		e.recorded = true
	}
	playerID, correct, wrong := e.playerID, e.correct, e.wrong

	e.generation++
	if e.cancelAssembly != nil {
		e.cancelAssembly()
		e.cancelAssembly = nil
	}
	e.board = nil
	e.answered = make(map[string]bool)
	e.current = nil
	e.feedback = FeedbackNone
	e.correct = 0
	e.wrong = 0
	e.remaining = 0
	e.paused = false
	e.loading = false
	e.message = ""
	e.failed = false
	e.mu.Unlock()

	if record {
		e.record(ctx, playerID, correct, wrong)
	}
}

// Snapshot returns a copy of the observable session state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	ids := make([]string, 0, len(e.answered))
	for id := range e.answered {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var current *trivia.Clue
	if e.current != nil {
		c := *e.current
		current = &c
	}

	total := e.board.TotalClues()
	return Snapshot{
		Board:       e.board,
		AnsweredIDs: ids,
		CurrentClue: current,
		Feedback:    e.feedback,
		Countdown:   e.remaining,
		Paused:      e.paused,
		Loading:     e.loading,
		Message:     e.message,
		Correct:     e.correct,
		Wrong:       e.wrong,
		Complete:    total > 0 && len(e.answered) == total,
	}
}

// scheduleCloseLocked arranges for the feedback display to clear after
// the configured delay. The delay is not skippable: submissions during
// it are ignored because the clue is already answered.
func (e *Engine) scheduleCloseLocked() {
	gen := e.generation
	clueID := e.current.ID
	time.AfterFunc(e.cfg.FeedbackDelay, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.generation != gen || e.current == nil || e.current.ID != clueID {
			return
		}
		e.current = nil
		e.feedback = FeedbackNone
		e.remaining = 0
		e.notify(Event{Type: EventClueClosed, ClueID: clueID})
	})
}

// checkCompletionLocked schedules the single history write once every
// clue on the board has been answered.
func (e *Engine) checkCompletionLocked() {
	total := e.board.TotalClues()
	if e.recorded || total == 0 || len(e.answered) != total {
		return
	}
	e.recorded = true

	playerID, correct, wrong := e.playerID, e.correct, e.wrong
	e.notify(Event{Type: EventGameComplete, Correct: correct, Wrong: wrong})

	// The write fires even if a new game supersedes this one during the
	// grace delay: the counters belong to a finished session.
	time.AfterFunc(e.cfg.CompletionGrace, func() {
		e.record(context.Background(), playerID, correct, wrong)
	})
}

func (e *Engine) record(ctx context.Context, playerID int64, correct, wrong int) {
	if e.recorder == nil || playerID <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := e.recorder.RecordResult(ctx, playerID, correct, wrong); err != nil {
		e.logger.Error("recording game result", "player_id", playerID, "error", err)
		return
	}
	e.logger.Info("game result recorded", "player_id", playerID, "correct", correct, "wrong", wrong)
}
