package game

// Event is published to session observers as state changes.
type Event struct {
	Type     string `json:"type"`
	Message  string `json:"message,omitempty"`
	ClueID   string `json:"clueId,omitempty"`
	Feedback string `json:"feedback,omitempty"`
	Correct  int    `json:"correct,omitempty"`
	Wrong    int    `json:"wrong,omitempty"`
}

// Event types.
const (
	EventProgress     = "progress"
	EventBoardReady   = "board_ready"
	EventFetchFailed  = "fetch_failed"
	EventClueOpened   = "clue_opened"
	EventClueClosed   = "clue_closed"
	EventAnswered     = "answered"
	EventPaused       = "paused"
	EventResumed      = "resumed"
	EventGameComplete = "game_complete"
)
