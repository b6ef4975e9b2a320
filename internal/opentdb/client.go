// Package opentdb is a thin HTTP client for the Open Trivia Database
// (https://opentdb.com). It speaks the api.php envelope and nothing
// else; entity decoding and board shaping happen downstream.
package opentdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/schartrand77/trivia/internal/trivia"
)

// DefaultBaseURL is the hosted Open Trivia DB endpoint.
const DefaultBaseURL = "https://opentdb.com"

// Response codes returned in the api.php envelope.
const (
	codeSuccess        = 0
	codeNoResults      = 1
	codeInvalidParam   = 2
	codeTokenNotFound  = 3
	codeTokenEmpty     = 4
	codeRateLimitedAPI = 5
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type apiResult struct {
	Category         string   `json:"category"`
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

type apiResponse struct {
	ResponseCode int         `json:"response_code"`
	Results      []apiResult `json:"results"`
}

// FetchQuestions requests count multiple-choice questions for one
// category. A difficulty of "any" is omitted from the query. Text
// fields in the result are still HTML-entity-encoded.
func (c *Client) FetchQuestions(ctx context.Context, categoryID, count int, difficulty trivia.Difficulty) (trivia.QuestionSet, error) {
	q := url.Values{}
	q.Set("amount", strconv.Itoa(count))
	q.Set("category", strconv.Itoa(categoryID))
	q.Set("type", "multiple")
	if difficulty != "" && difficulty != trivia.DifficultyAny {
		q.Set("difficulty", string(difficulty))
	}

	reqURL := c.baseURL + "/api.php?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return trivia.QuestionSet{}, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return trivia.QuestionSet{}, fmt.Errorf("fetching category %d: %w", categoryID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return trivia.QuestionSet{}, fmt.Errorf("fetching category %d: unexpected status %d", categoryID, resp.StatusCode)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return trivia.QuestionSet{}, fmt.Errorf("decoding response for category %d: %w", categoryID, err)
	}
	if body.ResponseCode != codeSuccess {
		return trivia.QuestionSet{}, fmt.Errorf("category %d: %s", categoryID, codeMessage(body.ResponseCode))
	}

	set := trivia.QuestionSet{}
	for _, r := range body.Results {
		if set.CategoryName == "" {
			set.CategoryName = r.Category
		}
		set.Items = append(set.Items, trivia.QuestionItem{
			Question:         r.Question,
			CorrectAnswer:    r.CorrectAnswer,
			IncorrectAnswers: r.IncorrectAnswers,
			Difficulty:       r.Difficulty,
		})
	}
	return set, nil
}

func codeMessage(code int) string {
	switch code {
	case codeNoResults:
		return "no results for requested parameters"
	case codeInvalidParam:
		return "invalid request parameter"
	case codeTokenNotFound:
		return "session token not found"
	case codeTokenEmpty:
		return "session token exhausted"
	case codeRateLimitedAPI:
		return "rate limited by source"
	}
	return fmt.Sprintf("unexpected response code %d", code)
}
