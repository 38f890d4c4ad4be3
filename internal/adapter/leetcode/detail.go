package leetcode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"leetcode-export/internal/domain/model"
)

const detailQuery = `query questionData($titleSlug: String!) {
  question(titleSlug: $titleSlug) {
    content
    topicTags { name }
    questionId
    difficulty
    title
    __typename
  }
}`

type detailResponse struct {
	Data struct {
		Question *struct {
			Content    string `json:"content"`
			QuestionID string `json:"questionId"`
			Difficulty string `json:"difficulty"`
			Title      string `json:"title"`
			TopicTags  []struct {
				Name string `json:"name"`
			} `json:"topicTags"`
		} `json:"question"`
	} `json:"data"`
}

// FetchProblem retrieves one problem by slug. A problem the API returns no
// data for yields a nil record and a nil error.
func (c *Client) FetchProblem(ctx context.Context, slug string) (*model.ProblemRecord, error) {
	if err := c.detailPacer.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for detail slot: %w", err)
	}

	body, status, err := c.post(ctx, detailQuery, map[string]any{"titleSlug": slug})
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", status, snippet(body))
	}

	var payload detailResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	q := payload.Data.Question
	if q == nil || (q.Title == "" && q.Content == "" && q.Difficulty == "" && len(q.TopicTags) == 0) {
		c.logger.Warn(ctx, "no detail data", "slug", slug)
		return nil, nil
	}

	tags := make([]string, 0, len(q.TopicTags))
	for _, tag := range q.TopicTags {
		if tag.Name == "" {
			continue
		}
		tags = append(tags, tag.Name)
	}

	difficulty := model.Difficulty(q.Difficulty)
	if !difficulty.Known() {
		c.logger.Debug(ctx, "unrecognised difficulty", "slug", slug, "difficulty", q.Difficulty)
	}

	return &model.ProblemRecord{
		ID:          slug,
		Title:       q.Title,
		Difficulty:  difficulty,
		Description: c.normalizer.Normalize(q.Content),
		Tags:        tags,
		URL:         model.ProblemURL(c.opts.SiteURL, slug),
	}, nil
}
