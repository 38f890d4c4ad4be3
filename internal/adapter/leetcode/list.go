package leetcode

import (
	"context"
	"encoding/json"
	"fmt"

	"leetcode-export/internal/domain/model"
)

const listQuery = `query problemsetQuestionListV2($limit: Int, $skip: Int) {
  problemsetQuestionListV2(limit: $limit, skip: $skip) {
    questions {
      titleSlug
      title
      difficulty
      __typename
    }
  }
}`

type listResponse struct {
	Data struct {
		ProblemsetQuestionListV2 struct {
			Questions []struct {
				TitleSlug  string `json:"titleSlug"`
				Title      string `json:"title"`
				Difficulty string `json:"difficulty"`
			} `json:"questions"`
		} `json:"problemsetQuestionListV2"`
	} `json:"data"`
}

// ListSlugs pages through the problemset until target slugs are collected.
// An unparseable or empty page ends the listing without an error; only a
// failure to reach the API is returned, together with the slugs gathered so far.
func (c *Client) ListSlugs(ctx context.Context, target int) ([]string, error) {
	if target <= 0 {
		return nil, nil
	}

	slugs := make([]string, 0, target)
	skip := 0

	for len(slugs) < target {
		if err := c.listPacer.Wait(ctx); err != nil {
			return slugs, fmt.Errorf("wait for listing slot: %w", err)
		}

		page, err := c.fetchPage(ctx, skip)
		if err != nil {
			return slugs, err
		}
		if len(page) == 0 {
			c.logger.Warn(ctx, "empty slug batch, stopping", "skip", skip)
			break
		}

		for _, summary := range page {
			c.logger.Debug(ctx, "listed problem", "slug", summary.Slug, "title", summary.Title, "difficulty", summary.Difficulty)
			slugs = append(slugs, summary.Slug)
			if len(slugs) >= target {
				break
			}
		}

		skip += c.opts.PageSize
	}

	return slugs, nil
}

// fetchPage returns the summaries at offset skip. A nil slice means the
// listing has no more usable data.
func (c *Client) fetchPage(ctx context.Context, skip int) ([]model.ProblemSummary, error) {
	body, status, err := c.post(ctx, listQuery, map[string]any{
		"limit": c.opts.PageSize,
		"skip":  skip,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch slug batch (skip=%d): %w", skip, err)
	}
	c.logger.Info(ctx, "fetched slug batch", "skip", skip, "status", status)

	var payload listResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		c.logger.Error(ctx, "invalid listing response", "skip", skip, "status", status, "error", err, "body", snippet(body))
		return nil, nil
	}

	questions := payload.Data.ProblemsetQuestionListV2.Questions
	summaries := make([]model.ProblemSummary, 0, len(questions))
	for _, q := range questions {
		if q.TitleSlug == "" {
			c.logger.Warn(ctx, "listing row without slug", "skip", skip, "title", q.Title)
			continue
		}
		summaries = append(summaries, model.ProblemSummary{
			Slug:       q.TitleSlug,
			Title:      q.Title,
			Difficulty: model.Difficulty(q.Difficulty),
		})
	}
	return summaries, nil
}
