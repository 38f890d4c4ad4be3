package leetcode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leetcode-export/internal/adapter/htmltext"
	"leetcode-export/internal/domain/model"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}

// fakeAPI serves the listing and detail queries from canned responses.
type fakeAPI struct {
	mu       sync.Mutex
	pages    []string
	details  map[string]func(w http.ResponseWriter)
	skips    []int
	limits   []int
	slugs    []string
	headers  []http.Header
	listHits int
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var req struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f.headers = append(f.headers, r.Header.Clone())

	if strings.Contains(req.Query, "problemsetQuestionListV2") {
		f.skips = append(f.skips, int(req.Variables["skip"].(float64)))
		f.limits = append(f.limits, int(req.Variables["limit"].(float64)))
		idx := f.listHits
		f.listHits++
		w.Header().Set("Content-Type", "application/json")
		if idx >= len(f.pages) {
			fmt.Fprint(w, `{"data":{"problemsetQuestionListV2":{"questions":[]}}}`)
			return
		}
		fmt.Fprint(w, f.pages[idx])
		return
	}

	slug, _ := req.Variables["titleSlug"].(string)
	f.slugs = append(f.slugs, slug)
	handler, ok := f.details[slug]
	if !ok {
		fmt.Fprint(w, `{"data":{"question":null}}`)
		return
	}
	handler(w)
}

func listPage(slugs ...string) string {
	rows := make([]string, 0, len(slugs))
	for _, s := range slugs {
		rows = append(rows, fmt.Sprintf(`{"titleSlug":%q,"title":%q,"difficulty":"Easy","__typename":"Q"}`, s, s))
	}
	return fmt.Sprintf(`{"data":{"problemsetQuestionListV2":{"questions":[%s]}}}`, strings.Join(rows, ","))
}

func jsonBody(body string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}
}

func newTestClient(t *testing.T, api *fakeAPI, pageSize int) *Client {
	t.Helper()
	server := httptest.NewServer(api)
	t.Cleanup(server.Close)

	return New(Options{
		Endpoint:  server.URL,
		PageSize:  pageSize,
		Session:   "sess",
		CSRFToken: "csrf",
	}, htmltext.PlainText{}, nopLogger{})
}

func TestListSlugsSinglePage(t *testing.T) {
	api := &fakeAPI{pages: []string{listPage("two-sum", "add-two-numbers", "lru-cache")}}
	client := newTestClient(t, api, 50)

	slugs, err := client.ListSlugs(context.Background(), 3)
	require.NoError(t, err)

	want := []string{"two-sum", "add-two-numbers", "lru-cache"}
	if diff := cmp.Diff(want, slugs); diff != "" {
		t.Errorf("ListSlugs() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, api.listHits)
}

func TestListSlugsPaginatesAndStopsMidPage(t *testing.T) {
	api := &fakeAPI{pages: []string{
		listPage("a", "b"),
		listPage("c", "d"),
		listPage("e", "f"),
	}}
	client := newTestClient(t, api, 2)

	slugs, err := client.ListSlugs(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, slugs)
	assert.Equal(t, []int{0, 2, 4}, api.skips)
	assert.Equal(t, []int{2, 2, 2}, api.limits)
}

func TestListSlugsStopsOnEmptyPage(t *testing.T) {
	api := &fakeAPI{pages: []string{listPage("a", "b")}}
	client := newTestClient(t, api, 2)

	slugs, err := client.ListSlugs(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, slugs)
	assert.Equal(t, 2, api.listHits)
}

func TestListSlugsStopsOnMalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		page string
	}{
		{name: "not json", page: "<html>blocked</html>"},
		{name: "wrong shape", page: `{"data":{"problemsetQuestionListV2":{"questions":"nope"}}}`},
		{name: "null data", page: `{"data":null,"errors":[{"message":"boom"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{pages: []string{listPage("a"), tt.page, listPage("never")}}
			client := newTestClient(t, api, 1)

			slugs, err := client.ListSlugs(context.Background(), 5)
			require.NoError(t, err)
			assert.Equal(t, []string{"a"}, slugs)
			assert.Equal(t, 2, api.listHits)
		})
	}
}

func TestListSlugsZeroTarget(t *testing.T) {
	api := &fakeAPI{pages: []string{listPage("a")}}
	client := newTestClient(t, api, 1)

	slugs, err := client.ListSlugs(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, slugs)
	assert.Zero(t, api.listHits)
}

func TestListSlugsTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL
	server.Close()

	client := New(Options{Endpoint: endpoint}, htmltext.PlainText{}, nopLogger{})
	slugs, err := client.ListSlugs(context.Background(), 3)
	require.Error(t, err)
	assert.Empty(t, slugs)
}

func TestFetchProblemSuccess(t *testing.T) {
	api := &fakeAPI{details: map[string]func(http.ResponseWriter){
		"two-sum": jsonBody(`{"data":{"question":{
			"content":"<p>Given an array...</p>",
			"topicTags":[{"name":"Array"},{"name":"Hash Table"}],
			"questionId":"1","difficulty":"Easy","title":"Two Sum","__typename":"QuestionNode"}}}`),
	}}
	client := newTestClient(t, api, 50)

	record, err := client.FetchProblem(context.Background(), "two-sum")
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, model.ProblemRecord{
		ID:          "two-sum",
		Title:       "Two Sum",
		Difficulty:  model.DifficultyEasy,
		Description: "Given an array...",
		Tags:        []string{"Array", "Hash Table"},
		URL:         "https://leetcode.com/problems/two-sum/",
	}, *record)
	assert.Equal(t, []string{"two-sum"}, api.slugs)
}

func TestFetchProblemServerError(t *testing.T) {
	api := &fakeAPI{details: map[string]func(http.ResponseWriter){
		"two-sum": func(w http.ResponseWriter) {
			http.Error(w, "internal", http.StatusInternalServerError)
		},
	}}
	client := newTestClient(t, api, 50)

	record, err := client.FetchProblem(context.Background(), "two-sum")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Nil(t, record)
}

func TestFetchProblemAbsent(t *testing.T) {
	api := &fakeAPI{details: map[string]func(http.ResponseWriter){}}
	client := newTestClient(t, api, 50)

	record, err := client.FetchProblem(context.Background(), "premium-only")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestFetchProblemEmptyQuestionObject(t *testing.T) {
	api := &fakeAPI{details: map[string]func(http.ResponseWriter){
		"ghost": jsonBody(`{"data":{"question":{}}}`),
	}}
	client := newTestClient(t, api, 50)

	record, err := client.FetchProblem(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestFetchProblemOversizedResponse(t *testing.T) {
	api := &fakeAPI{details: map[string]func(http.ResponseWriter){
		"huge": func(w http.ResponseWriter) {
			fmt.Fprint(w, strings.Repeat(" ", maxResponseBytes+1))
		},
	}}
	client := newTestClient(t, api, 50)

	record, err := client.FetchProblem(context.Background(), "huge")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "response exceeds")
	assert.Nil(t, record)
}

func TestFetchProblemMalformed(t *testing.T) {
	api := &fakeAPI{details: map[string]func(http.ResponseWriter){
		"bad": jsonBody(`{"data":`),
	}}
	client := newTestClient(t, api, 50)

	record, err := client.FetchProblem(context.Background(), "bad")
	require.Error(t, err)
	assert.Nil(t, record)
}

func TestFetchProblemEmptyTags(t *testing.T) {
	api := &fakeAPI{details: map[string]func(http.ResponseWriter){
		"x": jsonBody(`{"data":{"question":{"content":null,"topicTags":null,"difficulty":"Medium","title":"X"}}}`),
	}}
	client := newTestClient(t, api, 50)

	record, err := client.FetchProblem(context.Background(), "x")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.NotNil(t, record.Tags)
	assert.Empty(t, record.Tags)
	assert.Equal(t, "", record.Description)
}

func TestRequestHeaders(t *testing.T) {
	api := &fakeAPI{pages: []string{listPage("a")}}
	client := newTestClient(t, api, 1)

	_, err := client.ListSlugs(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, api.headers, 1)

	h := api.headers[0]
	assert.Equal(t, "application/json", h.Get("Content-Type"))
	assert.Equal(t, DefaultReferer, h.Get("Referer"))
	assert.Equal(t, DefaultUserAgent, h.Get("User-Agent"))
	assert.Equal(t, "LEETCODE_SESSION=sess; csrftoken=csrf", h.Get("Cookie"))
	assert.Equal(t, "csrf", h.Get("x-csrftoken"))
}

func TestNoCredentialHeadersWhenUnset(t *testing.T) {
	api := &fakeAPI{pages: []string{listPage("a")}}
	server := httptest.NewServer(api)
	defer server.Close()

	client := New(Options{Endpoint: server.URL}, htmltext.PlainText{}, nopLogger{})
	_, err := client.ListSlugs(context.Background(), 1)
	require.NoError(t, err)

	assert.Empty(t, api.headers[0].Get("Cookie"))
	assert.Empty(t, api.headers[0].Get("x-csrftoken"))
}

func TestPacerHonoursCancellation(t *testing.T) {
	api := &fakeAPI{details: map[string]func(http.ResponseWriter){}}
	server := httptest.NewServer(api)
	defer server.Close()

	client := New(Options{Endpoint: server.URL, DetailDelay: time.Hour}, htmltext.PlainText{}, nopLogger{})

	_, err := client.FetchProblem(context.Background(), "first")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = client.FetchProblem(ctx, "second")
	require.Error(t, err)
	assert.Equal(t, []string{"first"}, api.slugs)
}

func TestListSlugsPacesPages(t *testing.T) {
	api := &fakeAPI{pages: []string{listPage("a"), listPage("b"), listPage("c")}}
	server := httptest.NewServer(api)
	defer server.Close()

	const delay = 30 * time.Millisecond
	client := New(Options{Endpoint: server.URL, PageSize: 1, ListDelay: delay}, htmltext.PlainText{}, nopLogger{})

	start := time.Now()
	slugs, err := client.ListSlugs(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, slugs)
	assert.GreaterOrEqual(t, time.Since(start), 2*delay-5*time.Millisecond)
}

func TestListSlugsPacerHonoursCancellation(t *testing.T) {
	api := &fakeAPI{pages: []string{listPage("a"), listPage("b")}}
	server := httptest.NewServer(api)
	defer server.Close()

	client := New(Options{Endpoint: server.URL, PageSize: 1, ListDelay: time.Hour}, htmltext.PlainText{}, nopLogger{})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	slugs, err := client.ListSlugs(ctx, 2)
	require.Error(t, err)
	assert.Equal(t, []string{"a"}, slugs)
	assert.Equal(t, 1, api.listHits)
}
