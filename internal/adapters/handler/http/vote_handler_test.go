package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lively-votes/api/internal/core/domain"
	"github.com/lively-votes/api/internal/core/ports"
)

type fakeVoteService struct {
	vote    *domain.Vote
	created bool
	err     error

	votedOption int64
}

func (f *fakeVoteService) CastVote(ctx context.Context, input ports.CastVoteInput) (*domain.Vote, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	return f.vote, f.created, nil
}

func (f *fakeVoteService) VotedOption(ctx context.Context, voterID, pollID int64) (int64, error) {
	if f.err != nil {
		return domain.NoVote, f.err
	}
	return f.votedOption, nil
}

func castVoteRecorder(t *testing.T, svc ports.VoteService, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	h := NewVoteHandler(svc)
	req := httptest.NewRequest("POST", "/api/v1/polls/castVote", strings.NewReader(body))
	if authed {
		req = req.WithContext(withUser(req.Context(), domain.User{ID: 2, Email: "voter@example.com"}))
	}
	rec := httptest.NewRecorder()
	h.CastVote(rec, req)
	return rec
}

func TestCastVoteCreated(t *testing.T) {
	svc := &fakeVoteService{
		vote:    &domain.Vote{ID: 1, VoterID: 2, PollID: 3, OptionID: 4},
		created: true,
	}
	rec := castVoteRecorder(t, svc, `{"pollId":3,"optionId":4}`, true)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "created", data["result"])
}

func TestCastVoteUpdated(t *testing.T) {
	svc := &fakeVoteService{vote: &domain.Vote{ID: 1, VoterID: 2, PollID: 3, OptionID: 5}}
	rec := castVoteRecorder(t, svc, `{"pollId":3,"optionId":5}`, true)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "updated", data["result"])
}

func TestCastVoteErrorStatuses(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"self vote", domain.NewForbidden("you can't vote on your own poll"), http.StatusForbidden},
		{"missing poll", domain.NewNotFound("no poll found with this ID"), http.StatusNotFound},
		{"race loser", domain.NewConflict("you can't vote on the same poll twice"), http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := castVoteRecorder(t, &fakeVoteService{err: tt.err}, `{"pollId":3,"optionId":4}`, true)
			assert.Equal(t, tt.want, rec.Code)

			var resp envelope
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, "error", resp.Status)
		})
	}
}

func TestCastVoteValidation(t *testing.T) {
	rec := castVoteRecorder(t, &fakeVoteService{}, `{"pollId":0,"optionId":4}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = castVoteRecorder(t, &fakeVoteService{}, `{not json`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCastVoteWithoutUser(t *testing.T) {
	rec := castVoteRecorder(t, &fakeVoteService{}, `{"pollId":3,"optionId":4}`, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWhichOptionVotedSentinel(t *testing.T) {
	h := NewVoteHandler(&fakeVoteService{votedOption: domain.NoVote})

	req := httptest.NewRequest("GET", "/api/v1/polls/whichOptionVoted/3", nil)
	req = req.WithContext(withUser(req.Context(), domain.User{ID: 2}))
	req = withPollIDParam(req, "3")
	rec := httptest.NewRecorder()
	h.WhichOptionVoted(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(domain.NoVote), data["optionId"])
}
