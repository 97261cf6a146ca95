package http

import (
	"encoding/json"
	"net/http"

	"github.com/lively-votes/api/internal/core/domain"
	"github.com/lively-votes/api/internal/core/ports"
)

type VoteHandler struct {
	service ports.VoteService
}

func NewVoteHandler(service ports.VoteService) *VoteHandler {
	return &VoteHandler{service: service}
}

type castVoteRequest struct {
	PollID   int64 `json:"pollId"`
	OptionID int64 `json:"optionId"`
}

func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, domain.NewUnauthenticated("you are not logged in, please log in"))
		return
	}

	var req castVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidation("invalid request body"))
		return
	}
	if req.PollID <= 0 || req.OptionID <= 0 {
		writeError(w, domain.NewValidation("pollId and optionId are required"))
		return
	}

	vote, created, err := h.service.CastVote(r.Context(), ports.CastVoteInput{
		VoterID:  user.ID,
		PollID:   req.PollID,
		OptionID: req.OptionID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusOK
	result := "updated"
	if created {
		status = http.StatusCreated
		result = "created"
	}
	writeSuccess(w, status, map[string]any{"vote": vote, "result": result})
}

func (h *VoteHandler) WhichOptionVoted(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, domain.NewUnauthenticated("you are not logged in, please log in"))
		return
	}

	pollID, err := pollIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	optionID, err := h.service.VotedOption(r.Context(), user.ID, pollID)
	if err != nil {
		writeError(w, err)
		return
	}

	// optionID is domain.NoVote when the user has not voted yet.
	writeSuccess(w, http.StatusOK, map[string]any{"optionId": optionID})
}
