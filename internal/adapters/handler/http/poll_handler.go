package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/lively-votes/api/internal/core/domain"
	"github.com/lively-votes/api/internal/core/ports"
)

type PollHandler struct {
	service ports.PollService
}

func NewPollHandler(service ports.PollService) *PollHandler {
	return &PollHandler{service: service}
}

type createPollRequest struct {
	Question string             `json:"question"`
	Options  []createPollOption `json:"options"`
}

type createPollOption struct {
	Text string `json:"text"`
}

func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	input := ports.ListPollsInput{}
	if v := r.URL.Query().Get("limit"); v != "" {
		input.Limit, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		input.Offset, _ = strconv.Atoi(v)
	}

	polls, err := h.service.ListPolls(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, polls)
}

func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, domain.NewUnauthenticated("you are not logged in, please log in"))
		return
	}

	var req createPollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidation("invalid request body"))
		return
	}

	options := make([]string, 0, len(req.Options))
	for _, opt := range req.Options {
		options = append(options, opt.Text)
	}

	poll, err := h.service.Create(r.Context(), ports.CreatePollInput{
		CreatorID: user.ID,
		Question:  req.Question,
		Options:   options,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, poll)
}

func (h *PollHandler) CountVotes(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	tally, err := h.service.CountVotes(r.Context(), pollID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, tally)
}

func pollIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "pollId")
	pollID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || pollID <= 0 {
		return 0, domain.NewValidation("invalid poll id")
	}
	return pollID, nil
}
