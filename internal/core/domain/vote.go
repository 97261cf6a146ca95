package domain

import "time"

type Vote struct {
	ID       int64     `json:"id"`
	VoterID  int64     `json:"userId"`
	PollID   int64     `json:"pollId"`
	OptionID int64     `json:"optionId"`
	VotedAt  time.Time `json:"votedAt"`
}

// NoVote is the sentinel option id meaning the user has not voted on a
// poll yet. Real option ids start at 1, so 0 never collides.
const NoVote int64 = 0

// TallyEvent is broadcast to realtime subscribers whenever a poll's
// vote counts change.
type TallyEvent struct {
	PollID int64 `json:"pollId"`
}
