package domain

import "time"

type Poll struct {
	ID        int64      `json:"id"`
	Question  string     `json:"question"`
	CreatorID int64      `json:"user_id"`
	Creator   *PollOwner `json:"user,omitempty"`
	Options   []Option   `json:"options"`
	CreatedAt time.Time  `json:"created_at"`
}

// PollOwner is the slice of the creator exposed alongside a poll.
type PollOwner struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type Option struct {
	ID     int64  `json:"id"`
	PollID int64  `json:"poll_id"`
	Text   string `json:"text"`
}

// OptionTally is the per-option vote count for a poll. Options with no
// votes appear with VoteCount zero.
type OptionTally struct {
	OptionID   int64  `json:"optionId"`
	OptionText string `json:"optionText"`
	VoteCount  int64  `json:"voteCount"`
}

type PollTally struct {
	PollID  int64         `json:"pollId"`
	Options []OptionTally `json:"options"`
}
