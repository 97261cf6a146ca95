package services_test

import (
	"context"
	"sync"

	"github.com/lively-votes/api/internal/core/domain"
	"github.com/lively-votes/api/internal/core/ports"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User

	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User)}
}

func (r *fakeUserRepo) add(name, email string) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	u := &domain.User{ID: r.nextID, Name: name, Email: email}
	r.users[u.ID] = u
	return u
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.NewConflict("a user with this email already exists, please login")
		}
	}
	r.nextID++
	user.ID = r.nextID
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) Profile(ctx context.Context, id int64) (*domain.Profile, error) {
	u, _ := r.GetByID(ctx, id)
	if u == nil {
		return nil, nil
	}
	return &domain.Profile{User: *u}, nil
}

func (r *fakeUserRepo) ListVotes(ctx context.Context, userID int64) ([]domain.Vote, error) {
	return []domain.Vote{}, nil
}

type fakePollRepo struct {
	mu     sync.Mutex
	nextID int64
	polls  map[int64]*domain.Poll

	saveErr error
}

func newFakePollRepo() *fakePollRepo {
	return &fakePollRepo{polls: make(map[int64]*domain.Poll)}
}

func (r *fakePollRepo) add(creatorID int64, question string, optionTexts ...string) *domain.Poll {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	poll := &domain.Poll{ID: r.nextID, Question: question, CreatorID: creatorID}
	for _, text := range optionTexts {
		r.nextID++
		poll.Options = append(poll.Options, domain.Option{ID: r.nextID, PollID: poll.ID, Text: text})
	}
	r.polls[poll.ID] = poll
	return poll
}

func (r *fakePollRepo) Save(ctx context.Context, poll *domain.Poll) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	poll.ID = r.nextID
	for i := range poll.Options {
		r.nextID++
		poll.Options[i].ID = r.nextID
		poll.Options[i].PollID = poll.ID
	}
	stored := *poll
	r.polls[poll.ID] = &stored
	return nil
}

func (r *fakePollRepo) GetByID(ctx context.Context, id int64) (*domain.Poll, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.polls[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, nil
}

func (r *fakePollRepo) List(ctx context.Context, limit, offset int) ([]*domain.Poll, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	polls := []*domain.Poll{}
	for _, p := range r.polls {
		copied := *p
		polls = append(polls, &copied)
	}
	return polls, nil
}

func (r *fakePollRepo) GetOption(ctx context.Context, pollID, optionID int64) (*domain.Option, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.polls[pollID]
	if !ok {
		return nil, nil
	}
	for _, opt := range p.Options {
		if opt.ID == optionID {
			copied := opt
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakePollRepo) CountVotes(ctx context.Context, pollID int64) ([]domain.OptionTally, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.polls[pollID]
	if !ok {
		return []domain.OptionTally{}, nil
	}
	tallies := []domain.OptionTally{}
	for _, opt := range p.Options {
		tallies = append(tallies, domain.OptionTally{OptionID: opt.ID, OptionText: opt.Text})
	}
	return tallies, nil
}

type voteKey struct {
	pollID  int64
	voterID int64
}

type fakeVoteRepo struct {
	mu     sync.Mutex
	nextID int64
	votes  map[voteKey]*domain.Vote

	saveErr error
}

func newFakeVoteRepo() *fakeVoteRepo {
	return &fakeVoteRepo{votes: make(map[voteKey]*domain.Vote)}
}

func (r *fakeVoteRepo) Save(ctx context.Context, vote *domain.Vote) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := voteKey{pollID: vote.PollID, voterID: vote.VoterID}
	if _, exists := r.votes[key]; exists {
		return domain.NewConflict("you can't vote on the same poll twice")
	}
	r.nextID++
	vote.ID = r.nextID
	stored := *vote
	r.votes[key] = &stored
	return nil
}

func (r *fakeVoteRepo) UpdateOption(ctx context.Context, pollID, voterID, optionID int64) (*domain.Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := voteKey{pollID: pollID, voterID: voterID}
	v, ok := r.votes[key]
	if !ok {
		return nil, nil
	}
	v.OptionID = optionID
	copied := *v
	return &copied, nil
}

func (r *fakeVoteRepo) FindByPollAndVoter(ctx context.Context, pollID, voterID int64) (*domain.Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.votes[voteKey{pollID: pollID, voterID: voterID}]; ok {
		copied := *v
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeVoteRepo) VotedOption(ctx context.Context, voterID, pollID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.votes[voteKey{pollID: pollID, voterID: voterID}]; ok {
		return v.OptionID, nil
	}
	return domain.NoVote, nil
}

type fakeBroker struct {
	mu     sync.Mutex
	events []domain.TallyEvent
}

func (b *fakeBroker) Subscribe(id string) <-chan domain.TallyEvent { return nil }
func (b *fakeBroker) Unsubscribe(id string)                        {}
func (b *fakeBroker) Close() error                                 { return nil }

func (b *fakeBroker) Publish(event domain.TallyEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *fakeBroker) published() []domain.TallyEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]domain.TallyEvent{}, b.events...)
}

var _ ports.UserRepository = (*fakeUserRepo)(nil)
var _ ports.PollRepository = (*fakePollRepo)(nil)
var _ ports.VoteRepository = (*fakeVoteRepo)(nil)
var _ ports.Broker = (*fakeBroker)(nil)
