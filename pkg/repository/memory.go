package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/civic-lab/fixpoint/pkg/domain/interfaces"
	"github.com/civic-lab/fixpoint/pkg/domain/model"
	"github.com/civic-lab/fixpoint/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Memory implements Repository interface with in-memory storage
type Memory struct {
	mu           sync.RWMutex
	issues       map[types.IssueID]*model.Issue
	votes        map[types.IssueID]map[types.UserID]*model.Vote
	users        map[types.UserID]*model.User
	histories    map[types.IssueID][]*model.StatusHistory
	issueCounter types.IssueID
}

// NewMemory creates a new memory repository
func NewMemory() interfaces.Repository {
	return &Memory{
		issues:       make(map[types.IssueID]*model.Issue),
		votes:        make(map[types.IssueID]map[types.UserID]*model.Vote),
		users:        make(map[types.UserID]*model.User),
		histories:    make(map[types.IssueID][]*model.StatusHistory),
		issueCounter: 0,
	}
}

// PutIssue saves an issue to memory
func (m *Memory) PutIssue(ctx context.Context, issue *model.Issue) error {
	if issue == nil {
		return goerr.New("issue is nil")
	}
	if err := issue.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid issue ID")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Deep copy to prevent external modifications
	issueCopy := *issue
	m.issues[issue.ID] = &issueCopy

	return nil
}

// GetIssue retrieves an issue by ID
func (m *Memory) GetIssue(ctx context.Context, id types.IssueID) (*model.Issue, error) {
	if err := id.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid issue ID")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	issue, exists := m.issues[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrIssueNotFound, "issue not found in memory",
			goerr.V("id", id))
	}

	// Return a copy to prevent external modification
	issueCopy := *issue
	return &issueCopy, nil
}

// ListIssues lists issues matching the filter, newest first
func (m *Memory) ListIssues(ctx context.Context, filter interfaces.IssueFilter) ([]*model.Issue, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var issues []*model.Issue
	for _, issue := range m.issues {
		if filter.Status != "" && issue.Status != filter.Status {
			continue
		}
		if filter.Category != "" && issue.Category != filter.Category {
			continue
		}
		issueCopy := *issue
		issues = append(issues, &issueCopy)
	}

	// Sort by report time (newest first)
	sort.Slice(issues, func(i, j int) bool {
		return issues[i].ReportedAt.After(issues[j].ReportedAt)
	})

	// Apply limit
	if filter.Limit > 0 && len(issues) > filter.Limit {
		issues = issues[:filter.Limit]
	}

	return issues, nil
}

// GetNextIssueNumber returns the next issue serial number
func (m *Memory) GetNextIssueNumber(ctx context.Context) (types.IssueID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.issueCounter++
	return m.issueCounter, nil
}

// PutVote saves a vote, enforcing one vote per user per issue
func (m *Memory) PutVote(ctx context.Context, vote *model.Vote) error {
	if vote == nil {
		return goerr.New("vote is nil")
	}
	if err := vote.IssueID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid issue ID")
	}
	if vote.UserID == "" {
		return goerr.New("voter user ID is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	byUser, exists := m.votes[vote.IssueID]
	if !exists {
		byUser = make(map[types.UserID]*model.Vote)
		m.votes[vote.IssueID] = byUser
	}

	if _, voted := byUser[vote.UserID]; voted {
		return goerr.Wrap(model.ErrAlreadyVoted, "duplicate vote",
			goerr.V("issueID", vote.IssueID),
			goerr.V("userID", vote.UserID))
	}

	voteCopy := *vote
	byUser[vote.UserID] = &voteCopy

	return nil
}

// CountVotes counts votes for an issue
func (m *Memory) CountVotes(ctx context.Context, issueID types.IssueID) (int, error) {
	if err := issueID.Validate(); err != nil {
		return 0, goerr.Wrap(err, "invalid issue ID")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.votes[issueID]), nil
}

// ListVotes lists votes for an issue, oldest first
func (m *Memory) ListVotes(ctx context.Context, issueID types.IssueID) ([]*model.Vote, error) {
	if err := issueID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid issue ID")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var votes []*model.Vote
	for _, vote := range m.votes[issueID] {
		voteCopy := *vote
		votes = append(votes, &voteCopy)
	}

	sort.Slice(votes, func(i, j int) bool {
		return votes[i].CastAt.Before(votes[j].CastAt)
	})

	return votes, nil
}

// SaveUser saves a user to memory
func (m *Memory) SaveUser(ctx context.Context, user *model.User) error {
	if user == nil {
		return goerr.New("user is nil")
	}
	if user.ID == "" {
		return goerr.New("user ID is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	userCopy := *user
	m.users[user.ID] = &userCopy

	return nil
}

// GetUser retrieves a user by ID
func (m *Memory) GetUser(ctx context.Context, id types.UserID) (*model.User, error) {
	if id == "" {
		return nil, goerr.New("user ID is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrUserNotFound, "user not found in memory",
			goerr.V("id", id))
	}

	userCopy := *user
	return &userCopy, nil
}

// AddStatusHistory appends a status history entry
func (m *Memory) AddStatusHistory(ctx context.Context, history *model.StatusHistory) error {
	if history == nil {
		return goerr.New("status history is nil")
	}
	if err := history.Validate(); err != nil {
		return goerr.Wrap(err, "invalid status history")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	historyCopy := *history
	m.histories[history.IssueID] = append(m.histories[history.IssueID], &historyCopy)

	return nil
}

// ListStatusHistory lists status history entries for an issue, oldest first
func (m *Memory) ListStatusHistory(ctx context.Context, issueID types.IssueID) ([]*model.StatusHistory, error) {
	if err := issueID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid issue ID")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := m.histories[issueID]
	result := make([]*model.StatusHistory, 0, len(entries))
	for _, entry := range entries {
		entryCopy := *entry
		result = append(result, &entryCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ChangedAt.Before(result[j].ChangedAt)
	})

	return result, nil
}

// Close closes the repository (no-op for memory)
func (m *Memory) Close() error {
	return nil
}
