package repository

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/civic-lab/fixpoint/pkg/domain/interfaces"
	"github.com/civic-lab/fixpoint/pkg/domain/model"
	"github.com/civic-lab/fixpoint/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// Collection names
	issuesCollection    = "issues"
	votesCollection     = "votes"
	usersCollection     = "users"
	historiesCollection = "status_histories"
	countersCollection  = "counters"

	// Document IDs
	issueCounterDocID = "issue"

	// Field names
	fieldCurrentNumber = "current_number"
)

// Firestore implements Repository interface with Firestore
type Firestore struct {
	client *firestore.Client
}

// NewFirestore creates a new Firestore repository
func NewFirestore(ctx context.Context, projectID, databaseID string) (interfaces.Repository, error) {
	logger := ctxlog.From(ctx)

	// Create client with database ID
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client")
	}

	// Test connection by attempting to read from a collection
	// This will fail fast if the project ID is invalid or if there are permission issues
	_, err = client.Collection(issuesCollection).Limit(1).Documents(ctx).Next()
	if err != nil && err != iterator.Done {
		// Only fail if it's a real error (not just empty collection)
		if status.Code(err) == codes.PermissionDenied || status.Code(err) == codes.Unauthenticated {
			_ = client.Close()
			return nil, goerr.Wrap(err, "failed to connect to firestore project",
				goerr.V("firestore error code", status.Code(err).String()),
			)
		}
		// For other errors (like NotFound for new projects), log but continue
		logger.Debug("Firestore connection test returned error (may be empty collection)",
			"error", err,
			"errorCode", status.Code(err).String(),
		)
	}

	logger.Info("Firestore repository initialized successfully",
		"projectID", projectID,
		"databaseID", databaseID,
	)

	return &Firestore{
		client: client,
	}, nil
}

// PutIssue saves an issue to Firestore
func (f *Firestore) PutIssue(ctx context.Context, issue *model.Issue) error {
	if issue == nil {
		return goerr.New("issue is nil")
	}
	if issue.ID <= 0 {
		return goerr.New("issue ID must be positive")
	}

	_, err := f.client.Collection(issuesCollection).Doc(issue.ID.String()).Set(ctx, issue)
	if err != nil {
		return goerr.Wrap(err, "failed to save issue to firestore")
	}

	return nil
}

// GetIssue retrieves an issue by ID
func (f *Firestore) GetIssue(ctx context.Context, id types.IssueID) (*model.Issue, error) {
	if id <= 0 {
		return nil, goerr.New("issue ID must be positive")
	}

	doc, err := f.client.Collection(issuesCollection).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrIssueNotFound, "failed to get issue")
		}
		return nil, goerr.Wrap(err, "failed to get issue from firestore")
	}

	var issue model.Issue
	if err := doc.DataTo(&issue); err != nil {
		return nil, goerr.Wrap(err, "failed to decode issue")
	}

	return &issue, nil
}

// ListIssues lists issues matching the filter, newest first
func (f *Firestore) ListIssues(ctx context.Context, filter interfaces.IssueFilter) ([]*model.Issue, error) {
	// Simple queries without OrderBy to avoid requiring composite indexes;
	// sorting happens in memory instead
	// Note: Field names in Firestore match Go struct field names
	query := f.client.Collection(issuesCollection).Query
	if filter.Status != "" {
		query = query.Where("Status", "==", filter.Status.String())
	}
	if filter.Category != "" {
		query = query.Where("Category", "==", filter.Category.String())
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var issues []*model.Issue
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate issues")
		}

		var issue model.Issue
		if err := doc.DataTo(&issue); err != nil {
			return nil, goerr.Wrap(err, "failed to decode issue")
		}
		issues = append(issues, &issue)
	}

	sort.Slice(issues, func(i, j int) bool {
		return issues[i].ReportedAt.After(issues[j].ReportedAt)
	})

	if filter.Limit > 0 && len(issues) > filter.Limit {
		issues = issues[:filter.Limit]
	}

	return issues, nil
}

// GetNextIssueNumber returns the next available issue number using atomic increment
func (f *Firestore) GetNextIssueNumber(ctx context.Context) (types.IssueID, error) {
	counterDoc := f.client.Collection(countersCollection).Doc(issueCounterDocID)

	var nextNumber types.IssueID
	err := f.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(counterDoc)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				// Initialize counter if it doesn't exist
				nextNumber = 1
				return tx.Set(counterDoc, map[string]any{
					fieldCurrentNumber: int(nextNumber),
				})
			}
			return goerr.Wrap(err, "failed to get counter document")
		}

		// Get current number and increment
		currentNumber, err := doc.DataAt(fieldCurrentNumber)
		if err != nil {
			return goerr.Wrap(err, "failed to get current_number field")
		}

		// Handle both int and int64 types
		switch v := currentNumber.(type) {
		case int64:
			nextNumber = types.IssueID(v) + 1
		case int:
			nextNumber = types.IssueID(v) + 1
		default:
			return goerr.New("unexpected type for current_number")
		}

		// Update counter
		return tx.Update(counterDoc, []firestore.Update{
			{Path: fieldCurrentNumber, Value: int(nextNumber)},
		})
	})

	if err != nil {
		return 0, goerr.Wrap(err, "failed to get next issue number")
	}

	return nextNumber, nil
}

// voteDocID builds the vote document ID from issue and user. Keying by the
// pair makes the one-vote-per-user rule a document-level constraint.
func voteDocID(issueID types.IssueID, userID types.UserID) string {
	return issueID.String() + ":" + userID.String()
}

// PutVote saves a vote, enforcing one vote per user per issue
func (f *Firestore) PutVote(ctx context.Context, vote *model.Vote) error {
	if vote == nil {
		return goerr.New("vote is nil")
	}
	if vote.IssueID <= 0 {
		return goerr.New("issue ID must be positive")
	}
	if vote.UserID == "" {
		return goerr.New("voter user ID is empty")
	}

	doc := f.client.Collection(votesCollection).Doc(voteDocID(vote.IssueID, vote.UserID))

	// Create fails with AlreadyExists if the user voted before
	_, err := doc.Create(ctx, vote)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return goerr.Wrap(model.ErrAlreadyVoted, "duplicate vote",
				goerr.V("issueID", vote.IssueID),
				goerr.V("userID", vote.UserID))
		}
		return goerr.Wrap(err, "failed to save vote to firestore")
	}

	return nil
}

// CountVotes counts votes for an issue
func (f *Firestore) CountVotes(ctx context.Context, issueID types.IssueID) (int, error) {
	votes, err := f.ListVotes(ctx, issueID)
	if err != nil {
		return 0, err
	}
	return len(votes), nil
}

// ListVotes lists votes for an issue, oldest first
func (f *Firestore) ListVotes(ctx context.Context, issueID types.IssueID) ([]*model.Vote, error) {
	if issueID <= 0 {
		return nil, goerr.New("issue ID must be positive")
	}

	query := f.client.Collection(votesCollection).
		Where("IssueID", "==", issueID.Int())

	iter := query.Documents(ctx)
	defer iter.Stop()

	var votes []*model.Vote
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate votes")
		}

		var vote model.Vote
		if err := doc.DataTo(&vote); err != nil {
			return nil, goerr.Wrap(err, "failed to decode vote")
		}
		votes = append(votes, &vote)
	}

	sort.Slice(votes, func(i, j int) bool {
		return votes[i].CastAt.Before(votes[j].CastAt)
	})

	return votes, nil
}

// SaveUser saves a user to Firestore
func (f *Firestore) SaveUser(ctx context.Context, user *model.User) error {
	if user == nil {
		return goerr.New("user is nil")
	}
	if user.ID == "" {
		return goerr.New("user ID is empty")
	}

	_, err := f.client.Collection(usersCollection).Doc(user.ID.String()).Set(ctx, user)
	if err != nil {
		return goerr.Wrap(err, "failed to save user to firestore")
	}

	return nil
}

// GetUser retrieves a user by ID
func (f *Firestore) GetUser(ctx context.Context, id types.UserID) (*model.User, error) {
	if id == "" {
		return nil, goerr.New("user ID is empty")
	}

	doc, err := f.client.Collection(usersCollection).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrUserNotFound, "failed to get user")
		}
		return nil, goerr.Wrap(err, "failed to get user from firestore")
	}

	var user model.User
	if err := doc.DataTo(&user); err != nil {
		return nil, goerr.Wrap(err, "failed to decode user")
	}

	return &user, nil
}

// AddStatusHistory appends a status history entry
func (f *Firestore) AddStatusHistory(ctx context.Context, history *model.StatusHistory) error {
	if history == nil {
		return goerr.New("status history is nil")
	}
	if err := history.Validate(); err != nil {
		return goerr.Wrap(err, "invalid status history")
	}

	_, err := f.client.Collection(historiesCollection).Doc(history.ID.String()).Set(ctx, history)
	if err != nil {
		return goerr.Wrap(err, "failed to save status history to firestore")
	}

	return nil
}

// ListStatusHistory lists status history entries for an issue, oldest first
func (f *Firestore) ListStatusHistory(ctx context.Context, issueID types.IssueID) ([]*model.StatusHistory, error) {
	if issueID <= 0 {
		return nil, goerr.New("issue ID must be positive")
	}

	query := f.client.Collection(historiesCollection).
		Where("IssueID", "==", issueID.Int())

	iter := query.Documents(ctx)
	defer iter.Stop()

	var entries []*model.StatusHistory
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate status histories")
		}

		var entry model.StatusHistory
		if err := doc.DataTo(&entry); err != nil {
			return nil, goerr.Wrap(err, "failed to decode status history")
		}
		entries = append(entries, &entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ChangedAt.Before(entries[j].ChangedAt)
	})

	return entries, nil
}

// Close closes the Firestore client
func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

var _ interfaces.Repository = (*Firestore)(nil) // Compile-time interface check
