package repository

import (
	"context"
	"errors"

	"github.com/civic-lab/fixpoint/pkg/domain/interfaces"
	"github.com/civic-lab/fixpoint/pkg/domain/model"
	"github.com/civic-lab/fixpoint/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo implements Repository interface with MongoDB
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongo creates a new MongoDB repository
func NewMongo(ctx context.Context, uri, database string) (interfaces.Repository, error) {
	logger := ctxlog.From(ctx)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create mongodb client")
	}

	// Fail fast on unreachable or misconfigured deployments
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, goerr.Wrap(err, "failed to connect to mongodb",
			goerr.V("database", database))
	}

	db := client.Database(database)

	// Unique index makes the one-vote-per-user rule a storage constraint
	_, err = db.Collection(votesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "issue_id", Value: 1},
			{Key: "user_id", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, goerr.Wrap(err, "failed to create vote index")
	}

	logger.Info("MongoDB repository initialized successfully",
		"database", database,
	)

	return &Mongo{
		client: client,
		db:     db,
	}, nil
}

// PutIssue saves an issue to MongoDB
func (m *Mongo) PutIssue(ctx context.Context, issue *model.Issue) error {
	if issue == nil {
		return goerr.New("issue is nil")
	}
	if issue.ID <= 0 {
		return goerr.New("issue ID must be positive")
	}

	_, err := m.db.Collection(issuesCollection).ReplaceOne(ctx,
		bson.M{"_id": issue.ID.Int()},
		issue,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to save issue to mongodb")
	}

	return nil
}

// GetIssue retrieves an issue by ID
func (m *Mongo) GetIssue(ctx context.Context, id types.IssueID) (*model.Issue, error) {
	if id <= 0 {
		return nil, goerr.New("issue ID must be positive")
	}

	var issue model.Issue
	err := m.db.Collection(issuesCollection).FindOne(ctx, bson.M{"_id": id.Int()}).Decode(&issue)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, goerr.Wrap(model.ErrIssueNotFound, "failed to get issue")
		}
		return nil, goerr.Wrap(err, "failed to get issue from mongodb")
	}

	return &issue, nil
}

// ListIssues lists issues matching the filter, newest first
func (m *Mongo) ListIssues(ctx context.Context, filter interfaces.IssueFilter) ([]*model.Issue, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status.String()
	}
	if filter.Category != "" {
		query["category"] = filter.Category.String()
	}

	opts := options.Find().SetSort(bson.D{{Key: "reported_at", Value: -1}})
	if filter.Limit > 0 {
		opts = opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := m.db.Collection(issuesCollection).Find(ctx, query, opts)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query issues")
	}
	defer cursor.Close(ctx)

	var issues []*model.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, goerr.Wrap(err, "failed to decode issues")
	}

	return issues, nil
}

// GetNextIssueNumber returns the next available issue number using atomic increment
func (m *Mongo) GetNextIssueNumber(ctx context.Context) (types.IssueID, error) {
	result := m.db.Collection(countersCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": issueCounterDocID},
		bson.M{"$inc": bson.M{fieldCurrentNumber: 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)

	var counter struct {
		CurrentNumber int `bson:"current_number"`
	}
	if err := result.Decode(&counter); err != nil {
		return 0, goerr.Wrap(err, "failed to get next issue number")
	}

	return types.IssueID(counter.CurrentNumber), nil
}

// PutVote saves a vote, enforcing one vote per user per issue
func (m *Mongo) PutVote(ctx context.Context, vote *model.Vote) error {
	if vote == nil {
		return goerr.New("vote is nil")
	}
	if vote.IssueID <= 0 {
		return goerr.New("issue ID must be positive")
	}
	if vote.UserID == "" {
		return goerr.New("voter user ID is empty")
	}

	_, err := m.db.Collection(votesCollection).InsertOne(ctx, vote)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return goerr.Wrap(model.ErrAlreadyVoted, "duplicate vote",
				goerr.V("issueID", vote.IssueID),
				goerr.V("userID", vote.UserID))
		}
		return goerr.Wrap(err, "failed to save vote to mongodb")
	}

	return nil
}

// CountVotes counts votes for an issue
func (m *Mongo) CountVotes(ctx context.Context, issueID types.IssueID) (int, error) {
	if issueID <= 0 {
		return 0, goerr.New("issue ID must be positive")
	}

	count, err := m.db.Collection(votesCollection).CountDocuments(ctx,
		bson.M{"issue_id": issueID.Int()})
	if err != nil {
		return 0, goerr.Wrap(err, "failed to count votes")
	}

	return int(count), nil
}

// ListVotes lists votes for an issue, oldest first
func (m *Mongo) ListVotes(ctx context.Context, issueID types.IssueID) ([]*model.Vote, error) {
	if issueID <= 0 {
		return nil, goerr.New("issue ID must be positive")
	}

	cursor, err := m.db.Collection(votesCollection).Find(ctx,
		bson.M{"issue_id": issueID.Int()},
		options.Find().SetSort(bson.D{{Key: "cast_at", Value: 1}}),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query votes")
	}
	defer cursor.Close(ctx)

	var votes []*model.Vote
	if err := cursor.All(ctx, &votes); err != nil {
		return nil, goerr.Wrap(err, "failed to decode votes")
	}

	return votes, nil
}

// SaveUser saves a user to MongoDB
func (m *Mongo) SaveUser(ctx context.Context, user *model.User) error {
	if user == nil {
		return goerr.New("user is nil")
	}
	if user.ID == "" {
		return goerr.New("user ID is empty")
	}

	_, err := m.db.Collection(usersCollection).ReplaceOne(ctx,
		bson.M{"_id": user.ID.String()},
		user,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to save user to mongodb")
	}

	return nil
}

// GetUser retrieves a user by ID
func (m *Mongo) GetUser(ctx context.Context, id types.UserID) (*model.User, error) {
	if id == "" {
		return nil, goerr.New("user ID is empty")
	}

	var user model.User
	err := m.db.Collection(usersCollection).FindOne(ctx, bson.M{"_id": id.String()}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, goerr.Wrap(model.ErrUserNotFound, "failed to get user")
		}
		return nil, goerr.Wrap(err, "failed to get user from mongodb")
	}

	return &user, nil
}

// AddStatusHistory appends a status history entry
func (m *Mongo) AddStatusHistory(ctx context.Context, history *model.StatusHistory) error {
	if history == nil {
		return goerr.New("status history is nil")
	}
	if err := history.Validate(); err != nil {
		return goerr.Wrap(err, "invalid status history")
	}

	_, err := m.db.Collection(historiesCollection).InsertOne(ctx, history)
	if err != nil {
		return goerr.Wrap(err, "failed to save status history to mongodb")
	}

	return nil
}

// ListStatusHistory lists status history entries for an issue, oldest first
func (m *Mongo) ListStatusHistory(ctx context.Context, issueID types.IssueID) ([]*model.StatusHistory, error) {
	if issueID <= 0 {
		return nil, goerr.New("issue ID must be positive")
	}

	cursor, err := m.db.Collection(historiesCollection).Find(ctx,
		bson.M{"issue_id": issueID.Int()},
		options.Find().SetSort(bson.D{{Key: "changed_at", Value: 1}}),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query status histories")
	}
	defer cursor.Close(ctx)

	var entries []*model.StatusHistory
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, goerr.Wrap(err, "failed to decode status histories")
	}

	return entries, nil
}

// Close disconnects the MongoDB client
func (m *Mongo) Close() error {
	if m.client != nil {
		return m.client.Disconnect(context.Background())
	}
	return nil
}

var _ interfaces.Repository = (*Mongo)(nil) // Compile-time interface check
