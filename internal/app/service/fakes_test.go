package service

import (
	"context"
	"database/sql"
	"time"

	"quizhub/internal/common"
	"quizhub/internal/domain/model"
)

// fakeUserRepo keeps users and graph state in maps, mirroring what the pg
// implementation persists.
type fakeUserRepo struct {
	users          map[string]*model.User
	usersInOrder   []string
	friends        map[string][]string // userID -> friend ids
	friendRequests map[string][]string // userID -> pending sender ids, ordered

	setAverageCalls  int
	lastAverage      float64
	lastActivitySet  map[string]string
	saveProgressUser *model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:           make(map[string]*model.User),
		friends:         make(map[string][]string),
		friendRequests:  make(map[string][]string),
		lastActivitySet: make(map[string]string),
	}
}

func (f *fakeUserRepo) add(user *model.User) {
	f.users[user.ID] = user
	f.usersInOrder = append(f.usersInOrder, user.ID)
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	for _, existing := range f.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return common.ErrConflict
		}
	}
	f.add(user)
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) FindByIDForUpdate(ctx context.Context, _ *sql.Tx, id string) (*model.User, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeUserRepo) SaveProgress(_ context.Context, _ *sql.Tx, user *model.User) error {
	f.saveProgressUser = user
	if stored, ok := f.users[user.ID]; ok {
		*stored = *user
	}
	return nil
}

func (f *fakeUserRepo) SetAverageScore(_ context.Context, userID string, avg float64) error {
	f.setAverageCalls++
	f.lastAverage = avg
	if user, ok := f.users[userID]; ok {
		user.AverageScore = avg
	}
	return nil
}

func (f *fakeUserRepo) SetLastActivity(_ context.Context, userID string, activity string) error {
	f.lastActivitySet[userID] = activity
	return nil
}

func (f *fakeUserRepo) ListAll(_ context.Context) ([]model.User, error) {
	users := make([]model.User, 0, len(f.usersInOrder))
	for _, id := range f.usersInOrder {
		users = append(users, *f.users[id])
	}
	return users, nil
}

func (f *fakeUserRepo) ListSuggestions(_ context.Context, userID string, limit int) ([]model.User, error) {
	friendSet := make(map[string]bool)
	for _, id := range f.friends[userID] {
		friendSet[id] = true
	}
	var users []model.User
	for _, id := range f.usersInOrder {
		if id == userID || friendSet[id] {
			continue
		}
		users = append(users, *f.users[id])
		if len(users) == limit {
			break
		}
	}
	return users, nil
}

func (f *fakeUserRepo) AddFriendEdge(_ context.Context, _ *sql.Tx, userID, friendID string) error {
	if !containsID(f.friends[userID], friendID) {
		f.friends[userID] = append(f.friends[userID], friendID)
	}
	if !containsID(f.friends[friendID], userID) {
		f.friends[friendID] = append(f.friends[friendID], userID)
	}
	return nil
}

func (f *fakeUserRepo) ListFriends(_ context.Context, userID string) ([]model.User, error) {
	users := []model.User{}
	for _, id := range f.friends[userID] {
		if user, ok := f.users[id]; ok {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (f *fakeUserRepo) ListFriendIDs(_ context.Context, userID string) ([]string, error) {
	return f.friends[userID], nil
}

func (f *fakeUserRepo) HasFriendRequest(_ context.Context, userID, senderID string) (bool, error) {
	return containsID(f.friendRequests[userID], senderID), nil
}

func (f *fakeUserRepo) AddFriendRequest(_ context.Context, userID, senderID string) error {
	if containsID(f.friendRequests[userID], senderID) {
		return common.ErrConflict
	}
	f.friendRequests[userID] = append(f.friendRequests[userID], senderID)
	return nil
}

func (f *fakeUserRepo) RemoveFriendRequest(_ context.Context, _ *sql.Tx, userID, senderID string) error {
	pending := f.friendRequests[userID]
	kept := pending[:0]
	for _, id := range pending {
		if id != senderID {
			kept = append(kept, id)
		}
	}
	f.friendRequests[userID] = kept
	return nil
}

func (f *fakeUserRepo) ListFriendRequests(_ context.Context, userID string) ([]model.User, error) {
	users := []model.User{}
	for _, id := range f.friendRequests[userID] {
		if user, ok := f.users[id]; ok {
			users = append(users, *user)
		}
	}
	return users, nil
}

// fakeTxRunner invokes the function without a real transaction; the fake
// repositories ignore their *sql.Tx argument.
type fakeTxRunner struct {
	calls int
}

func (f *fakeTxRunner) RunTx(_ context.Context, fn func(tx *sql.Tx) error) error {
	f.calls++
	return fn(nil)
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// fakeResultRepo backs the progression and feed paths.
type fakeResultRepo struct {
	resultsByUser map[string][]model.QuizResult
	created       []*model.QuizResult
	recentQuery   struct {
		userIDs []string
		limit   int
	}
	recent []model.QuizResult
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{resultsByUser: make(map[string][]model.QuizResult)}
}

func (f *fakeResultRepo) Create(_ context.Context, result *model.QuizResult) error {
	f.created = append(f.created, result)
	f.resultsByUser[result.UserID] = append(f.resultsByUser[result.UserID], *result)
	return nil
}

func (f *fakeResultRepo) FindByID(_ context.Context, id string) (*model.QuizResult, error) {
	for _, results := range f.resultsByUser {
		for _, result := range results {
			if result.ID == id {
				copied := result
				return &copied, nil
			}
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeResultRepo) ListByUser(_ context.Context, userID string) ([]model.QuizResult, error) {
	return f.resultsByUser[userID], nil
}

func (f *fakeResultRepo) ListRecentByUsers(_ context.Context, userIDs []string, limit int) ([]model.QuizResult, error) {
	f.recentQuery.userIDs = userIDs
	f.recentQuery.limit = limit
	return f.recent, nil
}

func (f *fakeResultRepo) ScoresByUser(_ context.Context, userID string) ([]float64, error) {
	var scores []float64
	for _, result := range f.resultsByUser[userID] {
		scores = append(scores, result.Score)
	}
	return scores, nil
}

func (f *fakeResultRepo) CountByUser(_ context.Context, userID string) (int, error) {
	return len(f.resultsByUser[userID]), nil
}

// fakeQuizRepo stores quizzes in a map.
type fakeQuizRepo struct {
	quizzes map[string]*model.Quiz
	created []*model.Quiz
}

func newFakeQuizRepo() *fakeQuizRepo {
	return &fakeQuizRepo{quizzes: make(map[string]*model.Quiz)}
}

func (f *fakeQuizRepo) Create(_ context.Context, quiz *model.Quiz) error {
	f.quizzes[quiz.ID] = quiz
	f.created = append(f.created, quiz)
	return nil
}

func (f *fakeQuizRepo) FindByID(_ context.Context, id string) (*model.Quiz, error) {
	quiz, ok := f.quizzes[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *quiz
	return &copied, nil
}

func (f *fakeQuizRepo) ListByCreator(_ context.Context, userID string) ([]model.Quiz, error) {
	quizzes := []model.Quiz{}
	for _, quiz := range f.created {
		if quiz.CreatedByID == userID {
			quizzes = append(quizzes, *quiz)
		}
	}
	return quizzes, nil
}

// fakeLeaderboardCache records gets and sets.
type fakeLeaderboardCache struct {
	payload  string
	has      bool
	getCalls int
	setCalls int
	lastTTL  time.Duration
}

func (f *fakeLeaderboardCache) Get(_ context.Context) (string, bool, error) {
	f.getCalls++
	return f.payload, f.has, nil
}

func (f *fakeLeaderboardCache) Set(_ context.Context, payload string, ttl time.Duration) error {
	f.setCalls++
	f.payload = payload
	f.has = true
	f.lastTTL = ttl
	return nil
}
