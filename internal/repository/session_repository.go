package repository

import (
	"campus_backend/internal/model"
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "campus:quiz:session:"

// Abandoned sessions expire on their own after a day.
const sessionTTL = 24 * time.Hour

// SessionRepository keeps resumable quiz snapshots in redis, one per
// student. Starting a quiz for a different manual overwrites the previous
// unfinished snapshot.
type SessionRepository struct {
	RDB *redis.Client
}

func NewSessionRepository(rdb *redis.Client) *SessionRepository {
	return &SessionRepository{RDB: rdb}
}

func sessionKey(studentName string) string {
	return sessionKeyPrefix + studentName
}

// Get returns the student's active session, or nil when none exists.
func (r *SessionRepository) Get(ctx context.Context, studentName string) (*model.QuizSession, error) {
	data, err := r.RDB.Get(ctx, sessionKey(studentName)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session model.QuizSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) Save(ctx context.Context, session *model.QuizSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.RDB.Set(ctx, sessionKey(session.StudentName), data, sessionTTL).Err()
}

func (r *SessionRepository) Delete(ctx context.Context, studentName string) error {
	return r.RDB.Del(ctx, sessionKey(studentName)).Err()
}
