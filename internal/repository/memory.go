package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/SD-18/irs-backend/internal/domain"
)

// In-memory implementations mirroring the Postgres repositories' contracts:
// uuid keys, pgx.ErrNoRows on misses, ErrDuplicateUsername on username
// collisions. They back tests and local runs without a database.

type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewMemoryUserRepository returns a map-backed UserRepository.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[string]domain.User)}
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return ErrDuplicateUsername
		}
	}
	now := time.Now()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *memoryUserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryUserRepository) List(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		result = append(result, user)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

type memoryIssueRepository struct {
	mu     sync.RWMutex
	issues map[string]domain.Issue
}

// NewMemoryIssueRepository returns a map-backed IssueRepository.
func NewMemoryIssueRepository() IssueRepository {
	return &memoryIssueRepository{issues: make(map[string]domain.Issue)}
}

func (r *memoryIssueRepository) Create(_ context.Context, issue *domain.Issue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	issue.ID = uuid.NewString()
	issue.CreatedAt = now
	issue.UpdatedAt = now
	r.issues[issue.ID] = *issue
	return nil
}

func (r *memoryIssueRepository) Update(_ context.Context, issue *domain.Issue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.issues[issue.ID]; !ok {
		return pgx.ErrNoRows
	}
	issue.UpdatedAt = time.Now()
	r.issues[issue.ID] = *issue
	return nil
}

func (r *memoryIssueRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.issues[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.issues, id)
	return nil
}

func (r *memoryIssueRepository) GetByID(_ context.Context, id string) (*domain.Issue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	issue, ok := r.issues[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &issue, nil
}

func (r *memoryIssueRepository) ListByCreator(_ context.Context, userID string) ([]domain.Issue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Issue
	for _, issue := range r.issues {
		if issue.CreatedBy == userID {
			result = append(result, issue)
		}
	}
	sortIssues(result)
	return result, nil
}

func (r *memoryIssueRepository) ListAll(_ context.Context) ([]domain.Issue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.Issue, 0, len(r.issues))
	for _, issue := range r.issues {
		result = append(result, issue)
	}
	sortIssues(result)
	return result, nil
}

func sortIssues(issues []domain.Issue) {
	sort.Slice(issues, func(i, j int) bool { return issues[i].UpdatedAt.After(issues[j].UpdatedAt) })
}
