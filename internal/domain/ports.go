package domain

import "context"

type ClientRepository interface {
	CreateClient(ctx context.Context, c Client) (int64, error)
	UpdateClient(ctx context.Context, c Client) error
	DeleteClient(ctx context.Context, id int64) error
	GetClient(ctx context.Context, id int64) (Client, error)
	GetClientBySlug(ctx context.Context, slug string) (Client, error)
	ListClients(ctx context.Context) ([]Client, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}

type ReviewRepository interface {
	CreateReview(ctx context.Context, clientID int64, s Submission) (int64, error)
	DeleteReview(ctx context.Context, id int64) (Review, error)
	ListReviewsByClient(ctx context.Context, clientID int64) ([]Review, error)
	ListReviews(ctx context.Context) ([]Review, error)
}

type AdminRepository interface {
	CreateAdmin(ctx context.Context, a Admin) error
	GetAdminByEmail(ctx context.Context, email string) (Admin, error)
	GetAdmin(ctx context.Context, id string) (Admin, error)
	// UpdateAdmin rewrites nom, email and password hash.
	UpdateAdmin(ctx context.Context, a Admin) error
}

// Store groups the repositories a backend needs.
type Store interface {
	ClientRepository
	ReviewRepository
	AdminRepository
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
