package client

import (
	"context"

	"github.com/dmitrijs2005/pdfdrop/internal/client/models"
)

type Client interface {
	Login(ctx context.Context, username, password string) (string, error)
	PresignedURL(ctx context.Context, token, filename string) (*models.Authorization, error)
	HashPassword(ctx context.Context, password string) (string, error)
	Health(ctx context.Context) (*Health, error)
}

// Health is the body of GET /health.
type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
