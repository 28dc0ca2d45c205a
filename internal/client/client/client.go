package client

import (
	"context"

	pb "github.com/dmitrijs2005/gophdrop/internal/proto"
)

type Client interface {
	Close() error
	Ping(ctx context.Context) error
	Register(ctx context.Context, email, username string, password []byte) error
	Login(ctx context.Context, email string, password []byte) error
	Logout(ctx context.Context) error
	Upload(ctx context.Context, name, visibility string, content []byte, ifAbsent bool) (string, error)
	List(ctx context.Context) ([]pb.FileEntry, error)
	Search(ctx context.Context, query string) ([]pb.FileEntry, error)
	Delete(ctx context.Context, name string) (string, error)
	Download(ctx context.Context, name string) (pb.FileEntry, []byte, error)
}
