package grpc

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/gophdrop/internal/common"
)

func TestToStatus(t *testing.T) {
	tests := []struct {
		err  error
		want codes.Code
	}{
		{common.ErrorUnauthorized, codes.Unauthenticated},
		{fmt.Errorf("%w: %w", common.ErrorUnauthorized, common.ErrTokenExpired), codes.Unauthenticated},
		{common.ErrRefreshTokenExpired, codes.Unauthenticated},
		{fmt.Errorf("delete: %w", common.ErrorNotFound), codes.NotFound},
		{common.ErrorForbidden, codes.PermissionDenied},
		{common.ErrorInvalidVisibility, codes.InvalidArgument},
		{common.ErrorAlreadyExists, codes.AlreadyExists},
		{fmt.Errorf("list: %w: %w", common.ErrorStorage, errors.New("eio")), codes.Internal},
		{errors.New("boom"), codes.Internal},
		{status.Error(codes.Canceled, "gone"), codes.Canceled},
	}

	for _, tt := range tests {
		if got := status.Code(toStatus(tt.err)); got != tt.want {
			t.Errorf("toStatus(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestToStatus_ExpiredMessage(t *testing.T) {
	err := toStatus(fmt.Errorf("%w: %w", common.ErrorUnauthorized, common.ErrTokenExpired))
	if status.Convert(err).Message() != "token expired" {
		t.Fatalf("unexpected message %q", status.Convert(err).Message())
	}
}

func TestToStatus_StorageDetailsHidden(t *testing.T) {
	err := toStatus(fmt.Errorf("list: %w: %w", common.ErrorStorage, errors.New("secret path /srv")))
	if status.Convert(err).Message() != "internal error" {
		t.Fatalf("storage details leaked: %q", status.Convert(err).Message())
	}
}
