package grpc

import (
	"context"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/gophdrop/internal/common"
	"github.com/dmitrijs2005/gophdrop/internal/logging"
	pb "github.com/dmitrijs2005/gophdrop/internal/proto"
)

type ctxKey string

const usernameKey ctxKey = "username"

// publicMethods do not need an access token.
var publicMethods = map[string]struct{}{
	pb.FileVault_Ping_FullMethodName:         {},
	pb.FileVault_Register_FullMethodName:     {},
	pb.FileVault_Login_FullMethodName:        {},
	pb.FileVault_RefreshToken_FullMethodName: {},
	pb.FileVault_Logout_FullMethodName:       {},
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

	if _, ok := publicMethods[info.FullMethod]; ok {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			accessToken = values[0]
		}
	}
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	username, err := s.users.ResolveCaller(ctx, accessToken)
	if err != nil {
		return nil, toStatus(err)
	}

	return handler(context.WithValue(ctx, usernameKey, username), req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	ctx = logging.ContextWithRequestID(ctx, uuid.NewString())
	log := s.logger.With("method", info.FullMethod)

	resp, err := handler(ctx, req)

	code := status.Code(err)
	log = log.With("code", code.String(), "duration", time.Since(start))
	switch code {
	case codes.OK:
		log.Info(ctx, "request processed")
	case codes.Internal, codes.Unknown:
		log.Error(ctx, "request failed", "error", err)
	default:
		log.Warn(ctx, "request rejected", "error", err)
	}

	return resp, err
}

func callerFrom(ctx context.Context) string {
	u, _ := ctx.Value(usernameKey).(string)
	return u
}
