package client

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/gophdrop/internal/common"
	pb "github.com/dmitrijs2005/gophdrop/internal/proto"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.FileVaultClient

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) tokens() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) setTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken, s.refreshToken = access, refresh
}

// accessTokenInterceptor attaches the access token to every call. When the
// server answers "token expired" it redeems the refresh token once and
// retries the call with the new access token.
func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	accessToken, refreshToken := s.tokens()
	if accessToken != "" {
		ctx = withAccessToken(ctx, accessToken)
	}

	err := invoker(ctx, method, req, reply, cc, opts...)

	if err != nil {

		st, ok := status.FromError(err)
		if !ok {
			return err
		}

		if st.Code() != codes.Unauthenticated {
			return err
		}
		if st.Message() != common.ErrTokenExpired.Error() {
			return err
		}

		if refreshToken == "" {
			return err
		}

		refreshTokenResponse, err := s.client.RefreshToken(ctx, &pb.RefreshTokenRequest{RefreshToken: refreshToken})
		if err != nil {
			return err
		}

		s.setTokens(refreshTokenResponse.AccessToken, refreshTokenResponse.RefreshToken)

		// tokens refreshed, retry with the new access token
		ctx = withAccessToken(ctx, refreshTokenResponse.AccessToken)
		return invoker(ctx, method, req, reply, cc, opts...)

	}

	return err
}

func NewGophDropClientService(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {

	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewFileVaultClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	resp, err := s.client.Ping(ctx, &pb.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) Register(ctx context.Context, email, username string, password []byte) error {

	req := &pb.RegisterRequest{Email: email, Username: username, Password: string(password)}

	resp, err := s.client.Register(ctx, req)
	if err != nil {
		return s.mapError(err)
	}

	s.setTokens(resp.AccessToken, resp.RefreshToken)
	return nil
}

func (s *GRPCClient) Login(ctx context.Context, email string, password []byte) error {

	req := &pb.LoginRequest{Email: email, Password: string(password)}

	resp, err := s.client.Login(ctx, req)
	if err != nil {
		return s.mapError(err)
	}

	s.setTokens(resp.AccessToken, resp.RefreshToken)
	return nil
}

// Logout revokes the refresh token on the server and forgets both tokens.
func (s *GRPCClient) Logout(ctx context.Context) error {
	_, refreshToken := s.tokens()
	s.setTokens("", "")

	if refreshToken == "" {
		return nil
	}
	if _, err := s.client.Logout(ctx, &pb.LogoutRequest{RefreshToken: refreshToken}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) Upload(ctx context.Context, name, visibility string, content []byte, ifAbsent bool) (string, error) {

	req := &pb.UploadRequest{Name: name, Visibility: visibility, Content: content, IfAbsent: ifAbsent}

	resp, err := s.client.Upload(ctx, req)
	if err != nil {
		return "", s.mapError(err)
	}

	return resp.Message, nil
}

func (s *GRPCClient) List(ctx context.Context) ([]pb.FileEntry, error) {

	resp, err := s.client.List(ctx, &pb.ListRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}

	return resp.Files, nil
}

func (s *GRPCClient) Search(ctx context.Context, query string) ([]pb.FileEntry, error) {

	resp, err := s.client.Search(ctx, &pb.SearchRequest{Query: query})
	if err != nil {
		return nil, s.mapError(err)
	}

	return resp.Files, nil
}

func (s *GRPCClient) Delete(ctx context.Context, name string) (string, error) {

	resp, err := s.client.Delete(ctx, &pb.DeleteRequest{Name: name})
	if err != nil {
		return "", s.mapError(err)
	}

	return resp.Message, nil
}

func (s *GRPCClient) Download(ctx context.Context, name string) (pb.FileEntry, []byte, error) {

	resp, err := s.client.Download(ctx, &pb.DownloadRequest{Name: name})
	if err != nil {
		return pb.FileEntry{}, nil, s.mapError(err)
	}

	return resp.File, resp.Content, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}

	switch st.Code() {
	case codes.Unauthenticated:
		return ErrUnauthorized
	case codes.PermissionDenied:
		return ErrForbidden
	case codes.NotFound:
		return ErrNotFound
	case codes.AlreadyExists:
		return ErrAlreadyExists
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidArgument, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
