package grpc

import (
	"bytes"
	"context"
	"io"

	pb "github.com/dmitrijs2005/gophdrop/internal/proto"
	"github.com/dmitrijs2005/gophdrop/internal/server/models"
	"github.com/dmitrijs2005/gophdrop/internal/server/services"
)

func (s *GRPCServer) Ping(ctx context.Context, req *pb.PingRequest) (*pb.PingResponse, error) {

	return &pb.PingResponse{Status: "OK"}, nil

}

func (s *GRPCServer) Register(ctx context.Context, req *pb.RegisterRequest) (*pb.AuthResponse, error) {

	s.logger.Info(ctx, "Registration request", "username", req.Username)

	tokens, err := s.users.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Registered", "username", req.Username)
	return authResponse("Registered successfully", tokens), nil

}

func (s *GRPCServer) Login(ctx context.Context, req *pb.LoginRequest) (*pb.AuthResponse, error) {

	tokens, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}

	return authResponse("Login successful", tokens), nil

}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *pb.RefreshTokenRequest) (*pb.AuthResponse, error) {

	tokens, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, toStatus(err)
	}

	return authResponse("", tokens), nil

}

func (s *GRPCServer) Logout(ctx context.Context, req *pb.LogoutRequest) (*pb.AckResponse, error) {

	if err := s.users.Logout(ctx, req.RefreshToken); err != nil {
		return nil, toStatus(err)
	}

	return &pb.AckResponse{Message: "Logged out"}, nil

}

func (s *GRPCServer) Upload(ctx context.Context, req *pb.UploadRequest) (*pb.AckResponse, error) {

	ack, err := s.files.Upload(ctx, callerFrom(ctx), req.Visibility, req.Name, bytes.NewReader(req.Content),
		services.UploadOptions{IfAbsent: req.IfAbsent})
	if err != nil {
		return nil, toStatus(err)
	}

	return ackResponse(ack), nil

}

func (s *GRPCServer) List(ctx context.Context, req *pb.ListRequest) (*pb.FileList, error) {

	entries, err := s.files.List(ctx, callerFrom(ctx))
	if err != nil {
		return nil, toStatus(err)
	}

	return fileList(entries), nil

}

func (s *GRPCServer) Search(ctx context.Context, req *pb.SearchRequest) (*pb.FileList, error) {

	entries, err := s.files.Search(ctx, callerFrom(ctx), req.Query)
	if err != nil {
		return nil, toStatus(err)
	}

	return fileList(entries), nil

}

func (s *GRPCServer) Delete(ctx context.Context, req *pb.DeleteRequest) (*pb.AckResponse, error) {

	ack, err := s.files.Delete(ctx, callerFrom(ctx), req.Name)
	if err != nil {
		return nil, toStatus(err)
	}

	return ackResponse(ack), nil

}

func (s *GRPCServer) Download(ctx context.Context, req *pb.DownloadRequest) (*pb.DownloadResponse, error) {

	rc, entry, err := s.files.Download(ctx, callerFrom(ctx), req.Name)
	if err != nil {
		return nil, toStatus(err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		s.logger.Error(ctx, "read download", "error", err)
		return nil, toStatus(err)
	}

	return &pb.DownloadResponse{File: fileEntry(entry), Content: content}, nil

}

// ---- conversions ----

func authResponse(msg string, t *models.TokenPair) *pb.AuthResponse {
	return &pb.AuthResponse{Message: msg, AccessToken: t.AccessToken, RefreshToken: t.RefreshToken}
}

func ackResponse(a models.Ack) *pb.AckResponse {
	return &pb.AckResponse{Message: a.Message, Filename: a.Filename}
}

func fileEntry(e models.FileEntry) pb.FileEntry {
	return pb.FileEntry{
		Name:       e.Name,
		Owner:      e.Owner,
		SizeBytes:  e.SizeBytes,
		ModifiedAt: e.ModifiedAt,
		Visibility: string(e.Visibility),
	}
}

func fileList(entries []models.FileEntry) *pb.FileList {
	out := &pb.FileList{Files: make([]pb.FileEntry, 0, len(entries))}
	for _, e := range entries {
		out.Files = append(out.Files, fileEntry(e))
	}
	return out
}
