package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "gophdrop.FileVault"

// Full method names, used by interceptors to tell public RPCs from
// authenticated ones.
const (
	FileVault_Ping_FullMethodName         = "/gophdrop.FileVault/Ping"
	FileVault_Register_FullMethodName     = "/gophdrop.FileVault/Register"
	FileVault_Login_FullMethodName        = "/gophdrop.FileVault/Login"
	FileVault_RefreshToken_FullMethodName = "/gophdrop.FileVault/RefreshToken"
	FileVault_Logout_FullMethodName       = "/gophdrop.FileVault/Logout"
	FileVault_Upload_FullMethodName       = "/gophdrop.FileVault/Upload"
	FileVault_List_FullMethodName         = "/gophdrop.FileVault/List"
	FileVault_Search_FullMethodName       = "/gophdrop.FileVault/Search"
	FileVault_Delete_FullMethodName       = "/gophdrop.FileVault/Delete"
	FileVault_Download_FullMethodName     = "/gophdrop.FileVault/Download"
)

// FileVaultServer is the server API for the FileVault service.
type FileVaultServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	Register(context.Context, *RegisterRequest) (*AuthResponse, error)
	Login(context.Context, *LoginRequest) (*AuthResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*AuthResponse, error)
	Logout(context.Context, *LogoutRequest) (*AckResponse, error)
	Upload(context.Context, *UploadRequest) (*AckResponse, error)
	List(context.Context, *ListRequest) (*FileList, error)
	Search(context.Context, *SearchRequest) (*FileList, error)
	Delete(context.Context, *DeleteRequest) (*AckResponse, error)
	Download(context.Context, *DownloadRequest) (*DownloadResponse, error)
}

// UnimplementedFileVaultServer answers Unimplemented for every method.
// Embed it to stay forward compatible.
type UnimplementedFileVaultServer struct{}

func (UnimplementedFileVaultServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedFileVaultServer) Register(context.Context, *RegisterRequest) (*AuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedFileVaultServer) Login(context.Context, *LoginRequest) (*AuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedFileVaultServer) RefreshToken(context.Context, *RefreshTokenRequest) (*AuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RefreshToken not implemented")
}
func (UnimplementedFileVaultServer) Logout(context.Context, *LogoutRequest) (*AckResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Logout not implemented")
}
func (UnimplementedFileVaultServer) Upload(context.Context, *UploadRequest) (*AckResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Upload not implemented")
}
func (UnimplementedFileVaultServer) List(context.Context, *ListRequest) (*FileList, error) {
	return nil, status.Error(codes.Unimplemented, "method List not implemented")
}
func (UnimplementedFileVaultServer) Search(context.Context, *SearchRequest) (*FileList, error) {
	return nil, status.Error(codes.Unimplemented, "method Search not implemented")
}
func (UnimplementedFileVaultServer) Delete(context.Context, *DeleteRequest) (*AckResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Delete not implemented")
}
func (UnimplementedFileVaultServer) Download(context.Context, *DownloadRequest) (*DownloadResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Download not implemented")
}

func RegisterFileVaultServer(s grpc.ServiceRegistrar, srv FileVaultServer) {
	s.RegisterService(&FileVault_ServiceDesc, srv)
}

// unaryHandler adapts a typed server method to grpc.MethodHandler.
func unaryHandler[Req any, Resp any](fullMethod string, call func(FileVaultServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(FileVaultServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(FileVaultServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var FileVault_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FileVaultServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unaryHandler(FileVault_Ping_FullMethodName, FileVaultServer.Ping)},
		{MethodName: "Register", Handler: unaryHandler(FileVault_Register_FullMethodName, FileVaultServer.Register)},
		{MethodName: "Login", Handler: unaryHandler(FileVault_Login_FullMethodName, FileVaultServer.Login)},
		{MethodName: "RefreshToken", Handler: unaryHandler(FileVault_RefreshToken_FullMethodName, FileVaultServer.RefreshToken)},
		{MethodName: "Logout", Handler: unaryHandler(FileVault_Logout_FullMethodName, FileVaultServer.Logout)},
		{MethodName: "Upload", Handler: unaryHandler(FileVault_Upload_FullMethodName, FileVaultServer.Upload)},
		{MethodName: "List", Handler: unaryHandler(FileVault_List_FullMethodName, FileVaultServer.List)},
		{MethodName: "Search", Handler: unaryHandler(FileVault_Search_FullMethodName, FileVaultServer.Search)},
		{MethodName: "Delete", Handler: unaryHandler(FileVault_Delete_FullMethodName, FileVaultServer.Delete)},
		{MethodName: "Download", Handler: unaryHandler(FileVault_Download_FullMethodName, FileVaultServer.Download)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gophdrop/filevault",
}

// FileVaultClient is the client API for the FileVault service.
type FileVaultClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*AckResponse, error)
	Upload(ctx context.Context, in *UploadRequest, opts ...grpc.CallOption) (*AckResponse, error)
	List(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*FileList, error)
	Search(ctx context.Context, in *SearchRequest, opts ...grpc.CallOption) (*FileList, error)
	Delete(ctx context.Context, in *DeleteRequest, opts ...grpc.CallOption) (*AckResponse, error)
	Download(ctx context.Context, in *DownloadRequest, opts ...grpc.CallOption) (*DownloadResponse, error)
}

type fileVaultClient struct {
	cc grpc.ClientConnInterface
}

func NewFileVaultClient(cc grpc.ClientConnInterface) FileVaultClient {
	return &fileVaultClient{cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fileVaultClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, FileVault_Ping_FullMethodName, in, opts)
}
func (c *fileVaultClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, FileVault_Register_FullMethodName, in, opts)
}
func (c *fileVaultClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, FileVault_Login_FullMethodName, in, opts)
}
func (c *fileVaultClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, FileVault_RefreshToken_FullMethodName, in, opts)
}
func (c *fileVaultClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*AckResponse, error) {
	return invoke[AckResponse](ctx, c.cc, FileVault_Logout_FullMethodName, in, opts)
}
func (c *fileVaultClient) Upload(ctx context.Context, in *UploadRequest, opts ...grpc.CallOption) (*AckResponse, error) {
	return invoke[AckResponse](ctx, c.cc, FileVault_Upload_FullMethodName, in, opts)
}
func (c *fileVaultClient) List(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*FileList, error) {
	return invoke[FileList](ctx, c.cc, FileVault_List_FullMethodName, in, opts)
}
func (c *fileVaultClient) Search(ctx context.Context, in *SearchRequest, opts ...grpc.CallOption) (*FileList, error) {
	return invoke[FileList](ctx, c.cc, FileVault_Search_FullMethodName, in, opts)
}
func (c *fileVaultClient) Delete(ctx context.Context, in *DeleteRequest, opts ...grpc.CallOption) (*AckResponse, error) {
	return invoke[AckResponse](ctx, c.cc, FileVault_Delete_FullMethodName, in, opts)
}
func (c *fileVaultClient) Download(ctx context.Context, in *DownloadRequest, opts ...grpc.CallOption) (*DownloadResponse, error) {
	return invoke[DownloadResponse](ctx, c.cc, FileVault_Download_FullMethodName, in, opts)
}
