package grpc

import (
	"context"
	"net"

	"google.golang.org/grpc"

	"github.com/dmitrijs2005/gophdrop/internal/logging"
	pb "github.com/dmitrijs2005/gophdrop/internal/proto"
	"github.com/dmitrijs2005/gophdrop/internal/server/services"
)

// messageOverhead leaves room for base64 inflation and the JSON envelope
// around an upload of the maximum size.
const messageOverhead = 64 << 10

type GRPCServer struct {
	pb.UnimplementedFileVaultServer
	address        string
	users          *services.UserService
	files          *services.FileService
	logger         logging.Logger
	maxMessageSize int
}

func NewGRPCServer(a string, l logging.Logger, us *services.UserService, fs *services.FileService, maxUploadBytes int64) *GRPCServer {
	return &GRPCServer{
		address:        a,
		logger:         l.With("module", "grpc_server"),
		users:          us,
		files:          fs,
		maxMessageSize: int(maxUploadBytes)/3*4 + messageOverhead,
	}
}

// newServer builds the grpc.Server with interceptors and the service
// registered. Run and the tests share it.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor),
		grpc.MaxRecvMsgSize(s.maxMessageSize),
		grpc.MaxSendMsgSize(s.maxMessageSize),
	)
	pb.RegisterFileVaultServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
