// Package grpc is the gRPC gate in front of the token service. It serves
// the same operations as the HTTP gate over a hand-described service that
// only uses protobuf well-known types.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"google.golang.org/grpc"
)

// UserService is what the gate needs from services.UserService.
type UserService interface {
	Login(ctx context.Context, userName, password string) (string, error)
	Logout(ctx context.Context, token string) (bool, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// StudentService is what the gate needs from services.StudentService.
type StudentService interface {
	ListForUser(ctx context.Context, userID int64, page, perPage int) ([]*models.Student, error)
}

type GRPCServer struct {
	address  string
	users    UserService
	students StudentService
	logger   logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, us UserService, ss StudentService) *GRPCServer {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		users:    us,
		students: ss,
	}
}

// NewServer returns a grpc.Server with the auth service registered and the
// access token interceptor installed.
func (s *GRPCServer) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	srv := grpc.NewServer(opts...)
	RegisterAuthServiceServer(srv, &authService{users: s.users, students: s.students})
	return srv
}

// Run serves until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
