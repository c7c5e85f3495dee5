package grpc

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type authService struct {
	users    UserService
	students StudentService
}

func (a *authService) Authenticate(ctx context.Context, req *structpb.Struct) (*wrapperspb.StringValue, error) {
	userName := req.GetFields()["username"].GetStringValue()
	password := req.GetFields()["password"].GetStringValue()
	if userName == "" || password == "" {
		return nil, status.Error(codes.InvalidArgument, "username and password are required")
	}

	token, err := a.users.Login(ctx, userName, password)
	if err != nil {
		return nil, statusError(err)
	}
	return wrapperspb.String(token), nil
}

func (a *authService) WhoAmI(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	u, ok := currentUser(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}
	out, err := structpb.NewStruct(map[string]any{
		"id":       u.ID,
		"username": u.UserName,
		"email":    u.Email,
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func (a *authService) ListStudents(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	u, ok := currentUser(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	page, err := intField(req, "page", services.DefaultPage)
	if err != nil {
		return nil, err
	}
	perPage, err := intField(req, "per_page", services.DefaultPerPage)
	if err != nil {
		return nil, err
	}

	list, err := a.students.ListForUser(ctx, u.ID, page, perPage)
	if err != nil {
		return nil, statusError(err)
	}

	items := make([]any, 0, len(list))
	for _, s := range list {
		items = append(items, map[string]any{
			"id":        s.ID,
			"full_name": s.FullName,
			"group":     s.Group,
		})
	}
	out, err := structpb.NewList(items)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func (a *authService) Logout(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BoolValue, error) {
	ok, err := a.users.Logout(ctx, currentToken(ctx))
	if err != nil {
		return nil, statusError(err)
	}
	return wrapperspb.Bool(ok), nil
}

// intField reads a whole number from req, falling back to def when the
// field is absent.
func intField(req *structpb.Struct, name string, def int) (int, error) {
	v, ok := req.GetFields()[name]
	if !ok {
		return def, nil
	}
	n, isNum := v.GetKind().(*structpb.Value_NumberValue)
	if !isNum || n.NumberValue != float64(int(n.NumberValue)) {
		return 0, status.Error(codes.InvalidArgument, "invalid "+name)
	}
	return int(n.NumberValue), nil
}
