package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"category-catalog-service/internal/service"
)

// CategoryServiceName is the fully-qualified gRPC service name.
const CategoryServiceName = "catalog.v1.CategoryService"

// CategoryServiceServer is the server API for catalog.v1.CategoryService.
// Requests and responses are google.protobuf.Struct values carrying the same JSON shapes as the HTTP API.
type CategoryServiceServer interface {
	ListCategories(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetCategory(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListCategoryProducts(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func unaryMethod(name string, call func(CategoryServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodDesc {
	fullMethod := "/" + CategoryServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(CategoryServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(CategoryServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// CategoryServiceDesc describes catalog.v1.CategoryService for grpc.Server.RegisterService.
var CategoryServiceDesc = grpc.ServiceDesc{
	ServiceName: CategoryServiceName,
	HandlerType: (*CategoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("ListCategories", CategoryServiceServer.ListCategories),
		unaryMethod("GetCategory", CategoryServiceServer.GetCategory),
		unaryMethod("ListCategoryProducts", CategoryServiceServer.ListCategoryProducts),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "catalog/v1/category.proto",
}

// RegisterCategoryServiceServer registers srv on s.
func RegisterCategoryServiceServer(s grpc.ServiceRegistrar, srv CategoryServiceServer) {
	s.RegisterService(&CategoryServiceDesc, srv)
}

// GRPCHandler implements CategoryServiceServer on top of a CategoryQuerier.
type GRPCHandler struct {
	categories CategoryQuerier
	pagination PaginationOptions
	logger     *zap.Logger
}

// NewGRPCHandler creates a new GRPCHandler.
func NewGRPCHandler(cq CategoryQuerier, opts PaginationOptions, logger *zap.Logger) *GRPCHandler {
	if opts.DefaultPerPage <= 0 {
		opts.DefaultPerPage = defaultPerPage
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GRPCHandler{categories: cq, pagination: opts, logger: logger}
}

// --- Helper: Error Mapping ---
func (s *GRPCHandler) mapServiceErrorToGrpcStatus(err error, categoryID int64) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return status.Errorf(codes.NotFound, "Category with ID %d not found", categoryID)
	case errors.Is(err, service.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		s.logger.Error("category service call failed", zap.Int64("category_id", categoryID), zap.Error(err))
		return status.Error(codes.Internal, "internal error")
	}
}

// toStruct converts any JSON-serializable value into a Struct under key.
func toStruct(key string, v interface{}) (*structpb.Struct, error) {
	raw, err := json.Marshal(map[string]interface{}{key: v})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode %s: %v", key, err)
	}
	out := new(structpb.Struct)
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, status.Errorf(codes.Internal, "failed to convert %s: %v", key, err)
	}
	return out, nil
}

// intField reads an integral number from req. ok is false when the field is absent.
func intField(req *structpb.Struct, name string) (value int64, ok bool, err error) {
	v, present := req.GetFields()[name]
	if !present {
		return 0, false, nil
	}
	n, isNumber := v.GetKind().(*structpb.Value_NumberValue)
	if !isNumber {
		return 0, true, status.Errorf(codes.InvalidArgument, "%s must be a number", name)
	}
	if n.NumberValue != math.Trunc(n.NumberValue) || math.Abs(n.NumberValue) > math.MaxInt32 {
		return 0, true, status.Errorf(codes.InvalidArgument, "%s must be an integer", name)
	}
	return int64(n.NumberValue), true, nil
}

func requiredID(req *structpb.Struct) (int64, error) {
	id, ok, err := intField(req, "id")
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, status.Error(codes.InvalidArgument, "id is required")
	}
	return id, nil
}

// --- Category gRPC Methods Implementation ---

func (s *GRPCHandler) ListCategories(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, s.mapServiceErrorToGrpcStatus(err, 0)
	}
	return toStruct("categories", categories)
}

func (s *GRPCHandler) GetCategory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requiredID(req)
	if err != nil {
		return nil, err
	}
	category, err := s.categories.GetCategory(ctx, id)
	if err != nil {
		return nil, s.mapServiceErrorToGrpcStatus(err, id)
	}
	return toStruct("category", category)
}

func (s *GRPCHandler) ListCategoryProducts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requiredID(req)
	if err != nil {
		return nil, err
	}

	page, perPage := int64(defaultPage), int64(s.pagination.DefaultPerPage)
	if v, ok, err := intField(req, "page"); err != nil {
		return nil, err
	} else if ok {
		page = v
	}
	if v, ok, err := intField(req, "per_page"); err != nil {
		return nil, err
	} else if ok {
		perPage = v
	}
	if s.pagination.MaxPerPage > 0 && perPage > int64(s.pagination.MaxPerPage) {
		return nil, status.Errorf(codes.InvalidArgument, "per_page must not exceed %d", s.pagination.MaxPerPage)
	}

	result, err := s.categories.ListCategoryProducts(ctx, id, int(page), int(perPage))
	if err != nil {
		return nil, s.mapServiceErrorToGrpcStatus(err, id)
	}
	return toStruct("page", result)
}

// UnaryLoggingInterceptor logs every unary call with its status code and latency.
func UnaryLoggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)
		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", code.String()),
			zap.Duration("duration", time.Since(start)),
		}
		if code == codes.Internal || code == codes.Unknown {
			logger.Error("gRPC call failed", append(fields, zap.Error(err))...)
		} else {
			logger.Info("gRPC call", fields...)
		}
		return resp, err
	}
}

// UnaryRecoveryInterceptor turns handler panics into codes.Internal.
func UnaryRecoveryInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic in gRPC handler", zap.String("method", info.FullMethod), zap.String("panic", fmt.Sprint(r)), zap.Stack("stack"))
				err = status.Error(codes.Internal, "internal error")
			}
		}()
		return handler(ctx, req)
	}
}
