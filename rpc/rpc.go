// Package rpc exposes the simulator as a gRPC service. Messages are the JSON
// documents of the HTTP API, exchanged with the "json" content-subtype.
package rpc

import (
	"context"
	"errors"
	"log"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/cookiefied/processscheduler/scheduler"
)

const (
	serviceName    = "scheduler.Simulator"
	simulateMethod = "/" + serviceName + "/Simulate"
	compareMethod  = "/" + serviceName + "/Compare"
)

// CompareResponse holds one result per requested policy.
type CompareResponse struct {
	Results []*scheduler.Result `json:"results"`
}

// SimulatorServer is the server API for the Simulator service.
type SimulatorServer interface {
	Simulate(context.Context, *scheduler.Request) (*scheduler.Result, error)
	Compare(context.Context, *scheduler.Request) (*CompareResponse, error)
}

// Server implements SimulatorServer on top of the scheduler package.
type Server struct {
	opts []scheduler.SetOption
}

func NewServer(setOpts ...scheduler.SetOption) *Server {
	return &Server{opts: setOpts}
}

func (s *Server) Simulate(ctx context.Context, req *scheduler.Request) (*scheduler.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}
	res, err := req.Simulate(s.opts...)
	if err != nil {
		return nil, toStatus("Simulate", err)
	}
	return res, nil
}

func (s *Server) Compare(ctx context.Context, req *scheduler.Request) (*CompareResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}
	results, err := req.Compare(s.opts...)
	if err != nil {
		return nil, toStatus("Compare", err)
	}
	return &CompareResponse{Results: results}, nil
}

func toStatus(method string, err error) error {
	if errors.Is(err, scheduler.ErrInvalidInput) {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	log.Printf("[rpc] %s: %v", method, err)
	return status.Error(codes.Internal, err.Error())
}

// Register installs srv on s.
func Register(s grpc.ServiceRegistrar, srv SimulatorServer) {
	s.RegisterService(&serviceDesc, srv)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*SimulatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Simulate", Handler: simulateHandler},
		{MethodName: "Compare", Handler: compareHandler},
	},
	Streams: []grpc.StreamDesc{},
}

func simulateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(scheduler.Request)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SimulatorServer).Simulate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: simulateMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SimulatorServer).Simulate(ctx, req.(*scheduler.Request))
	}
	return interceptor(ctx, in, info, handler)
}

func compareHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(scheduler.Request)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SimulatorServer).Compare(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: compareMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SimulatorServer).Compare(ctx, req.(*scheduler.Request))
	}
	return interceptor(ctx, in, info, handler)
}

// Client calls a remote Simulator.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) Simulate(ctx context.Context, in *scheduler.Request, opts ...grpc.CallOption) (*scheduler.Result, error) {
	out := new(scheduler.Result)
	if err := c.cc.Invoke(ctx, simulateMethod, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Compare(ctx context.Context, in *scheduler.Request, opts ...grpc.CallOption) (*CompareResponse, error) {
	out := new(CompareResponse)
	if err := c.cc.Invoke(ctx, compareMethod, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func callOptions(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
}
