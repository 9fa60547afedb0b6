// Package filterx provides method interception as an explicit middleware chain.
package filterx

import (
	"context"

	"connectrpc.com/connect"
)

// Interceptor exposes a registry's chains as a Connect unary
// interceptor. Each RPC runs through the chain registered for the
// given target and the request's procedure name, so services can share
// one filter stack between local invocations and RPC handlers.
func Interceptor(r *Registry, target string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			result, err := r.Run(ctx, target, req.Spec().Procedure,
				Params{"request": req},
				func(ctx context.Context, p Params) (any, error) {
					return next(ctx, req)
				},
			)
			if err != nil {
				return nil, err
			}
			resp, _ := result.(connect.AnyResponse)
			return resp, nil
		}
	}
}
