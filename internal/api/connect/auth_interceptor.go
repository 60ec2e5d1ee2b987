// Package connect provides Connect RPC service implementations.
package connect

import (
	"context"
	"crypto/subtle"

	"connectrpc.com/connect"
)

const (
	// TokenHeader is the header name for the access token.
	TokenHeader = "X-Musicbox-Token"
)

// tokenInterceptor validates the access token on the server side, or
// attaches it on the client side.
type tokenInterceptor struct {
	token  string
	client bool
}

// NewTokenInterceptor creates an interceptor that validates the access token
// of every unary and streaming request. An empty token disables the check.
func NewTokenInterceptor(token string) connect.Interceptor {
	return &tokenInterceptor{token: token}
}

// NewTokenClientInterceptor creates an interceptor that sends token with
// every request.
func NewTokenClientInterceptor(token string) connect.Interceptor {
	return &tokenInterceptor{token: token, client: true}
}

func (i *tokenInterceptor) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		if i.client {
			if i.token != "" {
				req.Header().Set(TokenHeader, i.token)
			}
			return next(ctx, req)
		}
		if err := i.validate(req.Header().Get(TokenHeader)); err != nil {
			return nil, err
		}
		return next(ctx, req)
	}
}

func (i *tokenInterceptor) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return func(ctx context.Context, spec connect.Spec) connect.StreamingClientConn {
		conn := next(ctx, spec)
		if i.client && i.token != "" {
			conn.RequestHeader().Set(TokenHeader, i.token)
		}
		return conn
	}
}

func (i *tokenInterceptor) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return func(ctx context.Context, conn connect.StreamingHandlerConn) error {
		if !i.client {
			if err := i.validate(conn.RequestHeader().Get(TokenHeader)); err != nil {
				return err
			}
		}
		return next(ctx, conn)
	}
}

func (i *tokenInterceptor) validate(token string) error {
	if i.token == "" {
		return nil
	}
	if token == "" {
		return connect.NewError(connect.CodeUnauthenticated, nil)
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(i.token)) != 1 {
		return connect.NewError(connect.CodeUnauthenticated, nil)
	}
	return nil
}
