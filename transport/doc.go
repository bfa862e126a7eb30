// Package transport provides the HTTP client underneath apitoast. It wraps a
// resty client and adds an interceptor pipeline that runs around every call.
//
// # Interceptors
//
// Request interceptors run in registration order immediately before the
// request is dispatched. They may add headers or fail the request; a failed
// request interceptor stops the call before anything is sent.
//
// Response interceptors run after the call settles, also in registration
// order. Each one receives either the response (fulfilled) or the error
// (rejected) produced by the previous step:
//
//	id := client.Interceptors.Response.Use(
//	    func(ctx context.Context, resp *transport.Response) (*transport.Response, error) {
//	        return resp, nil
//	    },
//	    func(ctx context.Context, err error) (*transport.Response, error) {
//	        return nil, err
//	    },
//	)
//	defer client.Interceptors.Response.Eject(id)
//
// An onRejected handler that returns a response and a nil error recovers the
// call; subsequent interceptors then see it as fulfilled.
//
// # Error Handling
//
// A response outside the 2xx range is returned as a [*ResponseError]. The
// server's JSON "message" field, when present, is available through
// [ResponseError.ServerMessage]. Network failures are returned as
// [*NetworkError]. Both can be matched against the sentinel errors:
//
//	if errors.Is(err, transport.ErrNotFound) {
//	    // Handle missing resource
//	}
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use. Interceptors may be added or
// ejected while requests are in flight; a request uses the set registered
// when it reached each stage.
package transport
