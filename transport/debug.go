package transport

import (
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// debugTransport writes wire dumps of every exchange to its logger at debug
// level, keyed by the request id stamped in beforeRequest.
type debugTransport struct {
	base   http.RoundTripper
	logger zerolog.Logger
}

func newDebugTransport(base http.RoundTripper) *debugTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &debugTransport{
		base:   base,
		logger: log.With().Str("component", "transport").Logger(),
	}
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ev := dt.logger.Debug().
		Str("request_id", req.Header.Get(requestIDHeader)).
		Str("method", req.Method).
		Str("url", req.URL.String())

	if dump, err := httputil.DumpRequestOut(req, true); err == nil {
		ev.Bytes("dump", dump).Msg("outgoing request")
	}

	start := time.Now()
	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		dt.logger.Warn().Err(err).
			Str("request_id", req.Header.Get(requestIDHeader)).
			Dur("elapsed", time.Since(start)).
			Msg("round trip failed")
		return nil, err
	}

	if dump, err := httputil.DumpResponse(resp, true); err == nil {
		dt.logger.Debug().
			Str("request_id", req.Header.Get(requestIDHeader)).
			Int("status", resp.StatusCode).
			Dur("elapsed", time.Since(start)).
			Bytes("dump", dump).
			Msg("incoming response")
	}
	return resp, nil
}
