// Package log provides slog loggers that mask sensitive values.
//
// reviewlens logs request URLs, endpoint headers and session ids. Any of
// them can carry credentials: an API key in the endpoint's query string,
// a password in its userinfo, an Authorization header from the config
// file. SecureHandler masks those values before they reach the output,
// including in verbose mode.
//
// Masking applies to:
//   - attributes with a sensitive key (authorization, cookie, token, session)
//   - string values that look like secrets (JWTs, bearer tokens, long API keys)
//   - URLs inside string and error values, where only the userinfo
//     password and sensitive query parameters are replaced
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("sending analyze request",
//	    "url", "http://127.0.0.1:8000/analyze?api_key=abc&url=...", // api_key masked
//	)
package log
