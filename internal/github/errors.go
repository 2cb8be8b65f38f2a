package github

import "errors"

// Sentinel errors for upstream outcomes. Callers classify results with
// errors.Is; wrapped messages carry upstream detail (status, body snippet,
// rate-limit reset hint).
var (
	ErrUserNotFound = errors.New("github user not found")
	ErrRateLimited  = errors.New("github rate limit exceeded")
	ErrUnreachable  = errors.New("github unreachable")
	ErrUpstream     = errors.New("unexpected github response")
)
