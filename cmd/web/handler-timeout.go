package main

import (
	"net/http"
	"time"
)

const timeoutBody = `<!DOCTYPE html>
<html lang="en">
<head><title>Court in recess</title></head>
<body>
<h1>The court is in recess</h1>
<p>The clerk took too long to answer.</p>
<a href="/">Return to the courtroom</a>
</body>
</html>
`

// timeoutHandler responds with a 503 Service Unavailable error when the handler does not meet the deadline.
func timeoutHandler(h http.Handler, defaultTimeout time.Duration) http.Handler {
	// The handler deadline is a little shorter than the server's write timeout so that the timeout page gets written
	// before the server closes the connection.
	httpHandlerTimeout := defaultTimeout - 500*time.Millisecond //nolint:mnd // 500ms
	return http.TimeoutHandler(h, httpHandlerTimeout, timeoutBody)
}
