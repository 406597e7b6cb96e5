package constants

// AppName identifies this process in the boot banner, the Server response
// header, and log output.
const AppName = "prox"

// ProtocolRequestIDKey is the request header whose value
// metrics.WithRequestMetric reuses as the per-request ID when a client
// supplies one. The ID is not written to the response.
const ProtocolRequestIDKey = "X-Request-ID"
