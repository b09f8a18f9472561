package types

// Version is the application version, overridden at build time via
// -ldflags "-X github.com/memari-majid/paperwatch/pkg/domain/types.Version=..."
var Version = "dev"

// AppName is the service name used in logs, reports and health responses
const AppName = "paperwatch"
