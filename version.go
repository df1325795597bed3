package edot

// Version is the distribution version, stamped into the resource as
// telemetry.distro.version.
const Version = "0.4.0"

const distroName = "elastic-otel-go"
