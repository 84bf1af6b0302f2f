// Package docsjson extracts generated documentation JSON from a locally
// running documentation preview server. It launches the preview tool, reads
// its console banner for the package being previewed and the address it is
// listening on, downloads the package's docs.json and stores it locally.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., exec/, http/, fs/, slog/).
package docsjson
