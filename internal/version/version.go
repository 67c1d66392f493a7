package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/srcmake/srcmake/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/srcmake/srcmake/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/srcmake/srcmake/internal/version.Date={{.Date}}
)
