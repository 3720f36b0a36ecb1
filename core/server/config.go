package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// Realm is the stash realm snapshots are read from (pc, xbox, sony).
	Realm string `mapstructure:"realm" default:"pc"`
	// BodyLimitMB caps uploaded stash documents.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"16"`
}

const (
	RealmPC   = "pc"
	RealmXbox = "xbox"
	RealmSony = "sony"
)

// IsValidRealm checks if the configured realm is known.
func (c Config) IsValidRealm() bool {
	switch c.Realm {
	case RealmPC, RealmXbox, RealmSony:
		return true
	default:
		return false
	}
}

// BodyLimit returns the request body limit in bytes.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return 16 * 1024 * 1024
	}
	return c.BodyLimitMB * 1024 * 1024
}
