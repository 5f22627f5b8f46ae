package models

// Config holds the deployment settings read from the environment.
type Config struct {
	Port           string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	GoogleAPIKey   string
	AllowedOrigins []string
	PublicBaseURL  string
}
