package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Game    GameConfig    `yaml:"game"`
	Words   WordsConfig   `yaml:"words"`
	Session SessionConfig `yaml:"session"`
	Admin   AdminConfig   `yaml:"admin"`
	CORS    CORSConfig    `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"PORT"                    env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	RequestTimeout  time.Duration `yaml:"request_timeout"  env:"SERVER_REQUEST_TIMEOUT"  env-default:"10s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"` // json or console
}

// GameConfig holds the rules of a game.
type GameConfig struct {
	DefaultLanguage string        `yaml:"default_language" env:"GAME_DEFAULT_LANGUAGE" env-default:"en"`
	MaxAttempts     int           `yaml:"max_attempts"     env:"GAME_MAX_ATTEMPTS"     env-default:"8"`
	StartLength     int           `yaml:"start_length"     env:"GAME_START_LENGTH"     env-default:"2"`
	Hints           bool          `yaml:"hints"            env:"GAME_HINTS"            env-default:"true"`
	SettleDelay     time.Duration `yaml:"settle_delay"     env:"GAME_SETTLE_DELAY"     env-default:"1s"`
	RetryInterval   time.Duration `yaml:"retry_interval"   env:"GAME_RETRY_INTERVAL"   env-default:"100ms"`
	RetryAttempts   int           `yaml:"retry_attempts"   env:"GAME_RETRY_ATTEMPTS"   env-default:"20"`
	DailySalt       string        `yaml:"daily_salt"       env:"DAILY_SALT"            env-default:"otter"`
	IdleTTL         time.Duration `yaml:"idle_ttl"         env:"GAME_IDLE_TTL"         env-default:"2h"`
	JanitorInterval time.Duration `yaml:"janitor_interval" env:"GAME_JANITOR_INTERVAL" env-default:"5m"`
}

// WordsConfig selects the word list sources.
type WordsConfig struct {
	// FilesRaw maps languages to files: "en=/data/en.txt,no=/data/no.txt".
	FilesRaw string        `yaml:"files"    env:"WORDS_FILES"`
	DB       string        `yaml:"db"       env:"WORDS_DB"` // SQLite word store; empty disables it
	Embedded bool          `yaml:"embedded" env:"WORDS_EMBEDDED" env-default:"true"`
	Watch    bool          `yaml:"watch"    env:"WORDS_WATCH"    env-default:"false"`
	Debounce time.Duration `yaml:"debounce" env:"WORDS_DEBOUNCE" env-default:"500ms"`

	// Files is parsed from FilesRaw during validation.
	Files map[string]string `yaml:"-" env:"-"`
}

// SessionConfig holds the session token settings.
type SessionConfig struct {
	Secret     string        `yaml:"secret"      env:"JWT_SECRET"         env-default:"dev_secret_change_me"`
	TTL        time.Duration `yaml:"ttl"         env:"SESSION_TTL"        env-default:"24h"`
	CookieName string        `yaml:"cookie_name" env:"SESSION_COOKIE"     env-default:"otter_session"`
	Secure     bool          `yaml:"secure"      env:"SESSION_SECURE"     env-default:"false"`
}

// AdminConfig guards the admin endpoints. An empty PasswordHash disables them.
type AdminConfig struct {
	User         string `yaml:"user"          env:"ADMIN_USER"          env-default:"admin"`
	PasswordHash string `yaml:"password_hash" env:"ADMIN_PASSWORD_HASH"` // bcrypt
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins string `yaml:"allowed_origins" env:"CORS_ORIGINS" env-default:"http://localhost:5173"`
}

// Addr returns host:port for the HTTP listener.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
