package config

import "time"

type AppConfig struct {
	APIPort            string `env:"PORT,required" envDefault:"4000"`
	APIKey             string `env:"API_KEY,required"`
	AuthTokenSecret    string `env:"AUTH_TOKEN_SECRET,required"`
	RefreshTokenSecret string `env:"REFRESH_TOKEN_SECRET,required"`
	AuthTokenExpiry    int    `env:"AUTH_TOKEN_EXPIRY" envDefault:"60"`    // minutes
	RefreshTokenExpiry int    `env:"REFRESH_TOKEN_EXPIRY" envDefault:"7"`  // days
	SignInTokenExpiry  int    `env:"SIGN_IN_TOKEN_EXPIRY" envDefault:"15"` // minutes
	LoginRequired      bool   `env:"LOGIN_REQUIRED" envDefault:"true"`
	TfaRequired        bool   `env:"TFA_REQUIRED" envDefault:"false"`
	TrackerURL         string `env:"TRACKER_URL" envDefault:"https://tracker.canada.ca"`
	Production         bool   `env:"PRODUCTION" envDefault:"false"`
	RedisURL           string `env:"REDIS_URL"`
}

// BrokerConfig tunes the rabbitmq publisher and subscriber.
type BrokerConfig struct {
	URL               string        `env:"RABBITMQ_URL"`
	MessageTTL        time.Duration `env:"RABBITMQ_MESSAGE_TTL" envDefault:"24h"`
	PublishAttempts   uint          `env:"RABBITMQ_PUBLISH_ATTEMPTS" envDefault:"3"`
	PublishTimeout    time.Duration `env:"RABBITMQ_PUBLISH_TIMEOUT" envDefault:"5s"`
	AckAttempts       uint          `env:"RABBITMQ_ACK_ATTEMPTS" envDefault:"5"`
	Prefetch          int           `env:"RABBITMQ_PREFETCH" envDefault:"10"`
	ReconnectDelay    time.Duration `env:"RABBITMQ_RECONNECT_DELAY" envDefault:"1s"`
	MaxReconnectDelay time.Duration `env:"RABBITMQ_MAX_RECONNECT_DELAY" envDefault:"30s"`
}

// GraphQLConfig bounds the queries the API accepts.
type GraphQLConfig struct {
	DepthLimit int `env:"DEPTH_LIMIT" envDefault:"15"`
	CostLimit  int `env:"COST_LIMIT" envDefault:"5000"`
	ScalarCost int `env:"SCALAR_COST" envDefault:"1"`
	ObjectCost int `env:"OBJECT_COST" envDefault:"1"`
	ListFactor int `env:"LIST_FACTOR" envDefault:"1"`
}

type TrackerDatabaseConfig struct {
	Host            string `env:"TRACKER_POSTGRES_HOST,required"`
	Port            string `env:"TRACKER_POSTGRES_PORT,required"`
	User            string `env:"TRACKER_POSTGRES_USER,required"`
	DBName          string `env:"TRACKER_POSTGRES_DB_NAME,required"`
	Password        string `env:"TRACKER_POSTGRES_PASSWORD,required"`
	MaxConn         int    `env:"TRACKER_POSTGRES_DB_MAX_CONN"`
	MaxIdleConn     int    `env:"TRACKER_POSTGRES_DB_MAX_IDLE_CONN"`
	ConnMaxLifetime int    `env:"TRACKER_POSTGRES_DB_CONN_MAX_LIFETIME"`
	LogLevel        string `env:"TRACKER_POSTGRES_LOG_LEVEL" envDefault:"WARN"`
	SSLMode         string `env:"TRACKER_POSTGRES_SSL_MODE" envDefault:"require"`
}

// NotifyConfig holds the GC Notify api settings and the template ids of
// each email, english then french.
type NotifyConfig struct {
	Url                      string `env:"NOTIFICATION_API_URL" envDefault:"https://api.notification.canada.ca"`
	ApiKey                   string `env:"NOTIFICATION_API_KEY"`
	VerificationEmailEn      string `env:"NOTIFICATION_VERIFICATION_EMAIL_EN"`
	VerificationEmailFr      string `env:"NOTIFICATION_VERIFICATION_EMAIL_FR"`
	PasswordResetEn          string `env:"NOTIFICATION_PASSWORD_RESET_EN"`
	PasswordResetFr          string `env:"NOTIFICATION_PASSWORD_RESET_FR"`
	AuthenticateEmailEn      string `env:"NOTIFICATION_AUTHENTICATE_EMAIL_EN"`
	AuthenticateEmailFr      string `env:"NOTIFICATION_AUTHENTICATE_EMAIL_FR"`
	OrgInviteEn              string `env:"NOTIFICATION_ORG_INVITE_EN"`
	OrgInviteFr              string `env:"NOTIFICATION_ORG_INVITE_FR"`
	OrgInviteCreateAccountEn string `env:"NOTIFICATION_ORG_INVITE_CREATE_ACCOUNT_EN"`
	OrgInviteCreateAccountFr string `env:"NOTIFICATION_ORG_INVITE_CREATE_ACCOUNT_FR"`
	OrgInviteRequestEn       string `env:"NOTIFICATION_ORG_INVITE_REQUEST_EN"`
	OrgInviteRequestFr       string `env:"NOTIFICATION_ORG_INVITE_REQUEST_FR"`
	RetryAttempts            uint   `env:"NOTIFICATION_RETRY_ATTEMPTS" envDefault:"3"`
	RequestTimeoutSeconds    int    `env:"NOTIFICATION_REQUEST_TIMEOUT_SECONDS" envDefault:"10"`
}
