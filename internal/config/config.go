package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Study    StudyConfig    `mapstructure:"study" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// StudyConfig carries the product-tunable study constants. The values are
// deliberately configuration rather than literals in the scheduler and
// triage code, so product can retune them without a code change.
type StudyConfig struct {
	// FreeDailyQuota is the number of keep decisions a free-tier user may
	// make per local calendar day. Discard decisions are never limited.
	FreeDailyQuota int `mapstructure:"free_daily_quota" validate:"required,gt=0"`

	// PremiumDailyQuota is the keep-decision quota for premium users.
	PremiumDailyQuota int `mapstructure:"premium_daily_quota" validate:"required,gt=0"`

	// MasteryThresholdDays is the review interval at which a concept is
	// considered mastered.
	MasteryThresholdDays float64 `mapstructure:"mastery_threshold_days" validate:"required,gt=0"`

	// DailyGoalAnswers is the number of graded answers per day that marks
	// the daily goal as achieved.
	DailyGoalAnswers int `mapstructure:"daily_goal_answers" validate:"required,gt=0"`

	// UndoDepth is the number of triage decisions kept reversible.
	UndoDepth int `mapstructure:"undo_depth" validate:"required,gt=0"`
}
