package activerecord

import (
	"os"
	"time"

	"github.com/jay-hwang/active-record/logger"
	"github.com/jay-hwang/active-record/schema"
)

// Config active record config
type Config struct {
	// Logger traces every statement sent to the gateway
	Logger logger.Interface
	// NamingStrategy derives table names, class names and foreign keys
	NamingStrategy schema.Namer
}

// ConfigFromEnv builds a Config from the environment.
//
//	PRINT_QUERIES=true          trace every statement at info level
//	ACTIVERECORD_LOG_BACKEND    zap (default), zerolog or logrus
//	ACTIVERECORD_LOG_LEVEL      silent, error, warn (default) or info, ignored when PRINT_QUERIES=true
func ConfigFromEnv() *Config {
	level := logger.ParseLevel(os.Getenv("ACTIVERECORD_LOG_LEVEL"))
	if os.Getenv("PRINT_QUERIES") == "true" {
		level = logger.Info
	}

	return &Config{
		Logger: logger.New(os.Getenv("ACTIVERECORD_LOG_BACKEND"), logger.Config{
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      level,
		}),
		NamingStrategy: schema.NamingStrategy{},
	}
}

func (c *Config) apply() {
	if c.Logger == nil {
		c.Logger = logger.Default
	}

	if c.NamingStrategy == nil {
		c.NamingStrategy = schema.NamingStrategy{}
	}
}
