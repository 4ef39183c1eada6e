// Package config handles runtime configuration for the server: defaults
// first, then overrides from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rsastri21/status-application/models"
)

// Config holds runtime settings for the status-application server.
//
// SessionTTL and DailyPostLimit are the externally meaningful tuning knobs:
// the session refresh window is always the back half of SessionTTL.
type Config struct {
	Port           string
	AWSRegion      string
	S3Bucket       string
	ImageBaseURL   string
	SessionTTL     time.Duration
	DailyPostLimit int

	UserTable         string
	SessionTable      string
	RelationshipTable string
	PostTable         string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Port = "8080"
	c.AWSRegion = "us-west-2"
	c.S3Bucket = "status-application-images"
	c.ImageBaseURL = ""
	c.SessionTTL = 14 * 24 * time.Hour
	c.DailyPostLimit = 3
	c.UserTable = models.UserTable
	c.SessionTable = models.SessionTable
	c.RelationshipTable = models.RelationshipTable
	c.PostTable = models.PostTable
}

// Load builds a Config by applying defaults and overlaying values from the
// environment.
func Load() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.parseEnv()
	return cfg
}

func (c *Config) parseEnv() {
	setString(&c.Port, "PORT")
	setString(&c.AWSRegion, "AWS_REGION")
	setString(&c.S3Bucket, "S3_BUCKET_NAME")
	setString(&c.ImageBaseURL, "IMAGE_BASE_URL")
	setString(&c.UserTable, "USER_TABLE")
	setString(&c.SessionTable, "SESSION_TABLE")
	setString(&c.RelationshipTable, "RELATIONSHIP_TABLE")
	setString(&c.PostTable, "POST_TABLE")

	if v := os.Getenv("SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.SessionTTL = d
		}
	}
	if v := os.Getenv("DAILY_POST_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.DailyPostLimit = n
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
