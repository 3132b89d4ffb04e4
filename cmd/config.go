package cmd

import (
	"fmt"
	"time"
)

type Config struct {
	HTTPPort                 string
	DBHost                   string
	DBPort                   string
	DBUser                   string
	DBPassword               string
	DBName                   string
	DBSslMode                string
	DBAppRole                string
	DBLockTimeout            time.Duration
	KafkaHost                string
	KafkaNotificationsTopic  string
	BrokerIDs                string
	BrokerAssignmentSchedule string
	NotificationQueueSize    int
}

// DSN is the PostgreSQL connection string built from the DB_* settings.
func (c Config) DSN() string {
	sslMode := c.DBSslMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, sslMode,
	)
}
