package health

import (
	"context"
	"database/sql"
	"time"

	"github.com/redis/go-redis/v9"

	"resume-builder/internal/shared/storage/db"
)

const checkTimeout = 2 * time.Second

// redisPinger is satisfied by *redis.Client.
type redisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// Report is the health payload. Checks holds "ok" or the error text per
// dependency; unconfigured dependencies are reported as "disabled".
type Report struct {
	OK     bool              `json:"ok"`
	Checks map[string]string `json:"checks"`
	Pool   map[string]any    `json:"pool,omitempty"`
}

// Service encapsulates health-related checks.
type Service struct {
	db    *sql.DB
	redis redisPinger
}

// NewService checks the given dependencies; either may be nil.
func NewService(database *sql.DB, redisClient *redis.Client) *Service {
	s := &Service{db: database}
	if redisClient != nil {
		s.redis = redisClient
	}
	return s
}

// Status pings every configured dependency.
func (s *Service) Status(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	report := Report{OK: true, Checks: map[string]string{}}
	record := func(name string, err error) {
		if err != nil {
			report.OK = false
			report.Checks[name] = err.Error()
			return
		}
		report.Checks[name] = "ok"
	}

	if s.db != nil {
		record("database", s.db.PingContext(ctx))
		report.Pool = db.PoolStats(s.db)
	} else {
		report.Checks["database"] = "disabled"
	}
	if s.redis != nil {
		record("redis", s.redis.Ping(ctx).Err())
	} else {
		report.Checks["redis"] = "disabled"
	}
	return report
}
