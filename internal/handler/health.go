package handler

import (
	"context"
	"net/http"
	"time"

	"salelog/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// DBPinger adapts a gorm handle for Health.
func DBPinger(db *gorm.DB) Pinger {
	sqlDB, err := db.DB()
	if err != nil {
		return failedPinger{err}
	}
	return sqlDB
}

type failedPinger struct{ err error }

func (f failedPinger) PingContext(context.Context) error { return f.err }

// Health returns a JSON health check response.
// Checks DB and Redis connectivity and reports the mail breaker state; an
// open breaker degrades handover mail only, so it does not fail the check.
func Health(db Pinger, rdb *redis.Client, mailCB *infra.CircuitBreaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		if db.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "connected"
		if rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		}

		status := http.StatusOK
		if dbStatus != "connected" || redisStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		body := gin.H{
			"ok":    status == http.StatusOK,
			"db":    dbStatus,
			"redis": redisStatus,
		}
		if mailCB != nil {
			body["mail"] = mailCB.State().String()
		}
		c.JSON(status, body)
	}
}
