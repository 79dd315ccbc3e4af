package db

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

const healthPingTimeout = 5 * time.Second

// PoolStatus is the database portion of the health response.
type PoolStatus struct {
	OpenConns     int32  `json:"open_conns"`
	IdleConns     int32  `json:"idle_conns"`
	BusyConns     int32  `json:"busy_conns"`
	ConnCapacity  int32  `json:"conn_capacity"`
	TotalAcquires int64  `json:"total_acquires"`
	AcquireWait   string `json:"acquire_wait"`
}

type healthResponse struct {
	Status   string      `json:"status"`
	Error    string      `json:"error,omitempty"`
	Database *PoolStatus `json:"database"`
}

// PoolStatusOf snapshots the pool counters for reporting.
func PoolStatusOf(pool *pgxpool.Pool) *PoolStatus {
	stat := pool.Stat()
	return &PoolStatus{
		OpenConns:     stat.TotalConns(),
		IdleConns:     stat.IdleConns(),
		BusyConns:     stat.AcquiredConns(),
		ConnCapacity:  stat.MaxConns(),
		TotalAcquires: stat.AcquireCount(),
		AcquireWait:   stat.AcquireDuration().String(),
	}
}

// HealthHandler reports service liveness. The database is pinged on
// every call so a wedged pool surfaces here before it surfaces as
// failing chat or interaction requests.
func HealthHandler(pool *pgxpool.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthPingTimeout)
		defer cancel()

		if err := pool.Ping(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, healthResponse{
				Status:   "degraded",
				Error:    err.Error(),
				Database: PoolStatusOf(pool),
			})
		}
		return c.JSON(http.StatusOK, healthResponse{
			Status:   "ok",
			Database: PoolStatusOf(pool),
		})
	}
}
