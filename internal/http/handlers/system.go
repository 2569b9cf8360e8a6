package handlers

import (
	"net/http"
	"sync"

	intdb "gateway/internal/db"

	"github.com/gin-gonic/gin"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for later inspection (e.g., /api/routes-table).
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "gateway is running"})
}

func (h Handlers) DBCheck(c *gin.Context) {
	if h.DB == nil {
		respondError(c, http.StatusServiceUnavailable, "db_unavailable", "database not connected", nil)
		return
	}
	missing, err := intdb.MissingTables(c.Request.Context(), h.DB)
	if err != nil {
		respondError(c, http.StatusServiceUnavailable, "db_unavailable", "database query failed", err.Error())
		return
	}
	if len(missing) > 0 {
		respondError(c, http.StatusServiceUnavailable, "schema_incomplete", "database schema is missing tables", missing)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database OK", "tables": intdb.Tables})
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router not ready"})
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
