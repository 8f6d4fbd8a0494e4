package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/primefit-labs/training-scheduler/internal/cache"
	"github.com/primefit-labs/training-scheduler/internal/config"
	dbpkg "github.com/primefit-labs/training-scheduler/internal/db"
	"github.com/primefit-labs/training-scheduler/internal/routes"
	"github.com/primefit-labs/training-scheduler/internal/timezone"
)

func main() {

	cfg := config.Load()
	timezone.SetPlatform(cfg.Timezone)

	db := dbpkg.NewDB(cfg)
	rdb := cache.NewRedis(cfg)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
