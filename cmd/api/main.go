package main

import (
	"log"
	"net/http"

	"github.com/crewapp/crew-scheduler/internal/cache"
	"github.com/crewapp/crew-scheduler/internal/config"
	dbpkg "github.com/crewapp/crew-scheduler/internal/db"
	"github.com/crewapp/crew-scheduler/internal/middleware"
	"github.com/crewapp/crew-scheduler/internal/routes"
	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)
	cch := cache.New(cfg.RedisAddr)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cch, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
