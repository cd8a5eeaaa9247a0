package main

import (
	"context"
	"net/http"
	"time"

	"parcel-api/docs"
	"parcel-api/internal/cache"
	"parcel-api/internal/config"
	"parcel-api/internal/handler"
	"parcel-api/internal/metrics"
	"parcel-api/internal/repository"
	"parcel-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Parcel Query API
//	@version		1.0
//	@description	Spatial and attribute queries over a land-parcel database.

func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	// Database connection
	conn, err := pgxpool.New(context.Background(), config.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	// Initialize layers
	repo := repository.NewRepository(conn)

	var statsCache service.StatsCache
	if c := cache.New(config.RedisAddr, config.RedisPassword, config.StatsCacheTTL); c != nil {
		statsCache = c
		log.Info().Str("addr", config.RedisAddr).Msg("stats cache enabled")
	}

	spatialService := service.NewSpatialService(repo)
	searchService := service.NewSearchService(repo)
	statsService := service.NewStatsService(repo, statsCache)
	parcelService := service.NewParcelService(repo)

	spatialHandler := handler.NewSpatialHandler(spatialService)
	searchHandler := handler.NewSearchHandler(searchService)
	statsHandler := handler.NewStatsHandler(statsService)
	parcelHandler := handler.NewParcelHandler(parcelService)

	r := gin.Default()
	r.Use(timing())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	api := r.Group("/api")
	{
		api.GET("/parcels/bbox", spatialHandler.BBoxFeatures)
		api.GET("/parcels/bbox/list", spatialHandler.BBoxList)
		api.GET("/parcels/near", spatialHandler.NearPoint)
		api.GET("/parcels/search", searchHandler.Search)
		api.GET("/parcels/:id", parcelHandler.GetParcel)
		api.GET("/stats", statsHandler.Stats)
	}

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	docs.SwaggerInfo.BasePath = "/"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.Run(config.ServerAddress)
}

func timing() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RequestDurationMs.WithLabelValues(route).Observe(float64(time.Since(start).Milliseconds()))
	}
}
