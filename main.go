package main

import (
	"context"
	"crypto/tls"
	"os"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"kanban-api/api"
	"kanban-api/session"
	"kanban-api/storage"
	"kanban-api/store"
)

func main() {
	if dbg, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil && dbg {
		log.SetLevel(log.DebugLevel)
	}
	logger := log.New()
	logger.SetLevel(log.GetLevel())

	var kv storage.KV
	if redisConn := os.Getenv("REDIS_CONNECTION_STRING"); redisConn != "" {
		redisOpts, err := redis.ParseURL(redisConn)
		if err != nil {
			parts := strings.Split(redisConn, ",")
			redisOpts = &redis.Options{Addr: parts[0]}
			for _, p := range parts[1:] {
				kvPair := strings.SplitN(p, "=", 2)
				if len(kvPair) != 2 {
					continue
				}
				switch strings.ToLower(kvPair[0]) {
				case "password":
					redisOpts.Password = kvPair[1]
				case "ssl":
					if strings.ToLower(kvPair[1]) == "true" {
						redisOpts.TLSConfig = &tls.Config{}
					}
				}
			}
		}
		kv = storage.NewRedisKV(redis.NewClient(redisOpts))
	} else {
		logger.Warn("no redis config, board state will not survive restarts")
		kv = storage.NewMemoryKV()
	}

	adapter := storage.New(kv, os.Getenv("TASKS_KEY"), os.Getenv("THEME_KEY"), logger)

	ctx := context.Background()
	taskStore := store.New(adapter, logger)
	taskStore.Replace(adapter.LoadTasks(ctx))
	ctrl := session.New(taskStore, adapter, adapter.LoadTheme(ctx), logger)

	e := echo.New()
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	api.Register(e, ctrl, logger)

	listenAddr := ":8080"
	if val, ok := os.LookupEnv("PORT"); ok {
		listenAddr = ":" + val
	}

	e.Logger.Fatal(e.Start(listenAddr))
}
