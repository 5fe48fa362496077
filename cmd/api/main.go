package main

import (
	"context"
	"log"

	"github.com/visithercegovina/tours-backend/config"
	"github.com/visithercegovina/tours-backend/internal/auth"
	"github.com/visithercegovina/tours-backend/internal/bootstrap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	authClient, fsClient, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}
	defer fsClient.Close()

	redisClient, err := bootstrap.OpenRedis(ctx, cfg.Redis.Addr)
	if err != nil {
		// The cache is an optimization; run without it rather than die.
		log.Printf("redis unavailable, listing cache disabled: %v", err)
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	identity := auth.NewFirebaseIdentity(authClient, cfg.Firebase.WebAPIKey)

	if sched := bootstrap.StartReconciler(cfg, fsClient); sched != nil {
		defer sched.Stop()
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "tours-backend",
		Cfg:         cfg,
		Identity:    identity,
		Firestore:   fsClient,
		Redis:       redisClient,
	})

	log.Printf("listening on :%s", cfg.Server.Port)
	log.Fatal(r.Run(":" + cfg.Server.Port))
}
