package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/xvxsamuel/aram-pig-sub000/internal/config"
	"github.com/xvxsamuel/aram-pig-sub000/internal/db"
	"github.com/xvxsamuel/aram-pig-sub000/internal/logging"
	"github.com/xvxsamuel/aram-pig-sub000/internal/processor"
	queue "github.com/xvxsamuel/aram-pig-sub000/internal/queue"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := logging.Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf("config load failed: %v", err)
		os.Exit(1)
	}

	pool, err := db.NewPool(ctx, cfg.DBURL)
	if err != nil {
		logger.Errorf("db connection failed: %v", err)
		os.Exit(1)
	}
	defer pool.Close()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Errorf("invalid redis url: %v", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	store := db.NewBaselineStore(pool)

	if len(cfg.AcceptedPatches) > 0 {
		pruned, err := store.PrunePatches(ctx, cfg.AcceptedPatches)
		if err != nil {
			logger.Warnf("baseline retention pass failed: %v", err)
		} else if pruned > 0 {
			logger.Infof("pruned %d baselines outside accepted patches", pruned)
		}
	}

	ingestor := processor.NewIngestor(cfg.AcceptedPatches)
	flusher := processor.NewFlusher(ingestor, store, cfg.FlushInterval)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		flusher.Run(ctx)
	}()

	q := queue.NewRedisQueue(redisClient)
	handler := ingestor.Handle

	// Use concurrent processing if worker count > 1
	if cfg.WorkerCount > 1 {
		logger.Infof("starting concurrent consumption with %d workers", cfg.WorkerCount)
		if err := q.ConsumeConcurrent(ctx, cfg.RedisQueue, cfg.WorkerCount, cfg.JobBufferSize, handler); err != nil && ctx.Err() == nil {
			logger.Errorf("queue consumption ended: %v", err)
			stop()
			wg.Wait()
			os.Exit(1)
		}
	} else {
		logger.Infof("starting single-threaded consumption")
		if err := q.Consume(ctx, cfg.RedisQueue, handler); err != nil && ctx.Err() == nil {
			logger.Errorf("queue consumption ended: %v", err)
			stop()
			wg.Wait()
			os.Exit(1)
		}
	}

	// Run performs a final flush before returning.
	wg.Wait()
}
