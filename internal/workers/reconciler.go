package workers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	mongorepo "github.com/DISAMCHARLAPRABHAS/hire-flow/internal/repositories/mongo"
	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/services"
)

const defaultRecountStream = "recount:stream"

// RecountQueue enqueues counter-reconciliation events onto a redis stream.
// Implements services.RecountQueue.
type RecountQueue struct {
	Redis  *redis.Client
	Stream string
}

func (q *RecountQueue) Enqueue(ctx context.Context, kind, id string) error {
	stream := q.Stream
	if stream == "" {
		stream = defaultRecountStream
	}
	return q.Redis.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{
			"kind":    kind,
			"id":      id,
			"ts_unix": strconv.FormatInt(time.Now().UTC().Unix(), 10),
		},
	}).Err()
}

// RecountWorkerPool consumes recount events and overwrites the denormalized
// counter with the authoritative child count. The apply/join transactions
// keep counters correct in the normal path; this repairs whatever drifts.
type RecountWorkerPool struct {
	Redis      *redis.Client
	Jobs       mongorepo.JobRepository
	Apps       mongorepo.ApplicationRepository
	WalkIns    mongorepo.WalkInRepository
	NumWorkers int

	Logger *logrus.Logger

	Stream         string
	Group          string
	ConsumerPrefix string
}

func (p *RecountWorkerPool) Start(ctx context.Context) error {
	if p.Redis == nil || p.Jobs == nil || p.Apps == nil || p.WalkIns == nil {
		return errors.New("RecountWorkerPool missing dependency: Redis/Jobs/Apps/WalkIns must be set")
	}
	if p.Stream == "" {
		p.Stream = defaultRecountStream
	}
	if p.Group == "" {
		p.Group = "recount-workers"
	}
	if p.ConsumerPrefix == "" {
		p.ConsumerPrefix = "c"
	}
	if p.NumWorkers <= 0 {
		p.NumWorkers = 2
	}
	if p.Logger == nil {
		p.Logger = logrus.New()
	}

	_ = p.Redis.XGroupCreateMkStream(ctx, p.Stream, p.Group, "0").Err() // ignore BUSYGROUP

	for i := 0; i < p.NumWorkers; i++ {
		consumer := p.ConsumerPrefix + "-" + strconv.Itoa(i+1)
		go p.runConsumer(ctx, consumer)
	}
	return nil
}

func (p *RecountWorkerPool) runConsumer(ctx context.Context, consumer string) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := p.Redis.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    p.Group,
			Consumer: consumer,
			Streams:  []string{p.Stream, ">"},
			Count:    10,
			Block:    5 * time.Second,
		}).Result()

		if err != nil {
			if err == redis.Nil {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}

		for _, stream := range res {
			for _, msg := range stream.Messages {
				p.handleMsg(ctx, msg)
				_ = p.Redis.XAck(ctx, p.Stream, p.Group, msg.ID).Err()
			}
		}
	}
}

func (p *RecountWorkerPool) handleMsg(ctx context.Context, msg redis.XMessage) {
	getStr := func(k string) string {
		v, ok := msg.Values[k]
		if !ok || v == nil {
			return ""
		}
		s, _ := v.(string)
		return s
	}

	kind := getStr("kind")
	id := getStr("id")
	if kind == "" || id == "" {
		return
	}

	log := p.Logger.WithFields(logrus.Fields{
		"redis_id": msg.ID,
		"kind":     kind,
		"id":       id,
	})

	switch kind {
	case services.RecountJob:
		n, err := p.Apps.CountByJob(ctx, id)
		if err != nil {
			log.WithError(err).Warn("recount failed")
			return
		}
		if err := p.Jobs.SetApplications(ctx, id, n); err != nil {
			log.WithError(err).Warn("counter write failed")
		}

	case services.RecountDrive:
		n, err := p.WalkIns.CountAttendees(ctx, id)
		if err != nil {
			log.WithError(err).Warn("recount failed")
			return
		}
		if err := p.WalkIns.SetAttendees(ctx, id, n); err != nil {
			log.WithError(err).Warn("counter write failed")
		}

	default:
		log.Warn("unknown recount kind")
	}
}
