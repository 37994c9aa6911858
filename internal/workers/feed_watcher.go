package workers

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

// FeedWatcher tails the change stream of each business collection and
// publishes a ping on feed:<collection> per change. Subscribers re-query
// their full snapshot on each ping; the ping itself carries no data.
type FeedWatcher struct {
	Mongo  *mongo.Database
	Redis  *redis.Client
	Logger *logrus.Logger

	Collections []string
}

func (w *FeedWatcher) Start(ctx context.Context) error {
	if w.Mongo == nil || w.Redis == nil {
		return errors.New("FeedWatcher missing dependency: Mongo/Redis must be set")
	}
	if w.Logger == nil {
		w.Logger = logrus.New()
	}
	if len(w.Collections) == 0 {
		w.Collections = []string{"jobs", "applications", "walk-ins", "walk-in-attendees"}
	}

	for _, name := range w.Collections {
		go w.watch(ctx, name)
	}
	return nil
}

func (w *FeedWatcher) watch(ctx context.Context, name string) {
	channel := "feed:" + name
	log := w.Logger.WithField("collection", name)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		cs, err := w.Mongo.Collection(name).Watch(ctx, mongo.Pipeline{})
		if err != nil {
			log.WithError(err).Warn("change stream open failed")
			select {
			case <-ctx.Done():
				return
			case <-time.After(2 * time.Second):
			}
			continue
		}

		for cs.Next(ctx) {
			if err := w.Redis.Publish(ctx, channel, "1").Err(); err != nil {
				log.WithError(err).Warn("feed publish failed")
			}
		}
		if err := cs.Err(); err != nil && ctx.Err() == nil {
			log.WithError(err).Warn("change stream interrupted")
		}
		_ = cs.Close(ctx)
	}
}
