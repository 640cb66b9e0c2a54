package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/2582034744-ui/yisu-hotel-platform/store"
)

// persister writes a snapshot after each successful mutation when autosave
// is on. A failed save is logged and never fails the request.
type persister struct {
	store    *store.Store
	autosave bool
	log      *logrus.Entry
}

func newPersister(s *store.Store, autosave bool, component string) persister {
	return persister{
		store:    s,
		autosave: autosave,
		log:      logrus.WithField("component", component),
	}
}

func (p persister) persist(ctx context.Context) {
	if !p.autosave {
		return
	}
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := p.store.Save(saveCtx); err != nil {
		p.log.WithError(err).Warn("autosave failed")
	}
}

// clock is overridable in tests.
type clock func() time.Time

func (c clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}
