package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/mausamlabs/mausam/internal/store"
	"github.com/mausamlabs/mausam/internal/weather"
)

// Scheduler periodically refreshes the stored conditions of every favorite.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	favorites *store.FavoritesStore
	interval  time.Duration
}

// New creates a Scheduler that refreshes favorites every interval.
func New(favorites *store.FavoritesStore, interval time.Duration, service *weather.Service) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		favorites: favorites,
		interval:  interval,
	}
}

// Start schedules the periodic refresh job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(s.refreshAll)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *Scheduler) refreshAll() {
	favs := s.favorites.List()
	if len(favs) == 0 {
		return
	}

	log.Printf("scheduler: refreshing %d favorites", len(favs))

	var wg sync.WaitGroup
	for _, fav := range favs {
		fav := fav
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			rec, err := s.service.Search(ctx, fav.Name)
			if err != nil {
				log.Printf("scheduler: refresh failed for %s: %v", fav.Name, err)
				return
			}

			if err := s.favorites.UpdateWeather(fav.Name, rec.Current.TempC, rec.Current.Condition.Text, time.Now()); err != nil {
				// Removed while we were fetching; nothing to record.
				return
			}
		}()
	}
	wg.Wait()
	log.Println("scheduler: completed favorites refresh")
}
