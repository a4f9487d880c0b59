package jobs

import (
	"fmt"
	"gorm.io/gorm"
	"time"
	"walk2gether-api/repositories"
	"walk2gether-api/services"
)

// LocationCleanupJob periodically flags stale live locations as offline so
// friends stop seeing positions from clients that silently went away.
type LocationCleanupJob struct {
	locationService *services.LocationService
	maxAge          time.Duration
	ticker          *time.Ticker
	done            chan bool
}

// NewLocationCleanupJob creates a new location cleanup job
func NewLocationCleanupJob(db *gorm.DB, interval, maxAge time.Duration) *LocationCleanupJob {
	locationRepo := repositories.NewLocationRepository(db)
	participantRepo := repositories.NewParticipantRepository(db)
	locationService := services.NewLocationService(locationRepo, participantRepo)

	return &LocationCleanupJob{
		locationService: locationService,
		maxAge:          maxAge,
		ticker:          time.NewTicker(interval),
		done:            make(chan bool),
	}
}

// Start begins the cleanup job
func (j *LocationCleanupJob) Start() {
	fmt.Println("Location cleanup job started")

	go func() {
		// Run immediately on start
		j.cleanup()

		// Then run on schedule
		for {
			select {
			case <-j.ticker.C:
				j.cleanup()
			case <-j.done:
				fmt.Println("Location cleanup job stopped")
				return
			}
		}
	}()
}

// Stop stops the cleanup job
func (j *LocationCleanupJob) Stop() {
	j.ticker.Stop()
	j.done <- true
}

func (j *LocationCleanupJob) cleanup() {
	count, err := j.locationService.MarkStaleOffline(j.maxAge)
	if err != nil {
		fmt.Printf("Location cleanup failed: %v\n", err)
		return
	}
	if count > 0 {
		fmt.Printf("Location cleanup: marked %d stale locations offline\n", count)
	}
}
