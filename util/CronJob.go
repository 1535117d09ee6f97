package util

import (
	"log"
	"time"
)

// RevocationPruner drops revocation entries whose tokens have passed natural
// expiry; they can no longer validate anyway.
type RevocationPruner interface {
	PruneRevoked(now time.Time) int
}

// ResetTokenCleaner clears persisted reset tokens that expired.
type ResetTokenCleaner interface {
	DeleteExpiredResetTokens(now time.Time) error
}

// StartDailyCleanup prunes expired revocation entries and stale reset tokens
// once a day at noon. The OTP store is deliberately NOT swept: its staleness
// is checked lazily at validation time.
func StartDailyCleanup(pruner RevocationPruner, cleaner ResetTokenCleaner) {
	go func() {
		for {
			now := time.Now()

			// 1. Calculate target time: Today at 12:00 PM
			nextRun := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, now.Location())

			// 2. If 12:00 PM has already passed today, schedule for tomorrow
			if nextRun.Before(now) {
				nextRun = nextRun.Add(24 * time.Hour)
			}

			duration := nextRun.Sub(now)
			log.Printf("Next credential cleanup scheduled in %v (at %v)\n", duration, nextRun.Format(time.Kitchen))

			time.Sleep(duration)

			pruned := pruner.PruneRevoked(time.Now())
			log.Printf("Pruned %d expired revocation entries", pruned)

			if err := cleaner.DeleteExpiredResetTokens(time.Now()); err != nil {
				log.Printf("Reset token cleanup failed: %v\n", err)
			} else {
				log.Println("Reset token cleanup completed.")
			}

			// Tiny buffer so the next loop doesn't double-trigger at noon
			time.Sleep(1 * time.Second)
		}
	}()
}
