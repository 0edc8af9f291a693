package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/asadullah-yousuf/QistKart/models"
	"github.com/asadullah-yousuf/QistKart/utils"
	"gorm.io/gorm"
)

// ExpirySweeper periodically deactivates deals whose window has ended and
// restores the standard plans, the same reversal path a manual deactivate
// takes. It only ever moves deals toward inactive.
type ExpirySweeper struct {
	deals    *DealService
	interval time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewExpirySweeper creates a sweeper running once per interval.
func NewExpirySweeper(deals *DealService, interval time.Duration) *ExpirySweeper {
	return &ExpirySweeper{
		deals:    deals,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Sweep runs one reconciliation pass: every deal still active past its end
// date is deactivated in its own transaction. Returns the number of deals
// reverted. Failed entries are logged and picked up again next pass, and a
// second call right after a sweep finds nothing to do.
func (s *ExpirySweeper) Sweep(now time.Time) (int, error) {
	var ids []uint
	err := s.deals.db.Model(&models.Deal{}).
		Where("active = ? AND end_date < ?", true, now).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}

	reverted := 0
	for _, id := range ids {
		swept, err := s.sweepOne(id)
		if err != nil {
			utils.LogError("Expiry sweep failed for deal %d: %v", id, err)
			continue
		}
		if swept {
			reverted++
		}
	}
	if reverted > 0 {
		utils.LogInfo("Expiry sweep reverted %d deal(s)", reverted)
	}
	return reverted, nil
}

// sweepOne deactivates one expired deal and reports whether a revert
// actually ran. A deal a racing writer already deactivated or deleted
// between the listing and this transaction is skipped, not counted.
func (s *ExpirySweeper) sweepOne(id uint) (bool, error) {
	swept := false
	err := s.deals.db.Transaction(func(tx *gorm.DB) error {
		deal, err := s.deals.loadDeal(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if !deal.Active {
			return nil
		}
		if err := s.deals.deactivate(tx, deal); err != nil {
			return err
		}
		swept = true
		return nil
	})
	return swept, err
}

// Start launches the periodic sweep loop. The first pass runs immediately
// to clear anything that expired while the process was down.
func (s *ExpirySweeper) Start(ctx context.Context) {
	utils.LogInfo("Starting expiry sweeper, interval %v", s.interval)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()
}

// Stop shuts the sweep loop down and waits for an in-flight pass.
func (s *ExpirySweeper) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
		utils.LogInfo("Expiry sweeper stopped")
	})
}

func (s *ExpirySweeper) run(ctx context.Context) {
	if _, err := s.Sweep(time.Now()); err != nil {
		utils.LogError("Expiry sweep failed: %v", err)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			if _, err := s.Sweep(time.Now()); err != nil {
				utils.LogError("Expiry sweep failed: %v", err)
			}
		}
	}
}
