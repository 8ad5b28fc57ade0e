package services

import (
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"shopnow/internal/models"
	"shopnow/internal/repositories"
)

// DashboardStats is the aggregate snapshot served to the admin dashboard.
type DashboardStats struct {
	TotalOrders     int64   `json:"totalOrders"`
	PendingOrders   int64   `json:"pendingOrders"`
	ReadyOrders     int64   `json:"readyOrders"`
	CollectedOrders int64   `json:"collectedOrders"`
	TotalRevenue    float64 `json:"totalRevenue"`
	TodayOrders     int64   `json:"todayOrders"`
}

// AnalyticsService computes dashboard aggregates over the invoice store.
type AnalyticsService struct {
	invoiceRepo repositories.InvoiceRepository
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(invoiceRepo repositories.InvoiceRepository) *AnalyticsService {
	return &AnalyticsService{
		invoiceRepo: invoiceRepo,
	}
}

// startOfToday returns local midnight of the current day.
func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// Dashboard runs the six sub-queries concurrently and combines them. Any
// failing sub-query fails the whole snapshot; no partial result is returned.
func (s *AnalyticsService) Dashboard() (*DashboardStats, error) {
	var stats DashboardStats
	var g errgroup.Group

	g.Go(func() (err error) {
		stats.TotalOrders, err = s.invoiceRepo.CountAll()
		return err
	})
	g.Go(func() (err error) {
		stats.PendingOrders, err = s.invoiceRepo.CountByStatus(models.StatusPending)
		return err
	})
	g.Go(func() (err error) {
		stats.ReadyOrders, err = s.invoiceRepo.CountByStatus(models.StatusReady)
		return err
	})
	g.Go(func() (err error) {
		stats.CollectedOrders, err = s.invoiceRepo.CountByStatus(models.StatusCollected)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalRevenue, err = s.invoiceRepo.SumTotalByStatus(models.StatusCollected)
		return err
	})
	g.Go(func() (err error) {
		stats.TodayOrders, err = s.invoiceRepo.CountCreatedSince(startOfToday())
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
	}
	return &stats, nil
}
