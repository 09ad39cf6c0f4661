package usecase

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"skypulse-engine/internal/domain/entity"
)

// CreateAlert registers a pending alert for route. Several alerts per
// route are allowed and evaluated independently.
func (pi *PriceIntelligence) CreateAlert(route string, targetPrice float64) (*entity.PriceAlert, error) {
	if strings.TrimSpace(route) == "" {
		return nil, ErrInvalidRoute
	}
	if math.IsNaN(targetPrice) || math.IsInf(targetPrice, 0) || targetPrice <= 0 {
		return nil, ErrInvalidTarget
	}

	pi.mu.Lock()
	defer pi.mu.Unlock()

	alert := &entity.PriceAlert{
		ID:          uuid.NewString(),
		Route:       route,
		TargetPrice: targetPrice,
		CreatedAt:   pi.now(),
	}
	pi.alerts[route] = append(pi.alerts[route], alert)
	pi.logger.Info("Price alert created", "route", route, "alertID", alert.ID, "target", targetPrice)

	copied := *alert
	return &copied, nil
}

// checkAlertsLocked flips every pending alert whose target the price
// reaches. Triggered alerts are never evaluated again.
func (pi *PriceIntelligence) checkAlertsLocked(route string, price float64, at time.Time) int {
	triggered := 0
	for _, alert := range pi.alerts[route] {
		if alert.Triggered || price > alert.TargetPrice {
			continue
		}
		triggeredAt := at
		alert.Triggered = true
		alert.TriggeredAt = &triggeredAt
		alert.TriggerPrice = price
		triggered++
		pi.logger.Info("Price alert triggered", "route", route, "alertID", alert.ID, "price", price, "target", alert.TargetPrice)
	}
	return triggered
}

// ActiveAlerts returns pending alerts for route, or for every route when
// route is empty, oldest first.
func (pi *PriceIntelligence) ActiveAlerts(route string) []*entity.PriceAlert {
	pi.mu.RLock()
	defer pi.mu.RUnlock()

	var candidates []*entity.PriceAlert
	if route != "" {
		candidates = pi.alerts[route]
	} else {
		for _, routeAlerts := range pi.alerts {
			candidates = append(candidates, routeAlerts...)
		}
	}

	active := make([]*entity.PriceAlert, 0)
	for _, a := range candidates {
		if !a.Triggered {
			copied := *a
			active = append(active, &copied)
		}
	}
	sort.SliceStable(active, func(i, j int) bool { return active[i].CreatedAt.Before(active[j].CreatedAt) })
	return active
}

// Alerts returns every alert for route including triggered ones
func (pi *PriceIntelligence) Alerts(route string) []*entity.PriceAlert {
	pi.mu.RLock()
	defer pi.mu.RUnlock()

	result := make([]*entity.PriceAlert, 0, len(pi.alerts[route]))
	for _, a := range pi.alerts[route] {
		copied := *a
		result = append(result, &copied)
	}
	return result
}
