package service

import (
	"context"

	"github.com/telemost/accountd/internal/account/domain"
	"github.com/telemost/accountd/internal/account/store"
)

// SampleLimit caps how many traffic rows a single request may pull.
const SampleLimit = 200

// TrafficService serves uniform random samples from the read-mostly
// mobile_traffic table.
type TrafficService struct {
	Store store.Store
}

// Sample returns up to SampleLimit uniformly sampled rows. An empty table
// yields an empty slice, not an error.
func (s *TrafficService) Sample(ctx context.Context) ([]domain.MobileTraffic, error) {
	return s.Store.Traffic().SampleRandom(ctx, SampleLimit)
}
