package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/subseadata/ifdocatalog/validation"
)

const (
	wormsCacheTTL     = 24 * time.Hour
	wormsCacheCleanup = time.Hour
)

// WormsService verifies AphiaIDs against the WoRMS taxonomy API. A cached
// mirror is consulted first, the live API only when the mirror does not
// answer 200. Verdicts for valid ids are cached in-process so repeated
// label writes do not hammer the API.
type WormsService struct {
	client     *http.Client
	cachedBase string
	liveBase   string
	cache      *cache.Cache
}

// NewWormsService creates a WoRMS verifier with a bounded request timeout.
func NewWormsService(cachedBase, liveBase string, timeout time.Duration) *WormsService {
	return &WormsService{
		client:     &http.Client{Timeout: timeout},
		cachedBase: cachedBase,
		liveBase:   liveBase,
		cache:      cache.New(wormsCacheTTL, wormsCacheCleanup),
	}
}

// VerifyAphiaID checks one AphiaID. A nil return means the id is valid.
// Invalid ids and an unreachable service both surface as field errors on
// lowest_aphia_id, so a label write is never failed with a 5xx for an
// optional field.
func (s *WormsService) VerifyAphiaID(ctx context.Context, aphiaID string) error {
	if _, found := s.cache.Get(aphiaID); found {
		return nil
	}

	status, err := s.lookup(ctx, s.cachedBase, aphiaID)
	if err != nil || status != http.StatusOK {
		liveStatus, liveErr := s.lookup(ctx, s.liveBase, aphiaID)
		status, err = liveStatus, liveErr
	}

	if err != nil {
		return validation.NewError("lowest_aphia_id", "WoRMS API unavailable. Please try again later.")
	}
	switch {
	case status == http.StatusOK:
		s.cache.SetDefault(aphiaID, true)
		return nil
	case status == http.StatusNoContent || status == http.StatusBadRequest:
		return validation.NewError("lowest_aphia_id", "invalid AphiaID")
	default:
		return validation.NewError("lowest_aphia_id", "WoRMS API unavailable. Please try again later.")
	}
}

func (s *WormsService) lookup(ctx context.Context, base, aphiaID string) (int, error) {
	url := fmt.Sprintf("%s/AphiaRecordByAphiaID/%s", base, aphiaID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build WoRMS request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("WoRMS request failed: %w", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}
