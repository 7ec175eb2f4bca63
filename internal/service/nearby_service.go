package service

import (
	"sort"

	"github.com/nlam511/geo-message/internal/cache"
	"github.com/nlam511/geo-message/internal/geo"
	"github.com/nlam511/geo-message/internal/models"
	"github.com/nlam511/geo-message/internal/repository"
	"github.com/nlam511/geo-message/internal/spatial"
)

// NearbyService answers proximity queries: grid pre-filter, exact haversine
// filter, then per-user exclusion of collected/hidden messages.
type NearbyService struct {
	messageRepo    repository.MessageRepositoryInterface
	visibilityRepo repository.VisibilityRepositoryInterface
	index          spatial.Index
	visCache       *cache.VisibilityCache
	defaultRadiusM float64
}

func NewNearbyService(
	messageRepo repository.MessageRepositoryInterface,
	visibilityRepo repository.VisibilityRepositoryInterface,
	index spatial.Index,
	visCache *cache.VisibilityCache,
	defaultRadiusM float64,
) *NearbyService {
	return &NearbyService{
		messageRepo:    messageRepo,
		visibilityRepo: visibilityRepo,
		index:          index,
		visCache:       visCache,
		defaultRadiusM: defaultRadiusM,
	}
}

type NearbyMessage struct {
	models.MessageResponse
	DistanceM float64 `json:"distance_m"`
}

// Nearby returns the visible messages within radiusM of the center, most
// recent first. Distance is reported but deliberately not the sort key.
// No matches is an empty slice, not an error.
func (s *NearbyService) Nearby(userID uint, lat, lon, radiusM float64) ([]NearbyMessage, error) {
	if radiusM <= 0 {
		radiusM = s.defaultRadiusM
	}
	center := geo.Point{Latitude: lat, Longitude: lon}

	candidateIDs, err := s.index.QueryWithin(center, radiusM)
	if err != nil {
		return nil, err
	}
	if len(candidateIDs) == 0 {
		return []NearbyMessage{}, nil
	}

	messages, err := s.messageRepo.FindByIDs(candidateIDs)
	if err != nil {
		return nil, err
	}

	excluded, err := s.excludedSet(userID)
	if err != nil {
		return nil, err
	}

	results := []NearbyMessage{}
	for i := range messages {
		m := &messages[i]
		if _, skip := excluded[m.ID]; skip {
			continue
		}
		// The grid returns a superset; the haversine check decides.
		d := geo.Distance(center, geo.Point{Latitude: m.Latitude, Longitude: m.Longitude})
		if d > radiusM {
			continue
		}
		results = append(results, NearbyMessage{
			MessageResponse: m.ToResponse(),
			DistanceM:       d,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if !results[i].CreatedAt.Equal(results[j].CreatedAt) {
			return results[i].CreatedAt.After(results[j].CreatedAt)
		}
		return results[i].ID > results[j].ID
	})

	return results, nil
}

// excludedSet loads the user's collected+hidden message IDs, preferring the
// cached copy. One lookup for the whole candidate list, never one per row.
func (s *NearbyService) excludedSet(userID uint) (map[uint]struct{}, error) {
	ids, ok := s.visCache.GetExcluded(userID)
	if !ok {
		var err error
		ids, err = s.visibilityRepo.ListExcludedIDs(userID)
		if err != nil {
			return nil, err
		}
		_ = s.visCache.SetExcluded(userID, ids)
	}

	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}
