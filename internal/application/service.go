package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cf-tools/cf-insight/internal/domain/contest"
	"github.com/cf-tools/cf-insight/internal/domain/profile"
	"github.com/cf-tools/cf-insight/internal/domain/rank"
	"github.com/cf-tools/cf-insight/internal/domain/recommend"
	"github.com/cf-tools/cf-insight/internal/domain/shared"
)

// Source is the remote competitive-programming data source: four read-only
// operations returning raw records. Implementations pace their own
// requests; the orchestration layer keeps bulk per-user operations
// sequential so that pacing is the only thing governing fetch spacing.
type Source interface {
	GetProfiles(ctx context.Context, handles []string) ([]contest.Record, error)
	GetRatingHistory(ctx context.Context, handle string) ([]contest.Record, error)
	GetSubmissions(ctx context.Context, handle string, limit int) ([]contest.Record, error)
	GetCatalog(ctx context.Context) (problems, statistics []contest.Record, err error)
}

// SnapshotCache caches computed leaderboard snapshots. A miss surfaces as
// shared.ErrNotFound.
type SnapshotCache interface {
	Get(ctx context.Context, metric rank.Metric) (*rank.Snapshot, error)
	Set(ctx context.Context, snap *rank.Snapshot) error
	Invalidate(ctx context.Context, metric rank.Metric) error
}

// Config wires the service dependencies.
type Config struct {
	// Source is the remote data source. Required.
	Source Source

	// RegistryRepo persists user-to-handle links. Optional; without it the
	// registry lives only in memory.
	RegistryRepo profile.RegistryRepository

	// Cache holds leaderboard snapshots. Optional.
	Cache SnapshotCache

	// SubmissionLimit bounds per-user submission fetches. Zero means the
	// source default.
	SubmissionLimit int

	// Logger for structured logging.
	Logger *slog.Logger
}

// Service is the orchestration facade over the core engines.
type Service struct {
	source          Source
	repo            profile.RegistryRepository
	cache           SnapshotCache
	registry        *Registry
	recommender     *recommend.Engine
	submissionLimit int
	logger          *slog.Logger

	catalogMu sync.RWMutex
	catalog   *contest.Catalog
}

// NewService creates a Service.
func NewService(config Config) (*Service, error) {
	if config.Source == nil {
		return nil, fmt.Errorf("application: source is required")
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Service{
		source:          config.Source,
		repo:            config.RegistryRepo,
		cache:           config.Cache,
		registry:        NewRegistry(),
		recommender:     recommend.New(nil),
		submissionLimit: config.SubmissionLimit,
		logger:          config.Logger,
	}, nil
}

// Registry exposes the in-memory profile registry.
func (s *Service) Registry() *Registry {
	return s.registry
}

// Register materializes a profile for the handle and binds it to the user
// id, persisting the link when a repository is wired.
func (s *Service) Register(ctx context.Context, userID int64, handle string) (*profile.UserProfile, error) {
	if s.registry.Contains(userID) {
		return nil, shared.NewDomainError("application", "Register",
			shared.ErrAlreadyExists, "user is already registered")
	}

	p, err := s.fetchProfile(ctx, handle)
	if err != nil {
		return nil, err
	}

	if s.repo != nil {
		if err := s.repo.SaveLink(ctx, profile.Link{UserID: userID, Handle: handle}); err != nil {
			return nil, fmt.Errorf("persist link: %w", err)
		}
	}
	s.registry.Put(userID, p)
	s.logger.Info("user registered", "user_id", userID, "handle", handle)
	return p, nil
}

// Unregister removes the user's profile and cached sequences.
func (s *Service) Unregister(ctx context.Context, userID int64) error {
	if !s.registry.Contains(userID) {
		return shared.NewDomainError("application", "Unregister",
			shared.ErrNotFound, "user is not registered")
	}
	if s.repo != nil {
		if err := s.repo.DeleteLink(ctx, userID); err != nil {
			return fmt.Errorf("delete link: %w", err)
		}
	}
	s.registry.Remove(userID)
	s.logger.Info("user unregistered", "user_id", userID)
	return nil
}

// RefreshProfile refetches the whole profile record for one user. The old
// profile, including its cached sequences, is replaced only after the
// fetch succeeds; a failure leaves the existing state untouched.
func (s *Service) RefreshProfile(ctx context.Context, userID int64) (*profile.UserProfile, error) {
	current, err := s.registry.Get(userID)
	if err != nil {
		return nil, err
	}

	fresh, err := s.fetchProfile(ctx, current.Handle)
	if err != nil {
		return nil, err
	}
	s.registry.Put(userID, fresh)
	return fresh, nil
}

// SyncProfiles rebuilds the registry from the persistent link table in one
// batch fetch. The new state is constructed completely before it replaces
// the old one.
func (s *Service) SyncProfiles(ctx context.Context) error {
	if s.repo == nil {
		return shared.NewDomainError("application", "SyncProfiles",
			shared.ErrNotFound, "no registry repository configured")
	}

	links, err := s.repo.ListLinks(ctx)
	if err != nil {
		return fmt.Errorf("list links: %w", err)
	}
	if len(links) == 0 {
		s.registry.ReplaceAll(make(map[int64]*profile.UserProfile), nil)
		return nil
	}

	handles := make([]string, 0, len(links))
	for _, link := range links {
		handles = append(handles, link.Handle)
	}

	records, err := s.source.GetProfiles(ctx, handles)
	if err != nil {
		return err
	}
	profiles, err := profile.ProfilesFromRecords(handles, records)
	if err != nil {
		return err
	}

	byUser := make(map[int64]*profile.UserProfile, len(links))
	order := make([]int64, 0, len(links))
	for i, link := range links {
		byUser[link.UserID] = profiles[i]
		order = append(order, link.UserID)
	}
	s.registry.ReplaceAll(byUser, order)

	s.logger.Info("profiles synced", "count", len(profiles))
	return nil
}

// EnsureRatingChanges loads the profile's rating-change sequence on first
// use. The cache is only written after a fully successful fetch and parse.
func (s *Service) EnsureRatingChanges(ctx context.Context, p *profile.UserProfile) ([]contest.RatingChange, error) {
	if p.RatingChangesLoaded() {
		return p.RatingChanges()
	}

	records, err := s.source.GetRatingHistory(ctx, p.Handle)
	if err != nil {
		return nil, err
	}
	changes, err := contest.RatingChangesFromRecords(records)
	if err != nil {
		return nil, err
	}
	p.SetRatingChanges(changes)
	return p.RatingChanges()
}

// EnsureSubmissions loads the profile's submission sequence on first use.
func (s *Service) EnsureSubmissions(ctx context.Context, p *profile.UserProfile) ([]contest.Submission, error) {
	if p.SubmissionsLoaded() {
		return p.Submissions()
	}

	records, err := s.source.GetSubmissions(ctx, p.Handle, s.submissionLimit)
	if err != nil {
		return nil, err
	}
	subs, err := contest.SubmissionsFromRecords(records)
	if err != nil {
		return nil, err
	}
	p.SetSubmissions(subs)
	return subs, nil
}

// Catalog returns the problemset snapshot, fetching it on first use. The
// snapshot is held for the catalog's lifetime; RefreshCatalog replaces it
// wholesale.
func (s *Service) Catalog(ctx context.Context) (*contest.Catalog, error) {
	s.catalogMu.RLock()
	c := s.catalog
	s.catalogMu.RUnlock()
	if c != nil {
		return c, nil
	}
	return s.RefreshCatalog(ctx)
}

// RefreshCatalog re-fetches the whole problemset snapshot.
func (s *Service) RefreshCatalog(ctx context.Context) (*contest.Catalog, error) {
	problems, statistics, err := s.source.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}
	c, err := contest.CatalogFromRecords(problems, statistics)
	if err != nil {
		return nil, err
	}

	s.catalogMu.Lock()
	s.catalog = c
	s.catalogMu.Unlock()

	s.logger.Info("catalog refreshed", "problems", len(c.Problems))
	return c, nil
}

// Recommend picks a practice problem in the band above the user's rating.
func (s *Service) Recommend(ctx context.Context, userID int64) (contest.Problem, error) {
	p, err := s.registry.Get(userID)
	if err != nil {
		return contest.Problem{}, err
	}
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return contest.Problem{}, err
	}
	return s.recommender.RecommendFor(catalog, p.Rating)
}

// fetchProfile materializes one profile from a single-handle batch fetch.
func (s *Service) fetchProfile(ctx context.Context, handle string) (*profile.UserProfile, error) {
	records, err := s.source.GetProfiles(ctx, []string{handle})
	if err != nil {
		return nil, err
	}
	profiles, err := profile.ProfilesFromRecords([]string{handle}, records)
	if err != nil {
		return nil, err
	}
	return profiles[0], nil
}
