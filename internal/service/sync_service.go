package service

import (
	"context"
	"sync"
	"time"

	"github.com/content-sync-api/internal/config"
	"github.com/content-sync-api/internal/models"
	"github.com/content-sync-api/internal/repository"
	"github.com/content-sync-api/internal/validation"
	"github.com/content-sync-api/internal/wordpress"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// syncService is the concrete implementation of SyncService.
//
// The pipeline is a fixed, linear stage order: authors, categories,
// category parent linking, articles, article relation linking, then
// best-effort image resolution. Later stages depend on earlier stages'
// records existing for relationship linking. Each stage fetches and
// decodes everything before writing, and writes in one transaction, so a
// failing stage commits nothing of its own; completed stages stay
// committed and the next run reconciles by upsert-by-key.
type syncService struct {
	repos  *repository.Repositories
	client ContentClient
	cfg    *config.Config
	log    zerolog.Logger

	// in-flight guard: a second Sync while one is outstanding joins the
	// outstanding run instead of racing it. inFlight holds an immutable
	// snapshot that updateRun replaces wholesale, never the struct the
	// pipeline goroutine mutates, so callers may serialize what they get.
	mu       sync.Mutex
	inFlight *models.SyncRun
}

// NewSyncService creates a new SyncService
func NewSyncService(repos *repository.Repositories, client ContentClient, cfg *config.Config, log zerolog.Logger) SyncService {
	return &syncService{
		repos:  repos,
		client: client,
		cfg:    cfg,
		log:    log.With().Str("service", "sync").Logger(),
	}
}

// Start launches a sync run in the background
func (s *syncService) Start(ctx context.Context) (*models.SyncRun, bool, error) {
	run, joined, err := s.begin(ctx)
	if err != nil || joined {
		return run, false, err
	}

	// The caller gets a snapshot taken before the run detaches from the
	// request lifetime; the live struct belongs to the pipeline goroutine.
	snapshot := *run

	go func() {
		if _, err := s.runPipeline(context.Background(), run); err != nil {
			s.log.Error().Err(err).Str("run_id", run.ID).Msg("Sync failed")
		}
	}()

	return &snapshot, true, nil
}

// Sync runs the pipeline to completion. A call made while another run is
// outstanding returns the outstanding run without doing any work.
func (s *syncService) Sync(ctx context.Context) (*models.SyncRun, error) {
	run, joined, err := s.begin(ctx)
	if err != nil || joined {
		return run, err
	}
	return s.runPipeline(ctx, run)
}

// begin applies the in-flight guard and records a new pending run.
// joined is true when an outstanding run was returned instead.
func (s *syncService) begin(ctx context.Context) (*models.SyncRun, bool, error) {
	s.mu.Lock()
	if s.inFlight != nil {
		run := s.inFlight
		s.mu.Unlock()
		s.log.Debug().Str("run_id", run.ID).Msg("Sync already in flight, joining")
		return run, true, nil
	}

	run := &models.SyncRun{
		ID:        uuid.New().String(),
		Status:    models.SyncStatusPending,
		Stage:     models.StageIdle,
		CreatedAt: time.Now(),
	}
	snapshot := *run
	s.inFlight = &snapshot
	s.mu.Unlock()

	if err := s.repos.SyncRun.Create(ctx, run); err != nil {
		s.mu.Lock()
		s.inFlight = nil
		s.mu.Unlock()
		return nil, false, err
	}

	return run, false, nil
}

func (s *syncService) runPipeline(ctx context.Context, run *models.SyncRun) (*models.SyncRun, error) {
	startTime := time.Now()
	run.Status = models.SyncStatusRunning
	run.StartedAt = &startTime
	s.updateRun(ctx, run)

	s.log.Info().Str("run_id", run.ID).Msg("Sync started")

	didChange := false

	// Stage: authors
	newAuthors, total, err := s.syncAuthors(ctx, run)
	if err != nil {
		return run, s.fail(ctx, run, startTime, err)
	}
	run.AuthorsSynced = total
	didChange = didChange || newAuthors > 0

	// Stage: categories, then the parent-linking pass over all of them
	newCategories, total, err := s.syncCategories(ctx, run)
	if err != nil {
		return run, s.fail(ctx, run, startTime, err)
	}
	run.CategoriesSynced = total
	didChange = didChange || newCategories > 0

	// Stage: articles, then relation linking
	newArticles, total, err := s.syncArticles(ctx, run)
	if err != nil {
		return run, s.fail(ctx, run, startTime, err)
	}
	run.ArticlesSynced = total
	didChange = didChange || newArticles > 0

	run.Status = models.SyncStatusCompleted
	run.Stage = models.StageIdle
	run.DidChange = didChange
	completedAt := time.Now()
	run.CompletedAt = &completedAt
	run.DurationMs = time.Since(startTime).Milliseconds()
	s.updateRun(ctx, run)

	s.mu.Lock()
	s.inFlight = nil
	s.mu.Unlock()

	s.log.Info().
		Str("run_id", run.ID).
		Bool("did_change", didChange).
		Int("authors", run.AuthorsSynced).
		Int("categories", run.CategoriesSynced).
		Int("articles", run.ArticlesSynced).
		Int64("duration_ms", run.DurationMs).
		Msg("Sync completed")

	// Image resolution is fire-and-forget relative to the run's result:
	// it reports only through store writes and its failures are logged,
	// never surfaced.
	go s.resolveImages(context.Background())

	return run, nil
}

func (s *syncService) syncAuthors(ctx context.Context, run *models.SyncRun) (newCount, total int, err error) {
	run.Stage = models.StageFetchingAuthors
	s.updateRun(ctx, run)

	pages, err := s.client.FetchAllPages(ctx, "/users", wordpress.Filters{})
	if err != nil {
		return 0, 0, err
	}
	dtos, err := wordpress.DecodeAuthors(pages)
	if err != nil {
		return 0, 0, err
	}
	if err := validation.ValidateAuthors(dtos); err != nil {
		return 0, 0, err
	}

	authors := lo.Map(dtos, func(dto wordpress.AuthorDTO, _ int) *models.Author {
		author := dto.ToAuthor()
		return &author
	})

	newCount, err = s.repos.Author.UpsertBatch(ctx, authors)
	return newCount, len(authors), err
}

func (s *syncService) syncCategories(ctx context.Context, run *models.SyncRun) (newCount, total int, err error) {
	run.Stage = models.StageFetchingCategories
	s.updateRun(ctx, run)

	pages, err := s.client.FetchAllPages(ctx, "/categories", wordpress.Filters{})
	if err != nil {
		return 0, 0, err
	}
	dtos, err := wordpress.DecodeCategories(pages)
	if err != nil {
		return 0, 0, err
	}
	if err := validation.ValidateCategories(dtos); err != nil {
		return 0, 0, err
	}

	categories := lo.Map(dtos, func(dto wordpress.CategoryDTO, _ int) *models.Category {
		category := dto.ToCategory()
		return &category
	})

	newCount, err = s.repos.Category.UpsertBatch(ctx, categories)
	if err != nil {
		return 0, 0, err
	}

	// Parent linking is a second pass over all categories, not just the
	// fetched ones: a child written before its parent existed resolves
	// here once every record is present.
	run.Stage = models.StageLinkingCategoryParents
	s.updateRun(ctx, run)

	normalized, err := s.repos.Category.LinkParents(ctx)
	if err != nil {
		return 0, 0, err
	}
	if normalized > 0 {
		s.log.Warn().Int64("categories", normalized).Msg("Dangling category parents normalized to top-level")
	}

	return newCount, len(categories), nil
}

func (s *syncService) syncArticles(ctx context.Context, run *models.SyncRun) (newCount, total int, err error) {
	run.Stage = models.StageFetchingArticles
	s.updateRun(ctx, run)

	pages, err := s.client.FetchAllPages(ctx, "/posts", wordpress.Filters{})
	if err != nil {
		return 0, 0, err
	}
	dtos, err := wordpress.DecodePosts(pages)
	if err != nil {
		return 0, 0, err
	}
	if err := validation.ValidatePosts(dtos); err != nil {
		return 0, 0, err
	}

	articles := lo.Map(dtos, func(dto wordpress.PostDTO, _ int) *models.Article {
		article := dto.ToArticle()
		return &article
	})

	newCount, err = s.repos.Article.UpsertBatch(ctx, articles)
	if err != nil {
		return 0, 0, err
	}

	run.Stage = models.StageLinkingArticleRelations
	s.updateRun(ctx, run)

	for _, dto := range dtos {
		if err := s.repos.Article.ReplaceCategories(ctx, dto.ID, dto.Categories); err != nil {
			return 0, 0, err
		}
	}

	return newCount, len(articles), nil
}

// resolveImages resolves attachment thumbnails for articles that still
// lack one. Per-article failures are logged and skipped.
func (s *syncService) resolveImages(ctx context.Context) {
	articles, err := s.repos.Article.ImagesToResolve(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list articles for image resolution")
		return
	}

	resolved := 0
	for _, article := range articles {
		image, err := s.client.FetchImageMetadata(ctx, article.ImageID)
		if err != nil {
			s.log.Warn().Err(err).Int64("article_id", article.ID).Msg("Image metadata fetch failed, skipping")
			continue
		}
		if image == nil {
			continue
		}
		if err := s.repos.Article.SetImageURL(ctx, article.ID, image.ThumbnailURL); err != nil {
			s.log.Warn().Err(err).Int64("article_id", article.ID).Msg("Failed to store image URL, skipping")
			continue
		}
		resolved++
	}

	if len(articles) > 0 {
		s.log.Info().Int("resolved", resolved).Int("candidates", len(articles)).Msg("Image resolution pass finished")
	}
}

// fail marks the run failed and releases the in-flight guard
func (s *syncService) fail(ctx context.Context, run *models.SyncRun, startTime time.Time, err error) error {
	run.Status = models.SyncStatusFailed
	run.ErrorMessage = err.Error()
	completedAt := time.Now()
	run.CompletedAt = &completedAt
	run.DurationMs = time.Since(startTime).Milliseconds()
	s.updateRun(ctx, run)

	s.mu.Lock()
	s.inFlight = nil
	s.mu.Unlock()

	s.log.Error().Err(err).Str("run_id", run.ID).Str("stage", string(run.Stage)).Msg("Sync aborted")
	return err
}

// updateRun persists run bookkeeping and refreshes the in-flight
// snapshot. Bookkeeping failures are logged but never abort the pipeline.
func (s *syncService) updateRun(ctx context.Context, run *models.SyncRun) {
	s.mu.Lock()
	if s.inFlight != nil && s.inFlight.ID == run.ID {
		snapshot := *run
		s.inFlight = &snapshot
	}
	s.mu.Unlock()

	if err := s.repos.SyncRun.Update(ctx, run); err != nil {
		s.log.Warn().Err(err).Str("run_id", run.ID).Msg("Failed to update sync run record")
	}
}

// GetRun retrieves a sync run by id
func (s *syncService) GetRun(ctx context.Context, id string) (*models.SyncRun, error) {
	return s.repos.SyncRun.GetByID(ctx, id)
}

// GetLatestRun retrieves the most recent sync run
func (s *syncService) GetLatestRun(ctx context.Context) (*models.SyncRun, error) {
	return s.repos.SyncRun.GetLatest(ctx)
}
