package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"kodjobs/talent-matcher/internal/config"
	"kodjobs/talent-matcher/internal/models"
	"kodjobs/talent-matcher/internal/repositories"
)

const defaultConcurrency = 8

type MatcherService interface {
	RunMatch(ctx context.Context, employerID int, requirement string) (*models.MatchSummary, error)
}

type matcherService struct {
	employerRepo repositories.EmployerRepository
	matchRepo    repositories.MatchRepository
	storage      ResumeStorage
	pdfParser    PDFParserService
	scorer       ScorerService
	notifier     NotificationPublisher
	cfg          config.MatcherConfig
	resumePrefix string
}

func NewMatcherService(
	employerRepo repositories.EmployerRepository,
	matchRepo repositories.MatchRepository,
	storage ResumeStorage,
	pdfParser PDFParserService,
	scorer ScorerService,
	notifier NotificationPublisher,
	cfg config.MatcherConfig,
	resumePrefix string,
) MatcherService {
	return &matcherService{
		employerRepo: employerRepo,
		matchRepo:    matchRepo,
		storage:      storage,
		pdfParser:    pdfParser,
		scorer:       scorer,
		notifier:     notifier,
		cfg:          cfg,
		resumePrefix: resumePrefix,
	}
}

// RunMatch evaluates every stored resume against the requirement and
// returns the evaluations that completed. Only the employer lookup and
// the storage listing are fatal; everything inside a per-candidate unit
// is isolated so one bad PDF or one scorer timeout never aborts sibling
// evaluations.
func (m *matcherService) RunMatch(ctx context.Context, employerID int, requirement string) (*models.MatchSummary, error) {
	if _, err := m.employerRepo.FindByID(employerID); err != nil {
		return nil, err
	}

	keys, err := m.storage.ListResumeKeys(ctx, m.resumePrefix)
	if err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	log.Printf("🔄 [run %s] matching %d objects for employer %d\n", runID, len(keys), employerID)

	summary := &models.MatchSummary{
		RunID:   runID,
		Matches: []models.Match{},
	}
	if len(keys) == 0 {
		return summary, nil
	}

	workers := m.cfg.Concurrency
	if workers <= 0 {
		workers = defaultConcurrency
	}
	if workers > len(keys) {
		workers = len(keys)
	}

	jobs := make(chan string)
	results := make(chan models.Match, len(keys))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for key := range jobs {
				if ctx.Err() != nil {
					// Deadline hit: abandon remaining units. Nothing
					// partial is persisted for them.
					continue
				}
				if match, ok := m.processKey(ctx, runID, key, employerID, requirement); ok {
					results <- *match
				}
			}
		}()
	}

feed:
	for _, key := range keys {
		select {
		case jobs <- key:
		case <-ctx.Done():
			log.Printf("⚠️  [run %s] cancelled while feeding jobs: %v\n", runID, ctx.Err())
			break feed
		}
	}
	close(jobs)

	wg.Wait()
	close(results)

	for match := range results {
		summary.Matches = append(summary.Matches, match)
	}
	summary.TotalProcessed = len(summary.Matches)

	log.Printf("✅ [run %s] processed %d of %d objects\n", runID, summary.TotalProcessed, len(keys))
	return summary, nil
}

// processKey runs the sequential unit for one storage key: parse id,
// fetch, extract, score, persist, notify. A false return means the
// candidate is omitted from the summary; its absence is the only signal.
func (m *matcherService) processKey(ctx context.Context, runID, key string, employerID int, requirement string) (*models.Match, bool) {
	candidateID, ok := ParseCandidateID(key)
	if !ok {
		// Unrelated object sharing the prefix, not an error.
		return nil, false
	}

	var data []byte
	err := m.withRetry(ctx, m.cfg.FetchTimeout, func(callCtx context.Context) error {
		var ferr error
		data, ferr = m.storage.FetchObject(callCtx, key)
		return ferr
	})
	if err != nil {
		log.Printf("⚠️  [run %s] fetch failed for %s: %v\n", runID, key, err)
		return nil, false
	}

	text, err := m.pdfParser.ExtractText(data)
	if err != nil {
		log.Printf("⚠️  [run %s] invalid resume object %s: %v\n", runID, key, err)
		return nil, false
	}
	if text == "" {
		log.Printf("⚠️  [run %s] unreadable resume %s, skipping\n", runID, key)
		return nil, false
	}

	var score int
	err = m.withRetry(ctx, m.cfg.ScoreTimeout, func(callCtx context.Context) error {
		var serr error
		score, serr = m.scorer.Score(callCtx, text, requirement)
		return serr
	})
	if err != nil {
		// A scoring outage must not drop the candidate from the audit
		// trail; record a conservative no-match instead.
		log.Printf("⚠️  [run %s] scoring failed for candidate %d, recording score 0: %v\n", runID, candidateID, err)
		score = 0
	}

	persistCtx, cancelPersist := context.WithTimeout(ctx, m.cfg.PersistTimeout)
	match, err := m.matchRepo.CreateEvaluation(persistCtx, candidateID, employerID, requirement, score)
	cancelPersist()
	if err != nil {
		log.Printf("❌ [run %s] failed to persist evaluation for candidate %d: %v\n", runID, candidateID, err)
		return nil, false
	}

	publishCtx, cancelPublish := context.WithTimeout(ctx, m.cfg.PublishTimeout)
	if err := m.notifier.Publish(publishCtx, match); err != nil {
		// Best effort: the match row is the authoritative record.
		log.Printf("⚠️  [run %s] failed to publish notification for candidate %d: %v\n", runID, candidateID, err)
	}
	cancelPublish()

	log.Printf("✅ [run %s] candidate %d scored %d (match=%t)\n", runID, candidateID, score, match.IsMatch)
	return match, true
}

// withRetry runs fn with a per-attempt timeout and exponential backoff.
// Exhaustion surfaces the last error unchanged, so the caller sees the
// same failure taxonomy as an unwrapped call.
func (m *matcherService) withRetry(ctx context.Context, timeout time.Duration, fn func(context.Context) error) error {
	attempts := m.cfg.RetryMaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	delay := m.cfg.RetryInitialDelay
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, timeout)
		err := fn(callCtx)
		cancel()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return lastErr
		case <-time.After(delay):
			delay *= 2
		}
	}

	return lastErr
}
