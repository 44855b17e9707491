package services

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/zaibi117/readme-maker/internal/chunker"
	"github.com/zaibi117/readme-maker/internal/core/domain"
	"github.com/zaibi117/readme-maker/internal/core/ports/driven"
	"github.com/zaibi117/readme-maker/internal/core/ports/driving"
	"github.com/zaibi117/readme-maker/internal/logger"
)

// Ensure Processor implements the interface.
var _ driving.RepositoryProcessor = (*Processor)(nil)

// ProcessorConfig bounds a processing run.
type ProcessorConfig struct {
	// MaxFiles caps how many selected files are downloaded.
	MaxFiles int

	// DownloadBatchSize is the number of paths requested per download call.
	DownloadBatchSize int

	// SummaryBatchSize is the number of chunks per summarizer batch.
	SummaryBatchSize int

	// DownloadBatchDelay is the pause between download batches.
	DownloadBatchDelay time.Duration
}

// DefaultProcessorConfig returns the default run bounds.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		MaxFiles:           30,
		DownloadBatchSize:  10,
		SummaryBatchSize:   3,
		DownloadBatchDelay: 500 * time.Millisecond,
	}
}

// ProcessorOption configures the processor.
type ProcessorOption func(*Processor)

// WithStatusObserver registers an observer receiving every transition.
func WithStatusObserver(o driven.StatusObserver) ProcessorOption {
	return func(p *Processor) {
		p.observer = o
	}
}

// WithProcessorConfig overrides the default run bounds.
func WithProcessorConfig(cfg ProcessorConfig) ProcessorOption {
	return func(p *Processor) {
		defaults := DefaultProcessorConfig()
		if cfg.MaxFiles <= 0 {
			cfg.MaxFiles = defaults.MaxFiles
		}
		if cfg.DownloadBatchSize <= 0 {
			cfg.DownloadBatchSize = defaults.DownloadBatchSize
		}
		if cfg.SummaryBatchSize <= 0 {
			cfg.SummaryBatchSize = defaults.SummaryBatchSize
		}
		if cfg.DownloadBatchDelay < 0 {
			cfg.DownloadBatchDelay = 0
		}
		p.cfg = cfg
	}
}

// Processor drives a repository through tree listing, selection, download,
// chunking, summarisation and synthesis. It runs one pipeline at a time.
type Processor struct {
	host        driven.RepositoryHost
	chunker     *chunker.Chunker
	selector    *FileSelector
	summarizer  *ChunkSummarizer
	synthesizer *ReadmeSynthesizer
	cache       driven.SummaryCache
	docs        driven.DocumentStore
	observer    driven.StatusObserver
	cfg         ProcessorConfig

	// emitMu orders status publication; mu guards the fields below.
	emitMu  sync.Mutex
	mu      sync.Mutex
	status  domain.ProcessingStatus
	running bool
	cancel  context.CancelFunc
	partial []domain.Chunk
	subs    map[int]chan domain.ProcessingStatus
	nextSub int
}

// NewProcessor creates a processor. cache and docs may be nil, in which
// case results are not persisted and cache replay is unavailable.
func NewProcessor(
	host driven.RepositoryHost,
	ch *chunker.Chunker,
	selector *FileSelector,
	summarizer *ChunkSummarizer,
	synthesizer *ReadmeSynthesizer,
	cache driven.SummaryCache,
	docs driven.DocumentStore,
	opts ...ProcessorOption,
) *Processor {
	p := &Processor{
		host:        host,
		chunker:     ch,
		selector:    selector,
		summarizer:  summarizer,
		synthesizer: synthesizer,
		cache:       cache,
		docs:        docs,
		cfg:         DefaultProcessorConfig(),
		status:      domain.NewStatus(),
		subs:        make(map[int]chan domain.ProcessingStatus),
	}
	if p.chunker == nil {
		p.chunker = chunker.New()
	}
	if p.selector == nil {
		p.selector = NewFileSelector()
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process runs the full pipeline for owner/repo.
//
//nolint:gocyclo // Orchestration function with necessary sequential steps
func (p *Processor) Process(ctx context.Context, owner, repo string) (*driving.Result, error) {
	runCtx, done, err := p.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	start := time.Now()
	key := domain.RepoKey(owner, repo)
	logger.Section("Processing " + owner + "/" + repo)

	// 1. Repository metadata (best effort)
	p.transition(domain.StageFetchingTree, "Fetching repository information...", 5)
	info := p.repoInfo(runCtx, owner, repo)
	if runCtx.Err() != nil {
		return p.halt(start), nil
	}

	// 2. Tree
	p.transition(domain.StageFetchingTree, "Fetching repository tree...", 10)
	tree, err := p.host.FetchTree(runCtx, owner, repo)
	if runCtx.Err() != nil {
		return p.halt(start), nil
	}
	if err != nil {
		return nil, p.fail("Failed to fetch repository tree", fmt.Errorf("fetch tree: %w", err))
	}
	logger.Info("Tree has %d entries", len(tree))

	// 3. Selection
	p.transition(domain.StageFilteringFiles, "Filtering relevant files...", 20)
	files := p.selector.FilterRelevantFiles(tree)
	if len(files) > p.cfg.MaxFiles {
		found := len(files)
		files = files[:p.cfg.MaxFiles]
		p.transition(domain.StageFilteringFiles,
			fmt.Sprintf("Limited to %d files (found %d relevant files)", p.cfg.MaxFiles, found), 25)
	}
	var warning error
	if len(files) == 0 {
		warning = fmt.Errorf("%s: %w", key, domain.ErrNoRelevantFiles)
		logger.Warn("%v", warning)
	}

	// 4. Download
	contents, err := p.download(runCtx, owner, repo, files)
	if runCtx.Err() != nil {
		return p.halt(start), nil
	}
	if err != nil {
		return nil, p.fail("Failed to download file contents", fmt.Errorf("download contents: %w", err))
	}

	// 5. Chunking, in selection order
	p.transition(domain.StageChunkingFiles, "Processing and chunking files...", 60)
	var chunks []domain.Chunk
	for i, f := range files {
		content, ok := contents[f.Path]
		if !ok {
			continue
		}
		chunks = append(chunks, p.chunker.Chunk(f.Path, content)...)
		p.update(func(s domain.ProcessingStatus) domain.ProcessingStatus {
			return s.Transition(domain.StageChunkingFiles,
				fmt.Sprintf("Chunked %d/%d files...", i+1, len(files)), 60+10*(i+1)/len(files)).
				WithFiles(i+1, len(files)).
				WithCurrentFile(f.Path)
		})
	}
	if runCtx.Err() != nil {
		return p.halt(start), nil
	}
	logger.Info("Produced %d chunks from %d files", len(chunks), len(contents))

	// 6. Summarisation
	summarized, stats, err := p.summarize(runCtx, chunks)
	if err != nil || runCtx.Err() != nil {
		res := p.halt(start)
		res.Stats = stats
		return res, nil
	}

	// 7. Cache
	if stats.Successful > 0 && p.cache != nil {
		if err := p.cache.SaveSummaries(runCtx, key, summarized, stats); err != nil {
			logger.Error("Failed to cache summaries for %s: %v", key, err)
		}
	}

	// 8. Degraded completion
	if stats.Successful == 0 {
		readme := domain.FallbackReadme(owner, repo)
		id := p.saveDocument(runCtx, key, owner, repo, readme, 0, start, false)
		message := fmt.Sprintf("Generated fallback README (%d skipped, %d failed)", stats.Skipped, stats.Failed)
		if warning != nil {
			message = "Generated fallback README: " + domain.ErrNoRelevantFiles.Error()
		} else {
			warning = fmt.Errorf("%s: no chunk could be summarised", key)
		}
		p.transition(domain.StageComplete, message, 100)
		return &driving.Result{
			Document:   readme,
			Chunks:     summarized,
			Stats:      stats,
			DocumentID: id,
			Warning:    warning,
			Duration:   time.Since(start),
		}, nil
	}

	// 9. Synthesis
	p.transition(domain.StageGeneratingReadme, "Generating README from summaries...", 90)
	readme, err := p.synthesizer.Synthesize(runCtx, summarized, info)
	if runCtx.Err() != nil {
		return p.halt(start), nil
	}
	if err != nil {
		return nil, p.fail("README generation failed, summaries remain cached", err)
	}

	id := p.saveDocument(runCtx, key, owner, repo, readme, stats.Successful, start, false)
	p.transition(domain.StageComplete, "README generation complete!", 100)
	logger.Info("Completed %s in %s", key, time.Since(start).Round(time.Millisecond))

	return &driving.Result{
		Document:   readme,
		Chunks:     summarized,
		Stats:      stats,
		DocumentID: id,
		Duration:   time.Since(start),
	}, nil
}

// ProcessFromCache synthesises a README from cached summaries only.
func (p *Processor) ProcessFromCache(ctx context.Context, owner, repo string) (*driving.Result, error) {
	runCtx, done, err := p.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	start := time.Now()
	key := domain.RepoKey(owner, repo)
	logger.Section("Replaying cache for " + owner + "/" + repo)

	p.transition(domain.StageLoadingCache, "Loading cached summaries...", 10)
	if p.cache == nil {
		return nil, p.fail("No summary cache configured", fmt.Errorf("load summaries: %w", domain.ErrNotFound))
	}

	record, err := p.cache.LoadSummaries(runCtx, key)
	if runCtx.Err() != nil {
		return p.halt(start), nil
	}
	if err != nil {
		msg := "Failed to load cached summaries"
		if errors.Is(err, domain.ErrNotFound) {
			msg = "No cached summaries found for " + key
		}
		return nil, p.fail(msg, fmt.Errorf("load summaries: %w", err))
	}

	p.setPartial(record.Chunks)
	info := p.repoInfo(runCtx, owner, repo)
	stats := domain.CountSummaries(record.Chunks)

	p.update(func(s domain.ProcessingStatus) domain.ProcessingStatus {
		return s.Transition(domain.StageGeneratingReadme, "Generating README from cached summaries...", 50).
			WithChunks(len(record.Chunks), len(record.Chunks))
	})

	readme, err := p.synthesizer.Synthesize(runCtx, record.Chunks, info)
	if runCtx.Err() != nil {
		return p.halt(start), nil
	}
	if err != nil {
		return nil, p.fail("README generation failed", err)
	}

	id := p.saveDocument(runCtx, key, owner, repo, readme, stats.Successful, start, true)
	p.transition(domain.StageComplete, "README generated from cache!", 100)

	return &driving.Result{
		Document:   readme,
		Chunks:     record.Chunks,
		Stats:      record.Stats,
		DocumentID: id,
		FromCache:  true,
		Duration:   time.Since(start),
	}, nil
}

// Stop cancels the active run and forces the stopped stage.
// It is a no-op when no run is active.
func (p *Processor) Stop() {
	p.mu.Lock()
	running, cancel := p.running, p.cancel
	p.mu.Unlock()
	if !running {
		return
	}

	p.update(func(s domain.ProcessingStatus) domain.ProcessingStatus {
		return s.Stopped()
	})
	if cancel != nil {
		cancel()
	}
	logger.Info("Processing stopped")
}

// Status returns the current status snapshot.
func (p *Processor) Status() domain.ProcessingStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Subscribe returns a channel receiving the current status followed by
// every transition. When the buffer is full the oldest update is dropped.
// The returned function ends the subscription and closes the channel.
func (p *Processor) Subscribe(buffer int) (<-chan domain.ProcessingStatus, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan domain.ProcessingStatus, buffer)

	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = ch
	ch <- p.status
	p.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.subs, id)
			p.mu.Unlock()
			close(ch)
		})
	}
}

// Partial returns a copy of the chunks summarised so far.
func (p *Processor) Partial() []domain.Chunk {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Chunk, len(p.partial))
	copy(out, p.partial)
	return out
}

// begin claims the processor for a run and resets run state.
func (p *Processor) begin(ctx context.Context) (context.Context, func(), error) {
	p.emitMu.Lock()
	defer p.emitMu.Unlock()
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return nil, nil, domain.ErrProcessingInProgress
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.running = true
	p.cancel = cancel
	p.partial = nil
	p.status = domain.NewStatus()

	return runCtx, func() {
		cancel()
		p.mu.Lock()
		p.running = false
		p.cancel = nil
		p.mu.Unlock()
	}, nil
}

// update applies fn to the current status and publishes the result.
// Updates after a terminal stage are ignored.
func (p *Processor) update(fn func(domain.ProcessingStatus) domain.ProcessingStatus) {
	p.emitMu.Lock()
	defer p.emitMu.Unlock()

	p.mu.Lock()
	if p.status.Stage.IsTerminal() {
		p.mu.Unlock()
		return
	}
	next := fn(p.status)
	p.status = next
	for _, ch := range p.subs {
		publish(ch, next)
	}
	p.mu.Unlock()

	logger.Debug("[%s %d%%] %s", next.Stage, next.Progress, next.Message)
	if p.observer != nil {
		p.observer.OnStatus(next)
	}
}

func (p *Processor) transition(stage domain.Stage, message string, progress int) {
	p.update(func(s domain.ProcessingStatus) domain.ProcessingStatus {
		return s.Transition(stage, message, progress)
	})
}

// fail moves to the error stage and returns err.
func (p *Processor) fail(message string, err error) error {
	logger.Error("%s: %v", message, err)
	p.update(func(s domain.ProcessingStatus) domain.ProcessingStatus {
		return s.Failed(message, err)
	})
	return err
}

// halt records a cancelled run and returns its partial result.
func (p *Processor) halt(start time.Time) *driving.Result {
	p.update(func(s domain.ProcessingStatus) domain.ProcessingStatus {
		return s.Stopped()
	})
	return &driving.Result{
		Chunks:   p.Partial(),
		Stopped:  true,
		Duration: time.Since(start),
	}
}

func (p *Processor) setPartial(chunks []domain.Chunk) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.partial = append([]domain.Chunk(nil), chunks...)
}

func (p *Processor) appendPartial(chunks []domain.Chunk) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.partial = append(p.partial, chunks...)
}

// repoInfo fetches metadata, falling back to the bare identity on failure.
func (p *Processor) repoInfo(ctx context.Context, owner, repo string) domain.RepoInfo {
	info := domain.RepoInfo{Owner: owner, Name: repo}
	if p.host == nil {
		return info
	}

	fetched, err := p.host.FetchRepoInfo(ctx, owner, repo)
	if err != nil {
		logger.Warn("Repository info unavailable for %s/%s: %v", owner, repo, err)
		return info
	}
	if fetched != nil {
		info = *fetched
		if info.Owner == "" {
			info.Owner = owner
		}
		if info.Name == "" {
			info.Name = repo
		}
	}
	return info
}

// download fetches file contents in sequential batches.
func (p *Processor) download(ctx context.Context, owner, repo string, files []domain.FileEntry) (map[string]string, error) {
	total := len(files)
	p.update(func(s domain.ProcessingStatus) domain.ProcessingStatus {
		return s.Transition(domain.StageDownloadingContent, "Downloading file contents in batches...", 30).
			WithFiles(0, total)
	})

	contents := make(map[string]string, total)
	for start := 0; start < total; start += p.cfg.DownloadBatchSize {
		if start > 0 {
			if err := sleepContext(ctx, p.cfg.DownloadBatchDelay); err != nil {
				return nil, err
			}
		}

		end := min(start+p.cfg.DownloadBatchSize, total)
		paths := make([]string, 0, end-start)
		for _, f := range files[start:end] {
			paths = append(paths, f.Path)
		}

		got, err := p.host.FetchFileContents(ctx, owner, repo, paths)
		if err != nil {
			return nil, err
		}
		maps.Copy(contents, got)

		p.update(func(s domain.ProcessingStatus) domain.ProcessingStatus {
			return s.Transition(domain.StageDownloadingContent,
				fmt.Sprintf("Downloaded %d/%d files...", end, total), 30+30*end/total).
				WithFiles(end, total).
				WithCurrentFile(paths[len(paths)-1])
		})
	}

	if missing := total - len(contents); missing > 0 {
		logger.Warn("%d of %d files could not be downloaded", missing, total)
	}
	return contents, nil
}

// summarize runs the summarizer batch by batch. A batch that fails as a
// whole counts as skipped. On cancellation the partial result and the
// context error are returned.
func (p *Processor) summarize(ctx context.Context, chunks []domain.Chunk) ([]domain.Chunk, domain.SummaryStats, error) {
	total := len(chunks)
	var stats domain.SummaryStats

	p.update(func(s domain.ProcessingStatus) domain.ProcessingStatus {
		return s.Transition(domain.StageSummarizingChunks, "Summarizing code chunks...", 70).
			WithChunks(0, total)
	})

	size := p.cfg.SummaryBatchSize
	batches := (total + size - 1) / size
	for start := 0; start < total; start += size {
		if start > 0 && p.summarizer.InterRequestDelay() > 0 {
			if err := sleepContext(ctx, p.summarizer.InterRequestDelay()); err != nil {
				return p.Partial(), stats, err
			}
		}

		end := min(start+size, total)
		batch := chunks[start:end]
		p.update(func(s domain.ProcessingStatus) domain.ProcessingStatus {
			return s.Transition(domain.StageSummarizingChunks,
				fmt.Sprintf("Summarizing batch %d/%d...", start/size+1, batches), 70+15*start/total).
				WithChunks(start, total).
				WithCurrentFile(batch[0].File)
		})

		res, err := p.summarizer.SummarizeBatch(ctx, batch)
		if ctx.Err() != nil {
			p.appendPartial(res.Chunks)
			return p.Partial(), stats.Add(res.Stats), ctx.Err()
		}
		if err != nil {
			logger.Warn("Batch %d/%d failed, skipping %d chunks: %v", start/size+1, batches, len(batch), err)
			stats = stats.Add(domain.SummaryStats{Total: len(batch), Skipped: len(batch)})
		} else {
			stats = stats.Add(res.Stats)
			p.appendPartial(res.Chunks)
		}

		p.update(func(s domain.ProcessingStatus) domain.ProcessingStatus {
			return s.Transition(domain.StageSummarizingChunks,
				fmt.Sprintf("Summarized %d/%d chunks (%d skipped, %d failed)...", end, total, stats.Skipped, stats.Failed),
				70+15*end/total).
				WithChunks(end, total)
		})
	}

	logger.Info("Summaries: %d successful, %d skipped, %d failed of %d",
		stats.Successful, stats.Skipped, stats.Failed, stats.Total)
	return p.Partial(), stats, nil
}

func (p *Processor) saveDocument(ctx context.Context, key, owner, repo, content string, chunkCount int, start time.Time, fromCache bool) string {
	if p.docs == nil {
		return ""
	}
	id, err := p.docs.SaveDocument(ctx, &domain.Document{
		Key:            key,
		Owner:          owner,
		Repo:           repo,
		Content:        content,
		ChunkCount:     chunkCount,
		ProcessingTime: time.Since(start),
		FromCache:      fromCache,
		GeneratedAt:    time.Now(),
	})
	if err != nil {
		logger.Error("Failed to save README for %s: %v", key, err)
		return ""
	}
	return id
}

// publish sends without blocking, dropping the oldest queued update when full.
func publish(ch chan domain.ProcessingStatus, s domain.ProcessingStatus) {
	select {
	case ch <- s:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- s:
	default:
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
