package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"

	"github.com/zaibi117/readme-maker/internal/core/domain"
	"github.com/zaibi117/readme-maker/internal/core/ports/driven"
	"github.com/zaibi117/readme-maker/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.RepositoryHost = (*Client)(nil)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRawBaseURL serves file bodies of public repositories.
	DefaultRawBaseURL = "https://raw.githubusercontent.com/"

	// DefaultConcurrency bounds parallel downloads within one batch.
	DefaultConcurrency = 10

	// maxRawBytes caps a single downloaded file.
	maxRawBytes = 2 << 20

	userAgent = "readme-maker"
)

// fallbackBranches are tried in order when the default branch is unknown.
var fallbackBranches = []string{"main", "master"}

// Client wraps the go-github client and implements driven.RepositoryHost.
type Client struct {
	tokenProvider driven.TokenProvider
	rateLimiter   *RateLimiter
	apiBaseURL    string
	rawBaseURL    string
	concurrency   int
	timeout       time.Duration

	initOnce sync.Once
	initErr  error
	gh       *gh.Client
	http     *http.Client

	mu       sync.Mutex
	branches map[string]string
	public   map[string]bool
}

// Option configures a Client.
type Option func(*Client)

// WithAPIBaseURL points the client at a GitHub Enterprise or test server.
func WithAPIBaseURL(baseURL string) Option {
	return func(c *Client) { c.apiBaseURL = baseURL }
}

// WithRawBaseURL overrides the raw content host.
func WithRawBaseURL(baseURL string) Option {
	return func(c *Client) {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		c.rawBaseURL = baseURL
	}
}

// WithRateLimiter replaces the default API rate limiter.
func WithRateLimiter(r *RateLimiter) Option {
	return func(c *Client) { c.rateLimiter = r }
}

// WithConcurrency bounds parallel downloads within one FetchFileContents call.
func WithConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// NewClient creates a GitHub client. The go-github client is built lazily on
// first use so that the token is read only when needed.
func NewClient(tokenProvider driven.TokenProvider, opts ...Option) *Client {
	c := &Client{
		tokenProvider: tokenProvider,
		rateLimiter:   NewRateLimiter(),
		rawBaseURL:    DefaultRawBaseURL,
		concurrency:   DefaultConcurrency,
		timeout:       DefaultTimeout,
		branches:      make(map[string]string),
		public:        make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ensureClient initializes the go-github client once.
func (c *Client) ensureClient(ctx context.Context) error {
	c.initOnce.Do(func() {
		c.initErr = c.init(ctx)
	})
	return c.initErr
}

func (c *Client) init(ctx context.Context) error {
	var token string
	if c.tokenProvider != nil {
		var err error
		if token, err = c.tokenProvider.GetToken(ctx); err != nil {
			return fmt.Errorf("get token: %w", err)
		}
	}

	httpClient := &http.Client{Timeout: c.timeout}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.WithoutCancel(ctx), ts)
		httpClient.Timeout = c.timeout
	}

	client := gh.NewClient(httpClient)
	client.UserAgent = userAgent
	if c.apiBaseURL != "" {
		var err error
		if client, err = client.WithEnterpriseURLs(c.apiBaseURL, c.apiBaseURL); err != nil {
			return fmt.Errorf("configure API URL: %w", err)
		}
	}

	c.gh = client
	// Raw downloads never carry the token.
	c.http = &http.Client{Timeout: c.timeout}
	return nil
}

// authenticated reports whether API calls carry a token.
func (c *Client) authenticated() bool {
	return c.tokenProvider != nil && c.tokenProvider.IsAuthenticated()
}

// FetchRepoInfo fetches repository metadata and remembers its default
// branch and visibility.
func (c *Client) FetchRepoInfo(ctx context.Context, owner, repo string) (*domain.RepoInfo, error) {
	if err := c.ensureClient(ctx); err != nil {
		return nil, err
	}
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	repository, resp, err := c.gh.Repositories.Get(ctx, owner, repo)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, c.wrapError(err, "get repo")
	}

	info := &domain.RepoInfo{
		Owner:         repository.GetOwner().GetLogin(),
		Name:          repository.GetName(),
		Description:   repository.GetDescription(),
		Language:      repository.GetLanguage(),
		DefaultBranch: repository.GetDefaultBranch(),
		Private:       repository.GetPrivate(),
	}
	if info.Owner == "" {
		info.Owner = owner
	}
	if info.Name == "" {
		info.Name = repo
	}
	if info.DefaultBranch != "" {
		c.setBranch(owner, repo, info.DefaultBranch)
	}
	c.setPublic(owner, repo, !info.Private)
	return info, nil
}

// FetchTree lists the full recursive tree of the default branch, trying
// "main" then "master" when the default branch is unknown.
func (c *Client) FetchTree(ctx context.Context, owner, repo string) ([]domain.FileEntry, error) {
	if err := c.ensureClient(ctx); err != nil {
		return nil, err
	}

	var lastErr error
	for _, branch := range c.candidateBranches(owner, repo) {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		tree, resp, err := c.gh.Git.GetTree(ctx, owner, repo, branch, true)
		c.updateRateLimitFromResponse(resp)
		if err != nil {
			lastErr = c.wrapError(err, "get tree")
			if IsNotFound(lastErr) {
				logger.Debug("tree %s/%s@%s not found", owner, repo, branch)
				continue
			}
			return nil, lastErr
		}

		if tree.GetTruncated() {
			logger.Warn("tree of %s/%s is truncated, some files are not listed", owner, repo)
		}
		c.setBranch(owner, repo, branch)

		entries := make([]domain.FileEntry, 0, len(tree.Entries))
		for _, e := range tree.Entries {
			entries = append(entries, domain.FileEntry{
				Path: e.GetPath(),
				Size: int64(e.GetSize()),
				Type: e.GetType(),
			})
		}
		return entries, nil
	}

	if lastErr != nil && !IsNotFound(lastErr) {
		return nil, lastErr
	}
	return nil, fmt.Errorf("%s/%s: %w", owner, repo, ErrBranchNotFound)
}

// FetchFileContents downloads paths concurrently. Files that cannot be
// downloaded are logged and left out; only cancellation is an error.
func (c *Client) FetchFileContents(ctx context.Context, owner, repo string, paths []string) (map[string]string, error) {
	if err := c.ensureClient(ctx); err != nil {
		return nil, err
	}

	branch := c.branch(owner, repo)
	contents := make(map[string]string, len(paths))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for _, p := range paths {
		g.Go(func() error {
			content, err := c.fetchFile(gctx, owner, repo, p, branch)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				logger.Debug("download %s: %v", p, err)
				return nil
			}
			mu.Lock()
			contents[p] = content
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return contents, err
	}
	return contents, ctx.Err()
}

// fetchFile downloads one file. Public repositories and anonymous clients
// use the raw host first so API quota is only spent on private or unknown
// repositories; the other path is the fallback.
func (c *Client) fetchFile(ctx context.Context, owner, repo, path, branch string) (string, error) {
	if !c.authenticated() {
		return c.fetchRaw(ctx, owner, repo, path, branch)
	}

	if c.isPublic(owner, repo) {
		content, err := c.fetchRaw(ctx, owner, repo, path, branch)
		if err == nil || ctx.Err() != nil {
			return content, err
		}
		logger.Debug("raw download of %s failed, trying contents API: %v", path, err)
		return c.getContents(ctx, owner, repo, path, branch)
	}

	content, err := c.getContents(ctx, owner, repo, path, branch)
	if err == nil {
		return content, nil
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	logger.Debug("contents API for %s failed, trying raw: %v", path, err)
	return c.fetchRaw(ctx, owner, repo, path, branch)
}

// fetchRaw downloads from the raw host on branch and, when branch is
// "main", on "master".
func (c *Client) fetchRaw(ctx context.Context, owner, repo, path, branch string) (string, error) {
	content, err := c.getRaw(ctx, owner, repo, path, branch)
	if err != nil && branch == "main" && ctx.Err() == nil {
		return c.getRaw(ctx, owner, repo, path, "master")
	}
	return content, err
}

// getContents fetches a file through the contents API.
func (c *Client) getContents(ctx context.Context, owner, repo, path, ref string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	opts := &gh.RepositoryContentGetOptions{Ref: ref}
	content, _, resp, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, opts)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return "", c.wrapError(err, "get contents")
	}
	if content == nil {
		return "", fmt.Errorf("%s is a directory: %w", path, domain.ErrUnsupportedType)
	}

	decoded, err := content.GetContent()
	if err != nil {
		return "", fmt.Errorf("decode content: %w", err)
	}
	return decoded, nil
}

// getRaw downloads a file body from the raw content host.
func (c *Client) getRaw(ctx context.Context, owner, repo, path, branch string) (string, error) {
	rawPath := (&url.URL{Path: owner + "/" + repo + "/" + branch + "/" + path}).EscapedPath()
	target := c.rawBaseURL + rawPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("raw download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Message: resp.Status, URL: target}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRawBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(body), nil
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

func (c *Client) candidateBranches(owner, repo string) []string {
	c.mu.Lock()
	known, ok := c.branches[domain.RepoKey(owner, repo)]
	c.mu.Unlock()

	if !ok {
		return fallbackBranches
	}
	branches := []string{known}
	for _, b := range fallbackBranches {
		if b != known {
			branches = append(branches, b)
		}
	}
	return branches
}

func (c *Client) branch(owner, repo string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if b, ok := c.branches[domain.RepoKey(owner, repo)]; ok {
		return b
	}
	return fallbackBranches[0]
}

func (c *Client) setBranch(owner, repo, branch string) {
	c.mu.Lock()
	c.branches[domain.RepoKey(owner, repo)] = branch
	c.mu.Unlock()
}

func (c *Client) setPublic(owner, repo string, public bool) {
	c.mu.Lock()
	c.public[domain.RepoKey(owner, repo)] = public
	c.mu.Unlock()
}

// isPublic reports whether FetchRepoInfo saw the repository as public.
// Unknown visibility counts as private.
func (c *Client) isPublic(owner, repo string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.public[domain.RepoKey(owner, repo)]
}

// updateRateLimitFromResponse updates the rate limiter from GitHub response headers.
func (c *Client) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.rateLimiter.UpdateFromResponse(resp.Response)
}

// wrapError converts go-github errors to our error types.
func (c *Client) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   rateLimitErr.Rate.Reset.Time,
			Remaining: rateLimitErr.Rate.Remaining,
			Limit:     rateLimitErr.Rate.Limit,
		}
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &RateLimitError{
			ResetAt:   time.Now().Add(abuseErr.GetRetryAfter()),
			Remaining: 0,
			Limit:     c.rateLimiter.Limit(),
		}
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		apiErr := &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
		}
		if ghErr.Response.Request != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return apiErr
	}

	return fmt.Errorf("%s: %w", operation, err)
}
