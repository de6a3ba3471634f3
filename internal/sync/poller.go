// Package sync polls the upstream notification API for every signed-in
// account and hands raw record lists to the session. The fetch itself
// happens behind the Fetcher boundary; this package owns scheduling,
// cache persistence, and result delivery only.
package sync

import (
	"context"
	"errors"
	"fmt"
	gosync "sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AmarBego/GitTop/internal/model"
	"github.com/AmarBego/GitTop/internal/store"
)

// AuthError indicates that authentication has failed or expired for an
// account. Fetcher implementations return it on a 401 response.
type AuthError struct {
	Account string
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error (%s): %s", e.Account, e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an
// AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// Fetcher is the upstream API boundary. HTTP transport, pagination, and
// credentials live behind it.
type Fetcher interface {
	// FetchNotifications retrieves the current notification list for an
	// account. When all is false only unread threads are returned.
	FetchNotifications(ctx context.Context, account string, all bool) ([]model.NotificationRecord, error)
}

// Result is delivered on the poller's result channel after every fetch
// attempt, successful or not.
type Result struct {
	Account string
	Records []model.NotificationRecord
	Err     error
}

// fetchTimeout is the maximum time allowed for a single fetch operation.
const fetchTimeout = 30 * time.Second

// accountEntry holds one polled account and its loop configuration.
type accountEntry struct {
	account  string
	interval time.Duration
}

// Poller orchestrates background polling of registered accounts.
type Poller struct {
	fetcher   Fetcher
	cache     store.Store
	log       *logrus.Logger
	accounts  []accountEntry
	resultCh  chan Result
	triggerCh chan string
	stopCh    chan struct{}
	showAll   bool
	mu        gosync.Mutex
	running   bool
}

// New creates a Poller over the given fetcher and cache store.
func New(fetcher Fetcher, cache store.Store, log *logrus.Logger) *Poller {
	return &Poller{
		fetcher:   fetcher,
		cache:     cache,
		log:       log,
		resultCh:  make(chan Result, 16),
		triggerCh: make(chan string, 16),
		stopCh:    make(chan struct{}),
	}
}

// RegisterAccount adds an account to the polling schedule.
func (p *Poller) RegisterAccount(account string, interval time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if interval <= 0 {
		interval = 120 * time.Second
	}
	p.accounts = append(p.accounts, accountEntry{account: account, interval: interval})
}

// SetShowAll switches subsequent fetches between unread-only and
// everything.
func (p *Poller) SetShowAll(all bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.showAll = all
}

// Start launches a polling goroutine per registered account. Calling
// Start twice is a no-op.
func (p *Poller) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	accounts := make([]accountEntry, len(p.accounts))
	copy(accounts, p.accounts)
	p.mu.Unlock()

	for _, entry := range accounts {
		go p.pollAccount(entry)
	}
}

// Stop halts all polling goroutines.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	close(p.stopCh)
	p.running = false
}

// Results returns the channel fetch results are delivered on.
func (p *Poller) Results() <-chan Result {
	return p.resultCh
}

// Refresh triggers an immediate poll of one account.
func (p *Poller) Refresh(account string) {
	select {
	case p.triggerCh <- account:
	default:
		// Channel full; a poll is already pending.
	}
}

// RefreshAll triggers an immediate poll of every registered account.
func (p *Poller) RefreshAll() {
	p.mu.Lock()
	accounts := make([]accountEntry, len(p.accounts))
	copy(accounts, p.accounts)
	p.mu.Unlock()

	for _, entry := range accounts {
		p.Refresh(entry.account)
	}
}

// pollAccount runs the polling loop for a single account.
func (p *Poller) pollAccount(entry accountEntry) {
	ticker := time.NewTicker(entry.interval)
	defer ticker.Stop()

	// Initial fetch immediately so the list populates on start.
	p.fetchOnce(entry.account)

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.fetchOnce(entry.account)
		case account := <-p.triggerCh:
			if account == entry.account {
				p.fetchOnce(entry.account)
			}
		}
	}
}

// fetchOnce performs a single fetch, persists the records to the cache,
// and sends a Result on the result channel.
func (p *Poller) fetchOnce(account string) {
	p.mu.Lock()
	all := p.showAll
	p.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	records, err := p.fetcher.FetchNotifications(ctx, account, all)
	if err != nil {
		if IsAuthError(err) {
			p.log.WithField("account", account).
				Warn("authentication expired; reconfigure the account")
		} else {
			p.log.WithError(err).WithField("account", account).
				Warn("notification fetch failed")
		}
		p.sendResult(Result{Account: account, Err: err})
		return
	}

	if err := p.cache.ReplaceRecords(ctx, account, records); err != nil {
		// The cache is an optimization; a failed write must not block
		// delivery of the fetched records.
		p.log.WithError(err).WithField("account", account).
			Warn("failed to update local notification cache")
	}

	p.sendResult(Result{Account: account, Records: records})
}

// sendResult sends a Result without blocking the poll loop.
func (p *Poller) sendResult(r Result) {
	select {
	case p.resultCh <- r:
	default:
		// Drop if the consumer is behind; the next poll supersedes.
	}
}
