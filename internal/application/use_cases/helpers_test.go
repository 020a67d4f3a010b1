package use_cases

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/openmarket/marketplace-service/internal/application/ports"
	"github.com/openmarket/marketplace-service/internal/infrastructure/images"
	"github.com/openmarket/marketplace-service/internal/infrastructure/persistence/memory"
	"github.com/openmarket/marketplace-service/internal/pkg/clock"
	"github.com/openmarket/marketplace-service/internal/pkg/logger"
)

type sentEmail struct {
	to      string
	subject string
	body    string
}

type recordingNotifier struct {
	mu            sync.Mutex
	purchases     []ports.PurchaseNotification
	emails        []sentEmail
	failPurchases bool
}

func (n *recordingNotifier) SendPurchaseNotification(ctx context.Context, p ports.PurchaseNotification) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.failPurchases {
		return errors.New("smtp connection refused")
	}
	n.purchases = append(n.purchases, p)
	return nil
}

func (n *recordingNotifier) SendEmail(ctx context.Context, to, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.emails = append(n.emails, sentEmail{to: to, subject: subject, body: body})
	return nil
}

func (n *recordingNotifier) purchaseCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.purchases)
}

type testEnv struct {
	facade   *Facade
	store    *memory.Store
	cache    *memory.Cache
	notifier *recordingNotifier
	clk      *clock.MockClock
}

func newTestEnv() *testEnv {
	store := memory.NewStore()
	cache := memory.NewCache()
	notifier := &recordingNotifier{}
	clk := clock.NewMockClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	log := logger.NewLoggerWithOutput(io.Discard)

	facade := NewFacade(store, store, store, store, cache, notifier, images.NewNullStore(), clk, log)

	return &testEnv{
		facade:   facade,
		store:    store,
		cache:    cache,
		notifier: notifier,
		clk:      clk,
	}
}

func (e *testEnv) mustRegister(ctx context.Context, username string) string {
	id, err := e.facade.Register(ctx, username, username+"@example.com", username+"-paypal", "hunter22")
	if err != nil {
		panic(err)
	}
	return id
}

func (e *testEnv) mustListItem(ctx context.Context, ownerID, title string) string {
	id, err := e.facade.AddItem(ctx, ownerID, title, 100, "short desc", "a bigger desc", nil)
	if err != nil {
		panic(err)
	}
	return id
}
