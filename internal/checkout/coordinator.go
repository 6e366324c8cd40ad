// Package checkout owns the sale submission protocol: it serializes access to
// one cashier's cart, drives the Idle/Submitting/Settled/Failed state machine
// and reconciles local state with the backend-confirmed result.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/uru-nouairi/Marco-Aesthetics-PNG/internal/backend"
	"github.com/uru-nouairi/Marco-Aesthetics-PNG/internal/cart"
	"github.com/uru-nouairi/Marco-Aesthetics-PNG/internal/models"
	"github.com/uru-nouairi/Marco-Aesthetics-PNG/internal/repositories"
	"github.com/uru-nouairi/Marco-Aesthetics-PNG/pkg/rabbitmq"
)

var (
	// ErrEmptyCart rejects a submission before any network call is made.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrSubmissionInFlight rejects a second submission, or a cart mutation,
	// while one sale request is in flight. Attempts are rejected, not queued.
	ErrSubmissionInFlight = errors.New("a sale submission is already in flight")
)

// GenericFailureMessage is shown when a submission fails for a reason the
// backend did not explain (network or protocol trouble).
const GenericFailureMessage = "Sale could not be submitted. Please try again."

// SalesClient submits sales and addresses receipts.
type SalesClient interface {
	SubmitSale(ctx context.Context, req models.SaleRequest) (*models.SaleResult, error)
	ReceiptURL(id models.SaleID) string
}

// CatalogLister re-fetches the catalog after a settled sale so the displayed
// stock reflects the decrement.
type CatalogLister interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

// Publisher emits sale-settled events for the back office.
type Publisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// Result is returned to the view layer after a settled sale. Products is the
// refreshed catalog; when the refresh fails the sale is still settled and
// CatalogStale is set instead.
type Result struct {
	SaleID       models.SaleID    `json:"sale_id"`
	ReceiptURL   string           `json:"receipt_url"`
	Products     []models.Product `json:"products,omitempty"`
	CatalogStale bool             `json:"catalog_stale,omitempty"`
}

// Coordinator runs one cashier session's checkout protocol. All cart access
// goes through it; the mutex makes the Submitting state an exclusion gate
// rather than relying on the UI alone to disable input.
type Coordinator struct {
	mu      sync.Mutex
	status  Status
	cart    *cart.Cart
	sales   SalesClient
	catalog CatalogLister
	journal repositories.JournalRepository // optional
	mq      Publisher                      // optional
	cashier string

	lastSaleID models.SaleID
	lastError  string
}

// NewCoordinator creates a coordinator for one cashier session. journal and
// mq may be nil; their side effects are then skipped.
func NewCoordinator(c *cart.Cart, sales SalesClient, catalog CatalogLister, journal repositories.JournalRepository, mq Publisher, cashier string) *Coordinator {
	return &Coordinator{
		status:  StatusIdle,
		cart:    c,
		sales:   sales,
		catalog: catalog,
		journal: journal,
		mq:      mq,
		cashier: cashier,
	}
}

// Status returns the current submission state.
func (co *Coordinator) Status() Status {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.status
}

// AddProduct puts one unit of the product into the cart, snapshotting its
// displayed name and price. Rejected while a submission is in flight; from a
// terminal state it re-arms the session to Idle first.
func (co *Coordinator) AddProduct(p models.Product) error {
	co.mu.Lock()
	defer co.mu.Unlock()

	if co.status == StatusSubmitting {
		return ErrSubmissionInFlight
	}
	if co.status.IsTerminal() {
		co.status = StatusIdle
	}
	co.cart.Add(p)
	return nil
}

// ClearCart empties the cart on explicit cancel and drops any shown receipt
// reference. Rejected while a submission is in flight.
func (co *Coordinator) ClearCart() error {
	co.mu.Lock()
	defer co.mu.Unlock()

	if co.status == StatusSubmitting {
		return ErrSubmissionInFlight
	}
	co.cart.Clear()
	co.status = StatusIdle
	co.lastSaleID = ""
	co.lastError = ""
	return nil
}

// Lines returns the current cart lines for rendering.
func (co *Coordinator) Lines() []models.CartLine {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.cart.Lines()
}

// Total returns the exact cart total.
func (co *Coordinator) Total() float64 {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.cart.Total()
}

// FormatTotal returns the cart total rendered to two decimal places.
func (co *Coordinator) FormatTotal() string {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.cart.FormatTotal()
}

// IsEmpty reports whether the cart has no lines.
func (co *Coordinator) IsEmpty() bool {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.cart.IsEmpty()
}

// ReceiptURL returns the receipt address of the last settled sale, or "" when
// none is on display.
func (co *Coordinator) ReceiptURL() string {
	co.mu.Lock()
	defer co.mu.Unlock()
	if co.lastSaleID == "" {
		return ""
	}
	return co.sales.ReceiptURL(co.lastSaleID)
}

// LastError returns the user-facing message of the last failed submission.
func (co *Coordinator) LastError() string {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.lastError
}

// Submit sends the cart to the backend as one atomic sale.
//
// An empty cart is rejected locally with ErrEmptyCart and no network call.
// A submission while another is in flight is rejected with
// ErrSubmissionInFlight and no second network call. Otherwise exactly one
// request is issued from a snapshot of the cart.
//
// On confirmation the receipt identity is captured before the cart is
// cleared, then the catalog is re-fetched; a refresh failure never undoes the
// confirmation. On refusal or error the cart is left intact, the backend's
// message (or a generic one) is recorded and any previously shown receipt
// reference is dropped. There is no automatic retry.
func (co *Coordinator) Submit(ctx context.Context) (*Result, error) {
	co.mu.Lock()
	if co.status == StatusSubmitting {
		co.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	if co.cart.IsEmpty() {
		co.status = StatusIdle
		co.mu.Unlock()
		return nil, ErrEmptyCart
	}
	req := co.cart.SaleRequest()
	total := co.cart.Total()
	co.status = StatusSubmitting
	co.lastError = ""
	co.mu.Unlock()

	saleResult, err := co.sales.SubmitSale(ctx, req)
	if err != nil {
		co.mu.Lock()
		co.status = StatusFailed
		co.lastSaleID = ""
		var bizErr *backend.BusinessError
		if errors.As(err, &bizErr) {
			co.lastError = bizErr.Message
		} else {
			co.lastError = GenericFailureMessage
		}
		co.mu.Unlock()
		return nil, err
	}

	// Capture the receipt identity before touching the cart: the UI must not
	// lose the sale_id it needs to link the receipt.
	co.mu.Lock()
	co.status = StatusSettled
	co.lastSaleID = saleResult.SaleID
	result := &Result{
		SaleID:     saleResult.SaleID,
		ReceiptURL: co.sales.ReceiptURL(saleResult.SaleID),
	}
	co.cart.Clear()
	co.mu.Unlock()

	co.recordSettled(saleResult.SaleID, total, len(req.Cart))

	products, err := co.catalog.ListProducts(ctx)
	if err != nil {
		// The sale's success is independent of the refresh's success.
		log.Printf("Warning: catalog refresh after sale %s failed: %v", saleResult.SaleID, err)
		result.CatalogStale = true
		return result, nil
	}
	result.Products = products
	return result, nil
}

// recordSettled appends the journal entry and publishes the sale.settled
// event. Both are best-effort: a settled sale is never failed retroactively
// because a local side effect misfired.
func (co *Coordinator) recordSettled(saleID models.SaleID, total float64, lineCount int) {
	if co.journal != nil {
		entry := &models.JournalEntry{
			SaleID:    saleID.String(),
			Cashier:   co.cashier,
			Total:     total,
			LineCount: lineCount,
		}
		if err := co.journal.Append(entry); err != nil {
			log.Printf("Warning: failed to journal sale %s: %v", saleID, err)
		}
	}

	if co.mq != nil {
		event := map[string]interface{}{
			"saleID":  saleID.String(),
			"cashier": co.cashier,
			"total":   total,
			"lines":   lineCount,
			"settled": time.Now().Format(time.RFC3339),
		}
		body, err := json.Marshal(event)
		if err != nil {
			log.Printf("Failed to marshal sale event to JSON: %v", err)
			return
		}
		if err := co.mq.Publish("", rabbitmq.SaleSettledQueue, body); err != nil {
			log.Printf("Warning: failed to publish sale settled event for sale %s: %v", saleID, err)
		} else {
			log.Printf("Successfully published sale settled event for sale %s", saleID)
		}
	}
}
