package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/instituteapps/coa_backend/internal/apperrors"
	"github.com/instituteapps/coa_backend/internal/core/domain"
	portsrepo "github.com/instituteapps/coa_backend/internal/core/ports/repositories"
	"github.com/instituteapps/coa_backend/internal/middleware"
	"github.com/instituteapps/coa_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// DynamicSource configures one entity collection merged into the hybrid view:
// records of the source kind appear as virtual leaf accounts under the account
// carrying the anchor code.
type DynamicSource struct {
	Kind       domain.SourceKind
	AnchorCode string
}

// LedgerService produces the hybrid ledger view: persisted accounts merged
// with virtual accounts synthesized from the dynamic entity sources, each
// balanced by reducing its vouchers against its obligation.
//
// Every read is a fresh full reduction over current backing-store state; there
// is no cache or subscription contract. Callers wanting live updates re-invoke
// the whole view.
type LedgerService struct {
	accountRepo  portsrepo.AccountReader
	voucherRepo  portsrepo.VoucherReader
	entityRepo   portsrepo.EntityReader
	sources      []DynamicSource
	queryTimeout time.Duration
	workers      int
}

// NewLedgerService creates a new LedgerService. workers bounds the concurrent
// per-entity voucher queries during balance fan-out; queryTimeout applies to
// each individual backing-store query.
func NewLedgerService(
	accountRepo portsrepo.AccountReader,
	voucherRepo portsrepo.VoucherReader,
	entityRepo portsrepo.EntityReader,
	sources []DynamicSource,
	queryTimeout time.Duration,
	workers int,
) *LedgerService {
	if workers < 1 {
		workers = 1
	}
	if queryTimeout <= 0 {
		queryTimeout = 5 * time.Second
	}
	return &LedgerService{
		accountRepo:  accountRepo,
		voucherRepo:  voucherRepo,
		entityRepo:   entityRepo,
		sources:      sources,
		queryTimeout: queryTimeout,
		workers:      workers,
	}
}

// GetHybridAccounts returns the persisted chart merged with the virtual
// accounts of every configured source, balances computed. A source that fails
// to load degrades to a warning and is left out; only the base account load
// can fail the operation, since without it there is nothing to merge under.
func (s *LedgerService) GetHybridAccounts(ctx context.Context) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		logger.Error("Failed to load persisted accounts for hybrid view", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	anchorsByCode := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		anchorsByCode[acc.Code] = acc
	}

	combined := accounts
	for _, src := range s.sources {
		anchor, ok := anchorsByCode[src.AnchorCode]
		if !ok {
			logger.Warn("Anchor account missing, skipping dynamic source",
				slog.String("source", string(src.Kind)),
				slog.String("anchor_code", src.AnchorCode))
			continue
		}

		virtuals, err := s.loadSource(ctx, src, anchor, combined)
		if err != nil {
			logger.Warn("Dynamic source failed to load, continuing with partial view",
				slog.String("source", string(src.Kind)),
				slog.String("error", err.Error()))
			continue
		}
		combined = append(combined, virtuals...)
	}

	return combined, nil
}

// GetHybridForest returns the hybrid view assembled into a tree, orphan
// accounts surfacing as roots.
func (s *LedgerService) GetHybridForest(ctx context.Context) ([]*AccountNode, error) {
	accounts, err := s.GetHybridAccounts(ctx)
	if err != nil {
		return nil, err
	}
	return BuildAccountForest(accounts), nil
}

// GetSourceBalances returns the balanced virtual accounts of a single source.
func (s *LedgerService) GetSourceBalances(ctx context.Context, kind domain.SourceKind) ([]domain.Account, error) {
	var src *DynamicSource
	for i := range s.sources {
		if s.sources[i].Kind == kind {
			src = &s.sources[i]
			break
		}
	}
	if src == nil {
		return nil, fmt.Errorf("%w: dynamic source %q not configured", apperrors.ErrNotFound, kind)
	}

	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	for _, acc := range accounts {
		if acc.Code == src.AnchorCode {
			return s.loadSource(ctx, *src, acc, accounts)
		}
	}
	return nil, fmt.Errorf("%w: anchor account with code %s", apperrors.ErrNotFound, src.AnchorCode)
}

// loadSource loads one source's entity records, synthesizes virtual accounts
// under the anchor, and computes their balances with bounded fan-out.
// existing supplies the codes already in use so derived codes stay unique.
func (s *LedgerService) loadSource(ctx context.Context, src DynamicSource, anchor domain.Account, existing []domain.Account) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	listCtx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()
	records, err := s.entityRepo.ListEntities(listCtx, src.Kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s entities: %w", src.Kind, err)
	}

	// Deterministic record order keeps collision suffixes, and therefore the
	// whole view, stable across reads.
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })

	taken := make(map[string]bool, len(existing))
	for _, acc := range existing {
		taken[acc.Code] = true
	}

	virtuals := make([]domain.Account, 0, len(records))
	obligations := make([]decimal.Decimal, 0, len(records))
	for _, rec := range records {
		code := uniqueVirtualCode(src.Kind, rec.ID, taken)
		acc, err := domain.ToVirtualAccount(src.Kind, rec, anchor, code)
		if err != nil {
			logger.Warn("Skipping malformed entity record",
				slog.String("source", string(src.Kind)),
				slog.String("error", err.Error()))
			continue
		}
		virtuals = append(virtuals, acc)
		obligations = append(obligations, rec.Obligation)
	}

	s.computeBalances(ctx, src.Kind, virtuals, obligations)
	return virtuals, nil
}

// computeBalances fills in the balance of each virtual account by querying its
// vouchers and reducing them against its obligation. Queries run concurrently,
// bounded by the worker limit; a failed or timed-out fetch degrades that one
// entity's balance to zero with a warning and never aborts the batch.
func (s *LedgerService) computeBalances(ctx context.Context, kind domain.SourceKind, virtuals []domain.Account, obligations []decimal.Decimal) {
	logger := middleware.GetLoggerFromCtx(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range virtuals {
		i := i
		g.Go(func() error {
			qctx, cancel := context.WithTimeout(gctx, s.queryTimeout)
			defer cancel()

			vouchers, err := s.voucherRepo.ListVouchersBySubject(qctx, virtuals[i].AccountID, virtuals[i].Name)
			if err != nil {
				logger.Warn("Voucher fetch failed, balance degraded to zero",
					slog.String("source", string(kind)),
					slog.String("subject_id", virtuals[i].AccountID),
					slog.String("error", err.Error()))
				virtuals[i].Balance = decimal.Zero
				return nil
			}

			inflow, outflow := accounting.VoucherTotals(vouchers)
			virtuals[i].DebitTotal = outflow
			virtuals[i].CreditTotal = inflow
			virtuals[i].Balance = accounting.ComputeBalance(virtuals[i].Kind, obligations[i], vouchers)
			return nil
		})
	}
	// Workers only write their own slot and never return errors.
	_ = g.Wait()
}
