package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"autoquote/internal/configurator"
	"autoquote/internal/model"
	"autoquote/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNoVersionSelected = errors.New("cannot issue a quote without a selected version")

// --- DTOs ---

type IssueQuoteRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

type QuoteResponse struct {
	ID             string          `json:"id"`
	QuoteNo        string          `json:"quote_no"`
	UserID         string          `json:"user_id,omitempty"`
	VersionID      string          `json:"version_id"`
	VersionName    string          `json:"version_name,omitempty"`
	ColorID        string          `json:"color_id,omitempty"`
	PriceTier      string          `json:"price_tier"`
	BasePrice      decimal.Decimal `json:"base_price"`
	ColorPrice     decimal.Decimal `json:"color_price"`
	OptionalsTotal decimal.Decimal `json:"optionals_total"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	MarkupAmount   decimal.Decimal `json:"markup_amount"`
	Quantity       int             `json:"quantity"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	FinalPrice     decimal.Decimal `json:"final_price"`
	Status         string          `json:"status"`
	Items          []QuoteItemResponse `json:"items"`
	CreatedAt      string          `json:"created_at"`
}

type QuoteItemResponse struct {
	OptionalID string          `json:"optional_id"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// --- Interface ---

type QuoteService interface {
	// Issue freezes the session's configuration into a numbered quote.
	Issue(ctx context.Context, req IssueQuoteRequest, userID string) (*QuoteResponse, error)
	Get(ctx context.Context, id string) (*QuoteResponse, error)
	List(ctx context.Context, userID, status string, page, limit int) ([]QuoteResponse, int64, error)
}

type quoteService struct {
	repo      repository.QuoteRepository
	sessions  ConfiguratorService
	txManager repository.TransactionManager
	auditRepo repository.AuditRepository
	now       func() time.Time
}

func NewQuoteService(repo repository.QuoteRepository, sessions ConfiguratorService, txManager repository.TransactionManager, auditRepo repository.AuditRepository) QuoteService {
	return &quoteService{
		repo:      repo,
		sessions:  sessions,
		txManager: txManager,
		auditRepo: auditRepo,
		now:       time.Now,
	}
}

func (s *quoteService) Issue(ctx context.Context, req IssueQuoteRequest, userID string) (*QuoteResponse, error) {
	session, ok := s.sessions.Session(req.SessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	snap := session.Snapshot()
	if snap.VersionID == uuid.Nil {
		return nil, ErrNoVersionSelected
	}
	totals := session.ComputeTotal()

	quote := buildQuote(snap, totals)
	if userID != "" {
		if parsed, err := uuid.Parse(userID); err == nil {
			quote.UserID = &parsed
		}
	}

	// Numbering and insert share a transaction so concurrent issues on the
	// same day cannot collide on the sequence.
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		prefix := fmt.Sprintf("QT-%s-", s.now().Format("20060102"))
		seq, err := s.repo.CountByPrefix(txCtx, prefix)
		if err != nil {
			return fmt.Errorf("failed to derive quote number: %w", err)
		}
		quote.QuoteNo = fmt.Sprintf("%s%05d", prefix, seq+1)
		if err := s.repo.Create(txCtx, &quote); err != nil {
			return fmt.Errorf("failed to save quote: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	writeAuditEntry(ctx, s.auditRepo, userID, model.ActionCreateQuote,
		quote.ID.String(), quote.QuoteNo, map[string]string{"session_id": req.SessionID})

	resp := toQuoteResponse(quote)
	return &resp, nil
}

func (s *quoteService) Get(ctx context.Context, id string) (*QuoteResponse, error) {
	quoteID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid quote id: %w", err)
	}

	quote, err := s.repo.FindByID(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("quote not found: %w", err)
	}

	resp := toQuoteResponse(*quote)
	return &resp, nil
}

func (s *quoteService) List(ctx context.Context, userID, status string, page, limit int) ([]QuoteResponse, int64, error) {
	filter := repository.QuoteListFilter{Status: status, Page: page, Limit: limit}
	if userID != "" {
		parsed, err := uuid.Parse(userID)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid user id: %w", err)
		}
		filter.UserID = &parsed
	}

	quotes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch quotes: %w", err)
	}

	res := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		res = append(res, toQuoteResponse(q))
	}
	return res, total, nil
}

func buildQuote(snap configurator.Snapshot, totals configurator.Totals) model.Quote {
	tier := string(configurator.TierPublic)
	base := snap.Prices.Public
	if snap.ActiveTier != nil {
		tier = string(*snap.ActiveTier)
		base = snap.Prices.ForTier(*snap.ActiveTier)
	}

	quote := model.Quote{
		VersionID:      snap.VersionID,
		PriceTier:      tier,
		BasePrice:      base,
		ColorPrice:     snap.ColorPrice,
		OptionalsTotal: snap.OptionalsSum,
		DiscountAmount: snap.DiscountAmount,
		MarkupAmount:   snap.MarkupAmount,
		Quantity:       snap.Quantity,
		Subtotal:       totals.Subtotal,
		FinalPrice:     totals.Final,
		Status:         model.QuoteStatusIssued,
	}
	if snap.ColorID != uuid.Nil {
		colorID := snap.ColorID
		quote.ColorID = &colorID
	}
	for oid, price := range snap.Optionals {
		quote.Items = append(quote.Items, model.QuoteOptional{
			OptionalID: oid,
			UnitPrice:  price,
		})
	}
	return quote
}

func toQuoteResponse(q model.Quote) QuoteResponse {
	resp := QuoteResponse{
		ID:             q.ID.String(),
		QuoteNo:        q.QuoteNo,
		VersionID:      q.VersionID.String(),
		PriceTier:      q.PriceTier,
		BasePrice:      q.BasePrice,
		ColorPrice:     q.ColorPrice,
		OptionalsTotal: q.OptionalsTotal,
		DiscountAmount: q.DiscountAmount,
		MarkupAmount:   q.MarkupAmount,
		Quantity:       q.Quantity,
		Subtotal:       q.Subtotal,
		FinalPrice:     q.FinalPrice,
		Status:         q.Status,
		CreatedAt:      q.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if q.UserID != nil {
		resp.UserID = q.UserID.String()
	}
	if q.ColorID != nil {
		resp.ColorID = q.ColorID.String()
	}
	if q.Version != nil {
		resp.VersionName = q.Version.Name
	}
	resp.Items = make([]QuoteItemResponse, 0, len(q.Items))
	for _, item := range q.Items {
		resp.Items = append(resp.Items, QuoteItemResponse{
			OptionalID: item.OptionalID.String(),
			UnitPrice:  item.UnitPrice,
		})
	}
	return resp
}
