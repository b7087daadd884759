package service_test

import (
	"context"
	"strings"
	"testing"

	"autoquote/internal/model"
	"autoquote/internal/repository"
	"autoquote/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memQuoteRepo struct {
	quotes []model.Quote
}

func (r *memQuoteRepo) Create(_ context.Context, q *model.Quote) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	r.quotes = append(r.quotes, *q)
	return nil
}

func (r *memQuoteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Quote, error) {
	for i := range r.quotes {
		if r.quotes[i].ID == id {
			return &r.quotes[i], nil
		}
	}
	return nil, assert.AnError
}

func (r *memQuoteRepo) List(_ context.Context, filter repository.QuoteListFilter) ([]model.Quote, int64, error) {
	var out []model.Quote
	for _, q := range r.quotes {
		if filter.UserID != nil && (q.UserID == nil || *q.UserID != *filter.UserID) {
			continue
		}
		if filter.Status != "" && q.Status != filter.Status {
			continue
		}
		out = append(out, q)
	}
	return out, int64(len(out)), nil
}

func (r *memQuoteRepo) CountByPrefix(_ context.Context, prefix string) (int64, error) {
	var count int64
	for _, q := range r.quotes {
		if strings.HasPrefix(q.QuoteNo, prefix) {
			count++
		}
	}
	return count, nil
}

type passthroughTx struct{}

func (passthroughTx) RunInTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func newQuoteFixture(t *testing.T) (service.QuoteService, service.ConfiguratorService, *memQuoteRepo, uuid.UUID) {
	t.Helper()

	versionID := uuid.New()
	catalog := &stubCatalog{
		vehicles: map[uuid.UUID]*model.Vehicle{
			versionID: {VersionID: versionID, PublicPrice: decimal.NewFromInt(90000)},
		},
	}
	sessions := service.NewConfiguratorService(catalog)
	repo := &memQuoteRepo{}
	quotes := service.NewQuoteService(repo, sessions, passthroughTx{}, nil)
	return quotes, sessions, repo, versionID
}

func TestQuoteServiceIssueFreezesSession(t *testing.T) {
	t.Parallel()

	quotes, sessions, _, versionID := newQuoteFixture(t)
	ctx := context.Background()

	state, err := sessions.StartSession(ctx)
	require.NoError(t, err)
	_, err = sessions.SelectVersion(ctx, state.SessionID, versionID.String())
	require.NoError(t, err)
	_, err = sessions.SetDiscount(ctx, state.SessionID, service.DiscountRequest{Percent: "10"})
	require.NoError(t, err)

	userID := uuid.NewString()
	quote, err := quotes.Issue(ctx, service.IssueQuoteRequest{SessionID: state.SessionID}, userID)
	require.NoError(t, err)

	assert.Equal(t, model.QuoteStatusIssued, quote.Status)
	assert.Equal(t, versionID.String(), quote.VersionID)
	assert.Equal(t, "PUBLIC", quote.PriceTier)
	assert.Equal(t, userID, quote.UserID)
	assert.True(t, quote.BasePrice.Equal(decimal.NewFromInt(90000)))
	assert.True(t, quote.DiscountAmount.Equal(decimal.NewFromInt(9000)))
	assert.True(t, quote.FinalPrice.Equal(decimal.NewFromInt(81000)))
}

func TestQuoteServiceNumbersAreSequentialPerDay(t *testing.T) {
	t.Parallel()

	quotes, sessions, _, versionID := newQuoteFixture(t)
	ctx := context.Background()

	var numbers []string
	for i := 0; i < 3; i++ {
		state, err := sessions.StartSession(ctx)
		require.NoError(t, err)
		_, err = sessions.SelectVersion(ctx, state.SessionID, versionID.String())
		require.NoError(t, err)

		quote, err := quotes.Issue(ctx, service.IssueQuoteRequest{SessionID: state.SessionID}, "")
		require.NoError(t, err)
		numbers = append(numbers, quote.QuoteNo)
	}

	require.Len(t, numbers, 3)
	prefix := numbers[0][:len(numbers[0])-5]
	assert.True(t, strings.HasPrefix(prefix, "QT-"))
	assert.Equal(t, prefix+"00001", numbers[0])
	assert.Equal(t, prefix+"00002", numbers[1])
	assert.Equal(t, prefix+"00003", numbers[2])
}

func TestQuoteServiceIssueRequiresVersion(t *testing.T) {
	t.Parallel()

	quotes, sessions, _, _ := newQuoteFixture(t)
	ctx := context.Background()

	state, err := sessions.StartSession(ctx)
	require.NoError(t, err)

	_, err = quotes.Issue(ctx, service.IssueQuoteRequest{SessionID: state.SessionID}, "")
	assert.ErrorIs(t, err, service.ErrNoVersionSelected)
}

func TestQuoteServiceIssueUnknownSession(t *testing.T) {
	t.Parallel()

	quotes, _, _, _ := newQuoteFixture(t)

	_, err := quotes.Issue(context.Background(), service.IssueQuoteRequest{SessionID: uuid.NewString()}, "")
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
}

func TestQuoteServiceListFiltersByUser(t *testing.T) {
	t.Parallel()

	quotes, sessions, _, versionID := newQuoteFixture(t)
	ctx := context.Background()

	alice := uuid.NewString()
	bob := uuid.NewString()
	for _, owner := range []string{alice, alice, bob} {
		state, err := sessions.StartSession(ctx)
		require.NoError(t, err)
		_, err = sessions.SelectVersion(ctx, state.SessionID, versionID.String())
		require.NoError(t, err)
		_, err = quotes.Issue(ctx, service.IssueQuoteRequest{SessionID: state.SessionID}, owner)
		require.NoError(t, err)
	}

	mine, total, err := quotes.List(ctx, alice, "", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, mine, 2)
	for _, q := range mine {
		assert.Equal(t, alice, q.UserID)
	}
}
