package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/ledger"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var postedAt = time.Date(2024, 4, 2, 15, 4, 5, 0, time.UTC)

func newTestPoster() (*LedgerPoster, *MockAccountCategoryRepository, *MockLedgerPostingRepository) {
	categories := new(MockAccountCategoryRepository)
	postings := new(MockLedgerPostingRepository)
	p := NewLedgerPoster(categories, postings, zap.NewNop())
	p.now = func() time.Time { return postedAt }
	return p, categories, postings
}

func TestLedgerPoster_PostToCompanyLedger(t *testing.T) {
	ctx := context.Background()
	dealerID := uuid.New()

	t.Run("maps categories to the company chart", func(t *testing.T) {
		cases := []struct {
			category string
			want     string
		}{
			{"Repair", ledger.AccountCategoryReconditioning},
			{"Parts", ledger.AccountCategoryReconditioning},
			{"Detail", ledger.AccountCategoryReconditioning},
			{"Transport", ledger.AccountCategoryReconditioning},
			{"Inspection", ledger.AccountCategoryReconditioning},
			{"Fuel", ledger.AccountCategoryFuel},
			{"Other", ledger.AccountCategoryOther},
		}
		for _, tc := range cases {
			t.Run(tc.category, func(t *testing.T) {
				p, categories, postings := newTestPoster()
				v := newCamry(t, dealerID)
				e := newManual(t, v, "Work", "100", tc.category, time.Now())
				cat := &ledger.AccountCategory{ID: uuid.New(), Name: tc.want}

				postings.On("FindBySourceExpense", mock.Anything, dealerID, e.ID).Return(nil, shared.ErrNotFound)
				categories.On("Resolve", mock.Anything, dealerID, tc.want).Return(cat, nil)
				postings.On("Create", mock.Anything, mock.AnythingOfType("*ledger.LedgerPosting")).Return(nil)

				posting, err := p.PostToCompanyLedger(ctx, v, e)
				require.NoError(t, err)
				assert.Equal(t, tc.want, posting.CategoryName)
				require.NotNil(t, posting.CategoryID)
				assert.Equal(t, cat.ID, *posting.CategoryID)
			})
		}
	})

	t.Run("writes the brake pad example", func(t *testing.T) {
		p, categories, postings := newTestPoster()
		v := newCamry(t, dealerID)
		incurred := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		e := newManual(t, v, "Brake pads", "300", "Repair", incurred)

		postings.On("FindBySourceExpense", mock.Anything, dealerID, e.ID).Return(nil, shared.ErrNotFound)
		categories.On("Resolve", mock.Anything, dealerID, "Reconditioning").
			Return(&ledger.AccountCategory{ID: uuid.New(), Name: "Reconditioning"}, nil)
		postings.On("Create", mock.Anything, mock.Anything).Return(nil)

		posting, err := p.PostToCompanyLedger(ctx, v, e)
		require.NoError(t, err)
		assert.Equal(t, "Brake pads (2019 Toyota Camry)", posting.Description)
		assert.Equal(t, "2019 Toyota Camry", posting.Vendor)
		assert.True(t, dec("300").Equal(posting.Amount))
		assert.Equal(t, ledger.LedgerPostingStatusBooked, posting.Status)
		assert.Equal(t, e.ID, posting.SourceExpenseID)
		assert.Equal(t, postedAt, posting.ExpenseDate, "dated at posting time, not when incurred")
	})

	t.Run("missing vehicle falls back to generic label", func(t *testing.T) {
		p, categories, postings := newTestPoster()
		v := newCamry(t, dealerID)
		e := newManual(t, v, "Oil", "45", "Fuel", time.Now())

		postings.On("FindBySourceExpense", mock.Anything, dealerID, e.ID).Return(nil, shared.ErrNotFound)
		categories.On("Resolve", mock.Anything, dealerID, "Fuel").Return(&ledger.AccountCategory{ID: uuid.New(), Name: "Fuel"}, nil)
		postings.On("Create", mock.Anything, mock.Anything).Return(nil)

		posting, err := p.PostToCompanyLedger(ctx, nil, e)
		require.NoError(t, err)
		assert.Equal(t, "Oil (Vehicle)", posting.Description)
		assert.Equal(t, "Vehicle", posting.Vendor)
	})

	t.Run("unregistered category posts uncategorized", func(t *testing.T) {
		p, categories, postings := newTestPoster()
		v := newCamry(t, dealerID)
		e := newManual(t, v, "Misc", "12", "Other", time.Now())

		postings.On("FindBySourceExpense", mock.Anything, dealerID, e.ID).Return(nil, shared.ErrNotFound)
		categories.On("Resolve", mock.Anything, dealerID, "Other").Return(nil, nil)
		postings.On("Create", mock.Anything, mock.Anything).Return(nil)

		posting, err := p.PostToCompanyLedger(ctx, v, e)
		require.NoError(t, err)
		assert.Nil(t, posting.CategoryID)
	})

	t.Run("existing posting is returned unchanged", func(t *testing.T) {
		p, categories, postings := newTestPoster()
		v := newCamry(t, dealerID)
		e := newManual(t, v, "Brake pads", "300", "Repair", time.Now())
		existing := &ledger.LedgerPosting{BaseEntity: shared.NewBaseEntity(), SourceExpenseID: e.ID}

		postings.On("FindBySourceExpense", mock.Anything, dealerID, e.ID).Return(existing, nil)

		posting, err := p.PostToCompanyLedger(ctx, v, e)
		require.NoError(t, err)
		assert.Same(t, existing, posting)
		categories.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
		postings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("concurrent insert resolves to the stored posting", func(t *testing.T) {
		p, categories, postings := newTestPoster()
		v := newCamry(t, dealerID)
		e := newManual(t, v, "Brake pads", "300", "Repair", time.Now())
		winner := &ledger.LedgerPosting{BaseEntity: shared.NewBaseEntity(), SourceExpenseID: e.ID}

		postings.On("FindBySourceExpense", mock.Anything, dealerID, e.ID).Return(nil, shared.ErrNotFound).Once()
		categories.On("Resolve", mock.Anything, dealerID, "Reconditioning").Return(nil, nil)
		postings.On("Create", mock.Anything, mock.Anything).Return(shared.ErrAlreadyExists)
		postings.On("FindBySourceExpense", mock.Anything, dealerID, e.ID).Return(winner, nil).Once()

		posting, err := p.PostToCompanyLedger(ctx, v, e)
		require.NoError(t, err)
		assert.Same(t, winner, posting)
	})

	t.Run("store failure is a mirror posting failure", func(t *testing.T) {
		p, categories, postings := newTestPoster()
		v := newCamry(t, dealerID)
		e := newManual(t, v, "Brake pads", "300", "Repair", time.Now())

		postings.On("FindBySourceExpense", mock.Anything, dealerID, e.ID).Return(nil, shared.ErrNotFound)
		categories.On("Resolve", mock.Anything, dealerID, "Reconditioning").Return(nil, nil)
		postings.On("Create", mock.Anything, mock.Anything).Return(errors.New("relation \"expenses\" does not exist"))

		_, err := p.PostToCompanyLedger(ctx, v, e)
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodeMirrorPostingFailure))
	})

	t.Run("category lookup failure is a mirror posting failure", func(t *testing.T) {
		p, categories, postings := newTestPoster()
		v := newCamry(t, dealerID)
		e := newManual(t, v, "Gas", "30", "Fuel", time.Now())

		postings.On("FindBySourceExpense", mock.Anything, dealerID, e.ID).Return(nil, shared.ErrNotFound)
		categories.On("Resolve", mock.Anything, dealerID, "Fuel").Return(nil, errors.New("timeout"))

		_, err := p.PostToCompanyLedger(ctx, v, e)
		assert.True(t, shared.IsCode(err, shared.CodeMirrorPostingFailure))
		postings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
