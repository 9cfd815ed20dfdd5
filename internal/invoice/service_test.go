package invoice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/landed/internal/invoice"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
}

func TestService_Add(t *testing.T) {
	type args struct {
		draft invoice.Draft
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *invoice.MockRepository)
		check     func(t *testing.T, got *invoice.Invoice)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{
				draft: invoice.Draft{
					InvoiceNumber: " INV-001 ",
					Supplier:      "Acme Ltd",
					Currency:      "eur",
					ExchangeRate:  1.08,
					Date:          time.Date(2026, 2, 1, 10, 30, 0, 0, time.UTC),
					Items: []invoice.LineItem{
						{Description: "Widget", Quantity: 10, UnitPrice: 5, HSCode: "1234"},
					},
				},
			},
			setupMock: func(m *invoice.MockRepository) {
				m.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, got *invoice.Invoice) {
				assert.NotEqual(t, uuid.Nil, got.ID)
				assert.Equal(t, "INV-001", got.InvoiceNumber)
				assert.Equal(t, invoice.CurrencyEUR, got.Currency)
				assert.Equal(t, 1.08, got.ExchangeRate)
				assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), got.Date)
				assert.Equal(t, 50.0, got.TotalValue())
			},
		},
		{
			name: "Defaults",
			args: args{draft: invoice.Draft{InvoiceNumber: "INV-002", ExchangeRate: -3}},
			setupMock: func(m *invoice.MockRepository) {
				m.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, got *invoice.Invoice) {
				assert.Equal(t, invoice.CurrencyUSD, got.Currency)
				assert.Equal(t, 1.0, got.ExchangeRate)
				assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), got.Date)
				assert.Zero(t, got.TotalValue())
			},
		},
		{
			name: "RepoError",
			args: args{draft: invoice.Draft{InvoiceNumber: "INV-003"}},
			setupMock: func(m *invoice.MockRepository) {
				m.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Return(errors.New("boom"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := invoice.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := invoice.NewService(repo).WithClock(fixedClock)
			got, err := svc.Add(context.Background(), tt.args.draft)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestService_Add_CopiesItems(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Return(nil)

	d := invoice.NewDraft()
	d.AddLineItem(invoice.LineItemParams{Description: "Widget", Quantity: 1, UnitPrice: 1})

	got, err := invoice.NewService(repo).Add(context.Background(), d)
	require.NoError(t, err)

	d.Items[0].Quantity = 100
	assert.Equal(t, 1.0, got.Items[0].Quantity)
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().
		ReplaceInvoice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv *invoice.Invoice) error {
			assert.Equal(t, id, inv.ID)
			return nil
		})

	svc := invoice.NewService(repo)
	got, err := svc.Update(context.Background(), id, invoice.Draft{
		InvoiceNumber: "INV-001",
		Items:         []invoice.LineItem{{Description: "Widget", Quantity: 4, UnitPrice: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, 8.0, got.TotalValue())
}

func TestService_Update_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().ReplaceInvoice(gomock.Any(), gomock.Any()).Return(invoice.ErrNotFound)

	_, err := invoice.NewService(repo).Update(context.Background(), uuid.New(), invoice.Draft{})
	assert.ErrorIs(t, err, invoice.ErrNotFound)
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().ListInvoices(gomock.Any()).Return([]*invoice.Invoice{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

	got, err := invoice.NewService(repo).List(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
