package classify_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/landed/internal/classify"
)

func TestService_Learn(t *testing.T) {
	type testCase struct {
		name      string
		pattern   string
		hsCode    string
		setupMock func(m *classify.MockRepository)
		wantErr   error
		anyErr    bool
	}

	tests := []testCase{
		{
			name:    "Success",
			pattern: "  cotton shirt ",
			hsCode:  " 6205.20 ",
			setupMock: func(m *classify.MockRepository) {
				m.EXPECT().CreateMapping(gomock.Any(), gomock.Cond(func(x any) bool {
					mp := x.(classify.Mapping)
					return mp.Pattern == "cotton shirt" && mp.HSCode == "6205.20"
				})).Return(nil)
			},
		},
		{
			name:      "EmptyPattern",
			pattern:   "  ",
			hsCode:    "6205.20",
			setupMock: func(m *classify.MockRepository) {},
			wantErr:   classify.ErrEmptyMapping,
		},
		{
			name:      "EmptyCode",
			pattern:   "shirt",
			setupMock: func(m *classify.MockRepository) {},
			wantErr:   classify.ErrEmptyMapping,
		},
		{
			name:    "RepoError",
			pattern: "shirt",
			hsCode:  "6205",
			setupMock: func(m *classify.MockRepository) {
				m.EXPECT().CreateMapping(gomock.Any(), gomock.Any()).Return(errors.New("boom"))
			},
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := classify.NewMockRepository(ctrl)
			tt.setupMock(repo)

			err := classify.NewService(repo).Learn(context.Background(), tt.pattern, tt.hsCode)

			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				require.Error(t, err)
			default:
				require.NoError(t, err)
			}
		})
	}
}

func TestService_Suggest_BlankDescription(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := classify.NewMockRepository(ctrl)

	got, err := classify.NewService(repo).Suggest(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, got)
}
