package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-market/domain"
	"vehicle-market/repository"
	"vehicle-market/repository/mocks"
	"vehicle-market/service"
)

var standardTerms = domain.LoanTerms{Principal: 100000, AnnualRatePercent: 8.5, TenureMonths: 24}

func TestLoanService_Calculate_CacheMissComputesAndStores(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mRepo := mocks.NewMockLoanRepository(ctrl)
	mCache := mocks.NewMockCacheRepository(ctrl)
	want, err := service.Compute(standardTerms)
	require.NoError(t, err)

	mCache.EXPECT().Get(gomock.Any(), "emi:100000:8.5:24").Return("", false)
	mCache.EXPECT().Set(gomock.Any(), "emi:100000:8.5:24", gomock.Any(), 5*time.Minute).Return(nil)
	mRepo.EXPECT().Save(gomock.Any(), standardTerms, want).Return(nil)

	svc := service.NewLoanService(mRepo, mCache, 5*time.Minute)
	got, err := svc.Calculate(context.Background(), standardTerms)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoanService_Calculate_CacheHitSkipsRepository(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mRepo := mocks.NewMockLoanRepository(ctrl)
	mCache := mocks.NewMockCacheRepository(ctrl)

	cached := domain.AmortizationResult{MonthlyInstallment: 4546, TotalPayment: 109094, TotalInterest: 9094}
	raw, err := json.Marshal(cached)
	require.NoError(t, err)

	mCache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(string(raw), true)

	svc := service.NewLoanService(mRepo, mCache, time.Minute)
	got, err := svc.Calculate(context.Background(), standardTerms)

	require.NoError(t, err)
	assert.Equal(t, cached, got)
}

func TestLoanService_Calculate_CorruptCacheEntryIsRecomputed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mRepo := mocks.NewMockLoanRepository(ctrl)
	mCache := mocks.NewMockCacheRepository(ctrl)

	mCache.EXPECT().Get(gomock.Any(), gomock.Any()).Return("{not json", true)
	mCache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	mRepo.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	svc := service.NewLoanService(mRepo, mCache, time.Minute)
	got, err := svc.Calculate(context.Background(), standardTerms)

	require.NoError(t, err)
	assert.Equal(t, 4546.0, got.MonthlyInstallment)
}

func TestLoanService_Calculate_NonCriticalFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mRepo := mocks.NewMockLoanRepository(ctrl)
	mCache := mocks.NewMockCacheRepository(ctrl)

	mCache.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", false)
	mCache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
	mRepo.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("save error"))

	svc := service.NewLoanService(mRepo, mCache, time.Minute)
	got, err := svc.Calculate(context.Background(), standardTerms)

	require.NoError(t, err)
	assert.Equal(t, 109094.0, got.TotalPayment)
}

func TestLoanService_Calculate_InvalidInputTouchesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// no expectations: any call on the mocks fails the test
	mRepo := mocks.NewMockLoanRepository(ctrl)
	mCache := mocks.NewMockCacheRepository(ctrl)

	svc := service.NewLoanService(mRepo, mCache, time.Minute)
	_, err := svc.Calculate(context.Background(), domain.LoanTerms{Principal: 1000, AnnualRatePercent: 10})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoanService_Calculate_MatchesComputeWithRealCache(t *testing.T) {
	repo := repository.NewLoanRepositoryMemory(10)
	cache := repository.NewMemoryCache(time.Minute, time.Minute)
	svc := service.NewLoanService(repo, cache, time.Minute)

	want, err := service.Compute(standardTerms)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		got, err := svc.Calculate(context.Background(), standardTerms)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	assert.Equal(t, 1, cache.ItemCount())
	assert.Len(t, repo.Recent(0), 1)
}

func TestLoanService_Calculate_NilDependencies(t *testing.T) {
	svc := service.NewLoanService(nil, nil, 0)

	got, err := svc.Calculate(context.Background(), domain.LoanTerms{Principal: 120000, TenureMonths: 12})

	require.NoError(t, err)
	assert.Equal(t, 10000.0, got.MonthlyInstallment)
	assert.Equal(t, 0.0, got.TotalInterest)
}
