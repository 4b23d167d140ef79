package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ChaletBookingService/internal/domain"
	"github.com/m04kA/SMC-ChaletBookingService/internal/infra/storage/booking"
)

var created = time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

func day(s string) time.Time {
	t, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func newPending(chaletID int64, in, out string) *domain.Booking {
	return &domain.Booking{
		Reference:  domain.NewReference(),
		ChaletID:   chaletID,
		GuestPhone: "+966500000001",
		CheckIn:    day(in),
		CheckOut:   day(out),
		TotalPrice: 900,
		Status:     domain.StatusPending,
		CreatedAt:  created,
		UpdatedAt:  created,
	}
}

func TestRepository_CreateAssignsIDs(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	first, err := repo.Create(ctx, newPending(7, "2025-03-10", "2025-03-13"))
	require.NoError(t, err)
	second, err := repo.Create(ctx, newPending(7, "2025-03-13", "2025-03-15"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
}

func TestRepository_CreateRejectsOverlapWithActive(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, newPending(7, "2025-03-10", "2025-03-13"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newPending(7, "2025-03-12", "2025-03-14"))
	assert.ErrorIs(t, err, booking.ErrDatesOverlap)

	// другое шале не мешает
	_, err = repo.Create(ctx, newPending(8, "2025-03-12", "2025-03-14"))
	assert.NoError(t, err)
}

func TestRepository_CreateIgnoresCancelled(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	b, err := repo.Create(ctx, newPending(7, "2025-03-10", "2025-03-13"))
	require.NoError(t, err)
	_, err = repo.UpdateStatus(ctx, b.ID, domain.NewCancelChange(1, created))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newPending(7, "2025-03-10", "2025-03-13"))
	assert.NoError(t, err)
}

func TestRepository_CreateDuplicateReference(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	b := newPending(7, "2025-03-10", "2025-03-13")
	_, err := repo.Create(ctx, b)
	require.NoError(t, err)

	dup := newPending(8, "2025-03-10", "2025-03-13")
	dup.Reference = b.Reference
	_, err = repo.Create(ctx, dup)
	assert.ErrorIs(t, err, booking.ErrDuplicateReference)
}

func TestRepository_GetByIDReturnsCopy(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	b, err := repo.Create(ctx, newPending(7, "2025-03-10", "2025-03-13"))
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	got.Status = domain.StatusConfirmed

	again, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, again.Status)

	_, err = repo.GetByID(ctx, 404)
	assert.ErrorIs(t, err, booking.ErrBookingNotFound)
}

func TestRepository_UpdateStatusRejectsAndLeavesUnchanged(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	b, err := repo.Create(ctx, newPending(7, "2025-03-10", "2025-03-13"))
	require.NoError(t, err)
	_, err = repo.UpdateStatus(ctx, b.ID, domain.NewCancelChange(1, created))
	require.NoError(t, err)

	change, err := domain.NewConfirmChange(500, "TRX1", 1, created)
	require.NoError(t, err)

	_, err = repo.UpdateStatus(ctx, b.ID, change)
	var ite *domain.InvalidTransitionError
	require.True(t, errors.As(err, &ite))
	assert.Equal(t, domain.StatusCancelled, ite.Current)

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status)
	assert.Nil(t, got.DepositAmount)

	_, err = repo.UpdateStatus(ctx, 404, change)
	assert.ErrorIs(t, err, booking.ErrBookingNotFound)
}

func TestRepository_QueryFiltersOrdersAndPaginates(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	for _, r := range [][2]string{
		{"2025-03-20", "2025-03-22"},
		{"2025-03-01", "2025-03-03"},
		{"2025-03-10", "2025-03-12"},
	} {
		_, err := repo.Create(ctx, newPending(7, r[0], r[1]))
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, newPending(8, "2025-03-05", "2025-03-06"))
	require.NoError(t, err)

	chalet := int64(7)
	all, err := repo.Query(ctx, domain.BookingFilter{ChaletID: &chalet})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, day("2025-03-01"), all[0].CheckIn)
	assert.Equal(t, day("2025-03-10"), all[1].CheckIn)
	assert.Equal(t, day("2025-03-20"), all[2].CheckIn)

	page, err := repo.Query(ctx, domain.BookingFilter{ChaletID: &chalet, Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, day("2025-03-10"), page[0].CheckIn)

	empty, err := repo.Query(ctx, domain.BookingFilter{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRepository_ListStalePending(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	old := newPending(7, "2025-03-10", "2025-03-13")
	old.CreatedAt = created
	fresh := newPending(8, "2025-03-10", "2025-03-13")
	fresh.CreatedAt = created.Add(time.Hour)

	oldB, err := repo.Create(ctx, old)
	require.NoError(t, err)
	_, err = repo.Create(ctx, fresh)
	require.NoError(t, err)

	ids, err := repo.ListStalePending(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, []int64{oldB.ID}, ids)
}

func TestRepository_ConcurrentTransitionsHaveSingleWinner(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	b, err := repo.Create(ctx, newPending(7, "2025-03-10", "2025-03-13"))
	require.NoError(t, err)

	confirm, err := domain.NewConfirmChange(500, "TRX1", 1, created)
	require.NoError(t, err)
	changes := []domain.StatusChange{
		confirm,
		domain.NewCancelChange(2, created),
		domain.NewAutoCancelChange(created.Add(domain.AutoCancelAfter)),
	}

	const rounds = 20
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners []domain.BookingStatus
	)
	for i := 0; i < rounds; i++ {
		for _, c := range changes {
			wg.Add(1)
			go func(c domain.StatusChange) {
				defer wg.Done()
				got, err := repo.UpdateStatus(ctx, b.ID, c)
				if err != nil {
					assert.ErrorIs(t, err, domain.ErrInvalidTransition)
					return
				}
				mu.Lock()
				winners = append(winners, got.Status)
				mu.Unlock()
			}(c)
		}
	}
	wg.Wait()

	final, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)

	// из pending выигрывает ровно один переход; confirm может быть дополнен отменой
	switch final.Status {
	case domain.StatusAutoCancelled:
		assert.Equal(t, []domain.BookingStatus{domain.StatusAutoCancelled}, winners)
		assert.Nil(t, final.DepositAmount)
	case domain.StatusCancelled:
		assert.NotContains(t, winners, domain.StatusAutoCancelled)
		assert.Nil(t, final.DepositAmount)
	case domain.StatusConfirmed:
		assert.Equal(t, []domain.BookingStatus{domain.StatusConfirmed}, winners)
		require.NotNil(t, final.DepositAmount)
	default:
		t.Fatalf("unexpected final status %s", final.Status)
	}
}

func TestTxManager_SerializesCreates(t *testing.T) {
	repo := NewRepository()
	tx := NewTxManager()
	ctx := context.Background()

	const workers = 10
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := tx.DoSerializable(ctx, func(ctx context.Context) error {
				if err := repo.LockChalet(ctx, 7); err != nil {
					return err
				}
				window := domain.DateRange{CheckIn: day("2025-03-10"), CheckOut: day("2025-03-13")}
				active, err := repo.GetActiveByChalet(ctx, 7, &window)
				if err != nil {
					return err
				}
				if len(active) > 0 {
					return domain.ErrConflict
				}
				_, err = repo.Create(ctx, newPending(7, "2025-03-10", "2025-03-13"))
				return err
			})
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, success)
}

func TestRepository_LockChaletRequiresTransaction(t *testing.T) {
	repo := NewRepository()
	assert.ErrorIs(t, repo.LockChalet(context.Background(), 7), booking.ErrTransaction)
}
