package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/excursion-booking/internal/domain"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(domain.DateLayout, s)
	require.NoError(t, err)
	return d
}

func seedCar(t *testing.T, repo *CarRepo) *domain.Car {
	t.Helper()
	c := &domain.Car{Brand: "Toyota", Model: "Camry", Seats: 5, PricePerDay: 150, SupplierID: 1}
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func booking(carID int64) *domain.ConfirmedBooking {
	id := carID
	return &domain.ConfirmedBooking{
		BookingID:   time.Now().UnixNano(),
		FirstName:   "Anna",
		LastName:    "K",
		Phone:       "+971-50-000-0000",
		PeopleCount: 1,
		SupplierID:  1,
		BookingType: domain.BookingCar,
		CarID:       &id,
	}
}

func TestCarAvailableBoundaries(t *testing.T) {
	gdb := testDB(t)
	ledger := NewBookingRepo(gdb)
	car := seedCar(t, NewCarRepo(gdb))
	ctx := context.Background()

	b := booking(car.ID)
	b.Date = day(t, "2024-03-10")
	res := &domain.CarReservation{CarID: car.ID, StartDate: day(t, "2024-03-10"), EndDate: day(t, "2024-03-12")}
	require.NoError(t, ledger.CreateCarBooking(ctx, b, res))

	cases := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"strictly before", "2024-03-01", "2024-03-09", true},
		{"strictly after", "2024-03-13", "2024-03-20", true},
		{"starts day after existing ends", "2024-03-13", "2024-03-14", true},
		{"ends day before existing starts", "2024-03-08", "2024-03-09", true},
		{"shares last day", "2024-03-12", "2024-03-14", false},
		{"shares first day", "2024-03-08", "2024-03-10", false},
		{"fully inside", "2024-03-11", "2024-03-11", false},
		{"fully covers", "2024-03-01", "2024-03-20", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := ledger.CarAvailable(ctx, car.ID, day(t, tc.start), day(t, tc.end))
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}

func TestCreateCarBookingConflict(t *testing.T) {
	gdb := testDB(t)
	ledger := NewBookingRepo(gdb)
	car := seedCar(t, NewCarRepo(gdb))
	ctx := context.Background()

	first := booking(car.ID)
	first.Date = day(t, "2024-03-10")
	require.NoError(t, ledger.CreateCarBooking(ctx, first,
		&domain.CarReservation{CarID: car.ID, StartDate: day(t, "2024-03-10"), EndDate: day(t, "2024-03-12")}))

	// overlapping range: rejected, and nothing of it is written
	second := booking(car.ID)
	second.Date = day(t, "2024-03-12")
	err := ledger.CreateCarBooking(ctx, second,
		&domain.CarReservation{CarID: car.ID, StartDate: day(t, "2024-03-12"), EndDate: day(t, "2024-03-14")})
	require.ErrorIs(t, err, domain.ErrConflict)

	all, err := ledger.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	ivs, err := ledger.CarReservations(ctx, car.ID)
	require.NoError(t, err)
	assert.Len(t, ivs, 1)

	// adjacent range: admitted
	third := booking(car.ID)
	third.Date = day(t, "2024-03-13")
	require.NoError(t, ledger.CreateCarBooking(ctx, third,
		&domain.CarReservation{CarID: car.ID, StartDate: day(t, "2024-03-13"), EndDate: day(t, "2024-03-14")}))
}

func TestCreateCarBookingUnknownCar(t *testing.T) {
	gdb := testDB(t)
	ledger := NewBookingRepo(gdb)
	ctx := context.Background()

	b := booking(99)
	b.Date = day(t, "2024-03-10")
	err := ledger.CreateCarBooking(ctx, b,
		&domain.CarReservation{CarID: 99, StartDate: day(t, "2024-03-10"), EndDate: day(t, "2024-03-12")})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNoStoredIntervalsOverlap(t *testing.T) {
	gdb := testDB(t)
	ledger := NewBookingRepo(gdb)
	car := seedCar(t, NewCarRepo(gdb))
	ctx := context.Background()

	ranges := [][2]string{
		{"2024-03-10", "2024-03-12"},
		{"2024-03-13", "2024-03-14"},
		{"2024-03-12", "2024-03-13"}, // overlaps both
		{"2024-03-01", "2024-03-05"},
		{"2024-03-05", "2024-03-09"}, // overlaps previous
	}
	for _, rg := range ranges {
		b := booking(car.ID)
		b.Date = day(t, rg[0])
		_ = ledger.CreateCarBooking(ctx, b,
			&domain.CarReservation{CarID: car.ID, StartDate: day(t, rg[0]), EndDate: day(t, rg[1])})
	}

	ivs, err := ledger.CarReservations(ctx, car.ID)
	require.NoError(t, err)
	for i := range ivs {
		for j := i + 1; j < len(ivs); j++ {
			assert.Falsef(t, ivs[i].Overlaps(ivs[j].StartDate, ivs[j].EndDate),
				"intervals %d and %d overlap", i, j)
		}
	}
}

func TestExcursionBookingUnboundedCapacity(t *testing.T) {
	gdb := testDB(t)
	ledger := NewBookingRepo(gdb)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		b := &domain.ConfirmedBooking{
			BookingID:   time.Now().UnixNano() + int64(i),
			PeopleCount: 3,
			Date:        day(t, "2024-06-01"),
			SupplierID:  1,
			BookingType: domain.BookingExcursion,
		}
		require.NoError(t, ledger.CreateExcursionBooking(ctx, b,
			&domain.ExcursionReservation{ExcursionID: 7, Date: day(t, "2024-06-01")}))
	}
	rs, err := ledger.ExcursionReservations(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, rs, 5)
}

func TestBookingIDUniqueIndex(t *testing.T) {
	gdb := testDB(t)
	ledger := NewBookingRepo(gdb)
	ctx := context.Background()

	b1 := &domain.ConfirmedBooking{BookingID: 42, Date: day(t, "2024-06-01"), SupplierID: 1, BookingType: domain.BookingExcursion}
	require.NoError(t, ledger.CreateExcursionBooking(ctx, b1, nil))

	b2 := &domain.ConfirmedBooking{BookingID: 42, Date: day(t, "2024-06-02"), SupplierID: 1, BookingType: domain.BookingExcursion}
	err := ledger.CreateExcursionBooking(ctx, b2, nil)
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestListScopedBySupplier(t *testing.T) {
	gdb := testDB(t)
	ledger := NewBookingRepo(gdb)
	ctx := context.Background()

	for i, sup := range []int64{1, 1, 2} {
		b := &domain.ConfirmedBooking{
			BookingID:   int64(100 + i),
			Date:        day(t, "2024-06-01"),
			SupplierID:  sup,
			BookingType: domain.BookingExcursion,
		}
		require.NoError(t, ledger.CreateExcursionBooking(ctx, b, nil))
	}

	one := int64(1)
	scoped, err := ledger.List(ctx, &one)
	require.NoError(t, err)
	assert.Len(t, scoped, 2)

	all, err := ledger.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
