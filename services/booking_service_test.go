package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/table-booking/models"
	"github.com/yeremiapane/table-booking/policy"
)

func TestCreateBookingIsPendingWithoutTable(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "alice", models.RoleCustomer)
	r := seedRestaurant(t, db, "Warung Sate")

	svc := NewBookingService(db).WithClock(fixedClock)
	b, err := svc.Create(context.Background(), actorOf(user), CreateBookingInput{
		RestaurantID:    r.ID,
		BookingDate:     "2024-05-20",
		BookingTime:     "19:30",
		PartySize:       4,
		SpecialRequests: "window seat",
	})
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusPending, b.Status)
	assert.Nil(t, b.TableID)
	assert.Equal(t, 4, b.PartySize)
	assert.Equal(t, "2024-05-20", time.Time(b.BookingDate).Format(DateLayout))
	assert.Equal(t, "19:30:00", b.BookingTime.String())
	assert.Equal(t, fixedNow, b.CreatedAt)

	// kontak diisi dari profil user
	assert.Equal(t, "Alice Tester", b.CustomerName)
	assert.Equal(t, "0812000000", b.CustomerPhone)
	assert.Equal(t, "alice@example.com", b.CustomerEmail)
}

func TestCreateBookingValidation(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "bob", models.RoleCustomer)
	r := seedRestaurant(t, db, "Bakmi")
	svc := NewBookingService(db)

	cases := []struct {
		name  string
		in    CreateBookingInput
		field string
	}{
		{"zero party", CreateBookingInput{RestaurantID: r.ID, BookingDate: "2024-05-20", BookingTime: "19:00", PartySize: 0}, "party_size"},
		{"negative party", CreateBookingInput{RestaurantID: r.ID, BookingDate: "2024-05-20", BookingTime: "19:00", PartySize: -2}, "party_size"},
		{"bad date", CreateBookingInput{RestaurantID: r.ID, BookingDate: "20-05-2024", BookingTime: "19:00", PartySize: 2}, "booking_date"},
		{"bad time", CreateBookingInput{RestaurantID: r.ID, BookingDate: "2024-05-20", BookingTime: "7pm", PartySize: 2}, "booking_time"},
		{"bad email", CreateBookingInput{RestaurantID: r.ID, BookingDate: "2024-05-20", BookingTime: "19:00", PartySize: 2, CustomerEmail: "nope"}, "customer_email"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), actorOf(user), tc.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}

	var count int64
	db.Model(&models.Booking{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateBookingRestaurantChecks(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "carol", models.RoleCustomer)
	r := seedRestaurant(t, db, "Closed Place")
	_, err := NewCatalogService(db).ToggleRestaurantActive(context.Background(), r.ID)
	require.NoError(t, err)

	svc := NewBookingService(db)
	in := CreateBookingInput{BookingDate: "2024-05-20", BookingTime: "19:00", PartySize: 2}

	in.RestaurantID = 999
	_, err = svc.Create(context.Background(), actorOf(user), in)
	assert.ErrorIs(t, err, ErrNotFound)

	in.RestaurantID = r.ID
	_, err = svc.Create(context.Background(), actorOf(user), in)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateBookingRequiresKnownRole(t *testing.T) {
	db := setupTestDB(t)
	r := seedRestaurant(t, db, "Anon")

	_, err := NewBookingService(db).Create(context.Background(), policy.Actor{UserID: 1, Role: "guest"}, CreateBookingInput{
		RestaurantID: r.ID, BookingDate: "2024-05-20", BookingTime: "19:00", PartySize: 2,
	})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestUpdateStatusFollowsStateMachine(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "dave", models.RoleCustomer)
	r := seedRestaurant(t, db, "Padang")
	b := seedBooking(t, db, user, r.ID, 2)
	svc := NewBookingService(db).WithClock(fixedClock)
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, b.ID, "seated")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateStatus(ctx, b.ID, models.BookingStatusPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	updated, err := svc.UpdateStatus(ctx, b.ID, models.BookingStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, updated.Status)

	_, err = svc.UpdateStatus(ctx, b.ID, models.BookingStatusConfirmed)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.UpdateStatus(ctx, 999, models.BookingStatusCancelled)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetHidesOtherCustomersBookings(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "erin", models.RoleCustomer)
	other := seedUser(t, db, "frank", models.RoleCustomer)
	manager := seedUser(t, db, "grace", models.RoleManager)
	r := seedRestaurant(t, db, "Soto")
	b := seedBooking(t, db, owner, r.ID, 2)
	svc := NewBookingService(db)
	ctx := context.Background()

	got, err := svc.Get(ctx, actorOf(owner), b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
	require.NotNil(t, got.Restaurant)
	assert.Equal(t, "Soto", got.Restaurant.Name)

	_, err = svc.Get(ctx, actorOf(other), b.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(ctx, actorOf(manager), b.ID)
	assert.NoError(t, err)
}

func TestListBookingsScopes(t *testing.T) {
	db := setupTestDB(t)
	alice := seedUser(t, db, "alice", models.RoleCustomer)
	bob := seedUser(t, db, "bob", models.RoleCustomer)
	admin := seedUser(t, db, "root", models.RoleAdmin)
	r1 := seedRestaurant(t, db, "One")
	r2 := seedRestaurant(t, db, "Two")

	seedBooking(t, db, alice, r1.ID, 2)
	seedBooking(t, db, alice, r2.ID, 3)
	seedBooking(t, db, bob, r1.ID, 4)

	svc := NewBookingService(db)
	ctx := context.Background()

	mine, err := svc.ListBookings(ctx, actorOf(alice), ScopeSelf, 0)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, b := range mine {
		assert.Equal(t, alice.ID, b.UserID)
	}

	_, err = svc.ListBookings(ctx, actorOf(alice), ScopeAll, 0)
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = svc.ListBookings(ctx, actorOf(alice), ScopeRestaurant, r1.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	all, err := svc.ListBookings(ctx, actorOf(admin), ScopeAll, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	atR1, err := svc.ListBookings(ctx, actorOf(admin), ScopeRestaurant, r1.ID)
	require.NoError(t, err)
	assert.Len(t, atR1, 2)

	_, err = svc.ListBookings(ctx, actorOf(admin), "weird", 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListByRestaurantNewestSlotFirst(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "hana", models.RoleCustomer)
	r := seedRestaurant(t, db, "Order")
	svc := NewBookingService(db)
	ctx := context.Background()

	slots := [][2]string{{"2024-05-20", "12:00"}, {"2024-05-21", "09:00"}, {"2024-05-20", "20:00"}}
	for _, s := range slots {
		_, err := svc.Create(ctx, actorOf(user), CreateBookingInput{RestaurantID: r.ID, BookingDate: s[0], BookingTime: s[1], PartySize: 2})
		require.NoError(t, err)
	}

	list, err := svc.ListByRestaurant(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2024-05-21", time.Time(list[0].BookingDate).Format(DateLayout))
	assert.Equal(t, "20:00:00", list[1].BookingTime.String())
	assert.Equal(t, "12:00:00", list[2].BookingTime.String())
}
