package handlers_test

import (
	"net/http"
	"testing"

	"covoiturage-api/config"
	"covoiturage-api/models"
)

func TestAdminListsUsersWithoutAdmins(t *testing.T) {
	r, _ := setupRouter(t)
	_, adminToken := createUser(t, "admin@test.io", models.RoleAdmin)
	createUser(t, "driver@test.io", models.RoleDriver)
	createUser(t, "passenger@test.io", models.RolePassenger)

	w := doJSON(r, http.MethodGet, "/api/admin/users", adminToken, nil)
	wantStatus(t, w, http.StatusOK)
	body := decodeBody(t, w)
	if got := body["count"].(float64); got != 2 {
		t.Errorf("count = %v, want 2 (admin excluded)", got)
	}
}

func TestAdminDeleteUserCascades(t *testing.T) {
	r, _ := setupRouter(t)
	_, adminToken := createUser(t, "admin@test.io", models.RoleAdmin)
	driver, _ := createUser(t, "driver@test.io", models.RoleDriver)
	passenger, _ := createUser(t, "passenger@test.io", models.RolePassenger)
	trip := createTrip(t, driver.ID, 3)
	booking := models.Booking{TripID: trip.ID, PassengerID: passenger.ID, Seats: 1, Status: models.BookingConfirmed}
	config.DB.Create(&booking)
	request := models.TripRequest{
		PassengerID:   passenger.ID,
		DepartureCity: trip.DepartureCity,
		Destination:   trip.Destination,
		DateTime:      trip.DateTime,
		Status:        models.RequestMatched,
		TripID:        &trip.ID,
	}
	config.DB.Create(&request)

	w := doJSON(r, http.MethodDelete, "/api/admin/users/"+itoa(driver.ID), adminToken, nil)
	wantStatus(t, w, http.StatusOK)

	var users, trips, bookings int64
	config.DB.Model(&models.User{}).Count(&users)
	config.DB.Model(&models.Trip{}).Count(&trips)
	config.DB.Model(&models.Booking{}).Count(&bookings)
	if users != 2 {
		t.Errorf("users = %d, want 2 (admin + passenger)", users)
	}
	if trips != 0 || bookings != 0 {
		t.Errorf("trips = %d bookings = %d, want 0 and 0", trips, bookings)
	}

	// The passenger's matched request is unlinked, not left pointing at
	// the deleted trip
	var reloaded models.TripRequest
	if err := config.DB.First(&reloaded, request.ID).Error; err != nil {
		t.Fatalf("reload trip request: %v", err)
	}
	if reloaded.TripID != nil {
		t.Errorf("trip_id = %v, want nil", *reloaded.TripID)
	}
	if reloaded.Status != models.RequestPending {
		t.Errorf("status = %q, want %q", reloaded.Status, models.RequestPending)
	}
}

func TestAdminCannotDeleteAdmin(t *testing.T) {
	r, _ := setupRouter(t)
	admin, adminToken := createUser(t, "admin@test.io", models.RoleAdmin)

	w := doJSON(r, http.MethodDelete, "/api/admin/users/"+itoa(admin.ID), adminToken, nil)
	wantStatus(t, w, http.StatusForbidden)
}

func TestAdminDeletesAnyTrip(t *testing.T) {
	r, _ := setupRouter(t)
	_, adminToken := createUser(t, "admin@test.io", models.RoleAdmin)
	driver, _ := createUser(t, "driver@test.io", models.RoleDriver)
	trip := createTrip(t, driver.ID, 3)

	w := doJSON(r, http.MethodDelete, "/api/admin/trips/"+itoa(trip.ID), adminToken, nil)
	wantStatus(t, w, http.StatusOK)

	var count int64
	config.DB.Model(&models.Trip{}).Count(&count)
	if count != 0 {
		t.Errorf("trips = %d, want 0", count)
	}
}

func TestAdminCancelsInProgressTrip(t *testing.T) {
	r, _ := setupRouter(t)
	_, adminToken := createUser(t, "admin@test.io", models.RoleAdmin)
	driver, _ := createUser(t, "driver@test.io", models.RoleDriver)
	trip := createTrip(t, driver.ID, 3)
	config.DB.Model(&trip).Update("status", models.StatusInProgress)

	w := doJSON(r, http.MethodPut, "/api/admin/trips/"+itoa(trip.ID)+"/cancel", adminToken, nil)
	wantStatus(t, w, http.StatusOK)

	var reloaded models.Trip
	config.DB.First(&reloaded, trip.ID)
	if reloaded.Status != models.StatusCancelled {
		t.Errorf("status = %q, want %q", reloaded.Status, models.StatusCancelled)
	}

	// Cancelled is terminal, a second cancel is refused
	w = doJSON(r, http.MethodPut, "/api/admin/trips/"+itoa(trip.ID)+"/cancel", adminToken, nil)
	wantStatus(t, w, http.StatusUnprocessableEntity)
}

func TestAdminEndpointsRequireAdminRole(t *testing.T) {
	r, _ := setupRouter(t)
	_, driverToken := createUser(t, "driver@test.io", models.RoleDriver)

	w := doJSON(r, http.MethodGet, "/api/admin/users", driverToken, nil)
	wantStatus(t, w, http.StatusForbidden)
}

func TestAdminStats(t *testing.T) {
	r, _ := setupRouter(t)
	_, adminToken := createUser(t, "admin@test.io", models.RoleAdmin)
	driver, _ := createUser(t, "driver@test.io", models.RoleDriver)
	createTrip(t, driver.ID, 3)

	w := doJSON(r, http.MethodGet, "/api/admin/stats", adminToken, nil)
	wantStatus(t, w, http.StatusOK)
	body := decodeBody(t, w)
	if got := body["total_users"].(float64); got != 1 {
		t.Errorf("total_users = %v, want 1", got)
	}
	if got := body["total_trips"].(float64); got != 1 {
		t.Errorf("total_trips = %v, want 1", got)
	}
	if got := body["new_users_week"].(float64); got != 1 {
		t.Errorf("new_users_week = %v, want 1", got)
	}
}
