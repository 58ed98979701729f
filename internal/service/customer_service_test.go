package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radwerk/intake-api/internal/domain"
	"github.com/radwerk/intake-api/internal/testutil"
)

func TestCustomerService_Update_RederivesNameAndAddress(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.SeedCustomer(t, env.db, nil)

	lastName := "Schneider"
	street := "Bahnhofstraße"
	updated, err := env.customers.Update(ctx, customer.ID, &domain.UpdateCustomerRequest{
		LastName: &lastName,
		Street:   &street,
	})
	require.NoError(t, err)

	assert.Equal(t, "Max Schneider", updated.FullName)
	assert.Equal(t, "Bahnhofstraße 1, 44135 Dortmund", updated.FullAddress)
	// Untouched fields survive.
	assert.Equal(t, "Max", updated.FirstName)
	assert.Equal(t, customer.CustomerNumber, updated.CustomerNumber)
}

func TestCustomerService_Update_InvalidStatus(t *testing.T) {
	env := newTestEnv(t)
	customer := testutil.SeedCustomer(t, env.db, nil)

	status := "erledigt"
	_, err := env.customers.Update(context.Background(), customer.ID, &domain.UpdateCustomerRequest{
		Status: &status,
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCustomerService_UpdateStatus_BackwardsAllowed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.SeedCustomer(t, env.db, func(c *domain.Customer) {
		c.Status = domain.CustomerStatusCompleted
	})

	updated, err := env.customers.UpdateStatus(ctx, customer.ID, domain.CustomerStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, domain.CustomerStatusInProgress, updated.Status)
}

func TestCustomerService_GetByID_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.customers.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCustomerService_AddServiceOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.SeedCustomer(t, env.db, nil)

	order, err := env.customers.AddServiceOrder(ctx, customer.ID, &domain.CreateServiceOrderRequest{
		ServiceType: domain.ServiceTypeTireService,
		Data:        `{"mountService":"Räder umstecken"}`,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ServiceOrderStatusOpen, order.Status)
	assert.Equal(t, customer.ID.String(), order.CustomerID)

	orders, err := env.customers.ListServiceOrders(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, domain.ServiceTypeTireService, orders[0].ServiceType)
}

func TestCustomerService_AddServiceOrder_UnknownType(t *testing.T) {
	env := newTestEnv(t)
	customer := testutil.SeedCustomer(t, env.db, nil)

	_, err := env.customers.AddServiceOrder(context.Background(), customer.ID, &domain.CreateServiceOrderRequest{
		ServiceType: "lackieren",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCustomerService_UpdateServiceOrderStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.SeedCustomer(t, env.db, nil)

	order, err := env.customers.AddServiceOrder(ctx, customer.ID, &domain.CreateServiceOrderRequest{
		ServiceType: domain.ServiceTypeRims,
	})
	require.NoError(t, err)

	updated, err := env.customers.UpdateServiceOrderStatus(ctx, order.ID, domain.ServiceOrderStatusDone)
	require.NoError(t, err)
	assert.Equal(t, domain.ServiceOrderStatusDone, updated.Status)

	// The customer's own status is independent of its orders.
	got, err := env.customers.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CustomerStatusReceived, got.Status)
}

func TestCustomerService_Delete_RemovesDependents(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.SeedCustomer(t, env.db, nil)

	_, err := env.customers.AddServiceOrder(ctx, customer.ID, &domain.CreateServiceOrderRequest{
		ServiceType: domain.ServiceTypeRims,
	})
	require.NoError(t, err)
	_, err = env.files.UploadToCustomer(ctx, customer.ID, FileUpload{
		Filename:    "felge.jpg",
		ContentType: "image/jpeg",
		Data:        bytes.NewReader([]byte("jpeg")),
	})
	require.NoError(t, err)

	require.NoError(t, env.customers.Delete(ctx, customer.ID))

	_, err = env.customers.GetByID(ctx, customer.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var orders, files int64
	require.NoError(t, env.db.Model(&domain.ServiceOrder{}).Count(&orders).Error)
	require.NoError(t, env.db.Model(&domain.CustomerFile{}).Count(&files).Error)
	assert.Zero(t, orders)
	assert.Zero(t, files)
}

func TestCustomerService_CreateLegacy(t *testing.T) {
	env := newTestEnv(t)

	customer, err := env.customers.CreateLegacy(context.Background(), &domain.CreateCustomerRequest{
		FirstName: "Jonas",
		LastName:  "Brandt",
		Email:     "jonas@example.com",
		Phone:     "0231 987654",
	}, env.numbering)
	require.NoError(t, err)

	assert.Regexp(t, `^C-\d{4}-\d{6}$`, customer.CustomerNumber)
	assert.Equal(t, "Jonas Brandt", customer.FullName)
	assert.Equal(t, domain.CustomerStatusReceived, customer.Status)
	assert.Empty(t, customer.SelectedServices)
}
