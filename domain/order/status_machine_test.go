package order

import (
	"testing"
	"time"

	"fooddash/domain/customer"
	"fooddash/domain/delivery"
	"fooddash/domain/shared"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var transitionAt = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func newMachine() *StatusMachine {
	return NewStatusMachine(StatusMachineConfig{}, func() time.Time { return transitionAt })
}

func orderIn(status Status, partnerID *int64) *Order {
	return RebuildFromDTO(ReconstructionDTO{
		ID:                7,
		OrderNumber:       "ORD-20260314-007",
		CustomerID:        customerUserID,
		RestaurantID:      restaurantID,
		DeliveryPartnerID: partnerID,
		Status:            status,
		Subtotal:          npr("200"),
		Tax:               npr("20"),
		DeliveryFee:       npr("30"),
		Discount:          npr("0"),
		Version:           3,
	})
}

var (
	admin   = shared.Actor{UserID: 1, Role: shared.RoleAdmin}
	owner   = shared.Actor{UserID: ownerUserID, Role: shared.RoleRestaurantOwner}
	partner = shared.Actor{UserID: partnerUserID, Role: shared.RoleDeliveryPartner}
	buyer   = shared.Actor{UserID: customerUserID, Role: shared.RoleCustomer}
)

func TestStatusMachine_Examples(t *testing.T) {
	m := newMachine()
	assigned := partnerUserID

	t.Run("customer cancels pending", func(t *testing.T) {
		o := orderIn(StatusPending, nil)
		require.NoError(t, m.Apply(o, StatusCancelled, buyer, ownerUserID))
		assert.Equal(t, StatusCancelled, o.Status())
	})

	t.Run("partner confirming pending is unauthorized", func(t *testing.T) {
		for _, partnerID := range []*int64{nil, &assigned} {
			o := orderIn(StatusPending, partnerID)
			err := m.Apply(o, StatusConfirmed, partner, ownerUserID)
			assert.ErrorIs(t, err, ErrUnauthorizedTransition)
			assert.ErrorIs(t, err, shared.ErrForbidden)
			assert.NotErrorIs(t, err, shared.ErrInvalidInput)
			assert.Equal(t, StatusPending, o.Status())
		}
	})

	t.Run("owner marks preparing ready", func(t *testing.T) {
		o := orderIn(StatusPreparing, nil)
		require.NoError(t, m.Apply(o, StatusReadyForPickup, owner, ownerUserID))
		require.NotNil(t, o.ReadyAt())
		assert.Equal(t, transitionAt, *o.ReadyAt())
	})

	t.Run("owner cannot deliver", func(t *testing.T) {
		o := orderIn(StatusReadyForPickup, &assigned)
		err := m.Apply(o, StatusDelivered, owner, ownerUserID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		assert.Equal(t, StatusReadyForPickup, o.Status())
		assert.Empty(t, o.PullEvents())
	})
}

// TestStatusMachine_Matrix every (role, from, to) combination against the table
// 图中没有的边 400；图中有但不属于该角色的边 403
func TestStatusMachine_Matrix(t *testing.T) {
	m := newMachine()
	assigned := partnerUserID

	allowed := map[shared.Role]map[Status][]Status{
		shared.RoleAdmin: {
			StatusPending:        {StatusConfirmed, StatusRejected, StatusCancelled},
			StatusConfirmed:      {StatusPreparing, StatusCancelled},
			StatusPreparing:      {StatusReadyForPickup},
			StatusReadyForPickup: {StatusOutForDelivery},
			StatusOutForDelivery: {StatusDelivered},
		},
		shared.RoleRestaurantOwner: {
			StatusPending:   {StatusConfirmed, StatusRejected},
			StatusConfirmed: {StatusPreparing},
			StatusPreparing: {StatusReadyForPickup},
		},
		shared.RoleDeliveryPartner: {
			StatusReadyForPickup: {StatusOutForDelivery},
			StatusOutForDelivery: {StatusDelivered},
		},
		shared.RoleCustomer: {
			StatusPending: {StatusCancelled},
		},
	}
	actors := map[shared.Role]shared.Actor{
		shared.RoleAdmin:           admin,
		shared.RoleRestaurantOwner: owner,
		shared.RoleDeliveryPartner: partner,
		shared.RoleCustomer:        buyer,
	}

	contains := func(list []Status, s Status) bool {
		for _, x := range list {
			if x == s {
				return true
			}
		}
		return false
	}

	for role, actor := range actors {
		for _, from := range allStatuses {
			for _, to := range allStatuses {
				o := orderIn(from, &assigned)
				err := m.Apply(o, to, actor, ownerUserID)

				if contains(allowed[role][from], to) {
					assert.NoError(t, err, "%s %s -> %s", role, from, to)
					assert.Equal(t, to, o.Status())
					continue
				}
				if contains(allowed[shared.RoleAdmin][from], to) {
					assert.ErrorIs(t, err, ErrUnauthorizedTransition, "%s %s -> %s", role, from, to)
				} else {
					assert.ErrorIs(t, err, ErrInvalidTransition, "%s %s -> %s", role, from, to)
				}
				assert.Equal(t, from, o.Status())
			}
		}
	}
}

func TestStatusMachine_TerminalStatesHaveNoEdges(t *testing.T) {
	m := newMachine()
	for _, from := range []Status{StatusDelivered, StatusCancelled, StatusRejected} {
		assert.True(t, from.IsTerminal())
		for _, to := range allStatuses {
			assert.False(t, m.CanTransition(shared.RoleAdmin, from, to), "%s -> %s", from, to)
		}
	}
}

func TestStatusMachine_Relationships(t *testing.T) {
	m := newMachine()
	assigned := partnerUserID

	cases := []struct {
		name  string
		order *Order
		to    Status
		actor shared.Actor
	}{
		{"owner of another restaurant", orderIn(StatusPending, nil), StatusConfirmed, shared.Actor{UserID: 999, Role: shared.RoleRestaurantOwner}},
		{"partner not assigned", orderIn(StatusReadyForPickup, &assigned), StatusOutForDelivery, shared.Actor{UserID: 999, Role: shared.RoleDeliveryPartner}},
		{"partner with no assignment", orderIn(StatusReadyForPickup, nil), StatusOutForDelivery, partner},
		{"another customer", orderIn(StatusPending, nil), StatusCancelled, shared.Actor{UserID: 999, Role: shared.RoleCustomer}},
		{"unknown role", orderIn(StatusPending, nil), StatusCancelled, shared.Actor{UserID: customerUserID, Role: "GUEST"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := m.Apply(tc.order, tc.to, tc.actor, ownerUserID)
			assert.ErrorIs(t, err, ErrUnauthorizedTransition)
		})
	}
}

func TestStatusMachine_ApplyRecordsHistoryAndEvent(t *testing.T) {
	m := newMachine()
	o := orderIn(StatusPending, nil)

	require.NoError(t, m.Apply(o, StatusConfirmed, owner, ownerUserID))

	require.NotNil(t, o.ConfirmedAt())
	assert.Equal(t, transitionAt, *o.ConfirmedAt())
	assert.Equal(t, 3, o.Version(), "version is bumped by the repository, not the machine")

	history := o.NewHistory()
	require.Len(t, history, 1)
	assert.Equal(t, StatusChange{From: StatusPending, To: StatusConfirmed, ActorID: ownerUserID, ActorRole: shared.RoleRestaurantOwner, ChangedAt: transitionAt}, history[0])

	events := o.PullEvents()
	require.Len(t, events, 1)
	changed, ok := events[0].(*OrderStatusChangedEvent)
	require.True(t, ok)
	assert.Equal(t, "Order status updated to CONFIRMED", changed.Message())
	assert.Equal(t, int64(7), changed.OrderID())
}

func TestStatusMachine_SettleDelivery(t *testing.T) {
	m := newMachine()
	assigned := partnerUserID

	// total 250.00 = 200 + 20 + 30, delivery fee 30.00
	o := orderIn(StatusOutForDelivery, &assigned)
	require.NoError(t, m.Apply(o, StatusDelivered, partner, ownerUserID))
	require.True(t, o.TotalAmount().Equals(npr("250")))
	require.NotNil(t, o.DeliveredAt())

	c := customer.RebuildFromDTO(customer.ReconstructionDTO{ID: customerUserID, TotalSpent: npr("100"), LoyaltyPoints: 5, TotalOrders: 3})
	p := delivery.RebuildFromDTO(delivery.ReconstructionDTO{ID: partnerUserID, Status: delivery.StatusOnDelivery, TotalEarnings: npr("10"), TotalDeliveries: 2})

	require.NoError(t, m.SettleDelivery(o, c, p))

	assert.True(t, c.TotalSpent().Equals(npr("350")), "spent %s", c.TotalSpent())
	assert.Equal(t, 7, c.LoyaltyPoints())
	assert.Equal(t, 3, c.TotalOrders())

	assert.True(t, p.TotalEarnings().Equals(npr("34")), "earnings %s", p.TotalEarnings())
	assert.Equal(t, 3, p.TotalDeliveries())
	assert.True(t, p.CanTakeOrder())
}

func TestStatusMachine_SettleDeliveryWithoutPartner(t *testing.T) {
	m := NewStatusMachine(StatusMachineConfig{PartnerShare: decimal.NewNullDecimal(decimal.NewFromFloat(0.7)), LoyaltyPointUnit: decimal.NewFromInt(50)}, nil)
	o := orderIn(StatusOutForDelivery, nil)
	require.NoError(t, m.Apply(o, StatusDelivered, admin, ownerUserID))

	c := customer.RebuildFromDTO(customer.ReconstructionDTO{ID: customerUserID, TotalSpent: npr("0")})
	require.NoError(t, m.SettleDelivery(o, c, nil))
	assert.Equal(t, 5, c.LoyaltyPoints())

	other := customer.RebuildFromDTO(customer.ReconstructionDTO{ID: 999, TotalSpent: npr("0")})
	assert.ErrorIs(t, m.SettleDelivery(o, other, nil), ErrInvalidOrder)
}

func TestAccessPolicy(t *testing.T) {
	policy := NewAccessPolicy()
	assigned := partnerUserID
	o := orderIn(StatusReadyForPickup, &assigned)

	assert.NoError(t, policy.CanView(o, admin, ownerUserID))
	assert.NoError(t, policy.CanView(o, owner, ownerUserID))
	assert.NoError(t, policy.CanView(o, partner, ownerUserID))
	assert.NoError(t, policy.CanView(o, buyer, ownerUserID))
	assert.ErrorIs(t, policy.CanView(o, shared.Actor{UserID: 999, Role: shared.RoleCustomer}, ownerUserID), shared.ErrForbidden)

	assert.NoError(t, policy.CanAssignDelivery(o, owner, ownerUserID))
	assert.ErrorIs(t, policy.CanAssignDelivery(o, partner, ownerUserID), ErrUnauthorizedTransition)

	assert.NoError(t, policy.CanListCustomerOrders(buyer, customerUserID))
	assert.ErrorIs(t, policy.CanListCustomerOrders(owner, customerUserID), ErrAccessDenied)
	assert.NoError(t, policy.CanListRestaurantOrders(owner, restaurantID, ownerUserID))
	assert.ErrorIs(t, policy.CanListRestaurantOrders(buyer, restaurantID, ownerUserID), ErrAccessDenied)
}

func TestNewStatusMachine_PartnerShare(t *testing.T) {
	assert.True(t, newMachine().PartnerShare().Equal(DefaultPartnerShare), "unset share falls back to the default")

	unpaid := NewStatusMachine(StatusMachineConfig{PartnerShare: decimal.NewNullDecimal(decimal.Zero)}, nil)
	assert.True(t, unpaid.PartnerShare().IsZero(), "configured zero is kept")

	assigned := partnerUserID
	o := orderIn(StatusOutForDelivery, &assigned)
	require.NoError(t, unpaid.Apply(o, StatusDelivered, partner, ownerUserID))

	c := customer.RebuildFromDTO(customer.ReconstructionDTO{ID: customerUserID, TotalSpent: npr("0")})
	p := delivery.RebuildFromDTO(delivery.ReconstructionDTO{ID: partnerUserID, Status: delivery.StatusOnDelivery, TotalEarnings: npr("10")})
	require.NoError(t, unpaid.SettleDelivery(o, c, p))

	assert.True(t, p.TotalEarnings().Equals(npr("10")), "earnings %s", p.TotalEarnings())
	assert.Equal(t, 1, p.TotalDeliveries())
}
