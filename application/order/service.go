/*
Package order Application Layer - Order Business Process Orchestration

Responsibilities of Application Layer:
1. Receive external requests (usually from Controller) together with the calling actor
2. Load aggregates and call domain services for business rule validation
3. Call aggregate root methods to execute business operations
4. Use one UoW per call to manage transactions and event collection
5. Return results to caller

Important: Application services do not directly publish events!
- UoW collects events from aggregates and hands them to the outbox (GORM) or
  to the in-process publisher (memory) only after the unit of work succeeds
- Notifications are sent from there, a failed notification never rolls back an order
*/
package order

import (
	"context"
	"errors"
	"time"

	"fooddash/domain/coupon"
	"fooddash/domain/customer"
	"fooddash/domain/delivery"
	"fooddash/domain/order"
	"fooddash/domain/pricing"
	"fooddash/domain/restaurant"
	"fooddash/domain/shared"
	"fooddash/pkg/logger"

	"go.uber.org/zap"
)

// DefaultOperationTimeout 单次操作的默认时限
const DefaultOperationTimeout = 5 * time.Second

// Repositories 订单编排需要的全部仓储
type Repositories struct {
	Orders      order.Repository
	Customers   customer.Repository
	Partners    delivery.Repository
	Restaurants restaurant.Repository
	Coupons     coupon.Repository
}

// Options 计价、结算与超时参数
type Options struct {
	Pricing          pricing.Config
	StatusMachine    order.StatusMachineConfig
	OperationTimeout time.Duration
	Clock            shared.Clock
}

// ApplicationService Order application service - coordinates order-related business processes
type ApplicationService struct {
	repos         Repositories
	uowFactory    shared.UnitOfWorkFactory
	pricing       *pricing.Engine
	statusMachine *order.StatusMachine
	access        *order.AccessPolicy
	numbers       *order.NumberGenerator
	owners        *restaurantOwnerLookup
	coupons       *couponResolver
	now           shared.Clock
	timeout       time.Duration
}

// NewApplicationService Create order application service
func NewApplicationService(repos Repositories, uowFactory shared.UnitOfWorkFactory, opts Options) *ApplicationService {
	if opts.Clock == nil {
		opts.Clock = shared.SystemClock
	}
	if opts.OperationTimeout <= 0 {
		opts.OperationTimeout = DefaultOperationTimeout
	}
	return &ApplicationService{
		repos:         repos,
		uowFactory:    uowFactory,
		pricing:       pricing.NewEngine(opts.Pricing, opts.Clock),
		statusMachine: order.NewStatusMachine(opts.StatusMachine, opts.Clock),
		access:        order.NewAccessPolicy(),
		numbers:       order.NewNumberGenerator(repos.Orders),
		owners:        &restaurantOwnerLookup{restaurantRepo: repos.Restaurants},
		coupons:       &couponResolver{couponRepo: repos.Coupons},
		now:           opts.Clock,
		timeout:       opts.OperationTimeout,
	}
}

// ============================================================================
// Application Service Methods - Business Process Orchestration
// ============================================================================

// CreateOrder Place an order in PENDING
// Order, items, customer stats and coupon usage are saved in one unit of work
func (s *ApplicationService) CreateOrder(ctx context.Context, actor shared.Actor, req CreateOrderRequest) (*OrderResponse, error) {
	customerID, err := s.resolveCustomer(actor, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if len(req.Items) == 0 {
		return nil, order.NewEmptyOrderItemsError()
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, order.NewInvalidQuantityError(item.MenuItemID, item.Quantity)
		}
	}
	paymentMethod, err := order.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var o *order.Order
	uow := s.uowFactory.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		c, err := s.repos.Customers.FindByID(ctx, customerID)
		if err != nil {
			return err
		}
		r, err := s.repos.Restaurants.FindByID(ctx, req.RestaurantID)
		if err != nil {
			return err
		}
		if err := r.EnsureAcceptingOrders(); err != nil {
			return err
		}

		lines := make([]order.OrderItem, 0, len(req.Items))
		for _, item := range req.Items {
			m, err := s.repos.Restaurants.FindMenuItem(ctx, r.ID(), item.MenuItemID)
			if err != nil {
				return err
			}
			if err := m.EnsureOrderable(r.ID()); err != nil {
				return err
			}
			line, err := order.NewLineItem(m.ID(), m.Name(), item.Quantity, m.Price(), item.SpecialInstructions)
			if err != nil {
				return err
			}
			lines = append(lines, line)
		}

		subtotal, err := order.SumItems(r.DeliveryFee().Currency(), lines)
		if err != nil {
			return err
		}
		if subtotal.IsLessThan(r.MinimumOrderAmount()) {
			return order.NewBelowMinimumOrderError(subtotal, r.MinimumOrderAmount())
		}

		cp, err := s.coupons.Resolve(ctx, req.CouponCode)
		if err != nil {
			return err
		}
		totals, err := s.pricing.ComputeTotals(pricing.Input{
			Subtotal:     subtotal,
			DeliveryFee:  r.DeliveryFee(),
			Coupon:       cp,
			RestaurantID: r.ID(),
		})
		if err != nil {
			return err
		}

		now := s.now()
		number, err := s.numbers.Next(ctx, now)
		if err != nil {
			return err
		}

		couponCode := ""
		if totals.CouponApplied {
			couponCode = cp.Code()
		}
		o, err = order.NewOrder(order.PlaceOrderParams{
			OrderNumber:              number,
			CustomerID:               c.ID(),
			RestaurantID:             r.ID(),
			DeliveryAddress:          req.DeliveryAddress,
			DeliveryInstructions:     req.DeliveryInstructions,
			PaymentMethod:            paymentMethod,
			Items:                    lines,
			Totals:                   totals,
			CouponCode:               couponCode,
			EstimatedDeliveryMinutes: r.EstimatedDeliveryMinutes(),
			PlacedAt:                 now,
			PlacedBy:                 actor,
		})
		if err != nil {
			return err
		}
		if err := s.repos.Orders.Save(ctx, o); err != nil {
			return err
		}

		c.RecordOrderPlaced(now)
		if err := s.repos.Customers.Save(ctx, c); err != nil {
			return err
		}

		if totals.CouponApplied {
			if err := cp.RecordUsage(); err != nil {
				return err
			}
			if err := s.repos.Coupons.Save(ctx, cp); err != nil {
				return err
			}
		}

		uow.RegisterNew(o)
		uow.RegisterDirty(c)
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}

	logger.ForOrder(ctx, o.ID()).Info("Order placed",
		zap.String("order_number", o.OrderNumber()),
		zap.Int64("customer_id", o.CustomerID()),
		zap.String("total", o.TotalAmount().String()),
	)
	return toOrderResponse(o), nil
}

// GetOrder Visible to admin, the order's customer, the restaurant owner and the assigned partner
func (s *ApplicationService) GetOrder(ctx context.Context, actor shared.Actor, orderID int64) (*OrderResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	o, err := s.repos.Orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, classify(err)
	}
	ownerID, err := s.owners.OwnerOf(ctx, o.RestaurantID())
	if err != nil {
		return nil, classify(err)
	}
	if err := s.access.CanView(o, actor, ownerID); err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// UpdateOrderStatus Move the order along its lifecycle
// DELIVERED also settles customer and partner stats in the same unit of work
func (s *ApplicationService) UpdateOrderStatus(ctx context.Context, actor shared.Actor, orderID int64, req UpdateOrderStatusRequest) (*OrderResponse, error) {
	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var o *order.Order
	uow := s.uowFactory.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.repos.Orders.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		ownerID, err := s.owners.OwnerOf(ctx, o.RestaurantID())
		if err != nil {
			return err
		}
		if err := s.statusMachine.Apply(o, target, actor, ownerID); err != nil {
			return err
		}

		var p *delivery.Partner
		if id := o.DeliveryPartnerID(); id != nil && target.IsTerminal() {
			if p, err = s.repos.Partners.FindByID(ctx, *id); err != nil {
				return err
			}
		}

		switch {
		case target == order.StatusDelivered:
			c, err := s.repos.Customers.FindByID(ctx, o.CustomerID())
			if err != nil {
				return err
			}
			if err := s.statusMachine.SettleDelivery(o, c, p); err != nil {
				return err
			}
			if err := s.repos.Customers.Save(ctx, c); err != nil {
				return err
			}
			uow.RegisterDirty(c)
		case target.IsTerminal() && p != nil:
			// 取消或拒单时释放已指派的配送员
			p.Release()
		}

		if err := s.repos.Orders.Save(ctx, o); err != nil {
			return err
		}
		if p != nil {
			if err := s.repos.Partners.Save(ctx, p); err != nil {
				return err
			}
			uow.RegisterDirty(p)
		}
		uow.RegisterDirty(o)
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}

	logger.ForOrder(ctx, o.ID()).Info("Order status updated",
		zap.String("status", string(o.Status())),
		zap.Int64("actor_id", actor.UserID),
		zap.String("actor_role", string(actor.Role)),
	)
	return toOrderResponse(o), nil
}

// AssignDeliveryPartner Bind an available partner to the order
// Only admins and the owning restaurant owner may assign
func (s *ApplicationService) AssignDeliveryPartner(ctx context.Context, actor shared.Actor, orderID int64, req AssignDeliveryRequest) (*OrderResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var o *order.Order
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.repos.Orders.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		ownerID, err := s.owners.OwnerOf(ctx, o.RestaurantID())
		if err != nil {
			return err
		}
		if err := s.access.CanAssignDelivery(o, actor, ownerID); err != nil {
			return err
		}

		p, err := s.repos.Partners.FindByID(ctx, req.DeliveryPartnerID)
		if err != nil {
			return err
		}
		if err := p.StartDelivery(); err != nil {
			return err
		}
		if err := o.AssignDeliveryPartner(p.ID(), actor, s.now()); err != nil {
			return err
		}

		if err := s.repos.Orders.Save(ctx, o); err != nil {
			return err
		}
		if err := s.repos.Partners.Save(ctx, p); err != nil {
			return err
		}
		uow.RegisterDirty(o)
		uow.RegisterDirty(p)
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}

	logger.ForOrder(ctx, o.ID()).Info("Delivery partner assigned",
		zap.Int64("delivery_partner_id", req.DeliveryPartnerID),
		zap.String("status", string(o.Status())),
	)
	return toOrderResponse(o), nil
}

// ListOrdersByCustomer The customer themself or an admin
func (s *ApplicationService) ListOrdersByCustomer(ctx context.Context, actor shared.Actor, customerID int64, query ListOrdersQuery) (*OrderListResponse, error) {
	if err := s.access.CanListCustomerOrders(actor, customerID); err != nil {
		return nil, err
	}
	return s.listOrders(ctx, order.NewByCustomerSpecification(customerID), query)
}

// ListOrdersByRestaurant The restaurant owner or an admin
func (s *ApplicationService) ListOrdersByRestaurant(ctx context.Context, actor shared.Actor, restaurantID int64, query ListOrdersQuery) (*OrderListResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	r, err := s.repos.Restaurants.FindByID(ctx, restaurantID)
	if err != nil {
		return nil, classify(err)
	}
	if err := s.access.CanListRestaurantOrders(actor, restaurantID, r.OwnerID()); err != nil {
		return nil, err
	}
	return s.listOrders(ctx, order.NewByRestaurantSpecification(restaurantID), query)
}

func (s *ApplicationService) listOrders(ctx context.Context, base shared.Specification, query ListOrdersQuery) (*OrderListResponse, error) {
	spec := base
	if query.Status != "" {
		status, err := order.ParseStatus(query.Status)
		if err != nil {
			return nil, err
		}
		spec = shared.And(base, order.NewByStatusSpecification(status))
	}
	page := shared.PageRequest{Page: query.Page, PageSize: query.PageSize}.Normalize()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	orders, total, err := s.repos.Orders.FindPage(ctx, spec, page)
	if err != nil {
		return nil, classify(err)
	}
	return toOrderListResponse(orders, total, page), nil
}

// resolveCustomer 顾客只能为自己下单，管理员需指定 customer_id
func (s *ApplicationService) resolveCustomer(actor shared.Actor, requested int64) (int64, error) {
	switch actor.Role {
	case shared.RoleCustomer:
		if requested != 0 && requested != actor.UserID {
			return 0, order.NewAccessDeniedError("customers can only place orders for themselves")
		}
		return actor.UserID, nil
	case shared.RoleAdmin:
		if requested <= 0 {
			return 0, order.NewInvalidOrderError("customer_id", "customer_id is required when ordering on behalf of a customer")
		}
		return requested, nil
	}
	return 0, order.NewAccessDeniedError("role " + string(actor.Role) + " cannot place orders")
}

// classify 超时统一归为暂时性失败
func classify(err error) error {
	if err == nil || shared.IsTransient(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return shared.NewTransientError("order", err)
	}
	return err
}
