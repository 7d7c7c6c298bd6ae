package order

import (
	"fooddash/domain/order"
	"fooddash/domain/shared"
)

func toOrderResponse(o *order.Order) *OrderResponse {
	items := make([]OrderItemResponse, len(o.Items()))
	for i, item := range o.Items() {
		items[i] = OrderItemResponse{
			ID:                  item.ID(),
			MenuItemID:          item.MenuItemID(),
			Name:                item.Name(),
			Quantity:            item.Quantity(),
			UnitPrice:           item.UnitPrice().Amount().StringFixed(2),
			TotalPrice:          item.TotalPrice().Amount().StringFixed(2),
			SpecialInstructions: item.SpecialInstructions(),
		}
	}

	history := make([]StatusHistoryResponse, len(o.History()))
	for i, h := range o.History() {
		history[i] = StatusHistoryResponse{
			From:      string(h.From),
			To:        string(h.To),
			ActorID:   h.ActorID,
			ActorRole: string(h.ActorRole),
			ChangedAt: h.ChangedAt,
		}
	}

	return &OrderResponse{
		ID:                       o.ID(),
		OrderNumber:              o.OrderNumber(),
		CustomerID:               o.CustomerID(),
		RestaurantID:             o.RestaurantID(),
		DeliveryPartnerID:        o.DeliveryPartnerID(),
		Status:                   string(o.Status()),
		DeliveryAddress:          o.DeliveryAddress(),
		DeliveryInstructions:     o.DeliveryInstructions(),
		Currency:                 o.Subtotal().Currency(),
		Subtotal:                 amount(o.Subtotal()),
		TaxAmount:                amount(o.Tax()),
		DeliveryFee:              amount(o.DeliveryFee()),
		DiscountAmount:           amount(o.Discount()),
		TotalAmount:              amount(o.TotalAmount()),
		PaymentMethod:            string(o.PaymentMethod()),
		IsPaid:                   o.IsPaid(),
		CouponCode:               o.CouponCode(),
		EstimatedDeliveryMinutes: o.EstimatedDeliveryMinutes(),
		Items:                    items,
		History:                  history,
		CreatedAt:                o.CreatedAt(),
		UpdatedAt:                o.UpdatedAt(),
		ConfirmedAt:              o.ConfirmedAt(),
		ReadyAt:                  o.ReadyAt(),
		DeliveredAt:              o.DeliveredAt(),
		Version:                  o.Version(),
	}
}

func toOrderListResponse(orders []*order.Order, total int64, page shared.PageRequest) *OrderListResponse {
	out := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = toOrderResponse(o)
	}
	return &OrderListResponse{
		Orders:     out,
		Total:      total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages(total),
	}
}

// amount 金额统一保留两位小数输出
func amount(m shared.Money) string {
	return m.Amount().StringFixed(2)
}
