package mocks

import (
	"sync"

	"fooddash/infrastructure/persistence/mysql/po"
)

// Store 内存数据库，行格式复用 GORM 持久化对象
// 写操作由 MockUnitOfWork 串行化；回滚通过快照恢复
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	orders       map[int64]po.OrderPO
	orderItems   map[int64][]po.OrderItemPO
	orderHistory map[int64][]po.OrderStatusHistoryPO
	orderNumbers map[string]int64
	customers    map[int64]po.CustomerPO
	partners     map[int64]po.DeliveryPartnerPO
	restaurants  map[int64]po.RestaurantPO
	menuItems    map[int64]po.MenuItemPO
	coupons      map[string]po.CouponPO

	nextOrderID  int64
	nextItemID   int64
	nextCouponID int64
}

func NewStore() *Store {
	return &Store{
		orders:       make(map[int64]po.OrderPO),
		orderItems:   make(map[int64][]po.OrderItemPO),
		orderHistory: make(map[int64][]po.OrderStatusHistoryPO),
		orderNumbers: make(map[string]int64),
		customers:    make(map[int64]po.CustomerPO),
		partners:     make(map[int64]po.DeliveryPartnerPO),
		restaurants:  make(map[int64]po.RestaurantPO),
		menuItems:    make(map[int64]po.MenuItemPO),
		coupons:      make(map[string]po.CouponPO),
	}
}

type snapshot struct {
	orders       map[int64]po.OrderPO
	orderItems   map[int64][]po.OrderItemPO
	orderHistory map[int64][]po.OrderStatusHistoryPO
	orderNumbers map[string]int64
	customers    map[int64]po.CustomerPO
	partners     map[int64]po.DeliveryPartnerPO
	coupons      map[string]po.CouponPO
	nextOrderID  int64
	nextItemID   int64
	nextCouponID int64
}

// snapshot 复制所有可写表；餐厅和菜单只在初始化时写入，不参与回滚
func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return snapshot{
		orders:       copyMap(s.orders),
		orderItems:   copySliceMap(s.orderItems),
		orderHistory: copySliceMap(s.orderHistory),
		orderNumbers: copyMap(s.orderNumbers),
		customers:    copyMap(s.customers),
		partners:     copyMap(s.partners),
		coupons:      copyMap(s.coupons),
		nextOrderID:  s.nextOrderID,
		nextItemID:   s.nextItemID,
		nextCouponID: s.nextCouponID,
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = snap.orders
	s.orderItems = snap.orderItems
	s.orderHistory = snap.orderHistory
	s.orderNumbers = snap.orderNumbers
	s.customers = snap.customers
	s.partners = snap.partners
	s.coupons = snap.coupons
	s.nextOrderID = snap.nextOrderID
	s.nextItemID = snap.nextItemID
	s.nextCouponID = snap.nextCouponID
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copySliceMap[K comparable, V any](m map[K][]V) map[K][]V {
	out := make(map[K][]V, len(m))
	for k, v := range m {
		out[k] = append([]V(nil), v...)
	}
	return out
}
