package order

import (
	"context"
	"fmt"
	"time"
)

// NumberPrefix 订单号前缀
const NumberPrefix = "ORD"

// Generate ORD-YYYYMMDD-NNN，序号为当日已有订单数 + 1，至少三位
func Generate(day time.Time, existingToday int64) string {
	return fmt.Sprintf("%s-%s-%03d", NumberPrefix, day.Format("20060102"), existingToday+1)
}

// DayBounds 返回 t 所在自然日的 [开始, 结束)，按 t 的时区计算
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// DailyCounter 统计某时间段内创建的订单数
type DailyCounter interface {
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
}

// NumberGenerator 订单号生成器
// 同日并发下单可能生成相同订单号，由唯一索引兜底（ErrDuplicateOrderNumber）
type NumberGenerator struct {
	counter DailyCounter
}

func NewNumberGenerator(counter DailyCounter) *NumberGenerator {
	return &NumberGenerator{counter: counter}
}

// Next 生成 at 所在日期的下一个订单号
func (g *NumberGenerator) Next(ctx context.Context, at time.Time) (string, error) {
	start, end := DayBounds(at)
	count, err := g.counter.CountCreatedBetween(ctx, start, end)
	if err != nil {
		return "", err
	}
	return Generate(at, count), nil
}
