package mysql

import (
	"context"
	"fmt"
	"time"

	"fooddash/domain/shared"
	"fooddash/infrastructure/persistence"
	"fooddash/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// maxLastErrorLength 与 outbox_events.last_error 列宽一致
const maxLastErrorLength = 500

// OutboxRepository 订单事件的 outbox 表
// 写入只发生在工作单元事务内；状态流转 PENDING → PROCESSING → PUBLISHED，
// 投递失败回到 PENDING，重试次数用完置为 FAILED
type OutboxRepository struct {
	db *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

func (r *OutboxRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *OutboxRepository) now() time.Time {
	return r.db.NowFunc()
}

// SaveEvent 在 ctx 携带的事务中写入；单独调用时就是一条 INSERT
func (r *OutboxRepository) SaveEvent(ctx context.Context, event shared.DomainEvent) error {
	if err := shared.ValidateEvent(event); err != nil {
		return fmt.Errorf("invalid domain event: %w", err)
	}
	row, err := po.FromDomainEvent(event)
	if err != nil {
		return fmt.Errorf("encode %s: %w", event.EventName(), err)
	}
	if err := r.getDB(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("insert outbox event %s: %w", event.EventName(), err)
	}
	return nil
}

// GetPendingEvents 按写入顺序取一批，同一订单的通知保持先后
func (r *OutboxRepository) GetPendingEvents(ctx context.Context, limit int) ([]*po.OutboxEventPO, error) {
	var events []*po.OutboxEventPO
	err := r.getDB(ctx).
		Where("status = ?", string(po.EventStatusPending)).
		Order("created_at ASC").
		Order("id ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get pending events: %w", err)
	}
	return events, nil
}

// ClaimEvent PENDING → PROCESSING 的条件更新；false 表示已被其他 worker 领走
func (r *OutboxRepository) ClaimEvent(ctx context.Context, eventID string) (bool, error) {
	result := r.getDB(ctx).Model(&po.OutboxEventPO{}).
		Where("id = ? AND status = ?", eventID, string(po.EventStatusPending)).
		Updates(map[string]interface{}{
			"status":     string(po.EventStatusProcessing),
			"updated_at": r.now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *OutboxRepository) MarkEventPublished(ctx context.Context, eventID string) error {
	result := r.getDB(ctx).Model(&po.OutboxEventPO{}).
		Where("id = ?", eventID).
		Updates(map[string]interface{}{
			"status":     string(po.EventStatusPublished),
			"last_error": "",
			"updated_at": r.now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("outbox event not found: %s", eventID)
	}
	return nil
}

// MarkEventFailed 重试次数 +1 并记录原因；达到 maxRetries 后置为 FAILED
// 分两条语句：MySQL 的 SET 按顺序读取已更新的列，SQLite 读取旧值
func (r *OutboxRepository) MarkEventFailed(ctx context.Context, eventID string, maxRetries int, cause error) error {
	lastError := ""
	if cause != nil {
		lastError = cause.Error()
		if len(lastError) > maxLastErrorLength {
			lastError = lastError[:maxLastErrorLength]
		}
	}

	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&po.OutboxEventPO{}).
			Where("id = ?", eventID).
			Updates(map[string]interface{}{
				"retry_count": gorm.Expr("retry_count + 1"),
				"last_error":  lastError,
				"updated_at":  r.now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("outbox event not found: %s", eventID)
		}
		return tx.Model(&po.OutboxEventPO{}).
			Where("id = ?", eventID).
			Update("status", gorm.Expr("CASE WHEN retry_count >= ? THEN ? ELSE ? END",
				maxRetries, string(po.EventStatusFailed), string(po.EventStatusPending))).Error
	})
}

// ReleaseStuckEvents 把处理中超时的事件放回待发送，worker 崩溃后由下一轮接管
func (r *OutboxRepository) ReleaseStuckEvents(ctx context.Context, olderThan time.Duration) (int64, error) {
	now := r.now()
	result := r.getDB(ctx).Model(&po.OutboxEventPO{}).
		Where("status = ? AND updated_at < ?", string(po.EventStatusProcessing), now.Add(-olderThan)).
		Updates(map[string]interface{}{
			"status":     string(po.EventStatusPending),
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}

// CountByStatus 健康检查和测试用
func (r *OutboxRepository) CountByStatus(ctx context.Context, status po.EventStatus) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.OutboxEventPO{}).Where("status = ?", string(status)).Count(&count).Error
	return count, err
}

// FindByID 排查投递失败时查看单条事件
func (r *OutboxRepository) FindByID(ctx context.Context, eventID string) (*po.OutboxEventPO, error) {
	var row po.OutboxEventPO
	if err := r.getDB(ctx).First(&row, "id = ?", eventID).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

var _ shared.OutboxRepository = (*OutboxRepository)(nil)
