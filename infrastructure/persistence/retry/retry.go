package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"strings"
	"time"

	"fooddash/config"
	"fooddash/domain/coupon"
	"fooddash/domain/customer"
	"fooddash/domain/delivery"
	"fooddash/domain/order"
	"fooddash/domain/shared"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// MySQL error numbers
const (
	mysqlDuplicateEntry   = 1062
	mysqlLockWaitTimeout  = 1205
	mysqlDeadlockDetected = 1213
)

type Config struct {
	Enabled                       bool
	MaxAttempts                   int
	InitialDelay                  time.Duration
	MaxDelay                      time.Duration
	BackoffFactor                 float64
	JitterEnabled                 bool
	RetryOnConcurrentModification bool
	RetryOnDuplicateOrderNumber   bool
	RetryOnDeadlock               bool
	RetryOnLockTimeout            bool
	RetryPredicate                func(error) bool
}

// DefaultConfig one retry: a conflicting unit of work is reloaded and reapplied once
var DefaultConfig = Config{
	Enabled:                       true,
	MaxAttempts:                   2,
	InitialDelay:                  20 * time.Millisecond,
	MaxDelay:                      500 * time.Millisecond,
	BackoffFactor:                 2.0,
	JitterEnabled:                 true,
	RetryOnConcurrentModification: true,
	RetryOnDuplicateOrderNumber:   true,
	RetryOnDeadlock:               true,
	RetryOnLockTimeout:            true,
}

func FromAppConfig(appConfig *config.Config) Config {
	retryConfig := appConfig.Database.Retry

	return Config{
		Enabled:                       retryConfig.Enabled,
		MaxAttempts:                   retryConfig.MaxAttempts,
		InitialDelay:                  retryConfig.InitialDelay,
		MaxDelay:                      retryConfig.MaxDelay,
		BackoffFactor:                 retryConfig.BackoffFactor,
		JitterEnabled:                 retryConfig.JitterEnabled,
		RetryOnConcurrentModification: retryConfig.RetryOnConcurrentModification,
		RetryOnDuplicateOrderNumber:   retryConfig.RetryOnDuplicateOrderNumber,
		RetryOnDeadlock:               retryConfig.RetryOnDeadlock,
		RetryOnLockTimeout:            retryConfig.RetryOnLockTimeout,
	}
}

func ExponentialBackoffWithJitter(attempt int, config Config) time.Duration {
	if attempt <= 0 {
		return 0
	}
	delay := float64(config.InitialDelay) * math.Pow(config.BackoffFactor, float64(attempt-1))
	if delay > float64(config.MaxDelay) {
		delay = float64(config.MaxDelay)
	}
	if config.JitterEnabled {
		jitterFactor := 0.8 + rand.Float64()*0.4
		delay = delay * jitterFactor
	}
	if delay < 0 {
		delay = 0
	}

	return time.Duration(delay)
}

// IsConcurrentModification optimistic version check lost against another writer
func IsConcurrentModification(err error) bool {
	return errors.Is(err, order.ErrConcurrentModification) ||
		errors.Is(err, customer.ErrConcurrentModification) ||
		errors.Is(err, delivery.ErrConcurrentModification) ||
		errors.Is(err, coupon.ErrConcurrentModification)
}

// IsDuplicateKey unique index violation reported by MySQL, SQLite or GORM's translator
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsDeadlock deadlocks, lock wait timeouts and SQLite busy errors
func IsDeadlock(err error) bool {
	if err == nil {
		return false
	}
	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDeadlockDetected || mysqlErr.Number == mysqlLockWaitTimeout
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "deadlock") ||
		strings.Contains(errStr, "lock wait timeout") ||
		strings.Contains(errStr, "database is locked")
}

func IsRetryableError(err error, config Config) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}
	if config.RetryPredicate != nil && config.RetryPredicate(err) {
		return true
	}
	if config.RetryOnConcurrentModification && IsConcurrentModification(err) {
		return true
	}
	if config.RetryOnDuplicateOrderNumber && errors.Is(err, order.ErrDuplicateOrderNumber) {
		return true
	}
	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlDeadlockDetected:
			return config.RetryOnDeadlock
		case mysqlLockWaitTimeout:
			return config.RetryOnLockTimeout
		}
	}
	if config.RetryOnDeadlock && IsDeadlock(err) {
		return true
	}
	errStr := err.Error()
	if errors.Is(err, gorm.ErrInvalidTransaction) ||
		(strings.Contains(errStr, "connection") && strings.Contains(errStr, "lost")) {
		return true
	}

	return false
}

func ExecuteWithRetry(ctx context.Context, config Config, fn func(ctx context.Context) error) error {
	if !config.Enabled || config.MaxAttempts <= 1 {
		return fn(ctx)
	}

	var lastErr error
	var attempt int

	for attempt = 1; attempt <= config.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			if lastErr != nil {
				return lastErr
			}
			return ctx.Err()
		}
		err := fn(ctx)
		if err == nil {
			return nil
		}

		lastErr = err
		if !IsRetryableError(err, config) || attempt == config.MaxAttempts {
			break
		}

		delay := ExponentialBackoffWithJitter(attempt, config)
		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return lastErr
			}
		}
	}

	return lastErr
}

// Classify turns infrastructure failures into the domain error taxonomy
// Timeouts, deadlocks and lock waits become shared.ErrTransient; domain errors pass through
func Classify(entity string, err error) error {
	if err == nil {
		return nil
	}
	if shared.IsTransient(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || IsDeadlock(err) {
		return shared.NewTransientError(entity, err)
	}
	return err
}
