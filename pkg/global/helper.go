package global

import (
	"context"
	"time"
)

func GetDefaultTimer() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// GetTimerFrom bounds a call to the default timeout while keeping the parent's values and cancellation
func GetTimerFrom(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, 10*time.Second)
}
