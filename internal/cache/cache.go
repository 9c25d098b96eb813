package cache

import (
	"context"
	"time"
)

type DeliveryCache interface {
	StoreDelivery(ctx context.Context, messageID, userID string, sentAt time.Time) error
}
