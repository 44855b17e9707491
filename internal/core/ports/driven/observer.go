package driven

import "github.com/zaibi117/readme-maker/internal/core/domain"

// StatusObserver receives every processing status transition in order.
// Implementations must not block.
type StatusObserver interface {
	OnStatus(status domain.ProcessingStatus)
}
