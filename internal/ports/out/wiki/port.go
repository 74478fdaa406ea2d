// Package wiki defines the destination-text capability.
package wiki

import "context"

// Service returns free-text background for a destination. Unknown
// destinations yield an empty string, not an error.
type Service interface {
	DestinationBasicInfo(ctx context.Context, destinationName string) (string, error)
}
