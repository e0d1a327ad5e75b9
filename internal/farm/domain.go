// Package farm holds the operational entities of the fish farm. The
// accounting engine only needs ponds, which act as the sub-entity filter on
// financial views.
package farm

import "time"

// Pond model.
type Pond struct {
	ID        int64
	Name      string
	AreaSqM   float64
	DepthM    float64
	Active    bool
	CreatedAt time.Time
}
