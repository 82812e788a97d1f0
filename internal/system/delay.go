package system

import (
	"time"
)

// sleep waits for d in MicroDelay slices. It returns early, reporting
// false, as soon as the simulation stops or any of the conditions fails.
func (s *Simulation) sleep(d time.Duration, conditions ...func() bool) bool {
	deadline := time.Now().Add(d)
	for {
		if !s.Running() {
			return false
		}
		for _, ok := range conditions {
			if !ok() {
				return false
			}
		}
		left := time.Until(deadline)
		if left <= 0 {
			return true
		}
		time.Sleep(min(left, s.Tun.MicroDelay))
	}
}
