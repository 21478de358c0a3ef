package combat

import "time"

// runWatchdog polls for a resolution stuck past the softlock timeout for the
// lifetime of the controller. Polling is deliberately coarse: detection may
// lag by up to one interval, which is acceptable for unsticking a frozen
// fight.
func (c *Controller) runWatchdog(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.checkSoftlock()
		}
	}
}

// checkSoftlock force-recovers when the fight has sat in RESOLVING beyond the
// timeout: the resolution-complete signal from the presentation layer never
// arrived, so waiting longer only leaves input disabled forever. Reports
// whether a recovery happened.
func (c *Controller) checkSoftlock() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.destroyed || c.phase != PhaseResolving {
		return false
	}
	elapsed := c.now().Sub(c.lastPhaseChange)
	if elapsed < c.softlockTimeout {
		return false
	}
	return c.forceEndResolutionLocked("watchdog", elapsed)
}
