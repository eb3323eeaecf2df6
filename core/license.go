package core

// requireLicense guards license-restricted events: move, delete,
// status-updated, and open-for-edit guard fan-out. The gate is only paid when
// at least one handler binding exists for the event; events with no matching
// handlers take the fast path. A failed gate aborts the current operation,
// never the process.
func (s *Service) requireLicense(event string) error {
	if s == nil {
		return nil
	}
	if !s.registry.HasHandlers(event) {
		return nil
	}
	if s.licenseChecker == nil || s.licenseChecker.HasTeamLicense() {
		return nil
	}
	return licenseError(event)
}
