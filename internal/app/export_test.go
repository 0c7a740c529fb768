package app

// HoldRefreshForTest marks a refresh tick as in flight and returns the
// release func, letting tests exercise the re-entrancy guard.
func (s *Service) HoldRefreshForTest() func() {
	s.refreshing.Store(true)
	return func() { s.refreshing.Store(false) }
}
