package state

import (
	"github.com/ardanlabs/tipjar/foundation/tipjar/aggregate"
	"github.com/ardanlabs/tipjar/foundation/tipjar/database"
)

// Leaderboard returns the top ten creators from the global list.
func (s *State) Leaderboard() []aggregate.Entry {
	return aggregate.TopCreators(s.db.ReadTips(database.GlobalKey), s.db.Lookup)
}

// Spotlight returns the top three creators from the global list.
func (s *State) Spotlight() []aggregate.Entry {
	return aggregate.Spotlight(s.db.ReadTips(database.GlobalKey), s.db.Lookup)
}

// Dashboard returns the summary of tips received by the address.
func (s *State) Dashboard(address string) aggregate.Dashboard {
	return aggregate.CreatorDashboard(address, s.db.ReadTips(database.GlobalKey), s.db.Lookup)
}

// TipperStats returns the statistics for tips sent from this wallet.
func (s *State) TipperStats() aggregate.TipperStats {
	return aggregate.Stats(s.db.ReadTips(database.SenderKey))
}

// RecentTips returns the tips sent from this wallet, newest first.
func (s *State) RecentTips() []database.TipRecord {
	return s.db.ReadTips(database.SenderKey)
}

// GlobalTips returns the global tip feed, newest first.
func (s *State) GlobalTips() []database.TipRecord {
	return s.db.ReadTips(database.GlobalKey)
}

// QueryProfile returns the profile for the address, if one is saved.
func (s *State) QueryProfile(address string) (database.CreatorProfile, bool) {
	return s.db.QueryProfile(address)
}
