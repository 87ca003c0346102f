package domain

// Table is a mongo collection name
type Table string

const (
	TableTournaments      Table = "tournaments"
	TablePlayers          Table = "tournament_players"
	TableAssignments      Table = "tournament_assignments"
	TableAuctionSnapshots Table = "auction_snapshots"
	TableUsers            Table = "tournament_users"
)
