package mlb

// Team identifies a team in the Stats API.
type Team struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Person identifies a player in the Stats API.
type Person struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
}

// Transaction is a single roster transaction as returned by the Stats API.
// FromTeam and ToTeam are optional: free-agent signings have no origin team
// and free-agency declarations may have no destination.
type Transaction struct {
	ID          int64  `json:"id"`
	Person      Person `json:"person"`
	FromTeam    *Team  `json:"fromTeam,omitempty"`
	ToTeam      *Team  `json:"toTeam,omitempty"`
	Date        string `json:"date"`
	TypeCode    string `json:"typeCode"`
	TypeDesc    string `json:"typeDesc"`
	Description string `json:"description"`
}

// FromTeamName returns the origin team name, or "" when absent.
func (t Transaction) FromTeamName() string {
	if t.FromTeam == nil {
		return ""
	}
	return t.FromTeam.Name
}

// ToTeamName returns the destination team name, or "" when absent.
func (t Transaction) ToTeamName() string {
	if t.ToTeam == nil {
		return ""
	}
	return t.ToTeam.Name
}

// ToTeamID returns the destination team ID, or 0 when absent.
func (t Transaction) ToTeamID() int64 {
	if t.ToTeam == nil {
		return 0
	}
	return t.ToTeam.ID
}
