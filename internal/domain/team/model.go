package team

import "fmt"

// Team is a fantasy team entered into a league and run by one manager.
type Team struct {
	ID            string
	LeagueID      string
	Name          string
	ManagerUserID string
	ManagerName   string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// IsManagedBy reports whether userID may edit this team's lineups.
func (t Team) IsManagedBy(userID string) bool {
	return userID != "" && t.ManagerUserID == userID
}
