package lineup

import "fmt"

// Selection is the editable set of picks for one edit session. Picks keep the
// order the league API returned them in.
type Selection struct {
	picks []Pick
	index map[string]int
}

func NewSelection(picks []Pick) Selection {
	s := Selection{
		picks: make([]Pick, 0, len(picks)),
		index: make(map[string]int, len(picks)),
	}
	for _, pick := range picks {
		if pick.PlayerID == "" {
			continue
		}
		if i, exists := s.index[pick.PlayerID]; exists {
			s.picks[i] = pick
			continue
		}
		s.index[pick.PlayerID] = len(s.picks)
		s.picks = append(s.picks, pick)
	}
	return s
}

// Picks returns a copy of the current picks.
func (s Selection) Picks() []Pick {
	return append([]Pick(nil), s.picks...)
}

func (s Selection) Starters() []Pick {
	out := make([]Pick, 0, StarterCount)
	for _, pick := range s.picks {
		if pick.IsStarter {
			out = append(out, pick)
		}
	}
	return out
}

// Captain returns the first captain found, starter or not.
func (s Selection) Captain() (Pick, bool) {
	for _, pick := range s.picks {
		if pick.IsCaptain {
			return pick, true
		}
	}
	return Pick{}, false
}

// ToggleStarter flips a player between the starters and the bench.
// Benching the captain hands the armband to the first remaining starter;
// promoting a player while nobody is captain makes that player captain.
func (s Selection) ToggleStarter(playerID string) (Selection, error) {
	i, ok := s.index[playerID]
	if !ok {
		return s, fmt.Errorf("%w: %s", ErrUnknownPlayer, playerID)
	}

	next := s.clone()
	pick := next.picks[i]
	pick.IsStarter = !pick.IsStarter

	if !pick.IsStarter && pick.IsCaptain {
		pick.IsCaptain = false
		next.picks[i] = pick
		for j := range next.picks {
			if next.picks[j].IsStarter {
				next.picks[j].IsCaptain = true
				break
			}
		}
		return next, nil
	}

	if pick.IsStarter {
		if _, hasCaptain := next.Captain(); !hasCaptain {
			pick.IsCaptain = true
		}
	}
	next.picks[i] = pick
	return next, nil
}

// SetCaptain moves the armband to playerID, who must already be a starter.
func (s Selection) SetCaptain(playerID string) (Selection, error) {
	i, ok := s.index[playerID]
	if !ok {
		return s, fmt.Errorf("%w: %s", ErrUnknownPlayer, playerID)
	}
	if !s.picks[i].IsStarter {
		return s, fmt.Errorf("%w: %s", ErrCaptainNotStarter, playerID)
	}

	next := s.clone()
	for j := range next.picks {
		next.picks[j].IsCaptain = j == i
	}
	return next, nil
}

func (s Selection) clone() Selection {
	next := Selection{
		picks: append([]Pick(nil), s.picks...),
		index: make(map[string]int, len(s.index)),
	}
	for id, i := range s.index {
		next.index[id] = i
	}
	return next
}
