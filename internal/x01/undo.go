package x01

// UndoLastVisit reverts exactly the most recently accepted visit in the
// match, wherever it is. When the current leg is empty (it was just opened by
// a leg or set transition) the undo crosses the boundary: the empty leg (and
// its enclosing just-opened set, if that leg was all it had) is discarded,
// the previous leg reopens, and its winning visit is reverted. Undoing the
// finishing visit of the match un-finishes it back to in_progress. After a
// successful undo the darts are back with the reverted visit's thrower.
func (m *Match) UndoLastVisit() error {
	leg := m.CurrentLegState()

	if len(leg.Visits) == 0 {
		if m.CurrentLeg == 0 && m.CurrentSet == 0 {
			return ErrNothingToUndo
		}
		if m.CurrentLeg > 0 {
			set := m.CurrentSetState()
			set.Legs = set.Legs[:len(set.Legs)-1]
			m.CurrentLeg--
		} else {
			m.Sets = m.Sets[:len(m.Sets)-1]
			m.CurrentSet--
			m.CurrentLeg = len(m.CurrentSetState().Legs) - 1
		}
		leg = m.CurrentLegState()
	}

	v, err := leg.RevertLast()
	if err != nil {
		return err
	}

	if v.Checkout {
		set := m.CurrentSetState()
		if set.WinnerID != nil && *set.WinnerID == v.PlayerID {
			set.WinnerID = nil
			set.FinishedAt = nil
		}
		if m.Status == StatusFinished {
			m.Status = StatusInProgress
			m.WinnerID = nil
		}
	}

	m.CurrentPlayerID = v.PlayerID
	m.NextSeq = v.Seq
	if m.totalVisits() == 0 {
		m.Status = StatusPending
	}
	return nil
}
