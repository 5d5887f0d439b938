package app

import "forage/internal/sims/forage"

// Play advances w until it finishes or maxTurns turns have run, calling each
// after every turn. A non-positive maxTurns means no cap. Play stops at the
// first error returned by each.
func Play(w *forage.World, maxTurns int, each func(forage.TurnReport) error) error {
	for w.Status() == forage.StatusRunning {
		if maxTurns > 0 && w.Turn() >= maxTurns {
			return nil
		}
		report := w.AdvanceTurn()
		if each == nil {
			continue
		}
		if err := each(report); err != nil {
			return err
		}
	}
	return nil
}
