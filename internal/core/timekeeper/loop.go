package timekeeper

import (
	"time"

	"studywithme/internal/core/model"
)

// Prompter owns the screens shown between runs.
type Prompter interface {
	AskStartTime(now time.Time) (hour, minute int, err error)
	ShowMessage(text string)
}

// Loop asks for a start time, waits for it, runs every session and then
// holds completion on screen until the user confirms. It only returns with
// ErrQuit or the first other failure.
func (keeper *Keeper) Loop(prompter Prompter, config model.Config, completion string) error {
	for {
		hour, minute, err := prompter.AskStartTime(keeper.clock.Now())
		if err != nil {
			return err
		}

		base := ResolveStart(keeper.clock.Now(), hour, minute)
		if err := keeper.Countdown(config, base); err != nil {
			return err
		}
		if err := keeper.RunPomodoro(config, base); err != nil {
			return err
		}

		prompter.ShowMessage(completion)
		if err := keeper.WaitForConfirm(); err != nil {
			return err
		}
	}
}
