package driver

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/leaderboard"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Reporter records finished runs locally and submits them to the
// leaderboard. Either collaborator may be nil.
type Reporter struct {
	Store       *storage.Store
	Leaderboard *leaderboard.Client
	Logger      *log.Logger
}

// Report is the outcome of recording one run.
type Report struct {
	RunID     int64 // 0 if the run was not stored
	Submitted bool
	Message   string // from the leaderboard service
	Err       error  // first failure; never fatal to the caller
}

// Record saves a run with a positive score and, when a name is given,
// submits it. Failures are returned in the report; nothing is retried.
func (r Reporter) Record(ctx context.Context, mode, name string, score int) Report {
	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}
	name = strings.TrimSpace(name)

	var rep Report
	if r.Store != nil && score > 0 {
		id, err := r.Store.SaveRun(name, mode, score, false)
		if err != nil {
			logger.Warn("could not save run", "mode", mode, "score", score, "error", err)
			rep.Err = err
		} else {
			rep.RunID = id
		}
	}

	if r.Leaderboard == nil || name == "" {
		return rep
	}

	// The client logs its own failures.
	msg, err := r.Leaderboard.Submit(ctx, name, score)
	if err != nil {
		if rep.Err == nil {
			rep.Err = err
		}
		return rep
	}
	rep.Submitted = true
	rep.Message = msg

	if rep.RunID != 0 {
		if err := r.Store.MarkSubmitted(rep.RunID, name); err != nil {
			logger.Warn("could not mark run submitted", "run", rep.RunID, "error", err)
		}
	}
	return rep
}
