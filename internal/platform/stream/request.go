package stream

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vovakirdan/chicago-loop/internal/engine"
	"github.com/vovakirdan/chicago-loop/internal/levels"
)

// maxGenerationsLimit caps the max query parameter.
const maxGenerationsLimit = 10000

// RunRequest is a fully resolved spectator run.
type RunRequest struct {
	Level    levels.Level
	Pattern  engine.SeedPattern
	Rules    engine.RuleSet
	Engine   engine.Config
	Interval time.Duration
}

// requestError carries the HTTP status for a rejected request.
type requestError struct {
	status int
	msg    string
}

func (e *requestError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &requestError{status: http.StatusBadRequest, msg: fmt.Sprintf(format, args...)}
}

// ParseRunRequest resolves the query of a /ws request against a catalog.
//
//	level     level ID (required)
//	seed      comma-separated pattern rows; defaults to the level's solution
//	rules     B/S notation; defaults to the solution rules, then B3/S23
//	max       generation limit
//	sensing   previous or next
//	interval  milliseconds between frames
func ParseRunRequest(q url.Values, catalog []levels.Level, base engine.Config, interval time.Duration) (RunRequest, error) {
	id := q.Get("level")
	if id == "" {
		return RunRequest{}, badRequest("missing level")
	}
	l, ok := levels.Find(catalog, id)
	if !ok {
		return RunRequest{}, &requestError{status: http.StatusNotFound, msg: fmt.Sprintf("unknown level %q", id)}
	}

	req := RunRequest{
		Level:    l,
		Rules:    engine.ConwayRules(),
		Engine:   base,
		Interval: interval,
	}
	if l.Solution != nil {
		req.Pattern = l.Solution.Pattern.Clone()
		req.Rules = l.Solution.Rules
	}

	if s := q.Get("seed"); s != "" {
		p, err := engine.ParseSeedPattern(strings.Split(s, ","))
		if err != nil {
			return RunRequest{}, badRequest("%v", err)
		}
		req.Pattern = p
	} else if l.Solution == nil {
		return RunRequest{}, badRequest("level %q has no solution, a seed is required", id)
	}

	if s := q.Get("rules"); s != "" {
		r, err := engine.ParseRuleSet(s)
		if err != nil {
			return RunRequest{}, badRequest("%v", err)
		}
		req.Rules = r
	}

	if s := q.Get("max"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 || n > maxGenerationsLimit {
			return RunRequest{}, badRequest("max must be between 1 and %d", maxGenerationsLimit)
		}
		req.Engine.MaxGenerations = n
	}

	if s := q.Get("sensing"); s != "" {
		sensing, err := engine.ParseSensing(s)
		if err != nil {
			return RunRequest{}, badRequest("%v", err)
		}
		req.Engine.Sensing = sensing
	}

	if s := q.Get("interval"); s != "" {
		ms, err := strconv.Atoi(s)
		if err != nil || ms < 0 {
			return RunRequest{}, badRequest("interval must be a non-negative number of milliseconds")
		}
		req.Interval = time.Duration(ms) * time.Millisecond
	}

	return req, nil
}

// Seed returns an engine seeded for the request.
func (r RunRequest) Seed() (*engine.Engine, error) {
	e := engine.New(r.Engine)
	if err := e.Seed(r.Level.Board, r.Rules, r.Pattern, r.Level.Start, r.Level.Goal); err != nil {
		return nil, badRequest("%v", err)
	}
	return e, nil
}
