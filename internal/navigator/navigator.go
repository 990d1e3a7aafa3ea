// Package navigator is the query engine: it decomposes an utterance into
// tasks through the language model, routes each task to its handler over the
// two stores, and composes the ordered result list. Handler faults never
// escape as errors; they become readable messages.
package navigator

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dewansh3255/SPARK/internal/identity"
	"github.com/dewansh3255/SPARK/internal/intent"
	"github.com/dewansh3255/SPARK/internal/jobstore"
	"github.com/dewansh3255/SPARK/internal/logger"
	"github.com/dewansh3255/SPARK/internal/profilestore"
)

const (
	msgEmptyQuery        = "Please enter a question."
	msgUnderstandFailure = "Sorry, I had trouble understanding your request. Please try rephrasing it."
	msgUnsupported       = "Sorry, I can only help with career paths, job searches, people searches, skills, analytics, and hiring forecasts."
	msgStoreError        = "Sorry, an error occurred while retrieving data. Please try again."
)

// Completer is the language-model boundary.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config tunes the engine.
type Config struct {
	RequestTimeout       time.Duration
	EligibilityThreshold float64
	CandidateThreshold   float64
}

// Navigator routes decomposed tasks to query handlers over both stores.
type Navigator struct {
	profiles *profilestore.Store
	jobs     *jobstore.Store
	resolver *identity.Resolver
	llm      Completer
	log      *zap.Logger
	cfg      Config
}

// New builds a Navigator. Zero config fields fall back to defaults
// (60s timeout, 40% eligibility, 60% candidate threshold).
func New(profiles *profilestore.Store, jobs *jobstore.Store, resolver *identity.Resolver, llm Completer, log *zap.Logger, cfg Config) *Navigator {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	if cfg.EligibilityThreshold <= 0 {
		cfg.EligibilityThreshold = 40
	}
	if cfg.CandidateThreshold <= 0 {
		cfg.CandidateThreshold = 60
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Navigator{
		profiles: profiles,
		jobs:     jobs,
		resolver: resolver,
		llm:      llm,
		log:      log,
		cfg:      cfg,
	}
}

// ExecuteQuery answers one utterance. Tasks run sequentially in
// decomposition order under a single request deadline, and every task
// contributes exactly one Result.
func (n *Navigator) ExecuteQuery(ctx context.Context, utterance string) []Result {
	log := n.log.With(zap.String("request_id", uuid.New().String()))

	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return []Result{{Message: msgEmptyQuery}}
	}

	ctx, cancel := context.WithTimeout(ctx, n.cfg.RequestTimeout)
	defer cancel()

	log.Info("decomposing query", zap.String("query", logger.TruncateForLog(utterance, 200)))
	raw, err := n.llm.Complete(ctx, intent.BuildPrompt(utterance))
	if err != nil {
		log.Warn("decomposition call failed", zap.Error(err))
		return []Result{{Message: msgUnderstandFailure}}
	}

	tasks, err := intent.ParseTasks(raw)
	if err != nil {
		log.Warn("decomposition unparseable",
			zap.Error(err),
			zap.String("response", logger.TruncateForLog(raw, 200)))
		return []Result{{Message: msgUnderstandFailure}}
	}

	results := make([]Result, 0, len(tasks))
	for i, task := range tasks {
		tlog := log.With(zap.Int("task", i), zap.String("intent", task.Intent))
		results = append(results, n.dispatch(ctx, tlog, task))
	}
	return results
}

func (n *Navigator) dispatch(ctx context.Context, log *zap.Logger, task intent.Task) Result {
	switch task.Intent {
	case intent.IntentCareerPath:
		return n.careerPath(ctx, log, task)
	case intent.IntentFindJobs:
		return n.findJobs(ctx, log, task)
	case intent.IntentEligibleJobs:
		return n.eligibleJobs(ctx, log, task)
	case intent.IntentCandidateSearch:
		return n.candidateSearch(ctx, log, task)
	case intent.IntentFindPeople:
		return n.findPeople(ctx, log, task)
	case intent.IntentAnalytics:
		return n.analytics(ctx, log, task)
	case intent.IntentProfileAggregation:
		return n.profileAggregation(ctx, log, task)
	case intent.IntentSkillForecast:
		return n.skillForecast(ctx, log, task)
	case intent.IntentSkillLookup:
		return n.skillLookup(ctx, log, task)
	case intent.IntentUserSkillLookup:
		return n.userSkillLookup(ctx, log, task)
	default:
		log.Info("unsupported intent")
		return Result{Message: msgUnsupported}
	}
}

// resolvePerson turns a task's person slot into a single profile or a
// user-facing failure Result.
func (n *Navigator) resolvePerson(ctx context.Context, log *zap.Logger, name string) (profilestore.Profile, Result, bool) {
	res, err := n.resolver.Resolve(ctx, name)
	if err != nil {
		log.Error("identity resolution failed", zap.Error(err))
		return profilestore.Profile{}, Result{Message: msgStoreError}, false
	}
	switch res.Verdict {
	case identity.Unique:
		return res.Candidates[0].Profile, Result{}, true
	case identity.Ambiguous:
		names := make([]string, len(res.Candidates))
		for i, c := range res.Candidates {
			names[i] = c.Profile.FullName
		}
		msg := "I found several people matching " + quote(name) + ": " +
			strings.Join(names, ", ") + ". Please use a full name."
		return profilestore.Profile{}, Result{Message: msg}, false
	default:
		return profilestore.Profile{}, Result{Message: "Sorry, I couldn't find a profile for " + quote(name) + "."}, false
	}
}

func quote(s string) string {
	return `"` + s + `"`
}

// joinNatural renders a list as "a, b and c".
func joinNatural(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}
