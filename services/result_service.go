package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"fightdeck/db"
	"fightdeck/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// DefaultCooldown is the window during which a conversation rejects repeat
// result submissions.
const DefaultCooldown = 2 * time.Minute

// recentMatchesCap bounds each fighter's stored match history.
const recentMatchesCap = 10

const (
	ResultWin  = "win"
	ResultLoss = "loss"
	ResultDraw = "draw"
)

// ParticipantOutcome is the derived per-user result of a submission.
type ParticipantOutcome struct {
	UserID      string `json:"userId"`
	Result      string `json:"result"`
	RatingDelta int    `json:"ratingDelta"`
}

// ResultService reconciles a reported match outcome into per-user stat
// deltas, match history entries and achievement unlocks.
type ResultService struct {
	store    db.Store
	cooldown CooldownStore
	window   time.Duration
	events   EventSink
}

func NewResultService(store db.Store, cooldown CooldownStore, window time.Duration, events EventSink) *ResultService {
	if window <= 0 {
		window = DefaultCooldown
	}
	if events == nil {
		events = nopSink{}
	}
	return &ResultService{store: store, cooldown: cooldown, window: window, events: events}
}

// SubmitResult applies a reported outcome for a conversation. winnerID is
// either a participant id or models.WinnerDraw.
//
// The cooldown gate is claimed atomically before any stat mutation and the
// submission is recorded on the conversation before the per-user deltas run,
// so a duplicate or concurrent submission is rejected with ErrCooldownActive
// and mutates nothing. The two participants' documents are updated
// independently: there is no cross-document transaction, so one side can
// commit while the other fails. That partial application is logged as a
// data-consistency incident and returned as an error alongside the outcomes
// that did commit.
func (s *ResultService) SubmitResult(ctx context.Context, chatID, reporterID, winnerID string) ([]ParticipantOutcome, error) {
	if winnerID == "" {
		return nil, fmt.Errorf("submit result: winner is required: %w", models.ErrPreconditionFailed)
	}

	var chat models.Chat
	if err := s.store.Get(ctx, db.ChatsCollection, chatID, &chat); err != nil {
		return nil, fmt.Errorf("submit result for %s: %w", chatID, err)
	}
	if reporterID != "" && !chat.HasParticipant(reporterID) {
		return nil, fmt.Errorf("submit result for %s: reporter %s is not a participant: %w", chatID, reporterID, models.ErrPreconditionFailed)
	}
	if winnerID != models.WinnerDraw && !chat.HasParticipant(winnerID) {
		return nil, fmt.Errorf("submit result for %s: winner %s is not a participant: %w", chatID, winnerID, models.ErrPreconditionFailed)
	}

	started, err := s.cooldown.Start(ctx, chatID, s.window)
	if err != nil {
		return nil, fmt.Errorf("submit result for %s: cooldown store: %w", chatID, err)
	}
	if !started {
		return nil, fmt.Errorf("submit result for %s: %w", chatID, models.ErrCooldownActive)
	}

	// Record the submission on the conversation before touching any stats,
	// so every applied delta can be traced back to a submission id.
	submission := models.MatchResult{
		SubmissionID: uuid.NewString(),
		WinnerID:     winnerID,
		ReportedBy:   reporterID,
		SubmittedAt:  time.Now(),
	}
	result, err := s.store.Update(ctx, db.ChatsCollection, chatID, bson.M{
		"$push": bson.M{"results": submission},
	})
	if err != nil {
		return nil, fmt.Errorf("submit result for %s: record submission: %w", chatID, err)
	}
	if result == db.MutationNotFound {
		return nil, fmt.Errorf("submit result for %s: %w", chatID, models.ErrNotFound)
	}

	outcomes := make([]ParticipantOutcome, 0, len(chat.Participants))
	var failures []error
	for _, participant := range chat.Participants {
		outcome := deriveOutcome(participant.ID, winnerID)
		outcomes = append(outcomes, outcome)

		opponent, _ := chat.Other(participant.ID)
		if err := s.applyOutcome(ctx, participant.ID, opponent, outcome, submission.SubmittedAt); err != nil {
			// Already-committed participants are not rolled back; report
			// the incident and keep going so the other side still settles.
			log.Printf("reconciliation incident: chat %s submission %s: participant %s not updated: %v",
				chatID, submission.SubmissionID, participant.ID, err)
			failures = append(failures, fmt.Errorf("participant %s: %w", participant.ID, err))
			continue
		}
		s.unlockAchievements(ctx, participant.ID)
	}

	s.events.Publish(models.Event{
		Type:      "result_recorded",
		UserIDs:   participantIDs(chat.Participants),
		ChatID:    chatID,
		Timestamp: submission.SubmittedAt,
	})

	if len(failures) > 0 {
		return outcomes, fmt.Errorf("submit result for %s applied partially: %w", chatID, errors.Join(failures...))
	}
	return outcomes, nil
}

// CooldownActive reports whether the conversation is still inside its
// result-submission cooldown window.
func (s *ResultService) CooldownActive(ctx context.Context, chatID string) (bool, error) {
	active, err := s.cooldown.Active(ctx, chatID)
	if err != nil {
		return false, fmt.Errorf("cooldown status for %s: %w", chatID, err)
	}
	return active, nil
}

func deriveOutcome(userID, winnerID string) ParticipantOutcome {
	switch {
	case winnerID == models.WinnerDraw:
		return ParticipantOutcome{UserID: userID, Result: ResultDraw}
	case winnerID == userID:
		return ParticipantOutcome{UserID: userID, Result: ResultWin, RatingDelta: 10}
	default:
		return ParticipantOutcome{UserID: userID, Result: ResultLoss, RatingDelta: -10}
	}
}

// applyOutcome commits one participant's stat delta and history entry in a
// single document update.
func (s *ResultService) applyOutcome(ctx context.Context, userID string, opponent models.Participant, outcome ParticipantOutcome, at time.Time) error {
	increments := bson.M{}
	switch outcome.Result {
	case ResultWin:
		increments["wins"] = 1
	case ResultLoss:
		increments["losses"] = 1
	case ResultDraw:
		increments["draws"] = 1
	}
	if outcome.RatingDelta != 0 {
		increments["rating"] = outcome.RatingDelta
	}

	entry := models.RecentMatch{
		OpponentName:  opponent.Name,
		OpponentPhoto: opponent.Photo,
		Date:          at,
		Result:        outcome.Result,
	}
	update := bson.M{
		"$inc": increments,
		"$push": bson.M{"recentMatches": bson.M{
			"$each":  []models.RecentMatch{entry},
			"$slice": -recentMatchesCap,
		}},
	}

	result, err := s.store.Update(ctx, db.UsersCollection, userID, update)
	if err != nil {
		return err
	}
	if result == db.MutationNotFound {
		return models.ErrNotFound
	}
	return nil
}

// unlockAchievements re-reads the participant's committed counters, scans the
// catalog for exactly-hit thresholds and appends all new unlocks in one
// guarded write. The guard filter excludes documents already holding any of
// the names, so two concurrent scans cannot append a duplicate: the loser of
// the race matches nothing and writes nothing.
func (s *ResultService) unlockAchievements(ctx context.Context, userID string) {
	var fighter models.Fighter
	if err := s.store.Get(ctx, db.UsersCollection, userID, &fighter); err != nil {
		log.Printf("achievement scan for %s: %v", userID, err)
		return
	}

	names := fighter.PendingUnlocks()
	if len(names) == 0 {
		return
	}

	now := time.Now()
	entries := make([]models.AchievementUnlock, 0, len(names))
	for _, name := range names {
		entries = append(entries, models.AchievementUnlock{Name: name, UnlockedAt: now})
	}

	filter := bson.M{
		"_id":               userID,
		"achievements.name": bson.M{"$nin": names},
	}
	update := bson.M{
		"$push": bson.M{"achievements": bson.M{"$each": entries}},
	}
	result, err := s.store.UpdateGuarded(ctx, db.UsersCollection, filter, update)
	if err != nil {
		log.Printf("achievement unlock for %s: %v", userID, err)
		return
	}
	if result != db.MutationApplied {
		// A concurrent scan already appended at least one of these names.
		return
	}

	s.events.Publish(models.Event{
		Type:         "achievement_unlocked",
		UserIDs:      []string{userID},
		Achievements: names,
		Timestamp:    now,
	})
}

func participantIDs(participants []models.Participant) []string {
	ids := make([]string, 0, len(participants))
	for _, p := range participants {
		ids = append(ids, p.ID)
	}
	return ids
}
