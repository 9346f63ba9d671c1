package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"fightdeck/db"
	"fightdeck/models"

	"go.mongodb.org/mongo-driver/bson"
)

// MatchService drives the pair state machine: no decision, one-sided like,
// mutual match with a conversation. It also owns messaging on an existing
// conversation.
type MatchService struct {
	store  db.Store
	graph  *GraphService
	events EventSink
}

func NewMatchService(store db.Store, graph *GraphService, events EventSink) *MatchService {
	if events == nil {
		events = nopSink{}
	}
	return &MatchService{store: store, graph: graph, events: events}
}

// LikeOutcome reports what a like produced. Chat is set only when the like
// completed a mutual match.
type LikeOutcome struct {
	Matched bool         `json:"matched"`
	Chat    *models.Chat `json:"chat,omitempty"`
}

// Like records the viewer's like and, if the target had already liked the
// viewer back, creates the conversation. Conversation creation is keyed on
// the canonical pair id, so two simultaneous mutual likes still converge on
// a single chat.
func (s *MatchService) Like(ctx context.Context, viewerID, targetID string) (*LikeOutcome, error) {
	if viewerID == targetID {
		return nil, fmt.Errorf("like: cannot like yourself: %w", models.ErrPreconditionFailed)
	}
	if err := s.graph.RecordDecision(ctx, viewerID, targetID, DecisionLike); err != nil {
		return nil, err
	}

	reciprocal, err := s.graph.HasLiked(ctx, targetID, viewerID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			// Target vanished between the swipe and the check; the decision
			// stays recorded, there is just nobody to match with.
			return &LikeOutcome{}, nil
		}
		return nil, err
	}
	if !reciprocal {
		return &LikeOutcome{}, nil
	}

	chat, err := s.createConversation(ctx, viewerID, targetID)
	if err != nil {
		return nil, err
	}
	return &LikeOutcome{Matched: true, Chat: chat}, nil
}

// Dislike records the viewer's dislike. No reciprocity check.
func (s *MatchService) Dislike(ctx context.Context, viewerID, targetID string) error {
	if viewerID == targetID {
		return fmt.Errorf("dislike: cannot dislike yourself: %w", models.ErrPreconditionFailed)
	}
	return s.graph.RecordDecision(ctx, viewerID, targetID, DecisionDislike)
}

// createConversation creates the chat document for a mutual pair (or adopts
// the one a concurrent like already created) and registers its id on both
// users' chat sets.
func (s *MatchService) createConversation(ctx context.Context, a, b string) (*models.Chat, error) {
	var first, second models.Fighter
	if err := s.store.Get(ctx, db.UsersCollection, a, &first); err != nil {
		return nil, fmt.Errorf("create conversation: load %s: %w", a, err)
	}
	if err := s.store.Get(ctx, db.UsersCollection, b, &second); err != nil {
		return nil, fmt.Errorf("create conversation: load %s: %w", b, err)
	}

	chatID := models.PairKey(a, b)
	chat := models.Chat{
		ID: chatID,
		Participants: []models.Participant{
			{ID: first.ID, Name: first.Name, Photo: first.Photo},
			{ID: second.ID, Name: second.Name, Photo: second.Photo},
		},
		Messages:     []models.ChatMessage{},
		UnreadCounts: map[string]int{a: 0, b: 0},
		CreatedAt:    time.Now(),
	}

	err := s.store.Insert(ctx, db.ChatsCollection, chatID, chat)
	if errors.Is(err, models.ErrAlreadyExists) {
		// The other side's like won the race; reuse its conversation.
		if err := s.store.Get(ctx, db.ChatsCollection, chatID, &chat); err != nil {
			return nil, fmt.Errorf("create conversation %s: %w", chatID, err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("create conversation %s: %w", chatID, err)
	}

	// Registration is an idempotent array-union, safe to repeat on retry.
	for _, userID := range []string{a, b} {
		result, err := s.store.AppendUnique(ctx, db.UsersCollection, userID, "chats", chatID)
		if err != nil {
			return nil, fmt.Errorf("register chat %s on %s: %w", chatID, userID, err)
		}
		if result == db.MutationNotFound {
			log.Printf("chat %s created but user %s is gone; registration skipped", chatID, userID)
		}
	}

	s.events.Publish(models.Event{
		Type:      "match_created",
		UserIDs:   []string{a, b},
		ChatID:    chatID,
		Timestamp: time.Now(),
	})
	return &chat, nil
}

// SendMessage appends the message, refreshes the last-message cache and
// increments the receiver's unread counter in one atomic document update.
// Messages are ordered by append order as observed by the store; when both
// participants send at once, lastMessage reflects whichever commit lands
// last.
func (s *MatchService) SendMessage(ctx context.Context, chatID string, message models.ChatMessage) error {
	if strings.TrimSpace(message.Message) == "" {
		return fmt.Errorf("send message: empty body: %w", models.ErrPreconditionFailed)
	}
	if message.SenderID == "" || message.ReceiverID == "" {
		return fmt.Errorf("send message: sender and receiver are required: %w", models.ErrPreconditionFailed)
	}
	if message.ID == "" {
		message.ID = strconv.FormatInt(time.Now().UnixMilli(), 10)
	}
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now()
	}

	update := bson.M{
		"$push": bson.M{"messages": message},
		"$set":  bson.M{"lastMessage": message},
		"$inc":  bson.M{"unreadCounts." + message.ReceiverID: 1},
	}
	result, err := s.store.Update(ctx, db.ChatsCollection, chatID, update)
	if err != nil {
		return fmt.Errorf("send message to %s: %w", chatID, err)
	}
	if result == db.MutationNotFound {
		return fmt.Errorf("send message to %s: %w", chatID, models.ErrNotFound)
	}
	return nil
}

// MarkRead drives the user's unread counter to exactly zero. There is no
// partial decrement: a chat is either fully read or not. The guard filter
// requires the user to be a participant, so an outsider can never write a
// stray counter key into someone else's conversation.
func (s *MatchService) MarkRead(ctx context.Context, chatID, userID string) error {
	filter := bson.M{"_id": chatID, "participants.id": userID}
	update := bson.M{"$set": bson.M{"unreadCounts." + userID: 0}}
	result, err := s.store.UpdateGuarded(ctx, db.ChatsCollection, filter, update)
	if err != nil {
		return fmt.Errorf("mark read %s for %s: %w", chatID, userID, err)
	}
	if result == db.MutationNotFound {
		var chat models.Chat
		if err := s.store.Get(ctx, db.ChatsCollection, chatID, &chat); err != nil {
			return fmt.Errorf("mark read %s: %w", chatID, models.ErrNotFound)
		}
		return fmt.Errorf("mark read %s: %s is not a participant: %w", chatID, userID, models.ErrPreconditionFailed)
	}
	return nil
}

// Chat fetches a conversation by id.
func (s *MatchService) Chat(ctx context.Context, chatID string) (*models.Chat, error) {
	var chat models.Chat
	if err := s.store.Get(ctx, db.ChatsCollection, chatID, &chat); err != nil {
		return nil, fmt.Errorf("chat %s: %w", chatID, err)
	}
	return &chat, nil
}

// ChatsFor returns the user's conversations, unread first, then most recent
// message first.
func (s *MatchService) ChatsFor(ctx context.Context, userID string) ([]models.Chat, error) {
	var fighter models.Fighter
	if err := s.store.Get(ctx, db.UsersCollection, userID, &fighter); err != nil {
		return nil, fmt.Errorf("chats for %s: %w", userID, err)
	}

	chats := make([]models.Chat, 0, len(fighter.Chats))
	for _, chatID := range fighter.Chats {
		var chat models.Chat
		err := s.store.Get(ctx, db.ChatsCollection, chatID, &chat)
		if errors.Is(err, models.ErrNotFound) {
			log.Printf("user %s references missing chat %s", userID, chatID)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("chats for %s: %w", userID, err)
		}
		chats = append(chats, chat)
	}

	sort.SliceStable(chats, func(i, j int) bool {
		iUnread := chats[i].UnreadCounts[userID] > 0
		jUnread := chats[j].UnreadCounts[userID] > 0
		if iUnread != jUnread {
			return iUnread
		}
		return lastActivity(&chats[i]).After(lastActivity(&chats[j]))
	})
	return chats, nil
}

func lastActivity(chat *models.Chat) time.Time {
	if chat.LastMessage != nil {
		return chat.LastMessage.Timestamp
	}
	return chat.CreatedAt
}
