package logic

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/USBABC1/v60/models"
	"github.com/USBABC1/v60/pkg"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeCampaignService is an in-memory CampaignService.
type fakeCampaignService struct {
	campaigns   []*models.Campaign
	createCalls int
	patchCalls  int
	lastPatch   map[string]interface{}
	listErr     error
	getErr      error
	createErr   error
	patchErr    error
}

func (f *fakeCampaignService) ListNames(ctx context.Context) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	names := make([]string, 0, len(f.campaigns))
	for _, c := range f.campaigns {
		names = append(names, c.Name)
	}
	return names, nil
}

func (f *fakeCampaignService) GetByName(ctx context.Context, name string) (*models.Campaign, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, c := range f.campaigns {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCampaignService) GetByID(ctx context.Context, id string) (*models.Campaign, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, c := range f.campaigns {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCampaignService) FindIDByName(ctx context.Context, name string) (string, error) {
	c, err := f.GetByName(ctx, name)
	if err != nil {
		return "", err
	}
	if c == nil {
		return "", nil
	}
	return c.ID, nil
}

func (f *fakeCampaignService) Create(ctx context.Context, c *models.Campaign) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	f.campaigns = append(f.campaigns, c)
	return nil
}

func (f *fakeCampaignService) Patch(ctx context.Context, id string, fields map[string]interface{}) error {
	f.patchCalls++
	if f.patchErr != nil {
		return f.patchErr
	}
	f.lastPatch = fields
	return nil
}

// fakeMetricsService returns fixed totals.
type fakeMetricsService struct {
	cost    float64
	revenue float64
	err     error
}

func (f *fakeMetricsService) SumCostAndRevenue(ctx context.Context, campaignID string) (float64, float64, error) {
	if f.err != nil {
		return 0, 0, f.err
	}
	return f.cost, f.revenue, nil
}

// memMessageStore is an in-memory MessageStore.
type memMessageStore struct {
	mu        sync.Mutex
	messages  map[string][]models.Message
	failRead  bool
	failWrite bool
}

func newMemMessageStore() *memMessageStore {
	return &memMessageStore{messages: make(map[string][]models.Message)}
}

func (s *memMessageStore) Append(ctx context.Context, sessionID string, msg *models.Message) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrite {
		return nil, errors.New("write refused")
	}
	msg.SessionID = sessionID
	msg.MessageOrder = len(s.messages[sessionID]) + 1
	s.messages[sessionID] = append(s.messages[sessionID], *msg)
	return msg, nil
}

func (s *memMessageStore) GetRecent(ctx context.Context, sessionID string, limit int) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failRead {
		return nil, errors.New("read refused")
	}
	msgs := s.messages[sessionID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]models.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (s *memMessageStore) GetAll(ctx context.Context, sessionID string) ([]models.Message, error) {
	return s.GetRecent(ctx, sessionID, 0)
}

func (s *memMessageStore) LastOrder(ctx context.Context, sessionID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages[sessionID]), nil
}

func (s *memMessageStore) DeleteBySession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.messages, sessionID)
	return nil
}

// fakeChatCompleter replays scripted completion responses.
type fakeChatCompleter struct {
	responses []*pkg.ChatCompletionResponse
	err       error
	requests  []pkg.ChatCompletionRequest
}

func (f *fakeChatCompleter) CreateChatCompletion(ctx context.Context, request pkg.ChatCompletionRequest) (*pkg.ChatCompletionResponse, error) {
	f.requests = append(f.requests, request)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.responses) == 0 {
		return &pkg.ChatCompletionResponse{}, nil
	}
	resp := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return resp, nil
}

func textCompletion(text string) *pkg.ChatCompletionResponse {
	return &pkg.ChatCompletionResponse{
		Choices: []pkg.ChatChoice{{
			Message: pkg.ResponseMessage{Role: models.RoleAssistant, Content: text},
		}},
	}
}

func toolCompletion(text string, calls ...pkg.ToolCall) *pkg.ChatCompletionResponse {
	return &pkg.ChatCompletionResponse{
		Choices: []pkg.ChatChoice{{
			Message: pkg.ResponseMessage{
				Role:      models.RoleAssistant,
				Content:   text,
				ToolCalls: calls,
			},
		}},
	}
}

func toolCall(id, name, arguments string) pkg.ToolCall {
	return pkg.ToolCall{
		ID:   id,
		Type: "function",
		Function: pkg.ToolCallFunction{
			Name:      name,
			Arguments: arguments,
		},
	}
}

// memSnapshotStore is an in-memory SnapshotStore.
type memSnapshotStore struct {
	mu     sync.Mutex
	nextID uint64
	items  []models.SavedConversation
}

func newMemSnapshotStore() *memSnapshotStore {
	return &memSnapshotStore{nextID: 1}
}

func (s *memSnapshotStore) Create(ctx context.Context, sc *models.SavedConversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc.ID = s.nextID
	s.nextID++
	s.items = append(s.items, *sc)
	return nil
}

func (s *memSnapshotStore) ListByUser(ctx context.Context, userID uint64) ([]models.SavedConversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.SavedConversation
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].UserID == userID {
			out = append(out, s.items[i])
		}
	}
	return out, nil
}

func (s *memSnapshotStore) GetByID(ctx context.Context, id, userID uint64) (*models.SavedConversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id && s.items[i].UserID == userID {
			sc := s.items[i]
			return &sc, nil
		}
	}
	return nil, nil
}

func (s *memSnapshotStore) FindByUserSession(ctx context.Context, userID uint64, sessionID string) (*models.SavedConversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].UserID == userID && s.items[i].SessionID == sessionID {
			sc := s.items[i]
			return &sc, nil
		}
	}
	return nil, nil
}

func (s *memSnapshotStore) FindByUserName(ctx context.Context, userID uint64, name string) (*models.SavedConversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].UserID == userID && s.items[i].Name == name {
			sc := s.items[i]
			return &sc, nil
		}
	}
	return nil, nil
}

func (s *memSnapshotStore) Delete(ctx context.Context, id, userID uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id && s.items[i].UserID == userID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *memSnapshotStore) DeleteBySession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	for _, sc := range s.items {
		if sc.SessionID != sessionID {
			kept = append(kept, sc)
		}
	}
	s.items = kept
	return nil
}
