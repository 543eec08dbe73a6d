package handler

import (
	"sync"

	"recallbot/internal/domain"
	"recallbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot              *tele.Bot
	authService      *service.AuthService
	sessionService   *service.SessionService
	schedulerService *service.SchedulerService
	statsService     *service.StatsService
	wordRepo         wordSaver
	logger           *zap.Logger

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex

	// Per-user locks so a double-tapped answer button can't submit twice
	callbackLocks map[int64]*sync.Mutex
	callbackMux   sync.Mutex
}

// wordSaver is the slice of WordRepository the handler needs for the
// add-word flow.
type wordSaver interface {
	SaveWord(userID int64, word, definition string) error
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	authService *service.AuthService,
	sessionService *service.SessionService,
	schedulerService *service.SchedulerService,
	statsService *service.StatsService,
	wordRepo wordSaver,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:              bot,
		authService:      authService,
		sessionService:   sessionService,
		schedulerService: schedulerService,
		statsService:     statsService,
		wordRepo:         wordRepo,
		logger:           logger,
		states:           make(map[int64]*domain.StateData),
		callbackLocks:    make(map[int64]*sync.Mutex),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnStudy, h.handleStudy)
	h.bot.Handle(&btnAddWord, h.handleAddWord)
	h.bot.Handle(&btnStats, h.handleStats)
	h.bot.Handle(&btnReveal, h.handleReveal)
	h.bot.Handle(&btnCancel, h.handleCancel)
	h.bot.Handle(&btnMainMenu, h.handleStart)

	// Generic callback handler for dynamic data (answer buttons)
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

// userLock returns the per-user callback lock, creating it on first use
func (h *Handler) userLock(userID int64) *sync.Mutex {
	h.callbackMux.Lock()
	defer h.callbackMux.Unlock()

	lock, exists := h.callbackLocks[userID]
	if !exists {
		lock = &sync.Mutex{}
		h.callbackLocks[userID] = lock
	}
	return lock
}

// Inline keyboard buttons
var (
	btnStudy = tele.Btn{
		Unique: "study",
		Text:   "📚 Учить карточки",
	}
	btnAddWord = tele.Btn{
		Unique: "add_word",
		Text:   "➕ Новое слово",
	}
	btnStats = tele.Btn{
		Unique: "stats",
		Text:   "📊 Статистика",
	}
	btnReveal = tele.Btn{
		Unique: "reveal",
		Text:   "👀 Показать значение",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Отменить",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Главное меню",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnStudy),
		menu.Row(btnAddWord),
		menu.Row(btnStats),
	)
	return menu
}
