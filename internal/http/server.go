package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"finboard/internal/auth"
	"finboard/internal/services"
	"finboard/internal/storage"
	"finboard/internal/ws"
)

const requestsPerMinute = 120

// API bundles the service layer behind the HTTP surface.
type API struct {
	Auth       *auth.Manager
	Users      *services.UserService
	Categories *services.CategoryService
	Expenses   *services.ExpenseService
	Budgets    *services.BudgetService
	Analytics  *services.AnalyticsService
	Savings    *services.SavingsService
	Tasks      *services.TaskService
	Messages   *services.MessageService
	Dashboard  *services.DashboardService
	Store      *storage.Store
	Hub        *ws.Hub

	limiter *rateLimiter
}

// Router assembles the full route tree. Everything except registration,
// login and the health probe sits behind the auth middleware.
func (a *API) Router() http.Handler {
	if a.limiter == nil {
		a.limiter = newRateLimiter(requestsPerMinute)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(requestLogging)
	r.Use(a.rateLimitMiddleware)

	r.Get("/health", a.handleHealth)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", a.handleRegister)
		r.Post("/login", a.handleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(a.authMiddleware)

		r.Get("/me", a.handleMe)

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", a.handleListCategories)
			r.Post("/", a.handleCreateCategory)
			r.Get("/{id}", a.handleGetCategory)
			r.Put("/{id}", a.handleUpdateCategory)
			r.Delete("/{id}", a.handleDeleteCategory)
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", a.handleListExpenses)
			r.Post("/", a.handleCreateExpense)
			r.Get("/stats", a.handleExpenseStats)
			r.Get("/daily", a.handleDailyExpenses)
			r.Get("/{id}", a.handleGetExpense)
			r.Put("/{id}", a.handleUpdateExpense)
			r.Delete("/{id}", a.handleDeleteExpense)
		})

		r.Route("/budgets", func(r chi.Router) {
			r.Get("/summary", a.handleBudgetSummary)
			r.Get("/alerts", a.handleBudgetAlerts)
			r.Get("/{categoryId}", a.handleCategoryBudgetStatus)
			r.Put("/{categoryId}", a.handleSetCategoryBudget)
		})

		r.Route("/savings", func(r chi.Router) {
			r.Get("/", a.handleListGoals)
			r.Post("/", a.handleCreateGoal)
			r.Get("/{id}", a.handleGetGoal)
			r.Put("/{id}", a.handleUpdateGoal)
			r.Delete("/{id}", a.handleDeleteGoal)
			r.Post("/{id}/contributions", a.handleAddContribution)
			r.Delete("/{id}/contributions/{cid}", a.handleRemoveContribution)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", a.handleListTasks)
			r.Post("/", a.handleCreateTask)
			r.Get("/{id}", a.handleGetTask)
			r.Put("/{id}", a.handleUpdateTask)
			r.Delete("/{id}", a.handleDeleteTask)
			r.Put("/{id}/status", a.handleSetTaskStatus)
			r.Post("/{id}/subtasks", a.handleAddSubtask)
			r.Put("/{id}/subtasks/{sid}", a.handleToggleSubtask)
		})

		r.Route("/notes", func(r chi.Router) {
			r.Get("/", a.handleListNotes)
			r.Post("/", a.handleCreateNote)
			r.Get("/{id}", a.handleGetNote)
			r.Put("/{id}", a.handleUpdateNote)
			r.Delete("/{id}", a.handleDeleteNote)
		})

		r.Route("/bazar", func(r chi.Router) {
			r.Get("/", a.handleListBazarLists)
			r.Post("/", a.handleCreateBazarList)
			r.Get("/{id}", a.handleGetBazarList)
			r.Put("/{id}", a.handleUpdateBazarList)
			r.Delete("/{id}", a.handleDeleteBazarList)
			r.Post("/{id}/items", a.handleAddBazarItem)
			r.Put("/{id}/items/{itemId}", a.handleUpdateBazarItem)
			r.Delete("/{id}/items/{itemId}", a.handleDeleteBazarItem)
		})

		r.Route("/messages", func(r chi.Router) {
			r.Post("/", a.handleSendMessage)
			r.Get("/unread", a.handleUnreadCount)
			r.Get("/{peerId}", a.handleConversation)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", a.handleListNotifications)
			r.Put("/{id}/read", a.handleMarkNotificationRead)
		})

		r.Get("/dashboard", a.handleDashboard)
		r.Get("/dashboard/summary", a.handleFinancialSummary)

		r.Get("/ws", a.handleWebsocket)
	})

	return r
}

// Close releases background resources held by the API.
func (a *API) Close() {
	if a.limiter != nil {
		a.limiter.stop()
	}
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing token")
		return
	}
	a.Hub.ServeConn(w, r, userID)
}
