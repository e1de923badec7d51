// Package app contains the main application model and TEA implementation.
package app

import (
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/melia/internal/config"
	"github.com/riordanpawley/melia/internal/domain"
	"github.com/riordanpawley/melia/internal/services/bulk"
	"github.com/riordanpawley/melia/internal/services/favorites"
	"github.com/riordanpawley/melia/internal/services/network"
	"github.com/riordanpawley/melia/internal/services/taiga"
	"github.com/riordanpawley/melia/internal/services/tasks"
	"github.com/riordanpawley/melia/internal/state"
	"github.com/riordanpawley/melia/internal/types"
	"github.com/riordanpawley/melia/internal/ui/overlay"
	"github.com/riordanpawley/melia/internal/ui/styles"
	"github.com/riordanpawley/melia/internal/ui/tasklist"
)

// screen identifies the active view
type screen int

const (
	screenProjects screen = iota
	screenStories
	screenTasks
)

// pickerKind identifies which picker overlay is waiting for a selection
type pickerKind int

const (
	pickerNone pickerKind = iota
	pickerAssignAll
	pickerStatusAll
)

// Model is the main application state
type Model struct {
	// Wiring
	cfg      *config.Config
	client   *taiga.Client
	st       *state.Store
	tasksSvc *tasks.Service
	bulkSvc  *bulk.Service
	favs     *favorites.Store
	network  *network.StatusChecker
	bridge   *Bridge
	logger   *slog.Logger

	// Navigation
	screen   screen
	projects []domain.Project
	favorite map[int]bool
	stories  []domain.UserStory
	epics    []domain.Epic
	cursor   int
	list     *tasklist.List

	// Overlays and pending interactions
	overlayStack  *overlay.Stack
	editing       *tasks.Card
	pendingDelete *tasks.Card
	pendingPicker pickerKind
	confirmCh     chan bool

	// Transient UI state
	toasts    []types.Toast
	spinner   spinner.Model
	busyCount int
	loading   bool
	isOnline  bool

	// Terminal size
	width  int
	height int

	styles *styles.Styles
}

// New creates the application model and wires the services to it.
func New(cfg *config.Config, client *taiga.Client, st *state.Store, favs *favorites.Store, logger *slog.Logger) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	bridge := NewBridge()
	notify := &notifier{bridge: bridge}
	busy := &busyIndicator{bridge: bridge}
	reload := &boardReloader{st: st, gw: client, bridge: bridge}

	ui := styles.New()

	return &Model{
		cfg:          cfg,
		client:       client,
		st:           st,
		tasksSvc:     tasks.NewService(client, st, notify, busy, reload, logger),
		bulkSvc:      bulk.NewService(client, st, notify, busy, reload, &confirmer{bridge: bridge}, logger),
		favs:         favs,
		network:      network.NewStatusChecker(cfg.ServerURL),
		bridge:       bridge,
		logger:       logger,
		screen:       screenProjects,
		favorite:     map[int]bool{},
		list:         tasklist.New(ui),
		overlayStack: overlay.NewStack(),
		spinner:      s,
		loading:      true,
		isOnline:     true,
		styles:       ui,
	}
}

// Bridge returns the program bridge so Run can attach the program.
func (m *Model) Bridge() *Bridge {
	return m.bridge
}

// Init returns the initial command for the application
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadProjectsCmd(),
		m.network.CheckCmd(),
		tickEvery(time.Second),
	)
}

// Update handles incoming messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetWidth(msg.Width)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if !m.overlayStack.IsEmpty() {
			return m, m.overlayStack.Update(msg)
		}
		return m.handleKey(msg)

	case overlay.CloseOverlayMsg:
		m.overlayStack.Pop()
		if m.confirmCh != nil {
			// Closing a confirmation without answering counts as No.
			m.confirmCh <- false
			m.confirmCh = nil
		}
		m.editing = nil
		m.pendingDelete = nil
		m.pendingPicker = pickerNone
		return m, nil

	case overlay.SelectionMsg:
		return m.handleSelection(msg)

	case overlay.TaskSubmittedMsg:
		return m.handleTaskSubmitted(msg)

	case confirmRequestMsg:
		m.confirmCh = msg.answer
		return m, m.overlayStack.Push(overlay.NewConfirmDialog(msg.title, msg.message))

	case projectsLoadedMsg:
		m.projects = msg.projects
		m.favorite = map[int]bool{}
		for _, id := range msg.favorites {
			m.favorite[id] = true
		}
		m.sortProjects()
		m.loading = false
		m.clampCursor(len(m.projects))
		return m, nil

	case storiesLoadedMsg:
		m.st.RefreshProject(msg.project)
		m.stories = msg.stories
		m.epics = msg.epics
		m.loading = false
		m.clampCursor(len(m.stories) + 1)
		return m, nil

	case boardLoadedMsg, tasksReloadedMsg:
		m.loading = false
		m.refreshList()
		return m, nil

	case loadFailedMsg:
		m.loading = false
		m.addToast(msg.err.Error(), types.ToastError)
		return m, nil

	case notifyMsg:
		m.addToast(msg.message, msg.level)
		return m, nil

	case busyMsg:
		m.busyCount += msg.delta
		if m.busyCount < 0 {
			m.busyCount = 0
		}
		return m, nil

	case saveResultMsg:
		if msg.err == nil {
			m.overlayStack.Pop()
			m.editing = nil
			m.refreshList()
		}
		// On failure the editor stays open with the user's input.
		return m, nil

	case deleteResultMsg:
		m.pendingDelete = nil
		m.refreshList()
		return m, nil

	case saveAllResultMsg:
		m.refreshList()
		return m, nil

	case bulkResultMsg:
		m.refreshList()
		return m, nil

	case favoriteToggledMsg:
		if msg.err != nil {
			m.addToast("Failed to update favorite: "+msg.err.Error(), types.ToastError)
			return m, nil
		}
		m.favorite[msg.projectID] = msg.on
		m.sortProjects()
		return m, nil

	case network.StatusMsg:
		m.isOnline = msg.Online
		if !msg.Online {
			m.addToast("Connection to server lost", types.ToastWarning)
		}
		return m, nil

	case tickMsg:
		m.expireToasts()
		return m, tickEvery(time.Second)
	}

	return m, nil
}

// handleKey processes keyboard input on the active screen
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "ctrl+l":
		return m, tea.ClearScreen
	}

	switch m.screen {
	case screenProjects:
		return m.handleProjectsKey(msg)
	case screenStories:
		return m.handleStoriesKey(msg)
	case screenTasks:
		return m.handleTasksKey(msg)
	}
	return m, nil
}

func (m *Model) handleProjectsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.projects)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "f":
		if p, ok := m.selectedProject(); ok {
			return m, m.toggleFavoriteCmd(p.ID)
		}
	case "r":
		m.loading = true
		return m, m.loadProjectsCmd()
	case "enter":
		if p, ok := m.selectedProject(); ok {
			project := p
			m.st.SetProject(&project)
			m.screen = screenStories
			m.cursor = 0
			m.loading = true
			return m, m.loadStoriesCmd(project.ID)
		}
	}
	return m, nil
}

func (m *Model) handleStoriesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Row 0 is the synthetic "all project tasks" entry.
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.stories) {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "esc", "h":
		m.screen = screenProjects
		m.cursor = 0
	case "enter":
		if m.cursor == 0 {
			m.st.SetStory(nil)
		} else {
			story := m.stories[m.cursor-1]
			m.st.SetStory(&story)
		}
		m.screen = screenTasks
		m.loading = true
		return m, m.loadBoardCmd()
	}
	return m, nil
}

func (m *Model) handleTasksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.list.MoveDown()
	case "k", "up":
		m.list.MoveUp()
	case "esc", "h":
		m.screen = screenStories
		m.cursor = 0
	case "r":
		m.loading = true
		return m, m.loadBoardCmd()

	case "enter":
		if row, ok := m.list.Selected(); ok && !row.IsDraft() {
			return m, m.openDetail(*row.Task)
		}

	case "n":
		key := m.st.NewDraft()
		m.refreshList()
		m.editing = &tasks.Card{DraftKey: key}
		return m, m.overlayStack.Push(overlay.NewEditTask(domain.Form{}, m.st.Statuses(), m.st.SortedMembers(), true))

	case "e":
		if row, ok := m.list.Selected(); ok {
			return m, m.openEditor(row)
		}

	case "d":
		if row, ok := m.list.Selected(); ok {
			return m, m.requestDelete(row)
		}

	case "a":
		m.pendingPicker = pickerAssignAll
		return m, m.overlayStack.Push(overlay.NewPicker("Assign all tasks to", m.memberItems()))

	case "s":
		m.pendingPicker = pickerStatusAll
		return m, m.overlayStack.Push(overlay.NewPicker("Set status on all tasks", m.statusItems()))

	case "S":
		return m, m.saveAllCmd()
	}
	return m, nil
}

// handleSelection routes picker and confirmation answers
func (m *Model) handleSelection(msg overlay.SelectionMsg) (tea.Model, tea.Cmd) {
	// A blocked bulk operation waiting on its confirmation wins: the
	// dialog was pushed by confirmRequestMsg.
	if result, ok := msg.Value.(overlay.ConfirmResult); ok && m.confirmCh != nil {
		m.overlayStack.Pop()
		m.confirmCh <- result.Confirmed
		m.confirmCh = nil
		return m, nil
	}

	if result, ok := msg.Value.(overlay.ConfirmResult); ok && m.pendingDelete != nil {
		m.overlayStack.Pop()
		card := *m.pendingDelete
		if !result.Confirmed {
			m.pendingDelete = nil
			return m, nil
		}
		return m, m.deleteCmd(card)
	}

	switch m.pendingPicker {
	case pickerAssignAll:
		m.overlayStack.Pop()
		m.pendingPicker = pickerNone
		memberID, _ := msg.Value.(*int)
		return m, m.bulkAssignCmd(memberID)

	case pickerStatusAll:
		m.overlayStack.Pop()
		m.pendingPicker = pickerNone
		statusID, _ := msg.Value.(int)
		return m, m.bulkStatusCmd(statusID)
	}

	m.overlayStack.Pop()
	return m, nil
}

func (m *Model) handleTaskSubmitted(msg overlay.TaskSubmittedMsg) (tea.Model, tea.Cmd) {
	if m.editing == nil {
		return m, nil
	}
	card := *m.editing
	card.Form = msg.Form
	m.editing = &card

	// Keep the draft row in sync so a failed remote save loses nothing.
	if card.IsNew() {
		m.st.UpdateDraft(card.DraftKey, func(d *domain.Draft) {
			d.Subject = msg.Form.Subject
			d.Description = msg.Form.Description
			d.Status = msg.Form.Status
			d.AssignedTo = msg.Form.AssignedTo
		})
		m.refreshList()
	}

	return m, m.saveCmd(card)
}

// openEditor builds the card for the selected row and opens the form.
func (m *Model) openEditor(row tasklist.Row) tea.Cmd {
	members := m.st.SortedMembers()
	statuses := m.st.Statuses()

	if row.IsDraft() {
		d := *row.Draft
		form := domain.Form{
			Subject:     d.Subject,
			Description: d.Description,
			Status:      d.Status,
			AssignedTo:  d.AssignedTo,
		}
		m.editing = &tasks.Card{DraftKey: d.Key}
		return m.overlayStack.Push(overlay.NewEditTask(form, statuses, members, true))
	}

	t := *row.Task
	snapshot := domain.NewSnapshot(t)
	form := domain.Form{
		Subject:     t.Subject,
		Description: t.Description,
		Status:      t.Status,
		AssignedTo:  t.AssignedTo,
	}
	m.editing = &tasks.Card{
		TaskID:   t.ID,
		Version:  t.Version,
		Original: snapshot,
	}
	return m.overlayStack.Push(overlay.NewEditTask(form, statuses, members, false))
}

func (m *Model) openDetail(t domain.Task) tea.Cmd {
	statusName := ""
	if status, ok := domain.StatusByID(m.st.Statuses(), t.Status); ok {
		statusName = status.Name
	}
	assignee := ""
	if t.AssignedTo != nil {
		if member, ok := domain.MemberByUserID(m.st.Members(), *t.AssignedTo); ok {
			assignee = member.DisplayName()
		}
	}
	return m.overlayStack.Push(overlay.NewTaskDetail(t, statusName, assignee))
}

func (m *Model) requestDelete(row tasklist.Row) tea.Cmd {
	if row.IsDraft() {
		// Drafts are local; discard without confirmation.
		m.st.RemoveDraft(row.Draft.Key)
		m.refreshList()
		return nil
	}
	t := row.Task
	m.pendingDelete = &tasks.Card{TaskID: t.ID, Version: t.Version}
	return m.overlayStack.Push(overlay.NewConfirmDialog(
		"Delete task",
		"Delete #"+strconv.Itoa(t.Ref)+" \""+t.Subject+"\"?"))
}

// memberItems builds the assignee picker rows: unassign first, then the
// members in display order.
func (m *Model) memberItems() []overlay.PickerItem {
	items := []overlay.PickerItem{{Key: "unassign", Label: "Unassign", Value: (*int)(nil)}}
	for _, member := range m.st.SortedMembers() {
		id := member.UserID()
		items = append(items, overlay.PickerItem{
			Key:   member.Username,
			Label: member.DisplayName(),
			Value: &id,
		})
	}
	return items
}

func (m *Model) statusItems() []overlay.PickerItem {
	var items []overlay.PickerItem
	for _, status := range m.st.Statuses() {
		items = append(items, overlay.PickerItem{
			Key:   strconv.Itoa(status.ID),
			Label: status.Name,
			Value: status.ID,
		})
	}
	return items
}

// Helper methods

func (m *Model) selectedProject() (domain.Project, bool) {
	if m.cursor < 0 || m.cursor >= len(m.projects) {
		return domain.Project{}, false
	}
	return m.projects[m.cursor], true
}

// sortProjects orders favorites before the rest, each group by name.
func (m *Model) sortProjects() {
	sort.SliceStable(m.projects, func(i, j int) bool {
		fi, fj := m.favorite[m.projects[i].ID], m.favorite[m.projects[j].ID]
		if fi != fj {
			return fi
		}
		return m.projects[i].Name < m.projects[j].Name
	})
}

func (m *Model) clampCursor(n int) {
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) refreshList() {
	m.list.SetItems(m.st.Tasks(), m.st.Drafts(), m.st.Statuses(), m.st.SortedMembers())
}

func (m *Model) addToast(message string, level types.ToastLevel) {
	ttl := time.Duration(m.cfg.UI.ToastTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = types.DefaultToastTTL
	}
	m.toasts = append(m.toasts, types.Toast{
		Level:   level,
		Message: message,
		Expires: time.Now().Add(ttl),
	})
}

func (m *Model) expireToasts() {
	now := time.Now()
	kept := m.toasts[:0]
	for _, t := range m.toasts {
		if t.Expires.After(now) {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
}

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
