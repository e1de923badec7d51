package app

import (
	"time"

	"github.com/riordanpawley/melia/internal/domain"
	"github.com/riordanpawley/melia/internal/services/bulk"
	"github.com/riordanpawley/melia/internal/types"
)

// Messages for async operations

type projectsLoadedMsg struct {
	projects  []domain.Project
	favorites []int
}

type storiesLoadedMsg struct {
	project *domain.Project
	stories []domain.UserStory
	epics   []domain.Epic
}

type boardLoadedMsg struct{}

type tasksReloadedMsg struct{}

type loadFailedMsg struct {
	err error
}

type notifyMsg struct {
	message string
	level   types.ToastLevel
}

type busyMsg struct {
	delta int
}

type confirmRequestMsg struct {
	title   string
	message string
	answer  chan bool
}

type saveResultMsg struct {
	err error
}

type deleteResultMsg struct {
	err error
}

type saveAllResultMsg struct {
	err error
}

type bulkResultMsg struct {
	outcome bulk.Outcome
	err     error
}

type favoriteToggledMsg struct {
	projectID int
	on        bool
	err       error
}

type tickMsg time.Time
