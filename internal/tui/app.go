package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/reportdeck/reportdeck/internal/artifact"
	"github.com/reportdeck/reportdeck/internal/badges"
	"github.com/reportdeck/reportdeck/internal/cache"
	"github.com/reportdeck/reportdeck/internal/config"
	"github.com/reportdeck/reportdeck/internal/model"
	"github.com/reportdeck/reportdeck/internal/report"
	"github.com/reportdeck/reportdeck/internal/search"
	"github.com/reportdeck/reportdeck/internal/tui/attachview"
	"github.com/reportdeck/reportdeck/internal/tui/files"
	"github.com/reportdeck/reportdeck/internal/tui/projects"
	"github.com/reportdeck/reportdeck/internal/tui/searchbar"
	"github.com/reportdeck/reportdeck/internal/tui/testdetail"
	"github.com/reportdeck/reportdeck/internal/ui"
)

type View int

const (
	ViewFiles View = iota
	ViewDetail
	ViewAttachment
	ViewProjects
)

// App routes messages between the views. It owns the two pieces of
// shared state the views do not: the location fragment and the
// per-file expansion map.
type App struct {
	cfg         config.Config
	client      *artifact.Client
	reportCache *cache.ReportCache

	loc      search.FragmentLocation
	expanded map[string]bool

	// lastQuery is the q value of the last list fragment, restored when
	// navigating back from a test detail fragment.
	lastQuery string

	report    *model.Report
	reportDir string

	filesView    files.Model
	detailView   testdetail.Model
	attachView   attachview.Model
	projectsView projects.Model
	searchBar    searchbar.Model

	currentView View
	width       int
	height      int
	status      string
	showHelp    bool
}

func NewApp(cfg config.Config, client *artifact.Client, reportCache *cache.ReportCache) App {
	expanded := make(map[string]bool)
	return App{
		cfg:         cfg,
		client:      client,
		reportCache: reportCache,
		expanded:    expanded,
		filesView: files.New(
			func(fileID string) bool { return expanded[fileID] },
			func(fileID string, v bool) { expanded[fileID] = v },
		),
		detailView:   testdetail.New(),
		attachView:   attachview.New(),
		projectsView: projects.New(),
		searchBar:    searchbar.New(),
		currentView:  ViewFiles,
		status:       "Loading report...",
	}
}

func (a App) Init() tea.Cmd {
	if a.cfg.Remote() {
		return a.fetchRemoteReport()
	}
	return a.loadLocalReport()
}

// --- Data loading commands ---

func (a App) loadLocalReport() tea.Cmd {
	path := a.cfg.ReportPath
	return func() tea.Msg {
		rep, dir, err := report.Load(path)
		return ui.ReportLoadedMsg{Report: rep, Dir: dir, Err: err}
	}
}

// fetchRemoteReport pulls the report artifact from a GitHub Actions
// run, going through the disk cache so a run is only downloaded once
// per TTL window.
func (a App) fetchRemoteReport() tea.Cmd {
	cfg := a.cfg
	client := a.client
	rc := a.reportCache
	return func() tea.Msg {
		if dir, fresh := rc.Dir(cfg.RunID); fresh {
			rep, dir, err := report.Load(dir)
			return ui.ReportLoadedMsg{Report: rep, Dir: dir, Err: err}
		}

		artifacts, err := client.ListRunArtifacts(cfg.RunID)
		if err != nil {
			return ui.ReportLoadedMsg{Err: err}
		}
		art, err := artifact.FindReportArtifact(artifacts, cfg.ArtifactName)
		if err != nil {
			return ui.ReportLoadedMsg{Err: err}
		}

		body, err := client.DownloadArtifact(context.Background(), art.ID)
		if err != nil {
			return ui.ReportLoadedMsg{Err: err}
		}
		defer body.Close()

		dir, err := rc.Store(cfg.RunID, body, cache.Meta{
			RunID:        cfg.RunID,
			ArtifactID:   art.ID,
			ArtifactName: art.Name,
			Repo:         cfg.RepoNWO(),
		})
		if err != nil {
			return ui.ReportLoadedMsg{Err: fmt.Errorf("cache artifact: %w", err)}
		}

		rep, dir, err := report.Load(dir)
		return ui.ReportLoadedMsg{Report: rep, Dir: dir, Err: err}
	}
}

func (a App) loadAttachment(testID string, att model.Attachment) tea.Cmd {
	dir := a.reportDir
	return func() tea.Msg {
		content, err := report.AttachmentBody(dir, att)
		return ui.AttachmentLoadedMsg{TestID: testID, Name: att.Name, Content: content, Err: err}
	}
}

// --- Update ---

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The search bar owns the keyboard while open.
	if a.searchBar.IsActive() {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			var cmd tea.Cmd
			a.searchBar, cmd = a.searchBar.Update(msg)
			return &a, cmd
		}
	}

	// List filter mode on the projects view: keys go straight there.
	if _, isKey := msg.(tea.KeyMsg); isKey && a.currentView == ViewProjects && a.projectsView.IsFiltering() {
		var cmd tea.Cmd
		a.projectsView, cmd = a.projectsView.Update(msg)
		return &a, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.propagateSize()
		return &a, nil

	case tea.KeyMsg:
		if a.showHelp {
			a.showHelp = false
			return &a, nil
		}

		switch msg.String() {
		case "ctrl+c":
			return &a, tea.Quit

		case "q":
			// In-content search in the attachment view also uses plain
			// keys; let it have them.
			if !(a.currentView == ViewAttachment && a.attachView.IsSearching()) {
				return &a, tea.Quit
			}

		case "?":
			a.showHelp = true
			return &a, nil

		case "/":
			if a.currentView == ViewFiles {
				cmd := a.searchBar.Open(a.loc.Query())
				a.propagateSize()
				return &a, cmd
			}

		case "p":
			if a.currentView == ViewFiles {
				a.currentView = ViewProjects
				a.status = "Pick a project"
				return &a, nil
			}

		case "d", "v", "t":
			if a.currentView == ViewDetail {
				return &a, a.detailBadgeNavigate(msg.String())
			}

		case "esc", "backspace":
			switch a.currentView {
			case ViewDetail:
				a.currentView = ViewFiles
				a.loc.Navigate(search.Fragment(a.lastQuery))
				return &a, a.applyQuery()
			case ViewAttachment:
				if !a.attachView.IsSearching() {
					a.currentView = ViewDetail
					return &a, nil
				}
			case ViewProjects:
				a.currentView = ViewFiles
				return &a, nil
			}
		}

	case ui.ReportLoadedMsg:
		if msg.Err != nil {
			a.status = fmt.Sprintf("Error: %v", msg.Err)
		} else {
			a.report = msg.Report
			a.reportDir = msg.Dir
			a.status = fmt.Sprintf("%d tests in %d files", msg.Report.Stats.Total, len(msg.Report.Files))
		}
		var cmd tea.Cmd
		a.filesView, cmd = a.filesView.Update(msg)
		cmds = append(cmds, cmd)
		a.projectsView, cmd = a.projectsView.Update(msg)
		cmds = append(cmds, cmd)
		if msg.Err == nil {
			cmds = append(cmds, a.applyQuery())
		}
		return &a, tea.Batch(cmds...)

	case ui.QueryChangedMsg:
		a.loc.Navigate(search.Fragment(msg.Query))
		a.propagateSize()
		return &a, a.applyQuery()

	case ui.TagClickedMsg:
		search.ClickTag(&a.loc, msg.Tag, msg.Modifier)
		return &a, a.applyQuery()

	case ui.OpenTestMsg:
		a.loc.Navigate(search.TestFragment(msg.TestID))
		return &a, a.route()

	case ui.NavigateMsg:
		if !strings.HasPrefix(msg.Fragment, "#") {
			// Trace links target the external trace viewer; surface the
			// URL instead of routing it.
			a.status = "Trace viewer: " + msg.Fragment
			return &a, nil
		}
		a.loc.Navigate(msg.Fragment)
		return &a, a.route()

	case ui.OpenAttachmentMsg:
		a.currentView = ViewAttachment
		a.attachView.SetLoading(msg.Attachment.Name)
		a.propagateSize()
		return &a, a.loadAttachment(msg.TestID, msg.Attachment)

	case ui.AttachmentLoadedMsg:
		var cmd tea.Cmd
		a.attachView, cmd = a.attachView.Update(msg)
		return &a, cmd

	case ui.ProjectPickedMsg:
		a.loc.Navigate(search.Fragment(withProject(a.loc.Query(), msg.Name)))
		a.currentView = ViewFiles
		return &a, a.applyQuery()

	case ui.StatusMsg:
		a.status = msg.Text
		return &a, nil
	}

	// Everything else goes to the current view.
	var cmd tea.Cmd
	switch a.currentView {
	case ViewFiles:
		a.filesView, cmd = a.filesView.Update(msg)
	case ViewDetail:
		a.detailView, cmd = a.detailView.Update(msg)
	case ViewAttachment:
		a.attachView, cmd = a.attachView.Update(msg)
	case ViewProjects:
		a.projectsView, cmd = a.projectsView.Update(msg)
	}
	cmds = append(cmds, cmd)
	return &a, tea.Batch(cmds...)
}

// applyQuery re-parses the filter from the location's q value and
// pushes it into the file view.
func (a *App) applyQuery() tea.Cmd {
	a.lastQuery = a.loc.Query()
	filter := search.ParseFilter(a.lastQuery)
	if q := a.lastQuery; q != "" {
		a.status = "q=" + q
	} else if a.report != nil {
		a.status = fmt.Sprintf("%d tests in %d files", a.report.Stats.Total, len(a.report.Files))
	}
	return a.filesView.SetFilter(filter)
}

// route switches views according to the current location fragment.
func (a *App) route() tea.Cmd {
	testID := a.loc.Param("testId")
	if testID == "" {
		a.currentView = ViewFiles
		return a.applyQuery()
	}

	if a.report == nil {
		return nil
	}
	test := a.report.TestByID(testID)
	if test == nil {
		a.status = fmt.Sprintf("Unknown test %q", testID)
		a.currentView = ViewFiles
		return nil
	}

	a.detailView.SetTest(test)
	if anchor := a.loc.Param("anchor"); anchor != "" {
		run, _ := strconv.Atoi(a.loc.Param("run"))
		a.detailView.SetAnchor(anchor, run)
	}
	a.currentView = ViewDetail
	return nil
}

// detailBadgeNavigate jumps to the shown test's media for the badge
// key pressed, when that badge exists.
func (a *App) detailBadgeNavigate(key string) tea.Cmd {
	test := a.detailView.Test()
	if test == nil {
		return nil
	}
	label := map[string]string{"d": "diff", "v": "video", "t": "trace"}[key]
	for _, b := range badges.All(*test) {
		if b.Label == label {
			link := b.Link
			return func() tea.Msg { return ui.NavigateMsg{Fragment: link} }
		}
	}
	return nil
}

// withProject swaps any p: token in the query for the picked project.
func withProject(q, name string) string {
	var kept []string
	for _, tok := range strings.Fields(q) {
		if !strings.HasPrefix(tok, "p:") {
			kept = append(kept, tok)
		}
	}
	kept = append(kept, "p:"+name)
	return strings.Join(kept, " ")
}

func (a *App) propagateSize() {
	if a.width == 0 || a.height == 0 {
		return
	}
	bodyHeight := a.height - 2
	if a.searchBar.IsActive() {
		bodyHeight--
	}
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	a.searchBar.SetWidth(a.width)
	size := tea.WindowSizeMsg{Width: a.width, Height: bodyHeight}
	a.filesView, _ = a.filesView.Update(size)
	a.detailView, _ = a.detailView.Update(size)
	a.attachView, _ = a.attachView.Update(size)
	a.projectsView, _ = a.projectsView.Update(size)
}

// --- View ---

func (a App) View() string {
	if a.width == 0 {
		return "Initializing..."
	}

	if a.showHelp {
		return a.helpView()
	}

	var body string
	switch a.currentView {
	case ViewFiles:
		body = a.filesView.View()
	case ViewDetail:
		body = a.detailView.View()
	case ViewAttachment:
		body = a.attachView.View()
	case ViewProjects:
		body = a.projectsView.View()
	}

	header := RenderHeader(a.report, a.loc.Query(), a.width)
	statusBar := RenderStatusBar(a.status, a.hints(), a.width)

	if a.searchBar.IsActive() {
		return header + "\n" + a.searchBar.View() + "\n" + body + "\n" + statusBar
	}
	return header + "\n" + body + "\n" + statusBar
}

func (a App) hints() string {
	switch a.currentView {
	case ViewDetail:
		return "j/k:attachment  enter:open  d/v/t:media  esc:back  q:quit"
	case ViewAttachment:
		return "/:search  n/N:match  g/G:top/bot  esc:back"
	case ViewProjects:
		return "enter:pick  f:filter  esc:back  q:quit"
	default:
		return "/:query  tab:label  enter:open  alt+enter:toggle tag  E/C:expand  p:projects  ?:help"
	}
}

func (a App) helpView() string {
	rows := []string{
		"Navigation",
		"  j/k, up/down     move",
		"  enter            expand file / open test / activate label",
		"  esc              back",
		"  E / C            expand / collapse all files",
		"",
		"Query",
		"  /                edit search query (q)",
		"  tab              cycle labels on the focused row",
		"  enter on label   filter by that tag (replaces tag filters)",
		"  alt+enter        toggle the tag in the query",
		"  p                pick a project",
		"",
		"Media",
		"  d / v / t        jump to image diff / video / trace",
		"",
		"  q                quit",
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorPrimary).
		Padding(1, 2).
		Render(strings.Join(rows, "\n"))
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, box)
}
