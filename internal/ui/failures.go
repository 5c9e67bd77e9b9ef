package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"bpr/internal/domain"
	"bpr/internal/storage"
)

// FailureViewer displays failing scenarios in an interactive TUI
type FailureViewer struct {
	storage storage.Storage
}

// NewFailureViewer creates a new FailureViewer
func NewFailureViewer(st storage.Storage) *FailureViewer {
	return &FailureViewer{storage: st}
}

// View displays the report's failing scenarios in an interactive TUI.
// Resolved marks are persisted back through storage so they survive
// between invocations.
func (fv *FailureViewer) View(report *domain.Report) error {
	if len(report.Failures) == 0 {
		color.Green("✓ No failures in the last run!")
		return nil
	}

	resolved := make(map[int]bool)
	for i, failure := range report.Failures {
		if failure.Resolved {
			resolved[i] = true
		}
	}

	saveResolved := func() error {
		for i := range report.Failures {
			report.Failures[i].Resolved = resolved[i]
		}
		return fv.storage.Save(report)
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	itemText := func(index int) string {
		failure := report.Failures[index]
		name := failure.Name
		if name == "" {
			name = failure.Location
		}
		if resolved[index] {
			return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, name)
		}
		return fmt.Sprintf("[yellow]%d.[white] %s", index+1, name)
	}

	for i := range report.Failures {
		list.AddItem(itemText(i), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	countUnresolved := func() int {
		count := 0
		for i := range report.Failures {
			if !resolved[i] {
				count++
			}
		}
		return count
	}

	updateHeader := func() {
		headerView.SetText(fmt.Sprintf(
			" Failing Scenarios (%d total, %d unresolved) | ↑↓ navigate, [yellow]R[white] mark resolved, → details, ← back, Ctrl+C exit ",
			len(report.Failures), countUnresolved()))
	}

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index < 0 || index >= len(report.Failures) {
			return
		}
		failure := report.Failures[index]
		statsView.SetText(fmt.Sprintf("[cyan]scenario:[white] [yellow]%s[white]\n[cyan]location:[white] %s",
			failure.Name, failure.Location))
		detailsView.SetText(fv.formatDetails(failure))
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				index := list.GetCurrentItem()
				if index >= 0 && index < len(report.Failures) {
					resolved[index] = !resolved[index]
					list.SetItemText(index, itemText(index), "")
					updateHeader()
					if err := saveResolved(); err != nil {
						_ = err
					}
				}
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		updateDetails()
	})

	updateHeader()
	updateDetails()

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsView, 0, 1, false)

	body := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(body, 0, 1, true)

	if err := app.SetRoot(layout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// formatDetails formats one failing scenario using tview color tags.
func (fv *FailureViewer) formatDetails(failure domain.ScenarioFailure) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "[red]✗ Scenario: %s[white]\n\n", failure.Name)
	fmt.Fprintf(&builder, "[cyan]Feature: %s[white]\n", failure.UnitPath)
	fmt.Fprintf(&builder, "[yellow]Location: %s[white]\n\n", failure.Location)

	if failure.Output != "" {
		fmt.Fprintf(&builder, "[yellow]behave output:[white]\n%s\n", tview.Escape(failure.Output))
	}

	return builder.String()
}
