package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pos-manage/api/internal/kitchen"
)

const (
	columnWidthLabel   = 6
	columnWidthSeat    = 8
	columnWidthQty     = 5
	columnWidthElapsed = 8

	cursorMark = "> "
)

type theme struct {
	header  lipgloss.Style
	pending lipgloss.Style
	urgent  lipgloss.Style
	done    lipgloss.Style
	warning lipgloss.Style
	cursor  lipgloss.Style
}

func defaultTheme() theme {
	return theme{
		header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		pending: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		urgent:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		done:    lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("242")),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		cursor:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
	}
}

// render draws the worklist: a header line, an optional staleness warning
// and one row per ticket. The row at index cursor is marked; pass -1 for
// no selection.
func render(v kitchen.View, th theme, width, cursor int) string {
	var b strings.Builder

	b.WriteString(th.header.Render(fmt.Sprintf("Kitchen %s  pending %d  urgent %d",
		v.BusinessDate, v.PendingCount, v.UrgentCount)))
	b.WriteString("\n")

	if v.Stale {
		msg := "waiting for first refresh"
		if !v.FetchedAt.IsZero() {
			msg = "data is stale, last refresh " + v.FetchedAt.Local().Format("15:04:05")
		}
		if v.LastError != "" {
			msg += ": " + v.LastError
		}
		b.WriteString(th.warning.Render(msg))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(v.Tickets) == 0 {
		b.WriteString(th.pending.Render("no items"))
		b.WriteString("\n")
		return b.String()
	}

	for i, t := range v.Tickets {
		if i == cursor {
			b.WriteString(th.cursor.Render(cursorMark))
		} else {
			b.WriteString(strings.Repeat(" ", len(cursorMark)))
		}
		b.WriteString(renderRow(t, th, width-len(cursorMark)))
		b.WriteString("\n")
	}
	return b.String()
}

func renderRow(t kitchen.Ticket, th theme, width int) string {
	style := th.pending
	switch t.Status {
	case kitchen.StatusUrgent:
		style = th.urgent
	case kitchen.StatusDone:
		style = th.done
	}

	row := pad(t.Label, columnWidthLabel) +
		pad(t.SeatName, columnWidthSeat) +
		pad(fmt.Sprintf("x%d", t.Quantity), columnWidthQty) +
		pad(t.Elapsed, columnWidthElapsed) +
		t.ItemName
	if t.Note != "" {
		row += "  (" + t.Note + ")"
	}

	if width > 0 {
		style = style.MaxWidth(width)
	}
	return style.Render(row)
}

func pad(s string, n int) string {
	if w := lipgloss.Width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s + " "
}
