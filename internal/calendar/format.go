// ABOUTME: Human-readable formatting of agendas per action
// ABOUTME: Produces the display text the dispatcher treats as opaque
package calendar

import (
	"fmt"
	"strings"

	"github.com/pmcavoy/aide/internal/models"
)

// FormatAgenda satisfies the core's collaborator contract.
func (c *Client) FormatAgenda(agenda *models.Agenda) string {
	return FormatAgenda(agenda)
}

// FormatAgenda renders an agenda as a display string, varying by action.
func FormatAgenda(agenda *models.Agenda) string {
	switch agenda.Action {
	case "list":
		if len(agenda.Events) == 0 {
			return "📅 No upcoming events found in your calendar."
		}
		var b strings.Builder
		b.WriteString("📅 Your Upcoming Events:\n\n")
		for _, ev := range agenda.Events {
			fmt.Fprintf(&b, "📝 **%s**\n", ev.Title)
			fmt.Fprintf(&b, "   🕐 %s", ev.StartTime)
			if ev.EndTime != ev.StartTime {
				fmt.Fprintf(&b, " - %s", ev.EndTime)
			}
			b.WriteString("\n")
			if ev.Location != "" {
				fmt.Fprintf(&b, "   📍 %s\n", ev.Location)
			}
			if ev.Description != "" {
				desc := ev.Description
				if len(desc) > 100 {
					desc = desc[:100] + "..."
				}
				fmt.Fprintf(&b, "   📄 %s\n", desc)
			}
			b.WriteString("\n")
		}
		return strings.TrimSpace(b.String())

	case "create":
		var ev models.Event
		if len(agenda.Events) > 0 {
			ev = agenda.Events[0]
		}
		var b strings.Builder
		b.WriteString("✅ Event created successfully!\n\n")
		title := ev.Title
		if title == "" {
			title = "New Event"
		}
		fmt.Fprintf(&b, "📝 **%s**\n", title)
		fmt.Fprintf(&b, "🕐 %s - %s\n", ev.StartTime, ev.EndTime)
		if ev.Location != "" {
			fmt.Fprintf(&b, "📍 %s\n", ev.Location)
		}
		return strings.TrimSpace(b.String())

	case "update":
		return "✅ Event updated successfully!"

	case "delete":
		return "✅ Event deleted successfully!"
	}

	return agenda.Message
}
