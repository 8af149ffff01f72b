package view

import (
	"fmt"
	"strings"

	"github.com/glabrego/pulse-cli/internal/nav"
	tuitheme "github.com/glabrego/pulse-cli/internal/tui/theme"
)

// TabSections are the sections reachable with the number keys, in key order.
var TabSections = []nav.Section{
	nav.SectionHome,
	nav.SectionReels,
	nav.SectionFriends,
	nav.SectionInbox,
	nav.SectionProfile,
	nav.SectionSearch,
	nav.SectionNotifications,
	nav.SectionAdmin,
}

func Tabs(active nav.Section, th tuitheme.Theme) string {
	parts := make([]string, 0, len(TabSections)+2)
	for i, s := range TabSections {
		label := fmt.Sprintf("%d %s", i+1, s)
		if s == active {
			parts = append(parts, th.TabActive.Render(label))
			continue
		}
		parts = append(parts, th.Tab.Render(label))
	}
	for _, extra := range []struct {
		key string
		s   nav.Section
	}{{"m", nav.SectionMenu}, {"a", nav.SectionAddTo}} {
		label := extra.key + " " + extra.s.String()
		if extra.s == active {
			parts = append(parts, th.TabActive.Render(label))
			continue
		}
		parts = append(parts, th.Tab.Render(label))
	}
	return strings.Join(parts, "")
}

func Toolbar(section nav.Section, modal nav.Modal) string {
	switch modal {
	case nav.ModalNone:
	case nav.ModalStory:
		return "h/l prev/next | drag: swipe or pull down | hold to pause | o open | esc close"
	case nav.ModalLogin:
		return "tab next field | enter sign in | ctrl+r register | ctrl+f forgot password | ctrl+c quit"
	case nav.ModalForgot:
		return "tab next field | enter send | ctrl+t have a code | esc back to sign in"
	default:
		return "tab next field | shift+tab previous | enter submit | esc cancel"
	}

	switch section {
	case nav.SectionHome, nav.SectionReels:
		return "j/k move | l like | f follow | c comment | R report | + add to group | [ ] pick story | s stories | o open | y copy | q quit"
	case nav.SectionSearch:
		return "/ edit query | enter search | j/k move | q quit"
	case nav.SectionInbox, nav.SectionFriends:
		return "j/k move | enter message | q quit"
	case nav.SectionAdmin:
		return "j/k move | x remove | d dismiss | q quit"
	case nav.SectionMenu, nav.SectionAddTo:
		return "j/k move | enter choose | q quit"
	default:
		return "1-8 sections | m menu | a add | D theme | L logout | q quit"
	}
}

func Footer(section nav.Section, page, shown int, exhausted bool, th tuitheme.Theme) string {
	parts := []string{
		th.MetaLabel.Render("section") + " " + th.MetaValue.Render(section.String()),
	}
	if _, ok := section.FeedKind(); ok {
		more := "more"
		if exhausted {
			more = "end"
		}
		parts = append(parts,
			th.MetaLabel.Render("page")+" "+th.MetaValue.Render(fmt.Sprintf("%d", page)),
			th.MetaValue.Render(more),
		)
	}
	parts = append(parts, th.MetaValue.Render(fmt.Sprintf("%d shown", shown)))
	return strings.Join(parts, " • ")
}

func Message(loading bool, alert, status, warning string, th tuitheme.Theme) string {
	state := "idle"
	stateLabel := th.StateIdle.Render("state")
	switch {
	case alert != "" || warning != "":
		state = "warning"
		stateLabel = th.StateWarn.Render("state")
	case loading:
		state = "loading"
		stateLabel = th.StateLoad.Render("state")
	}

	main := "Ready"
	switch {
	case alert != "":
		main = th.Alert.Render(alert)
	case status != "":
		main = th.MetaValue.Render(status)
	case warning != "":
		main = th.MetaValue.Render(warning)
	default:
		main = th.MetaValue.Render(main)
	}
	return fmt.Sprintf("%s: %s | %s", stateLabel, state, main)
}
