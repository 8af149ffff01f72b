package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/pulse-cli/internal/nav"
	tuitheme "github.com/glabrego/pulse-cli/internal/tui/theme"
)

type fieldSpec struct {
	key         string
	label       string
	placeholder string
	secret      bool
}

// formSpec describes a form modal. {id} in path is replaced by the form target.
type formSpec struct {
	title  string
	path   string
	done   string
	fields []fieldSpec
}

var formSpecs = map[nav.Modal]formSpec{
	nav.ModalLogin: {
		title: "Sign in",
		fields: []fieldSpec{
			{key: "username", label: "Username"},
			{key: "password", label: "Password", secret: true},
		},
	},
	nav.ModalRegister: {
		title: "Create account",
		path:  "/api/register",
		done:  "Account created, sign in to continue",
		fields: []fieldSpec{
			{key: "username", label: "Username"},
			{key: "email", label: "Email", placeholder: "you@example.com"},
			{key: "password", label: "Password", secret: true},
		},
	},
	nav.ModalForgot: {
		title:  "Forgot password",
		path:   "/api/password/forgot",
		done:   "Check your email for a reset code",
		fields: []fieldSpec{{key: "email", label: "Email", placeholder: "you@example.com"}},
	},
	nav.ModalReset: {
		title: "Reset password",
		path:  "/api/password/reset",
		done:  "Password updated, sign in to continue",
		fields: []fieldSpec{
			{key: "token", label: "Reset code"},
			{key: "password", label: "New password", secret: true},
		},
	},
	nav.ModalComment: {
		title:  "Comment",
		done:   "Comment posted",
		fields: []fieldSpec{{key: "text", label: "Comment", placeholder: "Say something nice"}},
	},
	nav.ModalChat: {
		title:  "Message",
		path:   "/api/conversations/{id}/messages",
		done:   "Message sent",
		fields: []fieldSpec{{key: "text", label: "Message"}},
	},
	nav.ModalGroupChat: {
		title:  "Group message",
		path:   "/api/groups/{id}/messages",
		done:   "Message sent to group",
		fields: []fieldSpec{{key: "text", label: "Message"}},
	},
	nav.ModalCreatePost: {
		title: "New post",
		path:  "/api/posts",
		done:  "Post published",
		fields: []fieldSpec{
			{key: "media_url", label: "Media URL", placeholder: "https://"},
			{key: "caption", label: "Caption"},
		},
	},
	nav.ModalCreateReel: {
		title: "New reel",
		path:  "/api/reels",
		done:  "Reel published",
		fields: []fieldSpec{
			{key: "media_url", label: "Video URL", placeholder: "https://"},
			{key: "caption", label: "Caption"},
		},
	},
	nav.ModalCreateGroup: {
		title: "New group",
		path:  "/api/groups",
		done:  "Group created",
		fields: []fieldSpec{
			{key: "name", label: "Name"},
			{key: "members", label: "Members", placeholder: "comma separated usernames"},
		},
	},
	nav.ModalAddTo: {
		title:  "Add to group",
		path:   "/api/posts/{id}/share",
		done:   "Shared to group",
		fields: []fieldSpec{{key: "group", label: "Group name"}},
	},
	nav.ModalEditProfile: {
		title: "Edit profile",
		path:  "/api/profile",
		done:  "Profile updated",
		fields: []fieldSpec{
			{key: "display_name", label: "Display name"},
			{key: "bio", label: "Bio"},
		},
	},
}

type form struct {
	modal      nav.Modal
	spec       formSpec
	inputs     []textinput.Model
	focus      int
	target     int64
	submitting bool
}

func newForm(modal nav.Modal, target int64) *form {
	spec, ok := formSpecs[modal]
	if !ok {
		return nil
	}
	f := &form{modal: modal, spec: spec, target: target}
	for _, field := range spec.fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = field.placeholder
		ti.CharLimit = 500
		if field.secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		f.inputs = append(f.inputs, ti)
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

func (f *form) path() string {
	return strings.ReplaceAll(f.spec.path, "{id}", fmt.Sprintf("%d", f.target))
}

func (f *form) values() map[string]string {
	out := make(map[string]string, len(f.inputs))
	for i, field := range f.spec.fields {
		v := f.inputs[i].Value()
		if !field.secret {
			v = strings.TrimSpace(v)
		}
		out[field.key] = v
	}
	return out
}

func (f *form) move(delta int) {
	if len(f.inputs) == 0 {
		return
	}
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

// lastField reports whether enter should submit rather than advance.
func (f *form) lastField() bool {
	return f.focus == len(f.inputs)-1
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) view(th tuitheme.Theme) string {
	lines := []string{th.Title.Render(f.spec.title), ""}
	for i, field := range f.spec.fields {
		marker := "  "
		if i == f.focus {
			marker = "> "
		}
		lines = append(lines, marker+th.MetaLabel.Render(field.label+": ")+f.inputs[i].View())
	}
	if f.submitting {
		lines = append(lines, "", th.StateLoad.Render("Submitting..."))
	}
	return strings.Join(lines, "\n")
}
