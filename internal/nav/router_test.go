package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouter_ShowSectionKeepsOnlyLatestVisible(t *testing.T) {
	r := NewRouter()
	sequence := []Section{SectionHome, SectionReels, SectionReels, SectionAdmin, SectionMenu, SectionHome, SectionAddTo}
	for _, s := range sequence {
		r.ShowSection(s)
		sections, _ := r.visibleCounts()
		assert.Equal(t, 1, sections, "after showing %s", s)
		assert.Equal(t, s, r.ActiveSection())
	}
}

func TestRouter_ShowSectionHidesModal(t *testing.T) {
	r := NewRouter()
	r.ShowSection(SectionHome)
	r.ShowModal(ModalComment)
	r.ShowSection(SectionFriends)

	assert.Equal(t, ModalNone, r.ActiveModal())
	assert.Equal(t, SectionFriends, r.ActiveSection())
}

func TestRouter_ModalsAreMutuallyExclusive(t *testing.T) {
	r := NewRouter()
	r.ShowSection(SectionInbox)

	steps := []struct {
		open  Modal
		close Modal
		want  Modal
	}{
		{open: ModalChat, want: ModalChat},
		{open: ModalGroupChat, want: ModalGroupChat},
		{close: ModalChat, want: ModalGroupChat},
		{open: ModalEditProfile, want: ModalEditProfile},
		{close: ModalEditProfile, want: ModalNone},
		{close: ModalLogin, want: ModalNone},
		{open: ModalLogin, want: ModalLogin},
	}
	for i, step := range steps {
		if step.open != ModalNone {
			r.ShowModal(step.open)
		}
		if step.close != ModalNone {
			r.CloseModal(step.close)
		}
		_, modals := r.visibleCounts()
		assert.LessOrEqual(t, modals, 1, "step %d", i)
		assert.Equal(t, step.want, r.ActiveModal(), "step %d", i)
		assert.Equal(t, SectionInbox, r.ActiveSection(), "modal must not change section at step %d", i)
	}
}

func TestRouter_CloseInactiveModalIsNoop(t *testing.T) {
	r := NewRouter()
	r.ShowModal(ModalStory)
	assert.False(t, r.CloseModal(ModalComment))
	assert.Equal(t, ModalStory, r.ActiveModal())
	assert.True(t, r.CloseModal(ModalStory))
}

func TestRouter_IgnoresOutOfRangeValues(t *testing.T) {
	r := NewRouter()
	r.ShowSection(SectionHome)
	r.ShowSection(SectionNone)
	r.ShowSection(Section(99))
	r.ShowModal(Modal(-1))
	assert.Equal(t, SectionHome, r.ActiveSection())
	assert.Equal(t, ModalNone, r.ActiveModal())
}

func TestSectionAndModalNames(t *testing.T) {
	assert.Equal(t, "notifications", SectionNotifications.String())
	assert.Equal(t, "addto", SectionAddTo.String())
	assert.Equal(t, "group-chat", ModalGroupChat.String())
	assert.Equal(t, "edit-profile", ModalEditProfile.String())
	assert.Len(t, Sections(), 10)
	assert.True(t, ModalForgot.Public())
	assert.False(t, ModalComment.Public())
}
