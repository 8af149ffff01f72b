package nav

import "github.com/glabrego/pulse-cli/internal/social"

// Section is a full-screen view region. Exactly one is active once the user has navigated.
type Section int

const (
	SectionNone Section = iota
	SectionHome
	SectionReels
	SectionFriends
	SectionInbox
	SectionProfile
	SectionSearch
	SectionNotifications
	SectionAdmin
	SectionMenu
	SectionAddTo
	sectionCount
)

var sectionNames = [sectionCount]string{
	SectionNone:          "none",
	SectionHome:          "home",
	SectionReels:         "reels",
	SectionFriends:       "friends",
	SectionInbox:         "inbox",
	SectionProfile:       "profile",
	SectionSearch:        "search",
	SectionNotifications: "notifications",
	SectionAdmin:         "admin",
	SectionMenu:          "menu",
	SectionAddTo:         "addto",
}

func (s Section) String() string {
	if s < 0 || s >= sectionCount {
		return "unknown"
	}
	return sectionNames[s]
}

// Sections lists every navigable section in menu order.
func Sections() []Section {
	out := make([]Section, 0, sectionCount-1)
	for s := SectionHome; s < sectionCount; s++ {
		out = append(out, s)
	}
	return out
}

// FeedKind reports the paginated feed owned by s, if any.
func (s Section) FeedKind() (social.FeedKind, bool) {
	switch s {
	case SectionHome:
		return social.KindPosts, true
	case SectionReels:
		return social.KindReels, true
	}
	return "", false
}

// Modal is an overlay shown above the active section. At most one is visible.
type Modal int

const (
	ModalNone Modal = iota
	ModalLogin
	ModalRegister
	ModalForgot
	ModalReset
	ModalComment
	ModalChat
	ModalGroupChat
	ModalStory
	ModalCreatePost
	ModalCreateReel
	ModalCreateGroup
	ModalAddTo
	ModalEditProfile
	modalCount
)

var modalNames = [modalCount]string{
	ModalNone:        "none",
	ModalLogin:       "login",
	ModalRegister:    "register",
	ModalForgot:      "forgot",
	ModalReset:       "reset",
	ModalComment:     "comment",
	ModalChat:        "chat",
	ModalGroupChat:   "group-chat",
	ModalStory:       "story",
	ModalCreatePost:  "create-post",
	ModalCreateReel:  "create-reel",
	ModalCreateGroup: "create-group",
	ModalAddTo:       "add-to",
	ModalEditProfile: "edit-profile",
}

func (m Modal) String() string {
	if m < 0 || m >= modalCount {
		return "unknown"
	}
	return modalNames[m]
}

// Public reports whether m is reachable without a session.
func (m Modal) Public() bool {
	switch m {
	case ModalLogin, ModalRegister, ModalForgot, ModalReset:
		return true
	}
	return false
}
