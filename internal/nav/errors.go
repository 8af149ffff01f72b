package nav

import (
	"errors"

	"github.com/glabrego/pulse-cli/internal/social"
)

type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindUnauthenticated
	KindValidation
	KindNetwork
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindValidation:
		return "validation"
	case KindNetwork:
		return "network"
	}
	return "none"
}

// Classify maps a collaborator error onto the UI error taxonomy. Anything that is
// neither a rejected session nor a rejected action counts as a network failure.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	if errors.Is(err, social.ErrUnauthenticated) {
		return KindUnauthenticated
	}
	var verr *social.ValidationError
	if errors.As(err, &verr) {
		return KindValidation
	}
	return KindNetwork
}
