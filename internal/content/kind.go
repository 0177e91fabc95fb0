package content

import (
	"fmt"
	"strings"
)

// Kind is one of the closed set of record kinds. Each kind owns one collection.
type Kind int

const (
	KindNewsPost Kind = iota + 1
	KindReview
	KindHorse
	KindTeamMember
	KindContactMessage
	KindBookingRequest
	KindFaqItem
)

var kindNames = [...]string{
	KindNewsPost:       "NewsPost",
	KindReview:         "Review",
	KindHorse:          "Horse",
	KindTeamMember:     "TeamMember",
	KindContactMessage: "ContactMessage",
	KindBookingRequest: "BookingRequest",
	KindFaqItem:        "FaqItem",
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindNewsPost,
		KindReview,
		KindHorse,
		KindTeamMember,
		KindContactMessage,
		KindBookingRequest,
		KindFaqItem,
	}
}

func (k Kind) Valid() bool {
	return k >= KindNewsPost && k <= KindFaqItem
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Collection is the lowercased kind name, e.g. "newspost".
func (k Kind) Collection() string {
	if !k.Valid() {
		return ""
	}
	return strings.ToLower(kindNames[k])
}

// KindByCollection resolves a collection name back to its kind.
func KindByCollection(name string) (Kind, bool) {
	for _, k := range Kinds() {
		if k.Collection() == name {
			return k, true
		}
	}
	return 0, false
}

// Collections lists the collection names of all kinds.
func Collections() []string {
	kinds := Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.Collection()
	}
	return names
}

// NewRecord returns an empty record of the given kind, ready to be decoded into.
func NewRecord(k Kind) (Record, error) {
	switch k {
	case KindNewsPost:
		return &NewsPost{}, nil
	case KindReview:
		return &Review{}, nil
	case KindHorse:
		return &Horse{}, nil
	case KindTeamMember:
		return &TeamMember{}, nil
	case KindContactMessage:
		return &ContactMessage{}, nil
	case KindBookingRequest:
		return &BookingRequest{}, nil
	case KindFaqItem:
		return &FaqItem{}, nil
	default:
		return nil, fmt.Errorf("unknown record kind: %s", k)
	}
}
