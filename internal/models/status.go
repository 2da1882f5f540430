package models

type ComplaintStatus string

const (
	ComplaintOpen       ComplaintStatus = "open"
	ComplaintInProgress ComplaintStatus = "in-progress"
	ComplaintResolved   ComplaintStatus = "resolved"
	ComplaintDismissed  ComplaintStatus = "dismissed"
)

type AppealStatus string

const (
	AppealPending  AppealStatus = "pending"
	AppealApproved AppealStatus = "approved"
	AppealRejected AppealStatus = "rejected"
)

type PropertyStatus string

const (
	PropertyPendingVerification PropertyStatus = "Pending Verification"
	PropertyActive              PropertyStatus = "Active"
	PropertyFlagged             PropertyStatus = "Flagged"
	PropertyRejected            PropertyStatus = "Rejected"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Transition tables. A status missing from a table is unknown; a status
// mapping to an empty set is terminal.
var (
	complaintTransitions = map[ComplaintStatus][]ComplaintStatus{
		ComplaintOpen:       {ComplaintInProgress, ComplaintResolved, ComplaintDismissed},
		ComplaintInProgress: {ComplaintOpen, ComplaintResolved, ComplaintDismissed},
		ComplaintResolved:   {},
		ComplaintDismissed:  {},
	}

	appealTransitions = map[AppealStatus][]AppealStatus{
		AppealPending:  {AppealApproved, AppealRejected},
		AppealApproved: {},
		AppealRejected: {},
	}

	propertyTransitions = map[PropertyStatus][]PropertyStatus{
		PropertyPendingVerification: {PropertyActive, PropertyRejected},
		PropertyActive:              {PropertyFlagged},
		PropertyFlagged:             {PropertyActive, PropertyRejected},
		PropertyRejected:            {PropertyActive},
	}

	bookingTransitions = map[BookingStatus][]BookingStatus{
		BookingPending:   {BookingConfirmed, BookingCancelled},
		BookingConfirmed: {BookingCancelled},
		BookingCancelled: {},
	}
)

func canMove[S comparable](table map[S][]S, from, to S) bool {
	next, ok := table[from]
	if !ok {
		return false
	}
	if _, ok := table[to]; !ok {
		return false
	}
	if from == to {
		return true
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

func (s ComplaintStatus) Valid() bool {
	_, ok := complaintTransitions[s]
	return ok
}

// CanTransitionTo reports whether a complaint in s may move to next.
// Staying in the same status is allowed so notes can be amended.
func (s ComplaintStatus) CanTransitionTo(next ComplaintStatus) bool {
	return canMove(complaintTransitions, s, next)
}

func (s AppealStatus) Valid() bool {
	_, ok := appealTransitions[s]
	return ok
}

func (s AppealStatus) Terminal() bool {
	return s.Valid() && len(appealTransitions[s]) == 0
}

// CanTransitionTo reports whether an appeal in s may move to next.
// Terminal appeals cannot be re-resolved, not even to the same decision.
func (s AppealStatus) CanTransitionTo(next AppealStatus) bool {
	if s.Terminal() {
		return false
	}
	return s != next && canMove(appealTransitions, s, next)
}

func (s PropertyStatus) Valid() bool {
	_, ok := propertyTransitions[s]
	return ok
}

func (s PropertyStatus) CanTransitionTo(next PropertyStatus) bool {
	return canMove(propertyTransitions, s, next)
}

func (s BookingStatus) Valid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return canMove(bookingTransitions, s, next)
}

// ComplaintTypes are the categories a complaint can be filed under.
var ComplaintTypes = []string{
	"Fraudulent Listing",
	"Misleading Information",
	"Inappropriate Content",
	"Spam",
	"Harassment",
	"Scam",
	"Other",
}

func ValidComplaintType(t string) bool {
	for _, ct := range ComplaintTypes {
		if ct == t {
			return true
		}
	}
	return false
}
