package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ---------------------
// Conversation states
// ---------------------

type State string

const (
	StateAwaitingLoanType State = "AWAITING_LOAN_TYPE"
	StateAwaitingIncome   State = "AWAITING_INCOME"
	StateAwaitingCity     State = "AWAITING_CITY"
	StateAwaitingAmount   State = "AWAITING_AMOUNT"
	StateAwaitingName     State = "AWAITING_NAME"
)

// Session tracks one phone number's progress through the questionnaire.
// Pure runtime state: completed or expired sessions are simply deleted.
type Session struct {
	Phone           string    `json:"phone"`
	State           State     `json:"state"`
	LoanType        string    `json:"loan_type,omitempty"`
	MonthlyIncome   string    `json:"monthly_income,omitempty"`
	City            string    `json:"city,omitempty"`
	RequestedAmount string    `json:"requested_amount,omitempty"`
	FullName        string    `json:"full_name,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

const (
	leadStatusNew = "New Lead"
	leadSource    = "WhatsApp Bot"
)

// Lead is the finalized questionnaire record. Immutable once built; a
// separate back-office flow may later flip the Status column in the sheet.
type Lead struct {
	ID            string
	Name          string
	Phone         string
	City          string
	MonthlyIncome string
	LoanType      string
	Amount        string
	Timestamp     time.Time
	Status        string
	Source        string
}

// leadColumns is the header row of the leads tab. Row() must stay in the
// same order.
var leadColumns = []string{
	"Timestamp", "Name", "Phone", "City", "Monthly Income",
	"Loan Type", "Amount", "Status", "Source", "Lead ID",
}

func (l Lead) Row() []interface{} {
	return []interface{}{
		l.Timestamp.Format("02-Jan-2006 15:04:05"),
		l.Name,
		l.Phone,
		l.City,
		l.MonthlyIncome,
		l.LoanType,
		l.Amount,
		l.Status,
		l.Source,
		l.ID,
	}
}

type Reply struct {
	Text string
}

// ---------------------
// Conversation engine
// ---------------------

// Engine drives the linear lead questionnaire. It owns no I/O: callers
// persist the returned Lead and send the Reply themselves.
type Engine struct {
	store SessionStore
	menu  []string
}

func NewEngine(store SessionStore, menu []string) *Engine {
	return &Engine{store: store, menu: menu}
}

// Handle advances the conversation for phone by one inbound message and
// returns the next reply. On the terminal transition it also returns the
// finalized Lead and removes the session, so the next message from the same
// phone starts over at the menu. Handle never fails: input that does not
// parse at the current state re-emits the prompt without advancing.
func (e *Engine) Handle(phone, text string) (Reply, *Lead) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{}, nil
	}

	sess, ok := e.store.Get(phone)
	if !ok {
		e.store.Set(phone, Session{
			Phone:     phone,
			State:     StateAwaitingLoanType,
			UpdatedAt: time.Now(),
		})
		return Reply{Text: e.menuText()}, nil
	}

	switch sess.State {
	case StateAwaitingLoanType:
		choice, err := strconv.Atoi(text)
		if err != nil || choice < 1 || choice > len(e.menu) {
			// Invalid menu pick: same state, same menu.
			return Reply{Text: "Please reply with a number from the menu.\n\n" + e.menuText()}, nil
		}
		sess.LoanType = e.menu[choice-1]
		sess.State = StateAwaitingIncome
		e.save(sess)
		return Reply{Text: fmt.Sprintf("You selected *%s*.\n\n💰 What is your monthly income?", sess.LoanType)}, nil

	case StateAwaitingIncome:
		sess.MonthlyIncome = text
		sess.State = StateAwaitingCity
		e.save(sess)
		return Reply{Text: "🏙️ Which city do you live in?"}, nil

	case StateAwaitingCity:
		sess.City = text
		sess.State = StateAwaitingAmount
		e.save(sess)
		return Reply{Text: "💵 How much loan amount do you need?"}, nil

	case StateAwaitingAmount:
		sess.RequestedAmount = text
		sess.State = StateAwaitingName
		e.save(sess)
		return Reply{Text: "🙏 Lastly, what is your full name?"}, nil

	case StateAwaitingName:
		sess.FullName = text
		lead := buildLead(sess)
		e.store.Delete(phone)
		return Reply{Text: fmt.Sprintf(
			"Thank you %s! ✅\n\nYour %s enquiry is registered. Our LoanHelpline team will contact you shortly with the best offers.",
			lead.Name, lead.LoanType)}, &lead

	default:
		// Unknown state (e.g. stale data from an older build): start over.
		e.store.Delete(phone)
		e.store.Set(phone, Session{
			Phone:     phone,
			State:     StateAwaitingLoanType,
			UpdatedAt: time.Now(),
		})
		return Reply{Text: e.menuText()}, nil
	}
}

func (e *Engine) save(sess Session) {
	sess.UpdatedAt = time.Now()
	e.store.Set(sess.Phone, sess)
}

func (e *Engine) menuText() string {
	var b strings.Builder
	b.WriteString("👋 Welcome to LoanHelpline!\n\nWhich loan are you looking for? Reply with a number:\n")
	for i, label := range e.menu {
		fmt.Fprintf(&b, "\n%d. %s", i+1, label)
	}
	return b.String()
}

func buildLead(sess Session) Lead {
	return Lead{
		ID:            uuid.New().String(),
		Name:          sess.FullName,
		Phone:         sess.Phone,
		City:          sess.City,
		MonthlyIncome: sess.MonthlyIncome,
		LoanType:      sess.LoanType,
		Amount:        sess.RequestedAmount,
		Timestamp:     time.Now(),
		Status:        leadStatusNew,
		Source:        leadSource,
	}
}
